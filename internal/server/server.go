package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/leads"
	"github.com/iwvelando/roi-forecast/internal/params"
	"github.com/iwvelando/roi-forecast/internal/presets"
	"github.com/iwvelando/roi-forecast/internal/recompute"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/output"
)

// Engine bundles what the API computes with. Assumptions apply to requests
// without a preset and to presets without a profile.
type Engine struct {
	Presets     *presets.Library
	Assumptions calculator.Assumptions
	Leads       leads.Submitter
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	engine      Engine
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the ROI API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string, engine Engine) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if engine.Presets == nil {
		engine.Presets = presets.Default()
	}
	if engine.Leads == nil {
		engine.Leads = leads.NewLogSubmitter(logger)
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		engine:      engine,
		now:         time.Now,
	}

	mux := http.NewServeMux()

	// ROI computation for a preset, a full snapshot and/or field edits
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Catalogue endpoints for building the input surface
	mux.HandleFunc("/api/presets", h.handlePresets)
	mux.HandleFunc("/api/fields", h.handleFields)

	// Lead capture hand-off
	mux.HandleFunc("/api/leads", h.handleLeads)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type calculateRequest struct {
	Preset string             `json:"preset,omitempty"`
	Params *params.Snapshot   `json:"params,omitempty"`
	Set    map[string]float64 `json:"set,omitempty"`
}

type calculateResponse struct {
	Params      params.Snapshot        `json:"params"`
	Selection   string                 `json:"selection"`
	Assumptions calculator.Assumptions `json:"assumptions"`
	Result      calculator.Result      `json:"result"`
	Rows        []output.Row           `json:"rows"`
	Warnings    []string               `json:"warnings,omitempty"`
	Duration    string                 `json:"duration"`
}

type presetSummary struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Profile     string          `json:"profile,omitempty"`
	Params      params.Snapshot `json:"params"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req calculateRequest
	if status, err := h.decodeBody(w, r, &req); err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	store := params.NewStore(presets.DefaultParams())
	controller := recompute.New(h.logger, h.engine.Assumptions)
	controller.UseProfiles(h.engine.Presets)
	controller.Attach(store)

	var warnings []string
	if req.Preset != "" {
		if _, err := store.SelectPreset(h.engine.Presets, req.Preset); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
	}
	if req.Params != nil {
		if err := req.Params.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("parameters were clamped to their allowed ranges: %v", err))
		}
		store.Replace(*req.Params)
	}

	paths := make([]string, 0, len(req.Set))
	for path := range req.Set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if _, err := store.SetField(path, req.Set[path]); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
	}

	result, _ := controller.Latest()
	h.writeJSON(w, http.StatusOK, calculateResponse{
		Params:      store.Snapshot(),
		Selection:   store.Selection().String(),
		Assumptions: controller.Assumptions(),
		Result:      result,
		Rows:        output.ResultRows(result),
		Warnings:    warnings,
		Duration:    time.Since(start).String(),
	})
}

func (h *handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	all := h.engine.Presets.Presets()
	summaries := make([]presetSummary, 0, len(all))
	for _, p := range all {
		summaries = append(summaries, presetSummary{Name: p.Name, Description: p.Description, Profile: p.Profile, Params: p.Params})
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) handleFields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, params.Fields())
}

func (h *handler) handleLeads(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLeads"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload leads.Payload
	if status, err := h.decodeBody(w, r, &payload); err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	lead, err := leads.Accept(payload, h.now())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := h.engine.Leads.Submit(r.Context(), lead); err != nil {
		h.respondErrorWithOp(w, http.StatusBadGateway, fmt.Sprintf("failed to forward lead: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusAccepted, map[string]string{"id": lead.ID.String()})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeBody reads a size-limited JSON body into dst and returns the HTTP
// status to report on failure.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request exceeds limit of %d bytes", h.maxBodySize)
		}
		return http.StatusBadRequest, fmt.Errorf("failed to decode request: %v", err)
	}
	return http.StatusOK, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
