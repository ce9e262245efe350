package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/leads"
	"github.com/iwvelando/roi-forecast/internal/params"
	"github.com/iwvelando/roi-forecast/internal/presets"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/testutil"
)

type recordingSubmitter struct {
	leads []leads.Lead
	err   error
}

func (r *recordingSubmitter) Submit(_ context.Context, lead leads.Lead) error {
	if r.err != nil {
		return r.err
	}
	r.leads = append(r.leads, lead)
	return nil
}

func newTestHandler(sub leads.Submitter) http.Handler {
	return NewHandler(zap.NewNop(), constants.DefaultMaxBodySizeBytes, "test", Engine{
		Presets:     presets.Default(),
		Assumptions: calculator.DefaultAssumptions(),
		Leads:       sub,
	})
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeCalculate(t *testing.T, rr *httptest.ResponseRecorder) calculateResponse {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp calculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHandleCalculateDefaults(t *testing.T) {
	resp := decodeCalculate(t, post(t, newTestHandler(nil), "/api/calculate", `{}`))

	if resp.Selection != "custom" {
		t.Fatalf("expected custom selection, got %q", resp.Selection)
	}
	want := calculator.Compute(presets.DefaultParams(), calculator.DefaultAssumptions())
	if !testutil.AlmostEqual(resp.Result.TotalBenefit, want.TotalBenefit) {
		t.Fatalf("expected total benefit %v, got %v", want.TotalBenefit, resp.Result.TotalBenefit)
	}
	if len(resp.Rows) != calculator.MetricCount {
		t.Fatalf("expected %d rows, got %d", calculator.MetricCount, len(resp.Rows))
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
}

func TestHandleCalculateWorkedExample(t *testing.T) {
	body := `{"params": {
		"business": {"participants": 1, "dealsPerParticipant": 0},
		"tasks": [{"name": "Lead Generation", "hoursPerWeek": 10, "automationPotential": 80}],
		"costs": {"valuePerHour": 75}
	}}`
	resp := decodeCalculate(t, post(t, newTestHandler(nil), "/api/calculate", body))

	tests := []struct {
		key  string
		text string
	}{
		{"weeklyHours", "8.0 hrs"},
		{"monthlyHours", "34.6 hrs"},
		{"annualHours", "415.7 hrs"},
		{"timeValue", "$31,176"},
	}
	for _, tt := range tests {
		row := testutil.FindRow(resp.Rows, tt.key)
		if row == nil {
			t.Fatalf("missing row %s", tt.key)
		}
		if row.Text != tt.text {
			t.Errorf("%s: expected %q, got %q", tt.key, tt.text, row.Text)
		}
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", resp.Warnings)
	}
}

func TestHandleCalculatePresetAndEdits(t *testing.T) {
	h := newTestHandler(nil)

	resp := decodeCalculate(t, post(t, h, "/api/calculate", `{"preset": "Solo Agent"}`))
	if resp.Selection != "Solo Agent" {
		t.Fatalf("expected preset selection, got %q", resp.Selection)
	}
	solo, err := presets.Default().Get("Solo Agent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !resp.Params.Equal(solo) {
		t.Fatalf("expected preset parameters, got %+v", resp.Params)
	}

	resp = decodeCalculate(t, post(t, h, "/api/calculate",
		`{"preset": "Solo Agent", "set": {"costs.valuePerHour": 100, "tasks.0.hoursPerWeek": 20}}`))
	if resp.Selection != "custom" {
		t.Fatalf("expected edits to switch selection to custom, got %q", resp.Selection)
	}
	if resp.Params.Costs.ValuePerHour != 100 {
		t.Errorf("expected valuePerHour 100, got %v", resp.Params.Costs.ValuePerHour)
	}
	if resp.Params.Tasks[0].HoursPerWeek != 20 {
		t.Errorf("expected first task hours 20, got %v", resp.Params.Tasks[0].HoursPerWeek)
	}
}

func TestHandleCalculateUsesPresetProfile(t *testing.T) {
	h := newTestHandler(nil)

	tests := []struct {
		preset        string
		wantCost      float64
		wantSynergy   float64
		wantRetention float64
	}{
		{"Large Team", (800 + 200*20) * 12, 1.4, 0},
		{"Enterprise Brokerage", (2000 + 150*300) * 12, 1, 300 * 0.15 * 25000},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			resp := decodeCalculate(t, post(t, h, "/api/calculate", `{"preset": "`+tt.preset+`"}`))
			if !testutil.AlmostEqual(resp.Result.AnnualCost, tt.wantCost) {
				t.Errorf("annual cost = %v, want %v", resp.Result.AnnualCost, tt.wantCost)
			}
			if !testutil.AlmostEqual(resp.Result.SynergyMultiplier, tt.wantSynergy) {
				t.Errorf("synergy = %v, want %v", resp.Result.SynergyMultiplier, tt.wantSynergy)
			}
			if !testutil.AlmostEqual(resp.Result.RetentionValue, tt.wantRetention) {
				t.Errorf("retention value = %v, want %v", resp.Result.RetentionValue, tt.wantRetention)
			}
		})
	}

	resp := decodeCalculate(t, post(t, h, "/api/calculate", `{"preset": "Small Team", "set": {"costs.valuePerHour": 100}}`))
	if resp.Selection != "custom" || !resp.Assumptions.Synergy.Enabled || resp.Assumptions.PlatformPerParticipantMonthly != 200 {
		t.Errorf("expected edits to keep the team profile, got %s %+v", resp.Selection, resp.Assumptions)
	}
}

func TestHandleCalculateClampsOutOfRangeParams(t *testing.T) {
	body := `{"params": {
		"business": {"participants": 0},
		"tasks": [{"name": "Admin", "hoursPerWeek": 10, "automationPotential": 150}],
		"costs": {}
	}}`
	resp := decodeCalculate(t, post(t, newTestHandler(nil), "/api/calculate", body))

	if resp.Params.Business.Participants != 1 {
		t.Errorf("expected participants clamped to 1, got %v", resp.Params.Business.Participants)
	}
	if resp.Params.Tasks[0].AutomationPotential != 100 {
		t.Errorf("expected automation clamped to 100, got %v", resp.Params.Tasks[0].AutomationPotential)
	}
	if len(resp.Warnings) == 0 {
		t.Error("expected a clamp warning")
	}
}

func TestHandleCalculateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"unknown preset", `{"preset": "Galactic Empire"}`, http.StatusBadRequest, "preset not found"},
		{"unknown field", `{"set": {"business.revenue": 1}}`, http.StatusBadRequest, "unknown field"},
		{"task index out of range", `{"set": {"tasks.99.hoursPerWeek": 1}}`, http.StatusBadRequest, "out of range"},
		{"unknown request key", `{"presets": "Solo Agent"}`, http.StatusBadRequest, "failed to decode"},
		{"malformed JSON", `{`, http.StatusBadRequest, "failed to decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, newTestHandler(nil), "/api/calculate", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if !strings.Contains(resp["error"], tt.msg) {
				t.Fatalf("expected error containing %q, got %q", tt.msg, resp["error"])
			}
		})
	}
}

func TestHandleCalculateBodyTooLarge(t *testing.T) {
	h := NewHandler(zap.NewNop(), 64, "", Engine{})
	body := `{"preset": "` + strings.Repeat("a", 128) + `"}`

	rr := post(t, h, "/api/calculate", body)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "exceeds limit") {
		t.Fatalf("expected body limit error message, got %q", resp["error"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil)
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/calculate"},
		{http.MethodPost, "/api/presets"},
		{http.MethodPost, "/api/fields"},
		{http.MethodGet, "/api/leads"},
		{http.MethodDelete, "/api/version"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status 405, got %d", tt.method, tt.path, rr.Code)
		}
	}
}

func TestHandlePresets(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	rr := httptest.NewRecorder()
	newTestHandler(nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp []presetSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	names := presets.Default().Names()
	if len(resp) != len(names) {
		t.Fatalf("expected %d presets, got %d", len(names), len(resp))
	}
	for i, p := range resp {
		if p.Name != names[i] {
			t.Errorf("preset %d: expected %q, got %q", i, names[i], p.Name)
		}
		if p.Profile == "" {
			t.Errorf("preset %q: expected a profile", p.Name)
		}
		if len(p.Params.Tasks) == 0 {
			t.Errorf("preset %q has no tasks", p.Name)
		}
	}
}

func TestHandleFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	rr := httptest.NewRecorder()
	newTestHandler(nil).ServeHTTP(rr, req)

	var resp []params.Field
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != len(params.Fields()) {
		t.Fatalf("expected %d fields, got %d", len(params.Fields()), len(resp))
	}
	if resp[0].ID != params.FieldParticipants {
		t.Fatalf("expected first field %q, got %q", params.FieldParticipants, resp[0].ID)
	}
}

func TestHandleLeads(t *testing.T) {
	sub := &recordingSubmitter{}
	h := NewHandler(zap.NewNop(), 0, "", Engine{Leads: sub})
	rr := post(t, h, "/api/leads", `{"name": " Dana Reyes ", "contact": {"email": "dana@example.com"}, "context": "Team of 8", "preset": "Small Team"}`)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sub.leads) != 1 {
		t.Fatalf("expected one submitted lead, got %d", len(sub.leads))
	}
	lead := sub.leads[0]
	if resp["id"] != lead.ID.String() {
		t.Errorf("expected id %s, got %s", lead.ID, resp["id"])
	}
	if lead.Name != "Dana Reyes" {
		t.Errorf("expected trimmed name, got %q", lead.Name)
	}
	if lead.Preset != "Small Team" {
		t.Errorf("expected preset context, got %q", lead.Preset)
	}
}

func TestHandleLeadsErrors(t *testing.T) {
	tests := []struct {
		name   string
		sub    *recordingSubmitter
		body   string
		status int
	}{
		{"missing contact", &recordingSubmitter{}, `{"name": "Dana"}`, http.StatusBadRequest},
		{"missing name", &recordingSubmitter{}, `{"contact": {"phone": "555-0100"}}`, http.StatusBadRequest},
		{"submitter failure", &recordingSubmitter{err: errors.New("connection refused")}, `{"name": "Dana", "contact": {"phone": "555-0100"}}`, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(zap.NewNop(), 0, "", Engine{Leads: tt.sub})
			rr := post(t, h, "/api/leads", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if len(tt.sub.leads) != 0 {
				t.Fatalf("expected no stored leads, got %d", len(tt.sub.leads))
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"  ", "dev"},
	}
	for _, tt := range tests {
		h := NewHandler(nil, 0, tt.version, Engine{})
		req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["version"] != tt.want {
			t.Errorf("expected version %q, got %q", tt.want, resp["version"])
		}
	}
}
