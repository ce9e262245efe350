// Package main provides the CLI entrypoint for roi-forecast.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/config"
	"github.com/iwvelando/roi-forecast/internal/leads"
	"github.com/iwvelando/roi-forecast/internal/params"
	"github.com/iwvelando/roi-forecast/internal/presets"
	"github.com/iwvelando/roi-forecast/internal/recompute"
	"github.com/iwvelando/roi-forecast/internal/server"
	"github.com/iwvelando/roi-forecast/internal/tui"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/output"
	"github.com/iwvelando/roi-forecast/pkg/validation"
)

var version = "dev"

// app carries what every subcommand needs once the root command has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string

	conf    *config.Configuration
	logger  *zap.Logger
	library *presets.Library
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "roi-forecast",
		Short:         "Savings and ROI calculator for workflow automation",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newCalcCmd(a),
		newPresetsCmd(a),
		newFieldsCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
	)
	return rootCmd
}

// setup loads the configuration, builds the logger and the preset library.
// A missing default config file is not an error.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	library, err := conf.PresetLibrary()
	if err != nil {
		return fmt.Errorf("failed to build preset library: %w", err)
	}

	a.conf = conf
	a.logger = logger
	a.library = library
	return nil
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		presetName   string
		profileName  string
		paramsFile   string
		sets         []string
		outputFormat string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the savings and ROI figures once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := a.conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			edits, err := parseSetFlags(sets)
			if err != nil {
				return err
			}

			assumptions := a.conf.Assumptions.ToAssumptions()
			if profileName != "" {
				profile, ok := a.library.Profile(profileName)
				if !ok {
					return fmt.Errorf("unknown profile %q (available: %s)", profileName, strings.Join(a.library.ProfileNames(), ", "))
				}
				assumptions = profile
			}

			store := params.NewStore(presets.DefaultParams())
			controller := recompute.New(a.logger, assumptions)
			controller.UseProfiles(a.library)
			controller.Attach(store)

			title := "custom"
			if presetName != "" {
				if _, err := store.SelectPreset(a.library, presetName); err != nil {
					return fmt.Errorf("%w (available: %s)", err, presetNames(a.library))
				}
				title = presetName
			}
			if paramsFile != "" {
				snap, err := loadSnapshot(paramsFile)
				if err != nil {
					return err
				}
				if err := snap.Validate(); err != nil {
					a.logger.Warn("parameters were clamped to their allowed ranges",
						zap.String("op", "main.calc"),
						zap.Error(err),
					)
				}
				store.Replace(snap)
				title = paramsFile
			}
			for _, e := range edits {
				if _, err := store.SetField(e.path, e.value); err != nil {
					return err
				}
			}
			if len(edits) > 0 {
				title = store.Selection().String()
			}

			result, _ := controller.Latest()
			return writeResult(cmd.OutOrStdout(), format, title, result)
		},
	}
	cmd.Flags().StringVar(&presetName, "preset", "", "start from the named preset")
	cmd.Flags().StringVar(&profileName, "profile", "", "assumption profile for parameters not taken from a preset (solo, team, brokerage)")
	cmd.Flags().StringVar(&paramsFile, "params", "", "YAML file holding a full parameter snapshot")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field edit as path=value, repeatable (e.g. costs.valuePerHour=90)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	return cmd
}

func writeResult(w io.Writer, format, title string, result calculator.Result) error {
	switch format {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, title, result)
	default:
		return output.PrettyFormat(w, title, result)
	}
}

type fieldEdit struct {
	path  string
	value float64
}

// parseSetFlags parses path=value pairs, keeping their order.
func parseSetFlags(sets []string) ([]fieldEdit, error) {
	edits := make([]fieldEdit, 0, len(sets))
	for _, raw := range sets {
		path, value, ok := strings.Cut(raw, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid --set %q, expected path=value", raw)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", raw, err)
		}
		edits = append(edits, fieldEdit{path: path, value: v})
	}
	return edits, nil
}

func loadSnapshot(path string) (params.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return params.Snapshot{}, fmt.Errorf("failed to read parameters: %w", err)
	}
	var snap params.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return params.Snapshot{}, fmt.Errorf("failed to parse parameters: %w", err)
	}
	return snap, nil
}

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, p := range a.library.Presets() {
				profile := p.Profile
				if profile == "" {
					profile = "-"
				}
				if _, err := fmt.Fprintf(w, "%-24s %-10s %s\n", p.Name, profile, p.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newFieldsCmd(a *app) *cobra.Command {
	var presetName string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List editable field paths with their ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := presets.DefaultParams()
			if presetName != "" {
				var err error
				if snap, err = a.library.Get(presetName); err != nil {
					return err
				}
			}
			w := cmd.OutOrStdout()
			for _, path := range snap.Paths() {
				f, err := snap.Describe(path)
				if err != nil {
					return err
				}
				value, _ := snap.Get(path)
				if _, err := fmt.Fprintf(w, "%-40s %-40s %g [%g..%g step %g]\n", path, f.Label, value, f.Min, f.Max, f.Step); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&presetName, "preset", "", "list the fields of the named preset")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var (
		serverConfigPath string
		address          string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srvConf, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				srvConf.Address = address
			}

			logger := a.logger
			if srvConf.Logging != (config.LoggingConfig{}) {
				if logger, err = initializeLogger(srvConf.Logging, a.logLevel); err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() { _ = logger.Sync() }()
			}

			leadConf := srvConf.LeadsFor(a.conf.Leads)
			if err := validation.ValidateLeadSink(leadConf.Sink); err != nil {
				logger.Warn("falling back to the log lead sink",
					zap.String("op", "main.serve"),
					zap.Error(err),
				)
				leadConf.Sink = constants.LeadSinkLog
			}
			submitter, closeLeads, err := leads.Open(logger, leads.Options{
				Sink:       leadConf.Sink,
				Path:       leadConf.Path,
				WebhookURL: leadConf.WebhookURL,
				Timeout:    leadConf.Timeout,
			})
			if err != nil {
				return fmt.Errorf("failed to open lead sink: %w", err)
			}
			defer func() {
				if cerr := closeLeads(); cerr != nil {
					logger.Error("failed to close lead sink", zap.String("op", "main.serve"), zap.Error(cerr))
				}
			}()

			serverVersion := version
			if srvConf.Version != "" {
				serverVersion = srvConf.Version
			}
			handler := server.NewHandler(logger, srvConf.BodySizeBytes(), serverVersion, server.Engine{
				Presets:     a.library,
				Assumptions: a.conf.Assumptions.ToAssumptions(),
				Leads:       submitter,
			})
			srv := &http.Server{
				Addr:              srvConf.Address,
				Handler:           handler,
				ReadHeaderTimeout: srvConf.ReadHeaderTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening",
					zap.String("op", "main.serve"),
					zap.String("address", srvConf.Address),
					zap.Int64("maxBodySize", srvConf.BodySizeBytes()),
					zap.String("leadSink", leadConf.Sink),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), srvConf.ShutdownTimeout)
			defer cancel()
			logger.Info("shutting down", zap.String("op", "main.serve"))
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var presetName string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactive calculator with animated results",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("watch needs an interactive terminal; use calc instead")
			}

			store := params.NewStore(presets.DefaultParams())
			if presetName != "" {
				if _, err := store.SelectPreset(a.library, presetName); err != nil {
					return fmt.Errorf("%w (available: %s)", err, presetNames(a.library))
				}
			}
			controller := recompute.New(a.logger, a.conf.Assumptions.ToAssumptions())
			model := tui.NewModel(store, controller, a.library,
				a.conf.Animation.ToPresenterOptions(), a.conf.Animation.FrameInterval)

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&presetName, "preset", "", "start from the named preset")
	return cmd
}

// presetNames lists the library for error messages.
func presetNames(lib *presets.Library) string {
	names := lib.Names()
	sort.Strings(names)
	return strings.Join(names, ", ")
}
