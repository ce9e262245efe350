package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/roi-forecast/internal/config"
	"github.com/iwvelando/roi-forecast/pkg/output"
	"github.com/iwvelando/roi-forecast/pkg/testutil"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseSetFlags(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []fieldEdit
		wantErr bool
	}{
		{name: "empty", in: nil, want: []fieldEdit{}},
		{name: "ordered pairs", in: []string{"costs.valuePerHour=90", " tasks.0.hoursPerWeek = 12.5"},
			want: []fieldEdit{{"costs.valuePerHour", 90}, {"tasks.0.hoursPerWeek", 12.5}}},
		{name: "missing equals", in: []string{"costs.valuePerHour"}, wantErr: true},
		{name: "missing path", in: []string{"=3"}, wantErr: true},
		{name: "non numeric", in: []string{"costs.valuePerHour=lots"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSetFlags(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSetFlags() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d edits, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("edit %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", cfg: config.LoggingConfig{}},
		{name: "console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", cfg: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "invalid level", cfg: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "invalid format", cfg: config.LoggingConfig{Format: "xml"}, wantErr: true},
		{name: "file output", cfg: config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "roi.log")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.cfg, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			_ = logger.Sync()
		})
	}
}

func TestCalcJSONOutput(t *testing.T) {
	out, err := runCLI(t, "calc", "--preset", "Solo Agent", "--set", "costs.valuePerHour=100", "--output-format", "json")
	if err != nil {
		t.Fatalf("calc failed: %v\n%s", err, out)
	}
	var report output.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("failed to decode report: %v\n%s", err, out)
	}
	if report.Title != "custom" {
		t.Errorf("expected edited preset to be titled custom, got %q", report.Title)
	}
	if row := testutil.FindRow(report.Rows, "roiPercent"); row == nil || !row.Applicable {
		t.Errorf("expected an applicable ROI row, got %+v", row)
	}
}

func TestCalcUsesSegmentAssumptions(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCost float64
	}{
		{"team preset", []string{"--preset", "Large Team"}, (800 + 200*20) * 12},
		{"brokerage preset", []string{"--preset", "Enterprise Brokerage"}, (2000 + 150*300) * 12},
		{"profile without preset", []string{"--profile", "brokerage"}, (2000 + 150) * 12},
		{"base assumptions", nil, 1000 * 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"calc", "--output-format", "json"}, tt.args...)
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("calc failed: %v\n%s", err, out)
			}
			var report output.Report
			if err := json.Unmarshal([]byte(out), &report); err != nil {
				t.Fatalf("failed to decode report: %v\n%s", err, out)
			}
			row := testutil.FindRow(report.Rows, "annualCost")
			if row == nil || !testutil.AlmostEqual(row.Value, tt.wantCost) {
				t.Errorf("expected annual cost %v, got %+v", tt.wantCost, row)
			}
		})
	}
}

func TestCalcParamsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	contents := []byte(`business:
  participants: 1
tasks:
  - name: Lead Generation
    hoursPerWeek: 10
    automationPotential: 80
costs:
  valuePerHour: 75
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write params: %v", err)
	}

	out, err := runCLI(t, "calc", "--params", path, "--output-format", "csv")
	if err != nil {
		t.Fatalf("calc failed: %v\n%s", err, out)
	}
	for _, want := range []string{"weeklyHours", "8.0 hrs", "$31,176"} {
		if !strings.Contains(out, want) {
			t.Errorf("csv output missing %q:\n%s", want, out)
		}
	}
}

func TestCalcErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown preset", []string{"calc", "--preset", "Nope"}, "available:"},
		{"bad output format", []string{"calc", "--output-format", "xml"}, "expected output format"},
		{"unknown field", []string{"calc", "--set", "business.revenue=3"}, "unknown field"},
		{"unknown profile", []string{"calc", "--profile", "franchise"}, "unknown profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error, output:\n%s", out)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("expected error containing %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "presets"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected explicitly named missing config to fail")
	}
}

func TestPresetsAndFieldsCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("output:\n  format: pretty\nlogging:\n  level: error\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	run := func(args ...string) string {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
		return out.String()
	}

	presetsOut := run("presets")
	for _, want := range []string{"Solo Agent", "Small Team", "Enterprise Brokerage"} {
		if !strings.Contains(presetsOut, want) {
			t.Errorf("presets output missing %q:\n%s", want, presetsOut)
		}
	}

	fieldsOut := run("fields", "--preset", "Solo Agent")
	for _, want := range []string{"business.participants", "tasks.0.hoursPerWeek", "costs.valuePerHour"} {
		if !strings.Contains(fieldsOut, want) {
			t.Errorf("fields output missing %q:\n%s", want, fieldsOut)
		}
	}
}
