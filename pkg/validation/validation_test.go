package validation

import (
	"strings"
	"testing"

	"github.com/iwvelando/roi-forecast/pkg/constants"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{constants.OutputFormatPretty, false},
		{constants.OutputFormatCSV, false},
		{constants.OutputFormatJSON, false},
		{"", true},
		{"xml", true},
	}
	for _, tt := range tests {
		err := ValidateOutputFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateLeadSink(t *testing.T) {
	for _, sink := range []string{constants.LeadSinkLog, constants.LeadSinkSQLite, constants.LeadSinkWebhook} {
		if err := ValidateLeadSink(sink); err != nil {
			t.Errorf("ValidateLeadSink(%q) unexpected error: %v", sink, err)
		}
	}
	if err := ValidateLeadSink("kafka"); err == nil {
		t.Error("expected error for unsupported sink")
	}
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		warn bool
	}{
		{"fraction inside", ValidateFraction("f", 0.7), false},
		{"fraction above", ValidateFraction("f", 1.2), true},
		{"fraction below", ValidateFraction("f", -0.1), true},
		{"positive", ValidatePositive("p", 25), false},
		{"positive zero", ValidatePositive("p", 0), true},
		{"non-negative zero", ValidateNonNegative("n", 0), false},
		{"non-negative below", ValidateNonNegative("n", -5), true},
	}
	for _, tt := range tests {
		if (tt.got != "") != tt.warn {
			t.Errorf("%s: warning %q, expected warning %v", tt.name, tt.got, tt.warn)
		}
	}
}

func validConfig() ConfigValidator {
	return ConfigValidator{
		Assumptions: AssumptionValues{
			RedeploymentFraction: 0.7,
			HoursPerUnit:         25,
			PlatformBaseMonthly:  1000,
		},
		Animation: AnimationValues{Duration: constants.DefaultAnimationDuration, Epsilon: constants.CurrencyTolerance},
		Leads:     LeadValues{Sink: constants.LeadSinkLog},
	}
}

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ConfigValidator)
		expect string
	}{
		{"valid", func(*ConfigValidator) {}, ""},
		{"redeployment above one", func(c *ConfigValidator) { c.Assumptions.RedeploymentFraction = 1.5 }, "redeploymentFraction"},
		{"zero hours per unit", func(c *ConfigValidator) { c.Assumptions.HoursPerUnit = 0 }, "hoursPerUnit"},
		{"zero platform cost", func(c *ConfigValidator) { c.Assumptions.PlatformBaseMonthly = 0 }, "not applicable"},
		{"synergy cap", func(c *ConfigValidator) {
			c.Assumptions.SynergyEnabled = true
			c.Assumptions.SynergyBonus = 0.02
		}, "participantCap"},
		{"retention reduction", func(c *ConfigValidator) {
			c.Assumptions.RetentionEnabled = true
			c.Assumptions.TurnoverReduction = 2
		}, "turnoverReduction"},
		{"negative duration", func(c *ConfigValidator) { c.Animation.Duration = -1 }, "without animating"},
		{"unknown sink", func(c *ConfigValidator) { c.Leads.Sink = "kafka" }, "logged only"},
		{"sqlite without path", func(c *ConfigValidator) { c.Leads.Sink = constants.LeadSinkSQLite }, "leads.path"},
		{"webhook without url", func(c *ConfigValidator) { c.Leads.Sink = constants.LeadSinkWebhook }, "leads.webhookURL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := validConfig()
			tt.modify(&cv)
			warnings := cv.ValidateAll()
			if tt.expect == "" {
				if len(warnings) != 0 {
					t.Fatalf("expected no warnings, got %v", warnings)
				}
				return
			}
			joined := strings.Join(warnings, "\n")
			if !strings.Contains(joined, tt.expect) {
				t.Fatalf("expected a warning containing %q, got %v", tt.expect, warnings)
			}
		})
	}
}

func TestValidateAssumptionsPrefixesSection(t *testing.T) {
	warnings := ValidateAssumptions("profiles.team", AssumptionValues{RedeploymentFraction: 0.65, HoursPerUnit: 0, PlatformBaseMonthly: 800})
	if len(warnings) != 1 || !strings.HasPrefix(warnings[0], "profiles.team.hoursPerUnit") {
		t.Fatalf("expected one profiles.team.hoursPerUnit warning, got %v", warnings)
	}
	if got := ValidateAssumptions("profiles.team", AssumptionValues{RedeploymentFraction: 0.65, HoursPerUnit: 15, PlatformBaseMonthly: 800}); len(got) != 0 {
		t.Errorf("expected no warnings, got %v", got)
	}
}
