// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"time"

	"github.com/iwvelando/roi-forecast/pkg/constants"
)

// ValidateFraction warns when a share lies outside [0, 1].
func ValidateFraction(name string, value float64) string {
	if value < 0 || value > 1 {
		return fmt.Sprintf("%s should be between 0 and 1, got %v", name, value)
	}
	return ""
}

// ValidatePositive warns when a value that divides or scales must be positive.
func ValidatePositive(name string, value float64) string {
	if value <= 0 {
		return fmt.Sprintf("%s should be positive, got %v", name, value)
	}
	return ""
}

// ValidateNonNegative warns when a cost or count is negative.
func ValidateNonNegative(name string, value float64) string {
	if value < 0 {
		return fmt.Sprintf("%s should not be negative, got %v", name, value)
	}
	return ""
}

// ConfigValidator checks deployment settings that are legal but suspicious.
type ConfigValidator struct {
	Assumptions AssumptionValues
	Animation   AnimationValues
	Leads       LeadValues
}

// AssumptionValues mirrors the calculator assumptions section.
type AssumptionValues struct {
	RedeploymentFraction          float64
	HoursPerUnit                  float64
	PlatformBaseMonthly           float64
	PlatformPerParticipantMonthly float64
	SynergyEnabled                bool
	SynergyBonus                  float64
	SynergyCap                    float64
	RetentionEnabled              bool
	TurnoverReduction             float64
	ReplacementCost               float64
}

// AnimationValues mirrors the animation section.
type AnimationValues struct {
	Duration time.Duration
	Epsilon  float64
}

// LeadValues mirrors the lead sink section.
type LeadValues struct {
	Sink       string
	Path       string
	WebhookURL string
}

// ValidateAssumptions returns warnings for one set of calculator assumptions.
// section prefixes every key, e.g. "assumptions" or "profiles.team".
func ValidateAssumptions(section string, a AssumptionValues) []string {
	var warnings []string
	add := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}
	key := func(name string) string { return section + "." + name }

	add(ValidateFraction(key("redeploymentFraction"), a.RedeploymentFraction))
	if a.HoursPerUnit <= 0 {
		add(key("hoursPerUnit") + " is not positive - additional revenue will always be zero")
	}
	add(ValidateNonNegative(key("platformBaseMonthly"), a.PlatformBaseMonthly))
	add(ValidateNonNegative(key("platformPerParticipantMonthly"), a.PlatformPerParticipantMonthly))
	if a.PlatformBaseMonthly == 0 && a.PlatformPerParticipantMonthly == 0 {
		add(section + " platform cost is zero - ROI will be reported as not applicable")
	}
	if a.SynergyEnabled {
		add(ValidateNonNegative(key("synergy.bonusPerParticipant"), a.SynergyBonus))
		add(ValidatePositive(key("synergy.participantCap"), a.SynergyCap))
	}
	if a.RetentionEnabled {
		add(ValidateFraction(key("retention.turnoverReduction"), a.TurnoverReduction))
		add(ValidateNonNegative(key("retention.replacementCost"), a.ReplacementCost))
	}
	return warnings
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string
	add := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	warnings = append(warnings, ValidateAssumptions("assumptions", cv.Assumptions)...)

	if cv.Animation.Duration < 0 {
		add("animation.duration is negative - values will jump without animating")
	}
	add(ValidateNonNegative("animation.epsilon", cv.Animation.Epsilon))

	if err := ValidateLeadSink(cv.Leads.Sink); err != nil {
		add(err.Error() + " - leads will be logged only")
	}
	switch cv.Leads.Sink {
	case constants.LeadSinkSQLite:
		if cv.Leads.Path == "" {
			add("leads.path is empty for the sqlite sink")
		}
	case constants.LeadSinkWebhook:
		if cv.Leads.WebhookURL == "" {
			add("leads.webhookURL is empty for the webhook sink")
		}
	}

	return warnings
}
