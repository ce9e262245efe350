// Package config defines conversion utilities for configuration objects.
package config

import (
	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/presenter"
	"github.com/iwvelando/roi-forecast/internal/presets"
	"github.com/iwvelando/roi-forecast/pkg/validation"
)

// ToAssumptions converts the assumptions section into calculator assumptions.
func (a AssumptionsConfig) ToAssumptions() calculator.Assumptions {
	return calculator.Assumptions{
		RedeploymentFraction:          a.RedeploymentFraction,
		HoursPerUnit:                  a.HoursPerUnit,
		PlatformBaseMonthly:           a.PlatformBaseMonthly,
		PlatformPerParticipantMonthly: a.PlatformPerParticipantMonthly,
		PerParticipantTasks:           a.PerParticipantTasks,
		Synergy: calculator.Synergy{
			Enabled:             a.Synergy.Enabled,
			BonusPerParticipant: a.Synergy.BonusPerParticipant,
			ParticipantCap:      a.Synergy.ParticipantCap,
		},
		Retention: calculator.Retention{
			Enabled:           a.Retention.Enabled,
			TurnoverReduction: a.Retention.TurnoverReduction,
			ReplacementCost:   a.Retention.ReplacementCost,
		},
	}
}

// ToPresenterOptions converts the animation section into presenter options.
func (a AnimationConfig) ToPresenterOptions() presenter.Options {
	opts := presenter.DefaultOptions()
	if a.Duration != 0 {
		opts.Duration = a.Duration
	}
	if a.Epsilon > 0 {
		opts.Epsilon = a.Epsilon
	}
	return opts
}

// PresetLibrary returns the built-in presets and profiles overlaid with the
// profiles and valid presets of the configuration. Presets with out-of-range
// values or an unknown profile are reported by ValidateConfiguration and
// skipped here.
func (c *Configuration) PresetLibrary() (*presets.Library, error) {
	lib := presets.Default()
	if len(c.Profiles) > 0 {
		profiles := make(map[string]calculator.Assumptions, len(c.Profiles))
		for name, a := range c.Profiles {
			profiles[normalizeProfile(name)] = a.ToAssumptions()
		}
		var err error
		if lib, err = lib.WithProfiles(profiles); err != nil {
			return nil, err
		}
	}

	var extra []presets.Preset
	for _, p := range c.Presets {
		if p.Params.Validate() != nil {
			continue
		}
		p.Profile = normalizeProfile(p.Profile)
		if p.Profile != "" && !lib.HasProfile(p.Profile) {
			continue
		}
		extra = append(extra, p)
	}
	return lib.WithOverrides(extra...)
}

func (a AssumptionsConfig) toValues() validation.AssumptionValues {
	return validation.AssumptionValues{
		RedeploymentFraction:          a.RedeploymentFraction,
		HoursPerUnit:                  a.HoursPerUnit,
		PlatformBaseMonthly:           a.PlatformBaseMonthly,
		PlatformPerParticipantMonthly: a.PlatformPerParticipantMonthly,
		SynergyEnabled:                a.Synergy.Enabled,
		SynergyBonus:                  a.Synergy.BonusPerParticipant,
		SynergyCap:                    a.Synergy.ParticipantCap,
		RetentionEnabled:              a.Retention.Enabled,
		TurnoverReduction:             a.Retention.TurnoverReduction,
		ReplacementCost:               a.Retention.ReplacementCost,
	}
}

func (c *Configuration) toValidator() validation.ConfigValidator {
	return validation.ConfigValidator{
		Assumptions: c.Assumptions.toValues(),
		Animation: validation.AnimationValues{
			Duration: c.Animation.Duration,
			Epsilon:  c.Animation.Epsilon,
		},
		Leads: validation.LeadValues{
			Sink:       c.Leads.Sink,
			Path:       c.Leads.Path,
			WebhookURL: c.Leads.WebhookURL,
		},
	}
}
