// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iwvelando/roi-forecast/internal/presets"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/validation"
)

// Configuration holds all configuration for roi-forecast.
type Configuration struct {
	Logging     LoggingConfig                `yaml:"logging,omitempty"`
	Output      OutputConfig                 `yaml:"output,omitempty"`
	Assumptions AssumptionsConfig            `yaml:"assumptions,omitempty"`
	Animation   AnimationConfig              `yaml:"animation,omitempty"`
	Profiles    map[string]AssumptionsConfig `yaml:"profiles,omitempty"`
	Presets     []presets.Preset             `yaml:"presets,omitempty"`
	Leads       LeadsConfig                  `yaml:"leads,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// AssumptionsConfig holds the deployment constants of the calculator. The
// top-level section applies to parameters not taken from a profiled preset;
// entries under profiles replace or add named segment profiles and are used
// as written, without defaults.
type AssumptionsConfig struct {
	RedeploymentFraction          float64         `yaml:"redeploymentFraction"`
	HoursPerUnit                  float64         `yaml:"hoursPerUnit"`
	PlatformBaseMonthly           float64         `yaml:"platformBaseMonthly"`
	PlatformPerParticipantMonthly float64         `yaml:"platformPerParticipantMonthly"`
	PerParticipantTasks           bool            `yaml:"perParticipantTasks"`
	Synergy                       SynergyConfig   `yaml:"synergy"`
	Retention                     RetentionConfig `yaml:"retention"`
}

// SynergyConfig enables the team synergy multiplier.
type SynergyConfig struct {
	Enabled             bool    `yaml:"enabled"`
	BonusPerParticipant float64 `yaml:"bonusPerParticipant"`
	ParticipantCap      float64 `yaml:"participantCap"`
}

// RetentionConfig enables the retention value term.
type RetentionConfig struct {
	Enabled           bool    `yaml:"enabled"`
	TurnoverReduction float64 `yaml:"turnoverReduction"`
	ReplacementCost   float64 `yaml:"replacementCost"`
}

// AnimationConfig tunes the animated presentation.
type AnimationConfig struct {
	Duration      time.Duration `yaml:"duration"`
	Epsilon       float64       `yaml:"epsilon"`
	FrameInterval time.Duration `yaml:"frameInterval"`
}

// LeadsConfig selects where lead-capture payloads are forwarded.
type LeadsConfig struct {
	Sink       string        `yaml:"sink"` // log, sqlite, webhook
	Path       string        `yaml:"path"`
	WebhookURL string        `yaml:"webhookURL"`
	Timeout    time.Duration `yaml:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("assumptions.redeploymentFraction", constants.DefaultRedeploymentFraction)
	v.SetDefault("assumptions.hoursPerUnit", constants.DefaultHoursPerUnit)
	v.SetDefault("assumptions.platformBaseMonthly", constants.DefaultPlatformBaseMonthly)
	v.SetDefault("assumptions.platformPerParticipantMonthly", 0.0)
	v.SetDefault("assumptions.perParticipantTasks", false)
	v.SetDefault("assumptions.synergy.enabled", false)
	v.SetDefault("assumptions.synergy.bonusPerParticipant", constants.DefaultSynergyBonus)
	v.SetDefault("assumptions.synergy.participantCap", float64(constants.DefaultSynergyCap))
	v.SetDefault("assumptions.retention.enabled", false)
	v.SetDefault("assumptions.retention.turnoverReduction", constants.DefaultTurnoverReduction)
	v.SetDefault("assumptions.retention.replacementCost", constants.DefaultReplacementCost)
	v.SetDefault("animation.duration", constants.DefaultAnimationDuration)
	v.SetDefault("animation.epsilon", constants.CurrencyTolerance)
	v.SetDefault("animation.frameInterval", constants.DefaultFrameInterval)
	v.SetDefault("leads.sink", constants.LeadSinkLog)
	v.SetDefault("leads.timeout", 10*time.Second)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ROI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration used when no file is given.
func Default() (*Configuration, error) {
	return decode(newViper())
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Unset keys take their defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return Default()
	}

	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := c.toValidator()
	warnings := validator.ValidateAll()

	for _, name := range c.profileNames() {
		warnings = append(warnings, validation.ValidateAssumptions("profiles."+name, c.Profiles[name].toValues())...)
	}

	known := presets.BuiltinProfiles()
	for _, p := range c.Presets {
		if err := p.Params.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("preset '%s' has out-of-range values and will be skipped: %v", p.Name, err))
			continue
		}
		profile := normalizeProfile(p.Profile)
		if _, builtin := known[profile]; profile != "" && !builtin {
			if _, ok := c.Profiles[profile]; !ok {
				warnings = append(warnings, fmt.Sprintf("preset '%s' refers to unknown profile '%s' and will be skipped", p.Name, p.Profile))
			}
		}
	}
	return warnings
}

func (c *Configuration) profileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalizeProfile matches viper's lower-cased map keys.
func normalizeProfile(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
