// Package constants provides shared constants for the roi-forecast application.
package constants

import "time"

// Time conversion constants. Every weekly figure is annualized through
// WeeksPerMonth and MonthsPerYear; no other weeks-per-year value is used.
const (
	// WeeksPerMonth is the average number of weeks in a month
	WeeksPerMonth = 4.33

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Calculator defaults, overridable per deployment through the configuration.
const (
	// DefaultRedeploymentFraction is the share of freed time assumed to go to
	// revenue-generating work
	DefaultRedeploymentFraction = 0.70

	// DefaultHoursPerUnit is the assumed effort behind one unit of output (a deal)
	DefaultHoursPerUnit = 25.0

	// DefaultPlatformBaseMonthly is the flat monthly platform fee
	DefaultPlatformBaseMonthly = 1000.0

	// DefaultSynergyBonus is the per-participant capacity bonus for teams
	DefaultSynergyBonus = 0.02

	// DefaultSynergyCap is the participant count beyond which the bonus stops growing
	DefaultSynergyCap = 20

	// DefaultTurnoverReduction is the share of departures avoided per participant
	DefaultTurnoverReduction = 0.15

	// DefaultReplacementCost is the cost of replacing one departed participant
	DefaultReplacementCost = 25000.0
)

// Presentation constants
const (
	// DefaultAnimationDuration is how long a transition between results lasts
	DefaultAnimationDuration = time.Second

	// DefaultFrameInterval is the tick interval of the terminal view (~60 fps)
	DefaultFrameInterval = 16 * time.Millisecond

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// NotApplicable is displayed in place of figures that have no meaningful value
	NotApplicable = "N/A"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultReadHeaderTimeout bounds how long a client may take to send headers
	DefaultReadHeaderTimeout = 5 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of the API server
	DefaultShutdownTimeout = 10 * time.Second
)

// Lead sink constants
const (
	// LeadSinkLog writes leads to the application log
	LeadSinkLog = "log"

	// LeadSinkSQLite stores leads in a SQLite database
	LeadSinkSQLite = "sqlite"

	// LeadSinkWebhook forwards leads to an HTTP endpoint
	LeadSinkWebhook = "webhook"
)
