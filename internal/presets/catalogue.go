package presets

import (
	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/params"
)

// Built-in assumption profiles, one per business segment.
const (
	ProfileSolo      = "solo"
	ProfileTeam      = "team"
	ProfileBrokerage = "brokerage"
)

// BuiltinProfiles returns the assumptions each segment is priced and modeled
// with.
func BuiltinProfiles() map[string]calculator.Assumptions {
	solo := calculator.DefaultAssumptions()
	solo.RedeploymentFraction = 0.60
	solo.HoursPerUnit = 15
	solo.PlatformBaseMonthly = 800

	team := calculator.DefaultAssumptions()
	team.RedeploymentFraction = 0.65
	team.HoursPerUnit = 15
	team.PlatformBaseMonthly = 800
	team.PlatformPerParticipantMonthly = 200
	team.Synergy.Enabled = true

	brokerage := calculator.DefaultAssumptions()
	brokerage.PlatformBaseMonthly = 2000
	brokerage.PlatformPerParticipantMonthly = 150
	brokerage.Retention.Enabled = true

	return map[string]calculator.Assumptions{
		ProfileSolo:      solo,
		ProfileTeam:      team,
		ProfileBrokerage: brokerage,
	}
}

// Task hours in the catalogue are weekly totals for the whole business.
// Automation potentials are the per-activity rates of each segment.

var defaultCosts = params.Costs{
	AssistantHourlyRate: 27.5,
	AssistantSalary:     45000,
	BenefitsPercent:     25,
	ValuePerHour:        75,
}

// DefaultParams is the starting snapshot of a view before any preset is
// chosen: a single agent with the full eight-activity task breakdown.
func DefaultParams() params.Snapshot {
	return params.Snapshot{
		Business: params.Business{
			Participants:          1,
			DealsPerParticipant:   36,
			CommissionPerDeal:     8500,
			AvgTransactionValue:   425000,
			CommissionRatePercent: 2,
		},
		Tasks: []params.Task{
			{Name: "Lead Generation", HoursPerWeek: 12, AutomationPotential: 75},
			{Name: "Lead Follow-up", HoursPerWeek: 8, AutomationPotential: 85},
			{Name: "Client Communication", HoursPerWeek: 6, AutomationPotential: 60},
			{Name: "Document Preparation", HoursPerWeek: 4, AutomationPotential: 90},
			{Name: "Appointment Scheduling", HoursPerWeek: 3, AutomationPotential: 95},
			{Name: "Marketing Activities", HoursPerWeek: 8, AutomationPotential: 70},
			{Name: "Administrative Tasks", HoursPerWeek: 6, AutomationPotential: 80},
			{Name: "Contract Management", HoursPerWeek: 3, AutomationPotential: 70},
		},
		Costs: defaultCosts,
	}
}

func soloAgent() Preset {
	return Preset{
		Name:        "Solo Agent",
		Description: "Individual agent, about 2-3 closings a month",
		Profile:     ProfileSolo,
		Params: params.Snapshot{
			Business: params.Business{
				Participants:        1,
				DealsPerParticipant: 30,
				CommissionPerDeal:   9000,
			},
			Tasks: []params.Task{
				{Name: "Lead Generation", HoursPerWeek: 16, AutomationPotential: 75},
				{Name: "Administrative Tasks", HoursPerWeek: 9, AutomationPotential: 85},
				{Name: "Lead Follow-up", HoursPerWeek: 14, AutomationPotential: 70},
				{Name: "Marketing Activities", HoursPerWeek: 7, AutomationPotential: 80},
			},
			Costs: defaultCosts,
		},
	}
}

// team builds a team preset from per-agent weekly hours.
func team(name, description string, size, deals, commission, valuePerHour float64, coordination, admin, meetings, leadDistribution, reporting float64) Preset {
	costs := defaultCosts
	costs.ValuePerHour = valuePerHour
	return Preset{
		Name:        name,
		Description: description,
		Profile:     ProfileTeam,
		Params: params.Snapshot{
			Business: params.Business{
				Participants:        size,
				DealsPerParticipant: deals,
				CommissionPerDeal:   commission,
			},
			Tasks: []params.Task{
				{Name: "Team Coordination", HoursPerWeek: coordination * size, AutomationPotential: 70},
				{Name: "Administrative Tasks", HoursPerWeek: admin * size, AutomationPotential: 85},
				{Name: "Team Meetings", HoursPerWeek: meetings * size, AutomationPotential: 50},
				{Name: "Lead Distribution", HoursPerWeek: leadDistribution * size, AutomationPotential: 80},
				{Name: "Performance Reporting", HoursPerWeek: reporting * size, AutomationPotential: 75},
			},
			Costs: costs,
		},
	}
}

// brokerage builds a brokerage preset from office-wide weekly hours.
func brokerage(name, description string, agents, deals, ratePercent, transactionValue, valuePerHour float64, management, compliance, reporting, coordination, admin float64) Preset {
	costs := defaultCosts
	costs.ValuePerHour = valuePerHour
	return Preset{
		Name:        name,
		Description: description,
		Profile:     ProfileBrokerage,
		Params: params.Snapshot{
			Business: params.Business{
				Participants:          agents,
				DealsPerParticipant:   deals,
				AvgTransactionValue:   transactionValue,
				CommissionRatePercent: ratePercent,
			},
			Tasks: []params.Task{
				{Name: "Agent Management", HoursPerWeek: management, AutomationPotential: 75},
				{Name: "Compliance", HoursPerWeek: compliance, AutomationPotential: 85},
				{Name: "Reporting", HoursPerWeek: reporting, AutomationPotential: 90},
				{Name: "Transaction Coordination", HoursPerWeek: coordination, AutomationPotential: 70},
				{Name: "Administrative Tasks", HoursPerWeek: admin, AutomationPotential: 80},
			},
			Costs: costs,
		},
	}
}

// Builtin returns the built-in presets in display order.
func Builtin() []Preset {
	return []Preset{
		soloAgent(),
		team("Small Team", "Growing team, 3-8 agents", 5, 24, 8500, 75, 8, 6, 4, 5, 3),
		team("Mid-Size Team", "Established team, 8-15 agents", 12, 28, 9500, 85, 12, 8, 6, 8, 5),
		team("Large Team", "High-performing team, 15+ agents", 20, 32, 11000, 95, 15, 10, 8, 12, 7),
		brokerage("Growing Brokerage", "Emerging brokerage, 10-50 agents", 25, 22, 3.5, 425000, 125, 20, 15, 12, 18, 10),
		brokerage("Established Brokerage", "Professional brokerage, 50-200 agents", 85, 28, 3.2, 475000, 150, 35, 25, 20, 30, 15),
		brokerage("Enterprise Brokerage", "Large brokerage, 200+ agents", 300, 32, 2.8, 525000, 175, 50, 40, 30, 45, 20),
	}
}

// Default returns the library of built-in presets.
func Default() *Library {
	l, err := New(Builtin()...)
	if err != nil {
		panic("presets: invalid built-in catalogue: " + err.Error())
	}
	return l
}
