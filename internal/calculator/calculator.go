// Package calculator derives time savings, cost savings, revenue impact, ROI
// and payback figures from a parameter snapshot. Compute is a pure function:
// identical inputs always yield bit-identical results.
package calculator

import (
	"math"

	"github.com/iwvelando/roi-forecast/internal/params"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/mathutil"
)

// Synergy scales additional-deal capacity with team size: each participant
// adds BonusPerParticipant, up to ParticipantCap participants.
type Synergy struct {
	Enabled             bool    `json:"enabled" yaml:"enabled"`
	BonusPerParticipant float64 `json:"bonusPerParticipant" yaml:"bonusPerParticipant"`
	ParticipantCap      float64 `json:"participantCap" yaml:"participantCap"`
}

// Retention models reduced turnover as avoided replacement cost.
type Retention struct {
	Enabled           bool    `json:"enabled" yaml:"enabled"`
	TurnoverReduction float64 `json:"turnoverReduction" yaml:"turnoverReduction"` // share of participants no longer departing per year
	ReplacementCost   float64 `json:"replacementCost" yaml:"replacementCost"`     // per departure
}

// Assumptions are the deployment-specific constants of the formula pipeline.
type Assumptions struct {
	RedeploymentFraction          float64 `json:"redeploymentFraction" yaml:"redeploymentFraction"`
	HoursPerUnit                  float64 `json:"hoursPerUnit" yaml:"hoursPerUnit"`
	PlatformBaseMonthly           float64 `json:"platformBaseMonthly" yaml:"platformBaseMonthly"`
	PlatformPerParticipantMonthly float64 `json:"platformPerParticipantMonthly" yaml:"platformPerParticipantMonthly"`
	// PerParticipantTasks multiplies the task breakdown by the participant
	// count (team deployments enter hours per agent).
	PerParticipantTasks bool      `json:"perParticipantTasks" yaml:"perParticipantTasks"`
	Synergy             Synergy   `json:"synergy" yaml:"synergy"`
	Retention           Retention `json:"retention" yaml:"retention"`
}

// DefaultAssumptions returns the single-user defaults: 70% redeployment,
// 25 hours per deal and a flat $1,000/month platform fee.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RedeploymentFraction: constants.DefaultRedeploymentFraction,
		HoursPerUnit:         constants.DefaultHoursPerUnit,
		PlatformBaseMonthly:  constants.DefaultPlatformBaseMonthly,
		Synergy: Synergy{
			BonusPerParticipant: constants.DefaultSynergyBonus,
			ParticipantCap:      constants.DefaultSynergyCap,
		},
		Retention: Retention{
			TurnoverReduction: constants.DefaultTurnoverReduction,
			ReplacementCost:   constants.DefaultReplacementCost,
		},
	}
}

// Figure is a derived value that may be undefined for degenerate inputs.
type Figure struct {
	Value      float64 `json:"value"`
	Applicable bool    `json:"applicable"`
}

// Known wraps a defined value.
func Known(v float64) Figure { return Figure{Value: v, Applicable: true} }

// NotApplicable is the sentinel for figures without a meaningful value.
var NotApplicable = Figure{}

// TaskSaving is the weekly time one task gives back.
type TaskSaving struct {
	Name        string  `json:"name"`
	WeeklyHours float64 `json:"weeklyHours"`
}

// Result is the full set of derived metrics for one snapshot. Values are
// annual unless the name says otherwise and are never rounded here.
type Result struct {
	WeeklyHours             float64      `json:"weeklyHours"`
	MonthlyHours            float64      `json:"monthlyHours"`
	AnnualHours             float64      `json:"annualHours"`
	TimeValue               float64      `json:"timeValue"`
	LaborEquivalent         float64      `json:"laborEquivalent"`
	SalaryEquivalent        float64      `json:"salaryEquivalent"`
	AdditionalCapacityHours float64      `json:"additionalCapacityHours"` // weekly
	SynergyMultiplier       float64      `json:"synergyMultiplier"`
	AdditionalUnits         float64      `json:"additionalUnits"`
	AdditionalRevenue       float64      `json:"additionalRevenue"`
	RetentionValue          float64      `json:"retentionValue"`
	AnnualCost              float64      `json:"annualCost"`
	TotalBenefit            float64      `json:"totalBenefit"`
	AutomationAdvantage     float64      `json:"automationAdvantage"`
	CapacityGainPercent     Figure       `json:"capacityGainPercent"`
	ROIPercent              Figure       `json:"roiPercent"`
	PaybackMonths           Figure       `json:"paybackMonths"`
	TaskSavings             []TaskSaving `json:"taskSavings"`
}

// Compute runs the formula pipeline. p is assumed to be pre-validated; the
// snapshot is read only.
func Compute(p params.Snapshot, a Assumptions) Result {
	var r Result
	participants := p.Business.Participants

	// Time saved.
	r.TaskSavings = make([]TaskSaving, 0, len(p.Tasks))
	var weekly float64
	for _, task := range p.Tasks {
		saved := TaskHoursSaved(task)
		r.TaskSavings = append(r.TaskSavings, TaskSaving{Name: task.Name, WeeklyHours: saved})
		weekly += saved
	}
	if a.PerParticipantTasks {
		weekly *= participants
	}
	r.WeeklyHours = weekly
	r.MonthlyHours = WeeklyToMonthly(weekly)
	r.AnnualHours = MonthlyToAnnual(r.MonthlyHours)

	// Money.
	r.TimeValue = r.AnnualHours * p.Costs.ValuePerHour
	r.LaborEquivalent = r.AnnualHours * p.Costs.AssistantHourlyRate
	r.SalaryEquivalent = SalaryEquivalent(p.Costs.AssistantSalary, p.Costs.BenefitsPercent)

	// Capacity redeployed into revenue work.
	r.AdditionalCapacityHours = weekly * a.RedeploymentFraction
	r.SynergyMultiplier = SynergyMultiplier(a.Synergy, participants)
	if a.HoursPerUnit > 0 {
		annualCapacity := MonthlyToAnnual(WeeklyToMonthly(r.AdditionalCapacityHours))
		r.AdditionalUnits = annualCapacity / a.HoursPerUnit * r.SynergyMultiplier
	}
	r.AdditionalRevenue = r.AdditionalUnits * p.ValuePerUnit()
	if a.Retention.Enabled {
		r.RetentionValue = participants * a.Retention.TurnoverReduction * a.Retention.ReplacementCost
	}

	baseline := participants * p.Business.DealsPerParticipant
	if baseline > 0 {
		r.CapacityGainPercent = Known(mathutil.CalculatePercentage(r.AdditionalUnits, baseline))
	}

	// Cost and return.
	r.AnnualCost = AnnualCost(a, participants)
	r.TotalBenefit = r.TimeValue + r.AdditionalRevenue + r.RetentionValue
	r.AutomationAdvantage = r.LaborEquivalent - r.AnnualCost
	r.ROIPercent = ROIPercent(r.TotalBenefit, r.AnnualCost)
	r.PaybackMonths = PaybackMonths(r.TotalBenefit, r.AnnualCost)
	return r
}

// TaskHoursSaved is the weekly time automation takes off one task.
func TaskHoursSaved(t params.Task) float64 {
	return mathutil.ApplyPercentage(t.HoursPerWeek, t.AutomationPotential)
}

// WeeklyToMonthly converts a weekly figure using the average weeks per month.
func WeeklyToMonthly(weekly float64) float64 {
	return weekly * constants.WeeksPerMonth
}

// MonthlyToAnnual converts a monthly figure to a yearly one.
func MonthlyToAnnual(monthly float64) float64 {
	return monthly * constants.MonthsPerYear
}

// SalaryEquivalent is the annual cost of a full-time hire regardless of hours.
func SalaryEquivalent(salary, benefitsPercent float64) float64 {
	return salary * (1 + benefitsPercent/constants.PercentageMultiplier)
}

// SynergyMultiplier returns the capacity multiplier for a team of the given
// size; 1 when synergy is disabled.
func SynergyMultiplier(s Synergy, participants float64) float64 {
	if !s.Enabled {
		return 1
	}
	return 1 + math.Min(participants, s.ParticipantCap)*s.BonusPerParticipant
}

// AnnualCost is the yearly platform cost: a flat fee plus a per-participant
// fee. It never depends on the savings.
func AnnualCost(a Assumptions, participants float64) float64 {
	monthly := a.PlatformBaseMonthly + a.PlatformPerParticipantMonthly*participants
	return MonthlyToAnnual(monthly)
}

// ROIPercent is the net return over cost in percent, not applicable when the
// cost is not positive.
func ROIPercent(benefit, cost float64) Figure {
	if cost <= 0 {
		return NotApplicable
	}
	ratio, ok := mathutil.SafeDiv(benefit-cost, cost)
	if !ok {
		return NotApplicable
	}
	return Known(ratio * constants.PercentageMultiplier)
}

// PaybackMonths is the number of months of benefit needed to cover one year
// of cost, not applicable when there is no positive benefit or the cost is
// negative.
func PaybackMonths(benefit, cost float64) Figure {
	if cost < 0 || benefit <= 0 {
		return NotApplicable
	}
	months, ok := mathutil.SafeDiv(cost, benefit/constants.MonthsPerYear)
	if !ok || months < 0 {
		return NotApplicable
	}
	return Known(months)
}
