package params

import (
	"github.com/iwvelando/roi-forecast/pkg/mathutil"
)

// Field paths of the business and cost fields.
const (
	FieldParticipants        = "business.participants"
	FieldDealsPerParticipant = "business.dealsPerParticipant"
	FieldCommissionPerDeal   = "business.commissionPerDeal"
	FieldAvgTransactionValue = "business.avgTransactionValue"
	FieldCommissionRate      = "business.commissionRatePercent"
	FieldAssistantHourlyRate = "costs.assistantHourlyRate"
	FieldAssistantSalary     = "costs.assistantSalary"
	FieldBenefitsPercent     = "costs.benefitsPercent"
	FieldValuePerHour        = "costs.valuePerHour"
	taskPrefix               = "tasks"
	fieldHoursPerWeek        = "hoursPerWeek"
	fieldAutomationPotential = "automationPotential"
)

// Field is the static descriptor of one editable input.
type Field struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// Constrain clamps value to [Min, Max] and snaps it to Step.
func (f Field) Constrain(value float64) float64 {
	v := mathutil.Clamp(value, f.Min, f.Max)
	v = mathutil.SnapToStep(v, f.Min, f.Step)
	return mathutil.Clamp(v, f.Min, f.Max)
}

var fields = []Field{
	{ID: FieldParticipants, Label: "Participants", Min: 1, Max: 500, Step: 1},
	{ID: FieldDealsPerParticipant, Label: "Deals per participant (annual)", Min: 0, Max: 120, Step: 1},
	{ID: FieldCommissionPerDeal, Label: "Commission per deal", Min: 0, Max: 50000, Step: 100},
	{ID: FieldAvgTransactionValue, Label: "Average transaction value", Min: 0, Max: 2000000, Step: 5000},
	{ID: FieldCommissionRate, Label: "Commission rate %", Min: 0, Max: 10, Step: 0.1},
	{ID: FieldAssistantHourlyRate, Label: "Assistant hourly rate", Min: 0, Max: 150, Step: 0.5},
	{ID: FieldAssistantSalary, Label: "Assistant annual salary", Min: 0, Max: 200000, Step: 500},
	{ID: FieldBenefitsPercent, Label: "Benefits % of salary", Min: 0, Max: 100, Step: 1},
	{ID: FieldValuePerHour, Label: "Value of your time per hour", Min: 0, Max: 500, Step: 5},
}

var (
	taskHoursField      = Field{Label: "Hours per week", Min: 0, Max: 500, Step: 0.5}
	taskAutomationField = Field{Label: "Automation potential %", Min: 0, Max: 100, Step: 1}
)

// Fields returns the descriptors of the business and cost fields followed by
// the shared task field descriptors (IDs "tasks.N.hoursPerWeek" and
// "tasks.N.automationPotential").
func Fields() []Field {
	out := make([]Field, 0, len(fields)+2)
	out = append(out, fields...)
	hours := taskHoursField
	hours.ID = taskPrefix + ".N." + fieldHoursPerWeek
	automation := taskAutomationField
	automation.ID = taskPrefix + ".N." + fieldAutomationPotential
	return append(out, hours, automation)
}

func mustField(id string) Field {
	for _, f := range fields {
		if f.ID == id {
			return f
		}
	}
	panic("params: no descriptor for " + id)
}
