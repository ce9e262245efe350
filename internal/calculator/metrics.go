package calculator

// Metric identifies one numeric field of a Result for presentation.
type Metric int

// Metrics in display order.
const (
	MetricWeeklyHours Metric = iota
	MetricMonthlyHours
	MetricAnnualHours
	MetricTimeValue
	MetricLaborEquivalent
	MetricSalaryEquivalent
	MetricAdditionalCapacityHours
	MetricAdditionalUnits
	MetricAdditionalRevenue
	MetricRetentionValue
	MetricAnnualCost
	MetricTotalBenefit
	MetricAutomationAdvantage
	MetricCapacityGainPercent
	MetricROIPercent
	MetricPaybackMonths

	// MetricCount is the number of metrics.
	MetricCount int = iota
)

// Kind selects how a metric is formatted.
type Kind int

// Metric kinds.
const (
	KindHours Kind = iota
	KindCurrency
	KindCount
	KindPercent
	KindMonths
)

// Descriptor names and classifies a metric.
type Descriptor struct {
	Metric Metric
	Key    string
	Label  string
	Kind   Kind
}

var descriptors = [MetricCount]Descriptor{
	{MetricWeeklyHours, "weeklyHours", "Weekly time saved", KindHours},
	{MetricMonthlyHours, "monthlyHours", "Monthly time saved", KindHours},
	{MetricAnnualHours, "annualHours", "Annual time saved", KindHours},
	{MetricTimeValue, "timeValue", "Value of time saved", KindCurrency},
	{MetricLaborEquivalent, "laborEquivalent", "Hourly assistant equivalent", KindCurrency},
	{MetricSalaryEquivalent, "salaryEquivalent", "Full-time hire equivalent", KindCurrency},
	{MetricAdditionalCapacityHours, "additionalCapacityHours", "Weekly hours redeployed", KindHours},
	{MetricAdditionalUnits, "additionalUnits", "Additional deals per year", KindCount},
	{MetricAdditionalRevenue, "additionalRevenue", "Additional revenue", KindCurrency},
	{MetricRetentionValue, "retentionValue", "Retention value", KindCurrency},
	{MetricAnnualCost, "annualCost", "Annual platform cost", KindCurrency},
	{MetricTotalBenefit, "totalBenefit", "Total annual value", KindCurrency},
	{MetricAutomationAdvantage, "automationAdvantage", "Savings vs hourly assistant", KindCurrency},
	{MetricCapacityGainPercent, "capacityGainPercent", "Capacity gain", KindPercent},
	{MetricROIPercent, "roiPercent", "ROI", KindPercent},
	{MetricPaybackMonths, "paybackMonths", "Payback period", KindMonths},
}

// Metrics returns every metric descriptor in display order.
func Metrics() []Descriptor {
	out := make([]Descriptor, MetricCount)
	copy(out, descriptors[:])
	return out
}

// Describe returns the descriptor of m.
func (m Metric) Describe() Descriptor {
	return descriptors[m]
}

func (m Metric) String() string {
	if m < 0 || int(m) >= MetricCount {
		return "unknown"
	}
	return descriptors[m].Key
}

// Figure returns the value of metric m. Plain numeric fields are always
// applicable.
func (r Result) Figure(m Metric) Figure {
	switch m {
	case MetricWeeklyHours:
		return Known(r.WeeklyHours)
	case MetricMonthlyHours:
		return Known(r.MonthlyHours)
	case MetricAnnualHours:
		return Known(r.AnnualHours)
	case MetricTimeValue:
		return Known(r.TimeValue)
	case MetricLaborEquivalent:
		return Known(r.LaborEquivalent)
	case MetricSalaryEquivalent:
		return Known(r.SalaryEquivalent)
	case MetricAdditionalCapacityHours:
		return Known(r.AdditionalCapacityHours)
	case MetricAdditionalUnits:
		return Known(r.AdditionalUnits)
	case MetricAdditionalRevenue:
		return Known(r.AdditionalRevenue)
	case MetricRetentionValue:
		return Known(r.RetentionValue)
	case MetricAnnualCost:
		return Known(r.AnnualCost)
	case MetricTotalBenefit:
		return Known(r.TotalBenefit)
	case MetricAutomationAdvantage:
		return Known(r.AutomationAdvantage)
	case MetricCapacityGainPercent:
		return r.CapacityGainPercent
	case MetricROIPercent:
		return r.ROIPercent
	case MetricPaybackMonths:
		return r.PaybackMonths
	}
	return NotApplicable
}

// Equal reports whether two results are identical, task breakdown included.
func (r Result) Equal(other Result) bool {
	for _, d := range descriptors {
		if r.Figure(d.Metric) != other.Figure(d.Metric) {
			return false
		}
	}
	if r.SynergyMultiplier != other.SynergyMultiplier || len(r.TaskSavings) != len(other.TaskSavings) {
		return false
	}
	for i := range r.TaskSavings {
		if r.TaskSavings[i] != other.TaskSavings[i] {
			return false
		}
	}
	return true
}
