// Package params defines the parameter snapshot that drives the ROI
// calculator, the static descriptors of every editable field and the store
// that holds the current snapshot for one view.
package params

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/roi-forecast/pkg/mathutil"
)

var (
	// ErrUnknownField is returned for a field path that no descriptor matches.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidValue is returned for NaN or infinite field values.
	ErrInvalidValue = errors.New("invalid value")
)

// Task is one line of the weekly task breakdown.
type Task struct {
	Name                string  `json:"name" yaml:"name"`
	HoursPerWeek        float64 `json:"hoursPerWeek" yaml:"hoursPerWeek"`
	AutomationPotential float64 `json:"automationPotential" yaml:"automationPotential"` // whole percent
}

// Business holds the volume and value metrics of the business being modeled.
type Business struct {
	Participants          float64 `json:"participants" yaml:"participants"`
	DealsPerParticipant   float64 `json:"dealsPerParticipant" yaml:"dealsPerParticipant"` // per year
	CommissionPerDeal     float64 `json:"commissionPerDeal" yaml:"commissionPerDeal"`
	AvgTransactionValue   float64 `json:"avgTransactionValue" yaml:"avgTransactionValue"`
	CommissionRatePercent float64 `json:"commissionRatePercent" yaml:"commissionRatePercent"`
}

// Costs holds the cost-comparison assumptions used to monetize saved time.
type Costs struct {
	AssistantHourlyRate float64 `json:"assistantHourlyRate" yaml:"assistantHourlyRate"`
	AssistantSalary     float64 `json:"assistantSalary" yaml:"assistantSalary"` // annual, optional
	BenefitsPercent     float64 `json:"benefitsPercent" yaml:"benefitsPercent"`
	ValuePerHour        float64 `json:"valuePerHour" yaml:"valuePerHour"`
}

// Snapshot is an immutable set of calculator inputs. Methods that change a
// field return a new Snapshot and never touch the receiver's task slice.
type Snapshot struct {
	Business Business `json:"business" yaml:"business"`
	Tasks    []Task   `json:"tasks" yaml:"tasks"`
	Costs    Costs    `json:"costs" yaml:"costs"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Tasks != nil {
		out.Tasks = make([]Task, len(s.Tasks))
		copy(out.Tasks, s.Tasks)
	}
	return out
}

// Equal reports whether two snapshots hold identical values field-for-field.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Business != other.Business || s.Costs != other.Costs {
		return false
	}
	if len(s.Tasks) != len(other.Tasks) {
		return false
	}
	for i := range s.Tasks {
		if s.Tasks[i] != other.Tasks[i] {
			return false
		}
	}
	return true
}

// ValuePerUnit is the revenue of one additional unit of output: the flat
// commission when set, otherwise the transaction value times the rate.
func (s Snapshot) ValuePerUnit() float64 {
	if s.Business.CommissionPerDeal > 0 {
		return s.Business.CommissionPerDeal
	}
	return mathutil.ApplyPercentage(s.Business.AvgTransactionValue, s.Business.CommissionRatePercent)
}

// Get returns the current value of the field at path.
func (s Snapshot) Get(path string) (float64, error) {
	ref, err := s.resolve(path)
	if err != nil {
		return 0, err
	}
	return *ref.value, nil
}

// With returns a copy of the snapshot with the field at path replaced.
// Finite values are clamped to the field's domain and snapped to its step;
// NaN and infinities are rejected.
func (s Snapshot) With(path string, value float64) (Snapshot, error) {
	if !mathutil.IsFinite(value) {
		return s, fmt.Errorf("%s: %w: %v", path, ErrInvalidValue, value)
	}
	out := s.Clone()
	ref, err := out.resolve(path)
	if err != nil {
		return s, err
	}
	*ref.value = ref.field.Constrain(value)
	return out, nil
}

// Paths lists every editable field path of the snapshot, business and cost
// fields first, then each task's fields in order.
func (s Snapshot) Paths() []string {
	var paths []string
	for _, f := range fields {
		paths = append(paths, f.ID)
	}
	for i := range s.Tasks {
		paths = append(paths, TaskPath(i, fieldHoursPerWeek), TaskPath(i, fieldAutomationPotential))
	}
	return paths
}

// Describe returns the descriptor of the field at path, with its label
// specialized for task fields.
func (s Snapshot) Describe(path string) (Field, error) {
	ref, err := s.resolve(path)
	if err != nil {
		return Field{}, err
	}
	return ref.field, nil
}

// Validate checks every invariant of the snapshot without modifying it.
func (s Snapshot) Validate() error {
	var errs []error
	for _, path := range s.Paths() {
		ref, err := s.resolve(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v := *ref.value
		switch {
		case !mathutil.IsFinite(v):
			errs = append(errs, fmt.Errorf("%s: %w: %v", path, ErrInvalidValue, v))
		case v < ref.field.Min || v > ref.field.Max:
			errs = append(errs, fmt.Errorf("%s: %w: %v outside [%v, %v]", path, ErrInvalidValue, v, ref.field.Min, ref.field.Max))
		}
	}
	return errors.Join(errs...)
}

// Normalize returns a copy with every field constrained to its domain.
// Non-finite values are replaced with the field minimum.
func (s Snapshot) Normalize() Snapshot {
	out := s.Clone()
	for _, path := range out.Paths() {
		ref, err := out.resolve(path)
		if err != nil {
			continue
		}
		if !mathutil.IsFinite(*ref.value) {
			*ref.value = ref.field.Min
			continue
		}
		*ref.value = ref.field.Constrain(*ref.value)
	}
	return out
}

// TaskPath builds the path of a task field, e.g. "tasks.2.hoursPerWeek".
func TaskPath(index int, field string) string {
	return fmt.Sprintf("%s.%d.%s", taskPrefix, index, field)
}

type fieldRef struct {
	field Field
	value *float64
}

// resolve maps a path onto a pointer into s. Callers that write through the
// pointer must resolve against a clone.
func (s *Snapshot) resolve(path string) (fieldRef, error) {
	switch path {
	case FieldParticipants:
		return fieldRef{mustField(path), &s.Business.Participants}, nil
	case FieldDealsPerParticipant:
		return fieldRef{mustField(path), &s.Business.DealsPerParticipant}, nil
	case FieldCommissionPerDeal:
		return fieldRef{mustField(path), &s.Business.CommissionPerDeal}, nil
	case FieldAvgTransactionValue:
		return fieldRef{mustField(path), &s.Business.AvgTransactionValue}, nil
	case FieldCommissionRate:
		return fieldRef{mustField(path), &s.Business.CommissionRatePercent}, nil
	case FieldAssistantHourlyRate:
		return fieldRef{mustField(path), &s.Costs.AssistantHourlyRate}, nil
	case FieldAssistantSalary:
		return fieldRef{mustField(path), &s.Costs.AssistantSalary}, nil
	case FieldBenefitsPercent:
		return fieldRef{mustField(path), &s.Costs.BenefitsPercent}, nil
	case FieldValuePerHour:
		return fieldRef{mustField(path), &s.Costs.ValuePerHour}, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) != 3 || parts[0] != taskPrefix {
		return fieldRef{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 || index >= len(s.Tasks) {
		return fieldRef{}, fmt.Errorf("%w: %q (task index out of range)", ErrUnknownField, path)
	}
	task := &s.Tasks[index]
	switch parts[2] {
	case fieldHoursPerWeek:
		f := taskHoursField
		f.ID = path
		f.Label = task.Name + " hours/week"
		return fieldRef{f, &task.HoursPerWeek}, nil
	case fieldAutomationPotential:
		f := taskAutomationField
		f.ID = path
		f.Label = task.Name + " automation %"
		return fieldRef{f, &task.AutomationPotential}, nil
	}
	return fieldRef{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
}
