// Package recompute ties the parameter store to the calculator: every
// snapshot the store emits is computed synchronously and the result is
// published to every subscriber.
package recompute

import (
	"go.uber.org/zap"

	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/params"
)

// Subscriber receives every published result.
type Subscriber func(calculator.Result)

// Profiles resolves the assumptions a named preset is computed with.
type Profiles interface {
	AssumptionsFor(preset string) (calculator.Assumptions, bool)
}

// Controller recomputes results on parameter changes. It keeps a single-entry
// cache keyed on full snapshot and assumption equality.
type Controller struct {
	logger      *zap.Logger
	base        calculator.Assumptions
	assumptions calculator.Assumptions
	profiles    Profiles
	profile     string
	subscribers []Subscriber

	cached          bool
	lastParams      params.Snapshot
	lastAssumptions calculator.Assumptions
	lastResult      calculator.Result

	computations int
}

// New creates a controller using the given deployment assumptions.
func New(logger *zap.Logger, assumptions calculator.Assumptions) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{logger: logger, base: assumptions, assumptions: assumptions}
}

// UseProfiles makes Select switch to the assumptions of each selected preset.
func (c *Controller) UseProfiles(p Profiles) {
	c.profiles = p
}

// Select picks the assumptions for sel. An active preset with a profile uses
// that profile and any other preset uses the base assumptions. A custom
// selection keeps the assumptions of the last preset, so edits to a team
// preset are still computed as a team.
func (c *Controller) Select(sel params.Selection) {
	name, ok := sel.Preset()
	if !ok || c.profiles == nil {
		return
	}
	c.profile = name
	c.assumptions = c.base
	if a, found := c.profiles.AssumptionsFor(name); found {
		c.assumptions = a
	}
}

// Subscribe registers fn for every subsequently published result. When a
// result is already available fn receives it immediately.
func (c *Controller) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	c.subscribers = append(c.subscribers, fn)
	if c.cached {
		fn(c.lastResult)
	}
}

// Attach subscribes the controller to store and computes the store's current
// snapshot right away.
func (c *Controller) Attach(store *params.Store) calculator.Result {
	store.Subscribe(func(s params.Snapshot) {
		c.Select(store.Selection())
		c.Update(s)
	})
	c.Select(store.Selection())
	return c.Update(store.Snapshot())
}

// Update computes the result for snap and publishes it.
func (c *Controller) Update(snap params.Snapshot) calculator.Result {
	if !c.cached || !c.lastParams.Equal(snap) || c.lastAssumptions != c.assumptions {
		c.lastParams = snap.Clone()
		c.lastAssumptions = c.assumptions
		c.lastResult = calculator.Compute(c.lastParams, c.assumptions)
		c.cached = true
		c.computations++
		c.logger.Debug("recomputed result",
			zap.String("op", "recompute.Update"),
			zap.String("preset", c.profile),
			zap.Float64("weeklyHours", c.lastResult.WeeklyHours),
			zap.Float64("totalBenefit", c.lastResult.TotalBenefit),
			zap.Bool("roiApplicable", c.lastResult.ROIPercent.Applicable),
		)
	}
	for _, fn := range c.subscribers {
		fn(c.lastResult)
	}
	return c.lastResult
}

// Latest returns the most recent result, if any.
func (c *Controller) Latest() (calculator.Result, bool) {
	return c.lastResult, c.cached
}

// Assumptions returns the assumptions the controller currently computes with.
func (c *Controller) Assumptions() calculator.Assumptions {
	return c.assumptions
}

// Computations counts how many times the calculator actually ran.
func (c *Controller) Computations() int {
	return c.computations
}
