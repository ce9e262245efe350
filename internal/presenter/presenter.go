// Package presenter animates the transition between successive results. It
// is framework-agnostic: a host calls Advance once per display frame with the
// time elapsed since the previous frame and renders the returned Frame.
package presenter

import (
	"math"
	"time"

	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/mathutil"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// EaseOutQuart decelerates towards the target: 1 - (1 - t)^4.
func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

// Options tune the interpolation.
type Options struct {
	Duration time.Duration
	// Epsilon is the remaining distance below which a metric snaps to its target.
	Epsilon float64
	Easing  Easing
}

// DefaultOptions returns a one second ease-out-quart transition.
func DefaultOptions() Options {
	return Options{
		Duration: constants.DefaultAnimationDuration,
		Epsilon:  constants.CurrencyTolerance,
		Easing:   EaseOutQuart,
	}
}

// Frame is the set of displayed figures at one instant.
type Frame struct {
	figures [calculator.MetricCount]calculator.Figure
}

// FrameOf returns the frame that displays r exactly.
func FrameOf(r calculator.Result) Frame {
	var f Frame
	for i := range f.figures {
		f.figures[i] = r.Figure(calculator.Metric(i))
	}
	return f
}

// Figure returns the displayed figure of m.
func (f Frame) Figure(m calculator.Metric) calculator.Figure {
	if m < 0 || int(m) >= calculator.MetricCount {
		return calculator.NotApplicable
	}
	return f.figures[m]
}

// Value returns the displayed value of m, zero when not applicable.
func (f Frame) Value(m calculator.Metric) float64 {
	return f.Figure(m).Value
}

// Presenter owns the interpolation state of one view. It is not safe for
// concurrent use.
type Presenter struct {
	opts Options

	start   Frame
	target  Frame
	display Frame
	settled [calculator.MetricCount]bool
	elapsed time.Duration

	result    calculator.Result
	hasTarget bool
}

// New creates a presenter. Zero option fields fall back to the defaults,
// except a negative Duration which disables animation.
func New(opts Options) *Presenter {
	def := DefaultOptions()
	if opts.Duration == 0 {
		opts.Duration = def.Duration
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = def.Epsilon
	}
	if opts.Easing == nil {
		opts.Easing = def.Easing
	}
	return &Presenter{opts: opts}
}

// Retarget starts a transition from the currently displayed values towards r,
// cancelling any transition in flight. The first target animates from zero.
func (p *Presenter) Retarget(r calculator.Result) {
	next := FrameOf(r)
	if !p.hasTarget {
		for i, fig := range next.figures {
			p.display.figures[i] = calculator.Figure{Applicable: fig.Applicable}
		}
	}
	p.result = r
	p.hasTarget = true
	p.target = next
	p.start = p.display
	p.elapsed = 0

	for i := range p.target.figures {
		from, to := p.start.figures[i], p.target.figures[i]
		switch {
		case p.opts.Duration < 0, from.Applicable != to.Applicable, !to.Applicable, from.Value == to.Value:
			p.display.figures[i] = to
			p.settled[i] = true
		default:
			p.settled[i] = false
		}
	}
}

// Advance moves the animation forward by dt and returns the frame to display.
// Once the configured duration has elapsed every metric equals its target.
func (p *Presenter) Advance(dt time.Duration) Frame {
	if dt > 0 {
		p.elapsed += dt
	}
	if !p.Animating() {
		return p.display
	}

	progress := 1.0
	if p.opts.Duration > 0 {
		progress = math.Min(float64(p.elapsed)/float64(p.opts.Duration), 1)
	}
	eased := p.opts.Easing(progress)

	for i := range p.target.figures {
		if p.settled[i] {
			continue
		}
		to := p.target.figures[i].Value
		v := mathutil.Lerp(p.start.figures[i].Value, to, eased)
		if progress >= 1 || mathutil.WithinTolerance(to, v, p.opts.Epsilon) {
			v = to
			p.settled[i] = true
		}
		p.display.figures[i] = calculator.Known(v)
	}
	return p.display
}

// Frame returns the currently displayed frame without advancing.
func (p *Presenter) Frame() Frame {
	return p.display
}

// Animating reports whether any metric has not reached its target yet.
func (p *Presenter) Animating() bool {
	if !p.hasTarget {
		return false
	}
	for _, done := range p.settled {
		if !done {
			return true
		}
	}
	return false
}

// Target returns the result being animated towards.
func (p *Presenter) Target() (calculator.Result, bool) {
	return p.result, p.hasTarget
}
