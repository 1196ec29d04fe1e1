package results

import (
	"math"
	"time"
)

// StepInterval is the animation step period.
const StepInterval = 20 * time.Millisecond

// gaugeRadius is the score ring radius used for the stroke offset.
const gaugeRadius = 90

// Circumference is the full score ring length.
var Circumference = 2 * math.Pi * gaugeRadius

// GaugeOffset converts a 0-100 score value into a ring stroke offset:
// the full circumference at 0, shrinking to 0 at 100.
func GaugeOffset(value float64) float64 {
	return Circumference - value/100*Circumference
}

// ScoreAnimation produces a non-decreasing sequence of score values
// from 0 to target, one per StepInterval. The final step clamps exactly
// to target. It is a pure stepper so any tick source can drive it: the
// TUI steps it from a 20ms tick, tests step it directly.
type ScoreAnimation struct {
	target    float64
	current   float64
	increment float64
	done      bool
}

// NewScoreAnimation plans an animation reaching target over roughly
// duration. A non-positive duration completes in a single step.
func NewScoreAnimation(target float64, duration time.Duration) *ScoreAnimation {
	steps := float64(duration / StepInterval)
	increment := target
	if steps > 0 {
		increment = target / steps
	}
	return &ScoreAnimation{target: target, increment: increment, done: target <= 0}
}

// Step advances the animation and returns the new value.
func (a *ScoreAnimation) Step() float64 {
	if a.done {
		return a.current
	}
	a.current += a.increment
	if a.current >= a.target {
		a.current = a.target
		a.done = true
	}
	return a.current
}

// Value returns the current value without advancing.
func (a *ScoreAnimation) Value() float64 {
	return a.current
}

// Done reports whether the target has been reached.
func (a *ScoreAnimation) Done() bool {
	return a.done
}
