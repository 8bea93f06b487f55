// Package gesture turns raw touch-position samples into discrete
// application actions. Two independent state machines live here:
// pull-to-refresh and horizontal swipe. Timer-driven transitions go
// through a Scheduler so tests can drive them without wall-clock delays.
package gesture

import "time"

// HapticLevel grades the strength of a haptic cue.
type HapticLevel int

const (
	HapticLight HapticLevel = iota
	HapticMedium
	HapticHeavy
)

// Haptics delivers tactile feedback. Implementations must tolerate being
// called from gesture handlers at input-event rate.
type Haptics interface {
	Cue(level HapticLevel)
}

// NopHaptics discards all cues.
type NopHaptics struct{}

func (NopHaptics) Cue(HapticLevel) {}

// Scheduler runs a function after a delay. The production implementation
// delegates to time.AfterFunc; tests substitute a manual queue.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// NewScheduler returns the wall-clock Scheduler.
func NewScheduler() Scheduler {
	return timerScheduler{}
}

// Feedback is the proportional visual state a gesture applies to its
// element while tracking: a translation offset and an opacity fade.
type Feedback struct {
	OffsetX float64
	OffsetY float64
	Opacity float64
}

func restingFeedback() Feedback {
	return Feedback{Opacity: 1}
}
