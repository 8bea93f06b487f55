package gesture

import (
	"math"
	"time"
)

// SwipeState is the horizontal-swipe machine state.
type SwipeState int

const (
	SwipeIdle SwipeState = iota
	SwipeTracking
)

// Swipe tuning.
const (
	DefaultSwipeThreshold = 50.0
	swipeNoiseFloor       = 10.0
	swipeDamping          = 0.3
	swipeFadeDivisor      = 200.0
	swipeMinOpacity       = 0.5
	swipeSnapBack         = 200 * time.Millisecond
)

// Swipe interprets horizontal drags on a list item. A drag that dominates
// its vertical component and exceeds the threshold fires exactly one of
// the direction callbacks on release. Instances carry no state between
// gestures.
type Swipe struct {
	onLeft    func()
	onRight   func()
	threshold float64
	haptics   Haptics
	sched     Scheduler

	state              SwipeState
	startX, startY     float64
	currentX, currentY float64
	cued               bool
	feedback           Feedback
	animating          bool
}

// SwipeOption customizes a Swipe controller.
type SwipeOption func(*Swipe)

// WithSwipeThreshold overrides the action threshold (the expense list uses
// 80 instead of the default 50).
func WithSwipeThreshold(t float64) SwipeOption {
	return func(s *Swipe) { s.threshold = t }
}

func WithSwipeHaptics(h Haptics) SwipeOption {
	return func(s *Swipe) { s.haptics = h }
}

func WithSwipeScheduler(sched Scheduler) SwipeOption {
	return func(s *Swipe) { s.sched = sched }
}

// NewSwipe builds a controller; either callback may be nil.
func NewSwipe(onLeft, onRight func(), opts ...SwipeOption) *Swipe {
	s := &Swipe{
		onLeft:    onLeft,
		onRight:   onRight,
		threshold: DefaultSwipeThreshold,
		haptics:   NopHaptics{},
		sched:     NewScheduler(),
		feedback:  restingFeedback(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Swipe) State() SwipeState { return s.state }

func (s *Swipe) Feedback() Feedback { return s.feedback }

func (s *Swipe) Animating() bool { return s.animating }

// TouchStart records the gesture origin.
func (s *Swipe) TouchStart(x, y float64) {
	s.state = SwipeTracking
	s.startX, s.startY = x, y
	s.currentX, s.currentY = x, y
	s.cued = false
}

// TouchMove applies proportional translation and fade once horizontal
// movement dominates and clears the noise floor. The light cue fires once
// when the action threshold is first crossed.
func (s *Swipe) TouchMove(x, y float64) Feedback {
	if s.state != SwipeTracking {
		return s.feedback
	}
	s.currentX, s.currentY = x, y

	dx := s.currentX - s.startX
	dy := math.Abs(s.currentY - s.startY)

	if math.Abs(dx) > dy && math.Abs(dx) > swipeNoiseFloor {
		opacity := math.Max(swipeMinOpacity, 1-math.Abs(dx)/swipeFadeDivisor)
		s.feedback = Feedback{OffsetX: dx * swipeDamping, Opacity: opacity}

		if math.Abs(dx) > s.threshold && !s.cued {
			s.haptics.Cue(HapticLight)
			s.cued = true
		}
	}
	return s.feedback
}

// TouchEnd fires onRight for rightward motion or onLeft for leftward
// motion when the drag dominated its vertical component and exceeded the
// threshold; otherwise it only resets visuals. All tracking state clears
// either way.
func (s *Swipe) TouchEnd() {
	if s.state != SwipeTracking {
		return
	}
	dx := s.currentX - s.startX
	dy := math.Abs(s.currentY - s.startY)

	s.reset()

	if math.Abs(dx) > dy && math.Abs(dx) > s.threshold {
		s.haptics.Cue(HapticMedium)
		if dx > 0 && s.onRight != nil {
			s.onRight()
		} else if dx < 0 && s.onLeft != nil {
			s.onLeft()
		}
	}
}

func (s *Swipe) reset() {
	s.state = SwipeIdle
	s.startX, s.startY = 0, 0
	s.currentX, s.currentY = 0, 0
	s.cued = false
	s.feedback = restingFeedback()
	s.animating = true
	s.sched.AfterFunc(swipeSnapBack, func() {
		s.animating = false
	})
}
