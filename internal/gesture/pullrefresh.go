package gesture

import "time"

// RefreshState is the pull-to-refresh machine state.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshPulling
	RefreshRefreshing
)

// Pull-to-refresh tuning. Distances are in the same units as the touch
// samples (points/pixels).
const (
	RefreshThreshold = 80.0
	MaxPullDistance  = 120.0
	pullDamping      = 0.5
	pullFadeLimit    = 0.2

	settleDelay   = 500 * time.Millisecond
	snapBackDelay = 200 * time.Millisecond
)

// PullRefresh interprets vertical drags at the top of a scrollable list.
// Crossing the threshold and releasing invokes the refresh callback once;
// the visual state always settles back to idle after the fixed delay,
// whether or not the callback succeeded. Failures are swallowed: surfacing
// them is the caller's job.
type PullRefresh struct {
	onRefresh func() error
	haptics   Haptics
	sched     Scheduler

	state     RefreshState
	startY    float64
	currentY  float64
	cued      bool
	feedback  Feedback
	animating bool
}

// PullRefreshOption customizes a PullRefresh controller.
type PullRefreshOption func(*PullRefresh)

func WithRefreshHaptics(h Haptics) PullRefreshOption {
	return func(p *PullRefresh) { p.haptics = h }
}

func WithRefreshScheduler(s Scheduler) PullRefreshOption {
	return func(p *PullRefresh) { p.sched = s }
}

// NewPullRefresh builds a controller around the given refresh callback.
func NewPullRefresh(onRefresh func() error, opts ...PullRefreshOption) *PullRefresh {
	p := &PullRefresh{
		onRefresh: onRefresh,
		haptics:   NopHaptics{},
		sched:     NewScheduler(),
		feedback:  restingFeedback(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PullRefresh) State() RefreshState { return p.state }

// Feedback returns the current proportional visual state.
func (p *PullRefresh) Feedback() Feedback { return p.feedback }

// Animating reports whether a settle or snap-back transition is running.
func (p *PullRefresh) Animating() bool { return p.animating }

// TouchStart begins tracking. Pulling only arms when the element is
// already scrolled to its top and no refresh is in flight.
func (p *PullRefresh) TouchStart(y float64, atTop bool) {
	if p.state != RefreshIdle || !atTop {
		return
	}
	p.state = RefreshPulling
	p.startY = y
	p.currentY = y
	p.cued = false
}

// TouchMove tracks the vertical delta, clamps it to MaxPullDistance, and
// applies a damped offset plus fade. The light haptic cue fires once when
// the threshold is first crossed.
func (p *PullRefresh) TouchMove(y float64) Feedback {
	if p.state != RefreshPulling {
		return p.feedback
	}
	p.currentY = y

	distance := p.pullDistance()
	if distance <= 0 {
		p.feedback = restingFeedback()
		return p.feedback
	}

	p.feedback = Feedback{
		OffsetY: distance * pullDamping,
		Opacity: 1 - (distance/MaxPullDistance)*pullFadeLimit,
	}
	if distance > RefreshThreshold && !p.cued {
		p.haptics.Cue(HapticLight)
		p.cued = true
	}
	return p.feedback
}

// TouchEnd resolves the gesture. Past the threshold it invokes the refresh
// callback exactly once and settles back to idle after settleDelay; short
// pulls snap back immediately.
func (p *PullRefresh) TouchEnd() {
	if p.state != RefreshPulling {
		return
	}
	triggered := p.pullDistance() > RefreshThreshold
	p.startY = 0
	p.currentY = 0
	p.cued = false

	if !triggered {
		p.state = RefreshIdle
		p.snapBack(snapBackDelay)
		return
	}

	p.state = RefreshRefreshing
	if p.onRefresh != nil {
		// Fire and forget: the outcome does not change how or when the
		// controller resets.
		_ = p.onRefresh()
	}
	p.sched.AfterFunc(settleDelay, func() {
		p.state = RefreshIdle
		p.feedback = restingFeedback()
		p.animating = false
	})
	p.animating = true
	p.feedback = Feedback{OffsetY: RefreshThreshold * pullDamping, Opacity: 1}
}

func (p *PullRefresh) pullDistance() float64 {
	d := p.currentY - p.startY
	if d > MaxPullDistance {
		return MaxPullDistance
	}
	return d
}

func (p *PullRefresh) snapBack(after time.Duration) {
	p.feedback = restingFeedback()
	p.animating = true
	p.sched.AfterFunc(after, func() {
		p.animating = false
	})
}
