package mandel

import "time"

// Option configures a Scheduler during creation.
//
// Example:
//
//	sched := mandel.NewScheduler(surface,
//	    mandel.WithCompletion(history.Push),
//	    mandel.WithSettleDelay(300*time.Millisecond),
//	)
type Option func(*Scheduler)

// WithCompletion sets the sink receiving the final viewport of each
// completed interaction (click animation, hold-zoom stop, drag release).
// An undo history typically lives behind this callback; the scheduler
// itself retains no history.
func WithCompletion(fn func(Viewport)) Option {
	return func(s *Scheduler) {
		s.onViewport = fn
	}
}

// WithStats sets the sink receiving surface timing statistics, forwarded
// unmodified after every draw.
func WithStats(fn func(Stats)) Option {
	return func(s *Scheduler) {
		s.onStats = fn
	}
}

// WithSettleDelay overrides the debounce before the post-interaction
// full-quality render.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		s.settleDelay = d
	}
}

// WithHoldArmDelay overrides how long a hold-zoom waits after pointer-down
// before engaging.
func WithHoldArmDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		s.holdArmDelay = d
	}
}

// WithAnimationDuration overrides the click-zoom transition length.
func WithAnimationDuration(d time.Duration) Option {
	return func(s *Scheduler) {
		s.animDuration = d
	}
}

// WithClock overrides the scheduler's wall clock. Tests use it together
// with explicit Tick times to make every transition deterministic.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}
