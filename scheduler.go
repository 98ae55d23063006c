package mandel

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Phase is the scheduler's interaction state. It drives which iteration
// budget and cadence renders use.
type Phase int

const (
	// PhaseIdle has no pending timers or frame loops.
	PhaseIdle Phase = iota
	// PhaseDragging issues immediate low-quality renders as the view moves.
	PhaseDragging
	// PhaseAnimating drives an eased click-zoom transition.
	PhaseAnimating
	// PhaseHoldZooming drives a continuous zoom toward a fixed point.
	PhaseHoldZooming
	// PhaseSettling waits out the debounce before one full-quality render.
	PhaseSettling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseAnimating:
		return "animating"
	case PhaseHoldZooming:
		return "hold-zooming"
	case PhaseSettling:
		return "settling"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Stats reports timing from the rendering surface. The scheduler forwards
// it upward unmodified.
type Stats struct {
	RenderTime time.Duration
}

// Surface is the rendering collaborator the scheduler drives. Draw is a
// fire-and-forget call issued synchronously from scheduling decisions, one
// request at a time; the surface must tolerate being called from within a
// frame callback and reports no backpressure. SetColorRamp is called before
// any Draw whose settings name a different ramp than the previous Draw.
type Surface interface {
	Draw(v Viewport, s Settings) (Stats, error)
	SetColorRamp(name string) error
}

// RenderRequest is the unit of work handed to the surface: one viewport and
// the settings snapshot to render it with. Requests are ephemeral and never
// mutated after creation.
type RenderRequest struct {
	Viewport Viewport
	Settings Settings
}

// Default scheduler timing.
const (
	// DefaultSettleDelay is the debounce before the full-quality render
	// that follows an interaction.
	DefaultSettleDelay = 200 * time.Millisecond

	// DefaultHoldArmDelay is how long after pointer-down a hold-zoom waits
	// before engaging; a drag detected earlier cancels the pending arm.
	DefaultHoldArmDelay = 200 * time.Millisecond

	// DefaultAnimationDuration is the length of a click-zoom transition.
	DefaultAnimationDuration = 450 * time.Millisecond
)

// driverKind identifies the single active timing source.
type driverKind int

const (
	driverNone driverKind = iota
	driverSettle
	driverAnimate
	driverHoldPending
	driverHold
)

// driver is the scheduler's one active timing source. Entering any phase
// replaces the whole struct, which invalidates the previous driver and its
// callbacks in one assignment; there are no scattered cancellation flags.
type driver struct {
	kind     driverKind
	deadline time.Time // settle expiry or hold-zoom arm time
	start    time.Time // animation or hold-zoom start
	from, to Viewport  // animation endpoints
	target   Point     // hold-zoom target
	aspect   float64   // aspect ratio locked at hold-zoom engage
	rate     float64   // hold-zoom shrink rate per second
	current  Viewport  // last viewport computed by this driver
	done     func(Viewport)
}

// Scheduler reconciles competing render requests into a single cancellable
// stream of surface draws.
//
// All timing flows through Tick, which the host calls once per displayed
// frame; the scheduler arms no timers of its own and never spawns
// goroutines. Everything is serialized through the current phase, so no
// locking is needed: there is no concurrent access, only sequential
// external events. At most one timing source (the driver) is active at a
// time; entering any new phase first cancels whatever was driving renders.
type Scheduler struct {
	surface Surface
	clock   func() time.Time

	phase  Phase
	driver driver

	lastViewport Viewport
	lastSettings Settings
	hasRender    bool

	lastRamp string

	onViewport func(Viewport)
	onStats    func(Stats)

	settleDelay  time.Duration
	holdArmDelay time.Duration
	animDuration time.Duration
}

// NewScheduler creates a scheduler driving the given surface.
func NewScheduler(surface Surface, opts ...Option) *Scheduler {
	if surface == nil {
		panic("mandel: NewScheduler requires a surface")
	}
	s := &Scheduler{
		surface:      surface,
		clock:        time.Now,
		settleDelay:  DefaultSettleDelay,
		holdArmDelay: DefaultHoldArmDelay,
		animDuration: DefaultAnimationDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current interaction phase.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Current returns the last requested viewport and settings. ok is false
// until the first render request.
func (s *Scheduler) Current() (Viewport, Settings, bool) {
	return s.lastViewport, s.lastSettings, s.hasRender
}

// RequestRender records the viewport and settings as current and issues a
// draw. While an interaction drives the view the draw happens immediately
// at interactive quality to keep latency minimal; during settling it also
// restarts the debounce; when idle it draws once at full quality.
//
// Surface failures propagate to the caller; the scheduler has no fallback
// rendering path and does not retry.
func (s *Scheduler) RequestRender(v Viewport, set Settings) error {
	s.lastViewport = v
	s.lastSettings = set
	s.hasRender = true

	switch s.phase {
	case PhaseDragging, PhaseAnimating, PhaseHoldZooming:
		return s.issue(RenderRequest{Viewport: v, Settings: set.interactive()})
	case PhaseSettling:
		s.driver.deadline = s.clock().Add(s.settleDelay)
		return s.issue(RenderRequest{Viewport: v, Settings: set.interactive()})
	default:
		return s.issue(RenderRequest{Viewport: v, Settings: set})
	}
}

// BeginInteraction enters the dragging phase. Whatever was driving renders
// (a settle timer, a running animation, a pending or active hold-zoom) is
// canceled first; its callbacks never fire. The newest interaction always
// wins.
func (s *Scheduler) BeginInteraction() {
	s.setDriver(driver{})
	s.setPhase(PhaseDragging)
}

// EndInteraction leaves the dragging phase and arms the settle debounce.
// The viewport the drag ended on is reported to the completion sink.
// Calling it outside a drag is a no-op.
func (s *Scheduler) EndInteraction() {
	if s.phase != PhaseDragging {
		return
	}
	s.setDriver(driver{kind: driverSettle, deadline: s.clock().Add(s.settleDelay)})
	s.setPhase(PhaseSettling)
	if s.hasRender && s.onViewport != nil {
		s.onViewport(s.lastViewport)
	}
}

// AnimateZoom starts an eased transition from the current viewport to the
// target. Both center and span follow an ease-in-out curve over the
// animation duration, rendered at interactive quality every frame; the
// final frame renders at full quality, invokes done with the target and
// returns the scheduler to idle. Any previous driver is canceled outright.
func (s *Scheduler) AnimateZoom(to Viewport, done func(Viewport)) {
	from := to
	if s.hasRender {
		from = s.lastViewport
	}
	s.setDriver(driver{
		kind:  driverAnimate,
		start: s.clock(),
		from:  from,
		to:    to,
		done:  done,
	})
	s.setPhase(PhaseAnimating)
}

// ArmHoldZoom schedules a hold-zoom toward target. The zoom engages only
// after the arm delay has passed without the arm being canceled; a drag
// detected in the meantime (BeginInteraction) cancels the pending arm
// before it fires. Until engagement the phase is unchanged.
//
// The shrink rate derives from the current settings' zoom factor per
// second; the aspect ratio is locked from the current viewport at
// engagement.
func (s *Scheduler) ArmHoldZoom(target Point, done func(Viewport)) {
	if !s.hasRender {
		return
	}
	s.setDriver(driver{
		kind:     driverHoldPending,
		deadline: s.clock().Add(s.holdArmDelay),
		target:   target,
		done:     done,
	})
}

// StopHoldZoom ends a hold-zoom. A pending arm is discarded silently so the
// caller can fall back to a click-zoom. An engaged hold stops its loop,
// issues one full-quality render at the last computed viewport, reports it
// to done and to the completion sink, and returns the scheduler to idle.
func (s *Scheduler) StopHoldZoom() error {
	switch s.driver.kind {
	case driverHoldPending:
		s.setDriver(driver{})
		return nil
	case driverHold:
		final := s.driver.current
		done := s.driver.done
		s.setDriver(driver{})
		s.setPhase(PhaseIdle)
		s.lastViewport = final
		err := s.issue(RenderRequest{Viewport: final, Settings: s.lastSettings})
		if done != nil {
			done(final)
		}
		if s.onViewport != nil {
			s.onViewport(final)
		}
		return err
	}
	return nil
}

// Cancel clears every pending timer and frame loop regardless of state and
// returns the scheduler to idle with no side effects. It is idempotent; on
// an already-idle scheduler it observably does nothing.
func (s *Scheduler) Cancel() {
	s.setDriver(driver{})
	s.setPhase(PhaseIdle)
}

// Tick advances the active driver to now. The host calls it once per
// displayed frame; a tick with no active driver does nothing. Draw errors
// propagate to the caller with the driver already advanced, so a failed
// frame does not wedge the state machine.
func (s *Scheduler) Tick(now time.Time) error {
	switch s.driver.kind {
	case driverSettle:
		if now.Before(s.driver.deadline) {
			return nil
		}
		s.setDriver(driver{})
		s.setPhase(PhaseIdle)
		return s.issue(RenderRequest{Viewport: s.lastViewport, Settings: s.lastSettings})

	case driverHoldPending:
		if now.Before(s.driver.deadline) {
			return nil
		}
		d := s.driver
		s.setDriver(driver{
			kind:    driverHold,
			start:   now,
			from:    s.lastViewport,
			target:  d.target,
			aspect:  s.lastViewport.AspectRatio(),
			rate:    math.Log(s.lastSettings.ZoomFactor),
			current: s.lastViewport,
			done:    d.done,
		})
		s.setPhase(PhaseHoldZooming)
		return s.issue(RenderRequest{Viewport: s.lastViewport, Settings: s.lastSettings.interactive()})

	case driverHold:
		elapsed := now.Sub(s.driver.start).Seconds()
		v := HoldZoomTrajectory(s.driver.from, s.driver.target, s.driver.aspect, elapsed, s.driver.rate)
		s.driver.current = v
		s.lastViewport = v
		return s.issue(RenderRequest{Viewport: v, Settings: s.lastSettings.interactive()})

	case driverAnimate:
		t := float64(now.Sub(s.driver.start)) / float64(s.animDuration)
		if t >= 1 {
			to := s.driver.to
			done := s.driver.done
			s.setDriver(driver{})
			s.setPhase(PhaseIdle)
			s.lastViewport = to
			err := s.issue(RenderRequest{Viewport: to, Settings: s.lastSettings})
			if done != nil {
				done(to)
			}
			if s.onViewport != nil {
				s.onViewport(to)
			}
			return err
		}
		v := lerpViewport(s.driver.from, s.driver.to, easeInOut(t))
		s.driver.current = v
		s.lastViewport = v
		return s.issue(RenderRequest{Viewport: v, Settings: s.lastSettings.interactive()})
	}
	return nil
}

// issue hands one request to the surface, updating the color ramp first
// when the settings name a different one.
func (s *Scheduler) issue(req RenderRequest) error {
	if req.Settings.Ramp != s.lastRamp {
		if err := s.surface.SetColorRamp(req.Settings.Ramp); err != nil {
			return fmt.Errorf("mandel: set color ramp %q: %w", req.Settings.Ramp, err)
		}
		s.lastRamp = req.Settings.Ramp
	}
	stats, err := s.surface.Draw(req.Viewport, req.Settings)
	if err != nil {
		return fmt.Errorf("mandel: draw: %w", err)
	}
	Logger().Debug("mandel: draw issued",
		slog.String("phase", s.phase.String()),
		slog.Int("iterations", req.Settings.MaxIterations),
		slog.Bool("preview", req.Settings.Preview),
		slog.Duration("render_time", stats.RenderTime))
	if s.onStats != nil {
		s.onStats(stats)
	}
	return nil
}

func (s *Scheduler) setDriver(d driver) {
	s.driver = d
}

func (s *Scheduler) setPhase(p Phase) {
	if p != s.phase {
		Logger().Debug("mandel: phase change",
			slog.String("from", s.phase.String()),
			slog.String("to", p.String()))
	}
	s.phase = p
}

// easeInOut is a symmetric ease-in-out curve on [0,1].
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// lerpViewport interpolates center and span linearly.
func lerpViewport(a, b Viewport, t float64) Viewport {
	return Viewport{
		CenterRe: a.CenterRe + t*(b.CenterRe-a.CenterRe),
		CenterIm: a.CenterIm + t*(b.CenterIm-a.CenterIm),
		Width:    a.Width + t*(b.Width-a.Width),
		Height:   a.Height + t*(b.Height-a.Height),
	}
}
