package mandel

import "fmt"

// Quality is a rendering quality preset. Each preset maps to a base
// iteration budget; interactive renders divide it down so dragging and
// zooming stay responsive.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
	QualityUltra
)

// qualityIterations maps each preset to its full-quality iteration budget.
var qualityIterations = [...]int{
	QualityLow:    64,
	QualityMedium: 128,
	QualityHigh:   256,
	QualityUltra:  512,
}

// minInteractiveIterations keeps even the lowest preset from losing all
// detail during interaction.
const minInteractiveIterations = 32

// String returns the preset name.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityUltra:
		return "ultra"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// Iterations returns the preset's full-quality iteration budget.
func (q Quality) Iterations() int {
	if q < QualityLow || q > QualityUltra {
		return qualityIterations[QualityMedium]
	}
	return qualityIterations[q]
}

// IterationsFor selects the iteration budget for a preset. The selection is
// a pure function of (preset, interactive): interactive renders use a
// quarter of the base budget, floored at minInteractiveIterations.
func IterationsFor(q Quality, interactive bool) int {
	if !interactive {
		return q.Iterations()
	}
	return InteractiveIterations(q.Iterations())
}

// InteractiveIterations reduces a full-quality budget for use during
// interaction.
func InteractiveIterations(base int) int {
	return max(minInteractiveIterations, base/4)
}

// Settings is an immutable per-request snapshot of the rendering
// parameters. The scheduler reads MaxIterations, Quality, ZoomFactor and
// Ramp; everything else is passed through to the surface untouched.
type Settings struct {
	// MaxIterations is the full-quality iteration budget. Must be positive.
	MaxIterations int

	// SmoothColoring selects the continuous escape value instead of the
	// discrete count when mapping colors.
	SmoothColoring bool

	// Gamma adjusts the color ramp response. Must be positive.
	Gamma float64

	// Quality is the active preset.
	Quality Quality

	// ZoomFactor is the magnification applied per click-zoom, and the
	// per-second rate basis for hold-zoom. Must be greater than 1.
	ZoomFactor float64

	// Ramp names the color ramp the surface should use.
	Ramp string

	// Preview marks a reduced-quality interactive render. Surfaces may
	// also lower their resolution for preview frames.
	Preview bool
}

// DefaultSettings returns the settings the explorer starts with.
func DefaultSettings() Settings {
	return Settings{
		MaxIterations:  QualityMedium.Iterations(),
		SmoothColoring: true,
		Gamma:          1.0,
		Quality:        QualityMedium,
		ZoomFactor:     2.0,
		Ramp:           "classic",
	}
}

// Validate reports the first invalid field. Construction sites are expected
// to reject bad values; the kernel and surfaces assume validated input.
func (s Settings) Validate() error {
	if s.MaxIterations <= 0 {
		return fmt.Errorf("mandel: max iterations must be positive, got %d", s.MaxIterations)
	}
	if !(s.Gamma > 0) {
		return fmt.Errorf("mandel: gamma must be positive, got %v", s.Gamma)
	}
	if !(s.ZoomFactor > 1) {
		return fmt.Errorf("mandel: zoom factor must be greater than 1, got %v", s.ZoomFactor)
	}
	return nil
}

// interactive returns a copy of s with the iteration budget reduced and the
// preview flag set. Used by the scheduler for every render issued while an
// interaction drives the view.
func (s Settings) interactive() Settings {
	s.MaxIterations = InteractiveIterations(s.MaxIterations)
	s.Preview = true
	return s
}
