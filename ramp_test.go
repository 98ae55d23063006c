package mandel

import (
	"math"
	"testing"
)

func TestRampAtEndpoints(t *testing.T) {
	r := NewRamp("test",
		ColorStop{Offset: 0, Color: RGB(0, 0, 0)},
		ColorStop{Offset: 1, Color: RGB(1, 1, 1)},
	)
	if got := r.At(0); got != RGB(0, 0, 0) {
		t.Errorf("At(0) = %+v, want black", got)
	}
	if got := r.At(1); got != RGB(1, 1, 1) {
		t.Errorf("At(1) = %+v, want white", got)
	}
}

func TestRampAtClampsOutOfRange(t *testing.T) {
	r := RampByName("grayscale")
	if got := r.At(-5); got != r.At(0) {
		t.Errorf("At(-5) = %+v, want At(0) = %+v", got, r.At(0))
	}
	if got := r.At(5); got != r.At(1) {
		t.Errorf("At(5) = %+v, want At(1) = %+v", got, r.At(1))
	}
}

func TestRampAtMidpointLinearSpace(t *testing.T) {
	// Interpolation happens in linear sRGB, so the midpoint between black
	// and white is half linear intensity, not 0.5 in gamma space.
	r := RampByName("grayscale")
	got := r.At(0.5)
	want := linearToSRGB(0.5)
	if math.Abs(got.R-want) > 1e-9 || math.Abs(got.G-want) > 1e-9 || math.Abs(got.B-want) > 1e-9 {
		t.Errorf("At(0.5) = %+v, want gray %v", got, want)
	}
	if got.A != 1 {
		t.Errorf("At(0.5).A = %v, want 1", got.A)
	}
}

func TestRampAtUnsortedStops(t *testing.T) {
	// Constructor sorts; lookup order must not depend on argument order.
	r := NewRamp("test",
		ColorStop{Offset: 1, Color: RGB(1, 0, 0)},
		ColorStop{Offset: 0, Color: RGB(0, 0, 1)},
		ColorStop{Offset: 0.5, Color: RGB(0, 1, 0)},
	)
	if got := r.At(0); got != RGB(0, 0, 1) {
		t.Errorf("At(0) = %+v, want blue", got)
	}
	if got := r.At(0.5); got != RGB(0, 1, 0) {
		t.Errorf("At(0.5) = %+v, want green", got)
	}
	if got := r.At(1); got != RGB(1, 0, 0) {
		t.Errorf("At(1) = %+v, want red", got)
	}
}

func TestRampAtEmpty(t *testing.T) {
	var r Ramp
	got := r.At(0.5)
	if got != (RGBA{A: 1}) {
		t.Errorf("empty ramp At(0.5) = %+v, want opaque black", got)
	}
}

func TestColorForInterior(t *testing.T) {
	r := RampByName("classic")
	s := DefaultSettings()
	res := EscapeResult{Iterations: s.MaxIterations, Smooth: float64(s.MaxIterations)}
	if got := r.ColorFor(res, s); got != RGB(0, 0, 0) {
		t.Errorf("interior color = %+v, want black", got)
	}
}

func TestColorForSmoothSelection(t *testing.T) {
	r := RampByName("grayscale")
	s := DefaultSettings()
	s.MaxIterations = 100
	res := EscapeResult{Iterations: 50, Smooth: 50.5, Escaped: true}

	s.SmoothColoring = true
	smooth := r.ColorFor(res, s)
	s.SmoothColoring = false
	discrete := r.ColorFor(res, s)
	if smooth == discrete {
		t.Error("smooth and discrete selection produced the same color for a fractional value")
	}
	if discrete != r.At(0.5) {
		t.Errorf("discrete color = %+v, want At(0.5) = %+v", discrete, r.At(0.5))
	}
}

func TestColorForGamma(t *testing.T) {
	r := RampByName("grayscale")
	s := DefaultSettings()
	s.MaxIterations = 100
	s.SmoothColoring = false
	res := EscapeResult{Iterations: 25, Smooth: 25, Escaped: true}

	s.Gamma = 1
	base := r.ColorFor(res, s)
	s.Gamma = 2
	brightened := r.ColorFor(res, s)
	if brightened == base {
		t.Error("gamma 2 did not change the color")
	}
	if brightened != r.At(math.Pow(0.25, 0.5)) {
		t.Errorf("gamma 2 color = %+v, want At(sqrt(0.25))", brightened)
	}
}

func TestRampByNameFallback(t *testing.T) {
	for _, name := range RampNames() {
		if got := RampByName(name).Name(); got != name {
			t.Errorf("RampByName(%q).Name() = %q", name, got)
		}
	}
	if got := RampByName("no-such-ramp").Name(); got != "classic" {
		t.Errorf("unknown name resolved to %q, want classic", got)
	}
}

func TestRampNamesSorted(t *testing.T) {
	names := RampNames()
	if len(names) < 4 {
		t.Fatalf("got %d ramp names, want at least 4", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
