package mandel

import (
	"math"
	"testing"
)

func TestZoomToRectAspectLock(t *testing.T) {
	const epsilon = 1e-9
	canvas := CanvasSize{Width: 800, Height: 450}
	v := HomeViewport(canvas.AspectRatio())

	tests := []struct {
		name string
		sel  PixelRect
	}{
		{"canvas shaped", PixelRect{X: 100, Y: 100, Width: 160, Height: 90}},
		{"wide sliver", PixelRect{X: 10, Y: 200, Width: 700, Height: 20}},
		{"tall sliver", PixelRect{X: 390, Y: 10, Width: 20, Height: 400}},
		{"square", PixelRect{X: 300, Y: 100, Width: 200, Height: 200}},
		{"tiny", PixelRect{X: 400, Y: 225, Width: 3, Height: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ZoomToRect(v, tt.sel, canvas)
			if math.Abs(got.AspectRatio()-canvas.AspectRatio()) > epsilon {
				t.Errorf("aspect = %v, want canvas aspect %v", got.AspectRatio(), canvas.AspectRatio())
			}
			if !got.IsFinite() {
				t.Errorf("viewport not finite: %+v", got)
			}
		})
	}
}

func TestZoomToRectCenteredSelectionKeepsCenter(t *testing.T) {
	const epsilon = 1e-12
	canvas := CanvasSize{Width: 800, Height: 450}
	v := Viewport{CenterRe: -0.7, CenterIm: 0.3, Width: 3.2, Height: 1.8}

	// Selection center at the canvas center.
	sel := PixelRect{X: 300, Y: 175, Width: 200, Height: 100}
	got := ZoomToRect(v, sel, canvas)

	if math.Abs(got.CenterRe-v.CenterRe) > epsilon || math.Abs(got.CenterIm-v.CenterIm) > epsilon {
		t.Errorf("center = (%v,%v), want (%v,%v)", got.CenterRe, got.CenterIm, v.CenterRe, v.CenterIm)
	}
}

func TestZoomToRectHalfCanvas(t *testing.T) {
	const epsilon = 1e-12
	canvas := CanvasSize{Width: 800, Height: 450}
	v := HomeViewport(canvas.AspectRatio())

	// Half the canvas on both axes, centered on screen.
	sel := PixelRect{X: 200, Y: 112.5, Width: 400, Height: 225}
	got := ZoomToRect(v, sel, canvas)

	if math.Abs(got.Width-v.Width/2) > epsilon {
		t.Errorf("width = %v, want %v", got.Width, v.Width/2)
	}
	if math.Abs(got.CenterRe-v.CenterRe) > epsilon || math.Abs(got.CenterIm-v.CenterIm) > epsilon {
		t.Errorf("center moved to (%v,%v)", got.CenterRe, got.CenterIm)
	}
}

func TestZoomToRectSelectionAspectDrivesAxis(t *testing.T) {
	const epsilon = 1e-12
	canvas := CanvasSize{Width: 400, Height: 400}
	v := Viewport{CenterRe: 0, CenterIm: 0, Width: 4, Height: 4}

	// Wider than the canvas aspect: width drives.
	wide := ZoomToRect(v, PixelRect{X: 0, Y: 0, Width: 200, Height: 50}, canvas)
	if math.Abs(wide.Width-2) > epsilon {
		t.Errorf("wide selection width = %v, want 2", wide.Width)
	}

	// Taller than the canvas aspect: height drives.
	tall := ZoomToRect(v, PixelRect{X: 0, Y: 0, Width: 50, Height: 200}, canvas)
	if math.Abs(tall.Height-2) > epsilon {
		t.Errorf("tall selection height = %v, want 2", tall.Height)
	}
}

func TestZoomToRectDegenerateInputs(t *testing.T) {
	v := Viewport{CenterRe: -0.5, CenterIm: 0, Width: 3, Height: 2}

	tests := []struct {
		name   string
		sel    PixelRect
		canvas CanvasSize
	}{
		{"zero-area selection", PixelRect{X: 10, Y: 10}, CanvasSize{Width: 800, Height: 450}},
		{"zero-width selection", PixelRect{X: 10, Y: 10, Height: 50}, CanvasSize{Width: 800, Height: 450}},
		{"zero canvas", PixelRect{X: 10, Y: 10, Width: 50, Height: 50}, CanvasSize{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ZoomToRect(v, tt.sel, tt.canvas)
			if !got.IsFinite() {
				t.Errorf("degenerate input produced %+v", got)
			}
		})
	}
}

func TestZoomTowardPoint(t *testing.T) {
	const epsilon = 1e-12
	v := HomeViewport(2)
	target := Pt(-0.75, 0.1)

	got := ZoomTowardPoint(v, target, 2, 2)
	if math.Abs(got.Width-v.Width/2) > epsilon {
		t.Errorf("width = %v, want %v", got.Width, v.Width/2)
	}
	if got.CenterRe != target.Re || got.CenterIm != target.Im {
		t.Errorf("center = (%v,%v), want target", got.CenterRe, got.CenterIm)
	}
	if math.Abs(got.AspectRatio()-2) > epsilon {
		t.Errorf("aspect = %v, want 2", got.AspectRatio())
	}
}

func TestHoldZoomTrajectory(t *testing.T) {
	const epsilon = 1e-12
	start := HomeViewport(16.0 / 9.0)
	target := Pt(-0.74275, 0.13175)
	aspect := 16.0 / 9.0

	t.Run("center snaps immediately", func(t *testing.T) {
		got := HoldZoomTrajectory(start, target, aspect, 0, 1)
		if got.CenterRe != target.Re || got.CenterIm != target.Im {
			t.Errorf("center = (%v,%v), want target from the first frame", got.CenterRe, got.CenterIm)
		}
		if math.Abs(got.Width-start.Width) > epsilon {
			t.Errorf("width at t=0 is %v, want %v", got.Width, start.Width)
		}
	})

	t.Run("span shrinks exponentially", func(t *testing.T) {
		one := HoldZoomTrajectory(start, target, aspect, 1, 0.5)
		two := HoldZoomTrajectory(start, target, aspect, 2, 0.5)
		wantOne := start.Width * math.Exp(-0.5)
		if math.Abs(one.Width-wantOne) > epsilon {
			t.Errorf("width(1s) = %v, want %v", one.Width, wantOne)
		}
		// Equal time steps shrink by equal ratios.
		r1 := one.Width / start.Width
		r2 := two.Width / one.Width
		if math.Abs(r1-r2) > 1e-9 {
			t.Errorf("ratios differ: %v vs %v", r1, r2)
		}
	})

	t.Run("long holds stay positive", func(t *testing.T) {
		got := HoldZoomTrajectory(start, target, aspect, 10000, 1)
		if !got.IsFinite() {
			t.Errorf("deep hold produced %+v", got)
		}
	})
}
