package mandel

import "math"

// Home view constants. The home viewport frames the canonical bounding box
// of the set (re in [-2,1], im in [-1.5,1.5]) with a small margin, centered
// on the main body rather than the origin.
const (
	homeSpan     = 3.0
	homePadding  = 1.05
	homeCenterRe = -0.5
	homeCenterIm = 0.0
)

// Point is a point on the complex plane.
type Point struct {
	Re, Im float64
}

// Pt is a convenience function to create a Point.
func Pt(re, im float64) Point {
	return Point{Re: re, Im: im}
}

// Viewport is an axis-aligned rectangular window on the complex plane,
// centered at (CenterRe, CenterIm) and spanning Width x Height.
//
// Viewport is an immutable value type: every transform returns a new
// instance. Both spans must be positive. Viewports produced by the zoom
// planner match the aspect ratio of the canvas they were planned for;
// hand-built viewports are not required to.
type Viewport struct {
	CenterRe, CenterIm float64
	Width, Height      float64
}

// CanvasSize is the drawable size of the rendering surface in pixels.
type CanvasSize struct {
	Width, Height float64
}

// AspectRatio returns width over height.
func (c CanvasSize) AspectRatio() float64 {
	return c.Width / c.Height
}

// PixelRect is a rectangle in screen-pixel space. The origin is the top-left
// corner of the canvas and y grows downward.
type PixelRect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the pixel-space center of the rectangle.
func (r PixelRect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Bounds describes the plane-space edges of a viewport.
// Top is always the larger imaginary value, so Top > Bottom.
type Bounds struct {
	Left, Right float64
	Top, Bottom float64
}

// HomeViewport returns the default view for a canvas with the given aspect
// ratio. The result always contains the canonical bounding box of the set
// regardless of orientation: the width is taken from whichever axis is
// wider, so the narrower screen axis never drops below the canonical span.
func HomeViewport(aspectRatio float64) Viewport {
	w := homeSpan * homePadding
	if aspectRatio > 1 {
		w = homeSpan * aspectRatio * homePadding
	}
	return Viewport{
		CenterRe: homeCenterRe,
		CenterIm: homeCenterIm,
		Width:    w,
		Height:   w / aspectRatio,
	}
}

// Bounds returns the plane-space edges of the viewport.
func (v Viewport) Bounds() Bounds {
	return Bounds{
		Left:   v.CenterRe - v.Width/2,
		Right:  v.CenterRe + v.Width/2,
		Top:    v.CenterIm + v.Height/2,
		Bottom: v.CenterIm - v.Height/2,
	}
}

// AspectRatio returns width over height.
func (v Viewport) AspectRatio() float64 {
	return v.Width / v.Height
}

// ZoomFactor returns the magnification of the viewport relative to the home
// span. The home view reports roughly 1.0; the value grows without bound as
// the view narrows and stays finite and positive for any positive spans.
func (v Viewport) ZoomFactor() float64 {
	return homeSpan / min(v.Width, v.Height)
}

// PixelToPlane maps a pixel coordinate to the plane point it displays.
//
// Pixels outside [0,canvasW] x [0,canvasH] extrapolate linearly rather than
// clamp; hover readouts near the canvas edges rely on this.
func (v Viewport) PixelToPlane(px, py, canvasW, canvasH float64) Point {
	nx := px / canvasW
	ny := py / canvasH
	return Point{
		Re: v.CenterRe - v.Width/2 + nx*v.Width,
		// Pixel y grows downward, the imaginary axis grows upward.
		Im: v.CenterIm + v.Height/2 - ny*v.Height,
	}
}

// PlaneToPixel maps a plane point to the pixel coordinate that displays it.
// It is the exact algebraic inverse of PixelToPlane: composing the two in
// either order is the identity to floating-point precision.
func (v Viewport) PlaneToPixel(p Point, canvasW, canvasH float64) (x, y float64) {
	nx := (p.Re - v.CenterRe + v.Width/2) / v.Width
	ny := (v.CenterIm + v.Height/2 - p.Im) / v.Height
	return nx * canvasW, ny * canvasH
}

// IsFinite reports whether every field of the viewport is a finite number
// and both spans are positive.
func (v Viewport) IsFinite() bool {
	for _, f := range [4]float64{v.CenterRe, v.CenterIm, v.Width, v.Height} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return v.Width > 0 && v.Height > 0
}
