package mandel

import "math"

// ZoomToRect derives the viewport that displays the drag-selected region.
//
// The selection's pixel center, mapped through the current viewport, becomes
// the new center. The new spans are scaled by the selection's fraction of
// the canvas along whichever axis the selection more closely matches the
// canvas aspect ratio; the other axis is derived from the canvas aspect
// ratio. The result is therefore always aspect-locked to the canvas, never
// to the selection, so a free-form drag cannot distort the view.
//
// Selections below a minimum useful size are a caller policy (treat as a
// click); ZoomToRect itself accepts arbitrarily small rectangles and
// produces arbitrarily small but always positive, finite viewports.
func ZoomToRect(v Viewport, sel PixelRect, canvas CanvasSize) Viewport {
	cx, cy := sel.Center()
	center := v.PixelToPlane(cx, cy, canvas.Width, canvas.Height)

	canvasAspect := canvas.AspectRatio()
	selAspect := sel.Width / sel.Height

	var w, h float64
	if selAspect > canvasAspect {
		// Selection relatively wider than the canvas: drive from width.
		w = v.Width * (sel.Width / canvas.Width)
		h = w / canvasAspect
	} else {
		h = v.Height * (sel.Height / canvas.Height)
		w = h * canvasAspect
	}
	return sanitized(Viewport{
		CenterRe: center.Re,
		CenterIm: center.Im,
		Width:    w,
		Height:   h,
	}, v)
}

// ZoomTowardPoint shrinks the viewport by factor and recenters it on the
// target. Used by click-zoom and as the limit of a hold-zoom step.
func ZoomTowardPoint(v Viewport, target Point, factor, aspectRatio float64) Viewport {
	w := v.Width / factor
	return sanitized(Viewport{
		CenterRe: target.Re,
		CenterIm: target.Im,
		Width:    w,
		Height:   w / aspectRatio,
	}, v)
}

// HoldZoomTrajectory evaluates a continuous zoom toward a fixed target.
// The span shrinks exponentially with elapsed time while the center snaps
// to the target from the first evaluation: the target does not move during
// a hold, so only the span animates.
func HoldZoomTrajectory(start Viewport, target Point, aspectRatio, elapsedSeconds, ratePerSecond float64) Viewport {
	w := start.Width * math.Exp(-ratePerSecond*elapsedSeconds)
	return sanitized(Viewport{
		CenterRe: target.Re,
		CenterIm: target.Im,
		Width:    w,
		Height:   w / aspectRatio,
	}, start)
}

// sanitized guards the planner's outputs against degenerate inputs
// (zero-area selections, zero canvas dimensions). A non-finite viewport is
// a defect, never a valid output: non-finite centers fall back to the
// previous viewport's center and non-positive or non-finite spans collapse
// to the smallest representable positive span.
func sanitized(v, prev Viewport) Viewport {
	if v.IsFinite() {
		return v
	}
	if math.IsNaN(v.CenterRe) || math.IsInf(v.CenterRe, 0) {
		v.CenterRe = prev.CenterRe
	}
	if math.IsNaN(v.CenterIm) || math.IsInf(v.CenterIm, 0) {
		v.CenterIm = prev.CenterIm
	}
	if !(v.Width > 0) || math.IsInf(v.Width, 0) {
		v.Width = math.SmallestNonzeroFloat64
	}
	if !(v.Height > 0) || math.IsInf(v.Height, 0) {
		v.Height = math.SmallestNonzeroFloat64
	}
	return v
}
