package mandel

import (
	"math"

	"github.com/gogpu/mandel/internal/parallel"
)

// Escape-time constants. An orbit diverges once |z|^2 exceeds
// bailoutRadius^2; by construction |z| > bailoutRadius at the moment of
// escape, so the logarithm in the smooth formula is taken of a magnitude
// strictly greater than 2.
const (
	bailoutRadius   = 2.0
	bailoutRadiusSq = bailoutRadius * bailoutRadius

	// magnitudeFloor keeps externally supplied magnitudes away from 1,
	// where ln approaches 0 and the smooth ratio diverges. Magnitudes
	// produced by the iteration loop never need it.
	magnitudeFloor = 1.0 + 1e-9
)

// EscapeResult is the outcome of iterating a single plane point.
// Smooth is meaningful only when Escaped is true; it then lies roughly in
// [Iterations, Iterations+1). Interior points report the full budget for
// both fields, so the integer and smooth kernels agree at the boundary.
type EscapeResult struct {
	Iterations int
	Smooth     float64
	Escaped    bool
}

// EscapeIterations iterates z <- z^2 + c from z = 0 for c = (re, im) and
// returns the iteration index at which the orbit first exceeded the bailout
// magnitude, or maxIterations if it never did within the budget.
//
// A zero budget yields maxIterations immediately, which is consistent:
// nothing escaped within zero iterations.
func EscapeIterations(re, im float64, maxIterations int) int {
	var zr, zi float64
	for i := 0; i < maxIterations; i++ {
		zr, zi = zr*zr-zi*zi+re, 2*zr*zi+im
		if zr*zr+zi*zi > bailoutRadiusSq {
			return i
		}
	}
	return maxIterations
}

// SmoothEscape is the continuous refinement of EscapeIterations. Discrete
// counts band visibly in the final coloring; the logarithmic correction
// estimates the fractional iteration at which the continuous orbit would
// have crossed the bailout threshold. The result is clamped to the budget
// and interior points return exactly float64(maxIterations).
func SmoothEscape(re, im float64, maxIterations int) float64 {
	var zr, zi float64
	for i := 0; i < maxIterations; i++ {
		zr, zi = zr*zr-zi*zi+re, 2*zr*zi+im
		magSq := zr*zr + zi*zi
		if magSq > bailoutRadiusSq {
			return min(SmoothIteration(i, math.Sqrt(magSq)), float64(maxIterations))
		}
	}
	return float64(maxIterations)
}

// SmoothIteration computes the fractional escape value for an orbit that
// crossed the bailout at iteration i with the given magnitude. It is the
// single formula shared with the GPU mirror; both sides route magnitudes
// through ClampMagnitude so the log-domain guard is identical everywhere.
func SmoothIteration(i int, magnitude float64) float64 {
	return float64(i) + 1 - math.Log(bailoutRadius)/math.Log(ClampMagnitude(magnitude))
}

// ClampMagnitude clamps a magnitude away from 1 before it is fed to a
// logarithm. Magnitudes produced by the iteration loop are always greater
// than the bailout radius, but mirrored implementations hand in raw values;
// this guard is their side of the contract, applied here so both sides use
// the same constant.
func ClampMagnitude(magnitude float64) float64 {
	return max(magnitude, magnitudeFloor)
}

// Escape iterates a single point and returns the full result. The smooth
// value is computed only when requested; with smooth false it mirrors the
// integer kernel.
func Escape(p Point, maxIterations int, smooth bool) EscapeResult {
	var zr, zi float64
	for i := 0; i < maxIterations; i++ {
		zr, zi = zr*zr-zi*zi+p.Re, 2*zr*zi+p.Im
		magSq := zr*zr + zi*zi
		if magSq > bailoutRadiusSq {
			r := EscapeResult{Iterations: i, Smooth: float64(i), Escaped: true}
			if smooth {
				r.Smooth = min(SmoothIteration(i, math.Sqrt(magSq)), float64(maxIterations))
			}
			return r
		}
	}
	return EscapeResult{Iterations: maxIterations, Smooth: float64(maxIterations)}
}

// BatchEscape iterates every point and returns one result per input point,
// order-preserving. Each point is independent, so the batch is computed in
// parallel when the batch is large enough to pay for the fan-out.
func BatchEscape(points []Point, maxIterations int, smooth bool) []EscapeResult {
	results := make([]EscapeResult, len(points))
	if len(points) < batchParallelThreshold {
		for i, p := range points {
			results[i] = Escape(p, maxIterations, smooth)
		}
		return results
	}
	parallel.ForEach(len(points), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			results[i] = Escape(points[i], maxIterations, smooth)
		}
	})
	return results
}

// batchParallelThreshold is the batch size below which the goroutine
// fan-out costs more than it saves.
const batchParallelThreshold = 4096
