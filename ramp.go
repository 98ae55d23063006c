package mandel

import (
	"math"
	"sort"
)

// ColorStop represents a color at a specific position in a ramp.
type ColorStop struct {
	Offset float64 // Position in the ramp, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Ramp maps normalized escape values to colors through a set of stops.
// Stops are sorted at construction; a Ramp is immutable afterwards.
type Ramp struct {
	name  string
	stops []ColorStop
}

// NewRamp creates a ramp from stops. The stops are copied and sorted by
// offset.
func NewRamp(name string, stops ...ColorStop) Ramp {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return Ramp{name: name, stops: sorted}
}

// Name returns the ramp's registry name.
func (r Ramp) Name() string { return r.name }

// At returns the interpolated color at t. t is clamped to [0,1];
// interpolation between stops happens in linear sRGB space.
func (r Ramp) At(t float64) RGBA {
	stops := r.stops
	if len(stops) == 0 {
		return RGBA{A: 1}
	}
	t = clamp01(t)
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			span := stops[i].Offset - stops[i-1].Offset
			if span <= 0 {
				return stops[i].Color
			}
			return lerpLinear(stops[i-1].Color, stops[i].Color, (t-stops[i-1].Offset)/span)
		}
	}
	return last.Color
}

// ColorFor maps one kernel result to a color under the given settings.
// Interior points are black. Escaped points normalize the smooth or
// discrete value by the iteration budget and apply the gamma curve before
// the ramp lookup.
func (r Ramp) ColorFor(res EscapeResult, s Settings) RGBA {
	if !res.Escaped {
		return RGB(0, 0, 0)
	}
	v := float64(res.Iterations)
	if s.SmoothColoring {
		v = res.Smooth
	}
	t := v / float64(s.MaxIterations)
	if s.Gamma > 0 && s.Gamma != 1 {
		t = math.Pow(clamp01(t), 1/s.Gamma)
	}
	return r.At(t)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Named ramps. RampByName falls back to the classic ramp for unknown names
// so a stale settings snapshot can never leave the surface without colors.
var namedRamps = map[string]Ramp{
	"classic": NewRamp("classic",
		ColorStop{Offset: 0.0, Color: RGB(0.000, 0.027, 0.392)},
		ColorStop{Offset: 0.16, Color: RGB(0.125, 0.420, 0.796)},
		ColorStop{Offset: 0.42, Color: RGB(0.929, 1.000, 1.000)},
		ColorStop{Offset: 0.6425, Color: RGB(1.000, 0.667, 0.000)},
		ColorStop{Offset: 0.8575, Color: RGB(0.000, 0.008, 0.000)},
		ColorStop{Offset: 1.0, Color: RGB(0.000, 0.027, 0.392)},
	),
	"fire": NewRamp("fire",
		ColorStop{Offset: 0.0, Color: RGB(0, 0, 0)},
		ColorStop{Offset: 0.25, Color: RGB(0.545, 0.000, 0.000)},
		ColorStop{Offset: 0.55, Color: RGB(1.000, 0.549, 0.000)},
		ColorStop{Offset: 0.85, Color: RGB(1.000, 0.980, 0.604)},
		ColorStop{Offset: 1.0, Color: RGB(1, 1, 1)},
	),
	"ocean": NewRamp("ocean",
		ColorStop{Offset: 0.0, Color: RGB(0.000, 0.000, 0.200)},
		ColorStop{Offset: 0.35, Color: RGB(0.000, 0.300, 0.600)},
		ColorStop{Offset: 0.70, Color: RGB(0.200, 0.800, 0.800)},
		ColorStop{Offset: 1.0, Color: RGB(0.900, 1.000, 1.000)},
	),
	"grayscale": NewRamp("grayscale",
		ColorStop{Offset: 0.0, Color: RGB(0, 0, 0)},
		ColorStop{Offset: 1.0, Color: RGB(1, 1, 1)},
	),
}

// RampByName returns the named ramp, or the classic ramp if the name is
// unknown.
func RampByName(name string) Ramp {
	if r, ok := namedRamps[name]; ok {
		return r
	}
	return namedRamps["classic"]
}

// RampNames returns the registered ramp names in sorted order.
func RampNames() []string {
	names := make([]string, 0, len(namedRamps))
	for name := range namedRamps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
