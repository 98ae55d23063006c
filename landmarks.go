package mandel

// Landmark is a named region of interest, used as a jump target by viewers.
type Landmark struct {
	Name   string
	Center Point
	Span   float64 // real-axis span of the canonical framing
}

// Classic landmarks of the set.
var Landmarks = []Landmark{
	{Name: "home", Center: Pt(homeCenterRe, homeCenterIm), Span: homeSpan},
	{Name: "seahorse valley", Center: Pt(-0.75, 0.1), Span: 0.1},
	{Name: "elephant valley", Center: Pt(-1.8, -0.06), Span: 0.1},
	{Name: "spiral minibrot", Center: Pt(-0.74275, 0.13175), Span: 0.0015},
	{Name: "triple spiral", Center: Pt(-0.7465, 0.0965), Span: 0.003},
	{Name: "dragon valley", Center: Pt(-0.7375, 0.1825), Span: 0.005},
}

// Viewport frames the landmark for a canvas with the given aspect ratio.
// Like HomeViewport, the narrower screen axis never drops below the
// landmark's span.
func (l Landmark) Viewport(aspectRatio float64) Viewport {
	w := l.Span
	if aspectRatio > 1 {
		w = l.Span * aspectRatio
	}
	return Viewport{
		CenterRe: l.Center.Re,
		CenterIm: l.Center.Im,
		Width:    w,
		Height:   w / aspectRatio,
	}
}
