// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/internal/parallel"
)

// DefaultPreviewScale is the resolution divisor for preview frames.
// Interactive renders compute a quarter of the pixels and upscale.
const DefaultPreviewScale = 2

// Software is the CPU rendering surface. It implements mandel.Surface by
// iterating every pixel through the escape-time kernel and mapping the
// results through the active color ramp, split into row bands across a
// worker pool.
//
// Preview frames (Settings.Preview) render at reduced resolution and are
// scaled up to the full target, trading sharpness for latency while an
// interaction is driving the view.
//
// Thread safety: Draw and SetColorRamp are NOT safe for concurrent use.
// The scheduler drives a surface one request at a time, which is the
// intended usage.
type Software struct {
	target  *PixmapTarget
	scratch *image.RGBA // reduced-resolution buffer for preview frames
	ramp    mandel.Ramp
	pool    *parallel.Pool
	scale   int
}

var _ mandel.Surface = (*Software)(nil)

// SoftwareOption configures a Software surface during creation.
type SoftwareOption func(*Software)

// WithWorkers sets the number of render workers. Zero or negative means
// GOMAXPROCS.
func WithWorkers(n int) SoftwareOption {
	return func(s *Software) {
		s.pool.Close()
		s.pool = parallel.NewPool(n)
	}
}

// WithPreviewScale sets the resolution divisor for preview frames.
// A scale of 1 disables preview downscaling.
func WithPreviewScale(scale int) SoftwareOption {
	return func(s *Software) {
		if scale >= 1 {
			s.scale = scale
		}
	}
}

// NewSoftware creates a software surface rendering into a width x height
// pixmap.
func NewSoftware(width, height int, opts ...SoftwareOption) *Software {
	s := &Software{
		target: NewPixmapTarget(width, height),
		ramp:   mandel.RampByName("classic"),
		pool:   parallel.NewPool(0),
		scale:  DefaultPreviewScale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draw renders the viewport into the surface's target and reports timing.
func (s *Software) Draw(v mandel.Viewport, set mandel.Settings) (mandel.Stats, error) {
	start := time.Now()

	img := s.target.Image()
	if set.Preview && s.scale > 1 {
		small := s.previewBuffer()
		s.renderInto(small, v, set)
		draw.ApproxBiLinear.Scale(img, img.Bounds(), small, small.Bounds(), draw.Src, nil)
	} else {
		s.renderInto(img, v, set)
	}

	stats := mandel.Stats{RenderTime: time.Since(start)}
	mandel.Logger().Debug("render: software draw",
		slog.Bool("preview", set.Preview),
		slog.Int("iterations", set.MaxIterations),
		slog.Duration("render_time", stats.RenderTime))
	return stats, nil
}

// SetColorRamp switches the active ramp. Unknown names fall back to the
// classic ramp.
func (s *Software) SetColorRamp(name string) error {
	s.ramp = mandel.RampByName(name)
	return nil
}

// renderInto computes one pixel per texel of img, mapping through the
// image's own dimensions so a reduced-resolution buffer still covers the
// full viewport.
func (s *Software) renderInto(img *image.RGBA, v mandel.Viewport, set mandel.Settings) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	fw, fh := float64(w), float64(h)

	bands := s.pool.Workers() * 2
	if bands > h {
		bands = h
	}
	if bands < 1 {
		bands = 1
	}
	size := (h + bands - 1) / bands

	var wg sync.WaitGroup
	for lo := 0; lo < h; lo += size {
		hi := lo + size
		if hi > h {
			hi = h
		}
		wg.Add(1)
		s.pool.Submit(func() {
			defer wg.Done()
			for py := lo; py < hi; py++ {
				row := img.Pix[py*img.Stride : py*img.Stride+w*4]
				for px := 0; px < w; px++ {
					// Sample the pixel center.
					p := v.PixelToPlane(float64(px)+0.5, float64(py)+0.5, fw, fh)
					res := mandel.Escape(p, set.MaxIterations, set.SmoothColoring)
					c := s.ramp.ColorFor(res, set)
					i := px * 4
					row[i+0] = floatByte(c.R)
					row[i+1] = floatByte(c.G)
					row[i+2] = floatByte(c.B)
					row[i+3] = 0xff
				}
			}
		})
	}
	wg.Wait()
}

// previewBuffer returns the reduced-resolution scratch image, reallocating
// when the target or scale changed.
func (s *Software) previewBuffer() *image.RGBA {
	w := s.target.Width() / s.scale
	h := s.target.Height() / s.scale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.scratch == nil || s.scratch.Bounds().Dx() != w || s.scratch.Bounds().Dy() != h {
		s.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return s.scratch
}

// Target returns the surface's render target.
func (s *Software) Target() *PixmapTarget {
	return s.target
}

// Image returns the full-resolution frame.
func (s *Software) Image() *image.RGBA {
	return s.target.Image()
}

// Resize replaces the target with a new width x height pixmap. The next
// Draw fills it; until then the pixels are zero.
func (s *Software) Resize(width, height int) {
	if width == s.target.Width() && height == s.target.Height() {
		return
	}
	s.target = NewPixmapTarget(width, height)
	s.scratch = nil
}

// Close stops the worker pool. The surface must not be used after Close.
func (s *Software) Close() {
	s.pool.Close()
}

func floatByte(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(x*255 + 0.5)
}
