// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"testing"

	"github.com/gogpu/mandel"
)

func testSettings() mandel.Settings {
	s := mandel.DefaultSettings()
	s.MaxIterations = 64
	return s
}

func TestSoftwareDrawHomeView(t *testing.T) {
	s := NewSoftware(64, 64)
	defer s.Close()

	view := mandel.HomeViewport(1)
	if _, err := s.Draw(view, testSettings()); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	img := s.Image()
	// Every pixel is opaque.
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("pixel %d alpha = %#x, want 0xff", i/4, img.Pix[i])
		}
	}

	// The canvas center maps near (-0.5, 0), inside the set: black.
	cr, cg, cb, _ := img.At(32, 32).RGBA()
	if cr != 0 || cg != 0 || cb != 0 {
		t.Errorf("center pixel = (%d, %d, %d), want black", cr, cg, cb)
	}

	// A corner maps far outside the set: colored by the ramp, not black.
	kr, kg, kb, _ := img.At(0, 0).RGBA()
	if kr == 0 && kg == 0 && kb == 0 {
		t.Error("corner pixel is black; expected an escaped color")
	}
}

func TestSoftwareDrawDeterministic(t *testing.T) {
	s := NewSoftware(48, 32, WithWorkers(3))
	defer s.Close()

	view := mandel.HomeViewport(1.5)
	set := testSettings()
	if _, err := s.Draw(view, set); err != nil {
		t.Fatal(err)
	}
	first := append([]byte(nil), s.Image().Pix...)
	if _, err := s.Draw(view, set); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, s.Image().Pix) {
		t.Error("two identical draws produced different pixels")
	}
}

func TestSoftwarePreviewFillsFullTarget(t *testing.T) {
	s := NewSoftware(64, 64)
	defer s.Close()

	set := testSettings()
	set.Preview = true
	if _, err := s.Draw(mandel.HomeViewport(1), set); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	img := s.Image()
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("target resized by preview: %v", img.Bounds())
	}
	// Upscaling still yields an opaque full-coverage frame.
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 {
			t.Fatal("preview frame left transparent pixels")
		}
	}
}

func TestSoftwarePreviewScaleOne(t *testing.T) {
	// Scale 1 renders previews at full resolution; output must match a
	// non-preview draw of the same view.
	s := NewSoftware(32, 32, WithPreviewScale(1))
	defer s.Close()

	view := mandel.HomeViewport(1)
	set := testSettings()
	if _, err := s.Draw(view, set); err != nil {
		t.Fatal(err)
	}
	full := append([]byte(nil), s.Image().Pix...)

	set.Preview = true
	if _, err := s.Draw(view, set); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(full, s.Image().Pix) {
		t.Error("preview at scale 1 differs from the full render")
	}
}

func TestSoftwareSetColorRamp(t *testing.T) {
	s := NewSoftware(16, 16)
	defer s.Close()

	view := mandel.HomeViewport(1)
	set := testSettings()
	if _, err := s.Draw(view, set); err != nil {
		t.Fatal(err)
	}
	classic := append([]byte(nil), s.Image().Pix...)

	if err := s.SetColorRamp("grayscale"); err != nil {
		t.Fatalf("SetColorRamp: %v", err)
	}
	if _, err := s.Draw(view, set); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(classic, s.Image().Pix) {
		t.Error("ramp change did not affect the output")
	}

	// Unknown names fall back rather than failing.
	if err := s.SetColorRamp("no-such-ramp"); err != nil {
		t.Errorf("unknown ramp returned error: %v", err)
	}
}

func TestSoftwareResize(t *testing.T) {
	s := NewSoftware(32, 32)
	defer s.Close()

	before := s.Target()
	s.Resize(32, 32)
	if s.Target() != before {
		t.Error("same-size resize replaced the target")
	}

	s.Resize(64, 48)
	if s.Target() == before {
		t.Error("resize kept the old target")
	}
	if s.Target().Width() != 64 || s.Target().Height() != 48 {
		t.Errorf("target = %dx%d, want 64x48", s.Target().Width(), s.Target().Height())
	}
	if _, err := s.Draw(mandel.HomeViewport(64.0/48.0), testSettings()); err != nil {
		t.Fatalf("draw after resize: %v", err)
	}
}

func TestSoftwareStats(t *testing.T) {
	s := NewSoftware(16, 16)
	defer s.Close()
	stats, err := s.Draw(mandel.HomeViewport(1), testSettings())
	if err != nil {
		t.Fatal(err)
	}
	if stats.RenderTime < 0 {
		t.Errorf("render time = %v", stats.RenderTime)
	}
}

func TestSoftwareTinyTargets(t *testing.T) {
	for _, size := range []struct{ w, h int }{{1, 1}, {1, 8}, {8, 1}, {3, 3}} {
		s := NewSoftware(size.w, size.h)
		set := testSettings()
		set.Preview = true
		if _, err := s.Draw(mandel.HomeViewport(float64(size.w)/float64(size.h)), set); err != nil {
			t.Errorf("%dx%d preview draw: %v", size.w, size.h, err)
		}
		s.Close()
	}
}

func TestFloatByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := floatByte(tt.in); got != tt.want {
			t.Errorf("floatByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
