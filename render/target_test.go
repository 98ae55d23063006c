// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
)

var _ Target = (*PixmapTarget)(nil)

func TestPixmapTargetGeometry(t *testing.T) {
	pt := NewPixmapTarget(64, 48)
	if pt.Width() != 64 || pt.Height() != 48 {
		t.Errorf("size = %dx%d, want 64x48", pt.Width(), pt.Height())
	}
	if got := pt.Format(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", got)
	}
	if got := pt.Stride(); got != 64*4 {
		t.Errorf("stride = %d, want %d", got, 64*4)
	}
	if got := len(pt.Pixels()); got != 64*48*4 {
		t.Errorf("pixel buffer length = %d, want %d", got, 64*48*4)
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Pix[0] = 0xab
	pt := NewPixmapTargetFromImage(img)
	// Wrapped, not copied.
	if &pt.Pixels()[0] != &img.Pix[0] {
		t.Error("target copied the backing image")
	}
	if pt.Pixels()[0] != 0xab {
		t.Errorf("pixel = %#x, want 0xab", pt.Pixels()[0])
	}
	if pt.Image() != img {
		t.Error("Image() returned a different image")
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	pt := NewPixmapTarget(16, 9)
	for i := range pt.Pixels() {
		pt.Pixels()[i] = byte(i)
	}

	var buf bytes.Buffer
	if err := pt.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 16 || b.Dy() != 9 {
		t.Errorf("decoded size = %dx%d, want 16x9", b.Dx(), b.Dy())
	}
}

func TestSavePNG(t *testing.T) {
	pt := NewPixmapTarget(4, 4)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := pt.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a valid PNG: %v", err)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	pt := NewPixmapTarget(4, 4)
	if err := pt.SavePNG(filepath.Join(t.TempDir(), "no", "such", "dir", "x.png")); err == nil {
		t.Error("SavePNG to a missing directory succeeded")
	}
}
