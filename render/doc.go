// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render provides rendering surfaces and targets for mandel.
//
// A Surface turns a viewport and settings snapshot into pixels. The
// software surface in this package is the CPU reference path: it iterates
// every pixel through the escape-time kernel and a color ramp, in parallel
// row bands, optionally at reduced resolution for interactive preview
// frames. GPU rendering lives in the gpu/ package; this package defines the
// device handle and target abstractions both share.
package render
