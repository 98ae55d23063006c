// Package mandel provides the viewport and render-scheduling core of an
// interactive Mandelbrot set explorer.
//
// # Overview
//
// mandel maps screen pixels onto the complex plane, plans zoom gestures,
// computes escape times with smooth coloring, and schedules renders across
// competing interaction episodes (dragging, click-to-zoom animation,
// hold-zoom, settle-then-refine). Pixel output goes through a pluggable
// rendering surface; a CPU surface lives in render/ and a WebGPU compute
// surface in gpu/.
//
// # Quick Start
//
//	surface := render.NewSoftware(800, 450)
//	sched := mandel.NewScheduler(surface)
//
//	view := mandel.HomeViewport(16.0 / 9.0)
//	if err := sched.RequestRender(view, mandel.DefaultSettings()); err != nil {
//	    log.Fatal(err)
//	}
//
// The host drives the scheduler from its frame loop by calling Tick once
// per displayed frame. All scheduling is cooperative and single-threaded;
// the scheduler never spawns goroutines.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Viewport, zoom planning, escape-time kernel, Scheduler
//   - render/: Surface interface, software renderer, render targets
//   - gpu/: WebGPU compute surface mirroring the escape-time math in WGSL
//   - history/: viewport undo/redo store
package mandel
