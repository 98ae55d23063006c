// Command mandelview is an interactive Mandelbrot explorer.
//
// Pointer gestures: drag a rectangle to zoom into it, click to ease-zoom
// toward a point, press and hold to zoom continuously, right-drag to pan,
// scroll to zoom toward the cursor.
//
// Keys: 1-4 quality, c color ramp, s smooth coloring, g/G gamma, l next
// landmark, r reset, u undo, y redo, p save PNG.
package main

import (
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/history"
	"github.com/gogpu/mandel/render"
)

const (
	initialWidth  = 960
	initialHeight = 540

	// Drags below this many pixels on both axes count as clicks.
	minSelectionPx = 8

	// Pointer travel beyond this distance turns a press into a drag.
	dragThresholdPx = 4

	// Wheel gestures settle after this long without movement.
	wheelIdle = 150 * time.Millisecond
)

var selectionColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}

type app struct {
	surface *render.Software
	sched   *mandel.Scheduler
	hist    *history.Store

	view     mandel.Viewport
	settings mandel.Settings

	width, height int
	frame         *ebiten.Image

	lastStats mandel.Stats

	// Pointer state.
	pointerDown  bool
	downX, downY int
	dragging     bool
	curX, curY   int
	panning      bool
	panX, panY   int
	wheelActive  bool
	lastWheel    time.Time

	landmark int
}

func newApp() *app {
	a := &app{
		surface: render.NewSoftware(initialWidth, initialHeight),
		hist:    history.New(0),
		width:   initialWidth,
		height:  initialHeight,
		frame:   ebiten.NewImage(initialWidth, initialHeight),
	}
	a.sched = mandel.NewScheduler(a.surface,
		mandel.WithCompletion(func(v mandel.Viewport) {
			a.view = v
			a.hist.Push(v)
		}),
		mandel.WithStats(func(st mandel.Stats) { a.lastStats = st }),
	)
	a.settings = mandel.DefaultSettings()
	a.view = mandel.HomeViewport(a.aspect())
	a.hist.Push(a.view)
	return a
}

func (a *app) aspect() float64 {
	return float64(a.width) / float64(a.height)
}

func (a *app) canvas() mandel.CanvasSize {
	return mandel.CanvasSize{Width: float64(a.width), Height: float64(a.height)}
}

func (a *app) render() {
	if err := a.sched.RequestRender(a.view, a.settings); err != nil {
		log.Printf("render: %v", err)
	}
}

func (a *app) Update() error {
	a.handleKeys()
	a.handlePointer()
	a.handleWheel()

	if err := a.sched.Tick(time.Now()); err != nil {
		log.Printf("tick: %v", err)
	}
	return nil
}

func (a *app) handlePointer() {
	mx, my := ebiten.CursorPosition()
	a.curX, a.curY = mx, my

	// Right button pans.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.panning = true
		a.panX, a.panY = mx, my
		a.sched.BeginInteraction()
	}
	if a.panning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if mx != a.panX || my != a.panY {
			dRe := float64(mx-a.panX) / float64(a.width) * a.view.Width
			dIm := float64(my-a.panY) / float64(a.height) * a.view.Height
			a.view.CenterRe -= dRe
			a.view.CenterIm += dIm
			a.panX, a.panY = mx, my
			a.render()
		}
	}
	if a.panning && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		a.panning = false
		a.sched.EndInteraction()
	}

	// Left button: selection zoom, click zoom, hold zoom.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.pointerDown = true
		a.dragging = false
		a.downX, a.downY = mx, my
		target := a.view.PixelToPlane(float64(mx), float64(my), float64(a.width), float64(a.height))
		a.sched.ArmHoldZoom(target, nil)
	}

	if a.pointerDown && !a.dragging {
		if abs(mx-a.downX) > dragThresholdPx || abs(my-a.downY) > dragThresholdPx {
			a.dragging = true
			// Cancels the pending hold-zoom before it can fire.
			a.sched.BeginInteraction()
		}
	}

	if a.pointerDown && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.pointerDown = false
		switch {
		case a.dragging:
			a.dragging = false
			sel := selectionRect(a.downX, a.downY, mx, my)
			if sel.Width >= minSelectionPx && sel.Height >= minSelectionPx {
				a.view = mandel.ZoomToRect(a.view, sel, a.canvas())
				a.render()
			}
			a.sched.EndInteraction()

		case a.sched.Phase() == mandel.PhaseHoldZooming:
			if err := a.sched.StopHoldZoom(); err != nil {
				log.Printf("hold zoom: %v", err)
			}

		default:
			// Quick click: the hold never engaged, discard its arm and
			// ease toward the point instead.
			if err := a.sched.StopHoldZoom(); err != nil {
				log.Printf("hold zoom: %v", err)
			}
			target := a.view.PixelToPlane(float64(a.downX), float64(a.downY), float64(a.width), float64(a.height))
			to := mandel.ZoomTowardPoint(a.view, target, a.settings.ZoomFactor, a.aspect())
			a.sched.AnimateZoom(to, nil)
		}
	}
}

func (a *app) handleWheel() {
	_, dy := ebiten.Wheel()
	if dy != 0 {
		if !a.wheelActive {
			a.wheelActive = true
			a.sched.BeginInteraction()
		}
		a.lastWheel = time.Now()

		mx, my := ebiten.CursorPosition()
		cursor := a.view.PixelToPlane(float64(mx), float64(my), float64(a.width), float64(a.height))
		// Shrink around the cursor so the plane point under it stays put.
		f := math.Pow(1.1, dy)
		a.view = mandel.Viewport{
			CenterRe: cursor.Re - (cursor.Re-a.view.CenterRe)/f,
			CenterIm: cursor.Im - (cursor.Im-a.view.CenterIm)/f,
			Width:    a.view.Width / f,
			Height:   a.view.Height / f,
		}
		a.render()
	}
	if a.wheelActive && time.Since(a.lastWheel) > wheelIdle {
		a.wheelActive = false
		a.sched.EndInteraction()
	}
}

func (a *app) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		a.setQuality(mandel.QualityLow)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		a.setQuality(mandel.QualityMedium)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		a.setQuality(mandel.QualityHigh)
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		a.setQuality(mandel.QualityUltra)

	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		names := mandel.RampNames()
		for i, name := range names {
			if name == a.settings.Ramp {
				a.settings.Ramp = names[(i+1)%len(names)]
				break
			}
		}
		a.render()

	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.settings.SmoothColoring = !a.settings.SmoothColoring
		a.render()

	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			a.settings.Gamma = min(4.0, a.settings.Gamma*1.25)
		} else {
			a.settings.Gamma = max(0.25, a.settings.Gamma/1.25)
		}
		a.render()

	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		a.landmark = (a.landmark + 1) % len(mandel.Landmarks)
		to := mandel.Landmarks[a.landmark].Viewport(a.aspect())
		a.sched.AnimateZoom(to, nil)

	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.sched.Cancel()
		a.view = mandel.HomeViewport(a.aspect())
		a.hist.Push(a.view)
		a.render()

	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		if v, ok := a.hist.Undo(); ok {
			a.sched.Cancel()
			a.view = v
			a.render()
		}

	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		if v, ok := a.hist.Redo(); ok {
			a.sched.Cancel()
			a.view = v
			a.render()
		}

	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		name := fmt.Sprintf("mandel-%d.png", time.Now().Unix())
		if err := a.surface.Target().SavePNG(name); err != nil {
			log.Printf("save: %v", err)
		} else {
			log.Printf("saved %s", name)
		}
	}
}

func (a *app) setQuality(q mandel.Quality) {
	a.settings.Quality = q
	a.settings.MaxIterations = q.Iterations()
	a.render()
}

func (a *app) Draw(screen *ebiten.Image) {
	a.frame.WritePixels(a.surface.Image().Pix)
	screen.DrawImage(a.frame, nil)

	if a.dragging {
		sel := selectionRect(a.downX, a.downY, a.curX, a.curY)
		vector.StrokeRect(screen,
			float32(sel.X), float32(sel.Y), float32(sel.Width), float32(sel.Height),
			1, selectionColor, false)
	}

	hud := fmt.Sprintf("zoom %.3g  iter %d (%s)  ramp %s  gamma %.2f  %0.fms  [%s]",
		a.view.ZoomFactor(),
		a.settings.MaxIterations, a.settings.Quality,
		a.settings.Ramp, a.settings.Gamma,
		float64(a.lastStats.RenderTime)/float64(time.Millisecond),
		a.sched.Phase())
	ebitenutil.DebugPrint(screen, hud)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.surface.Resize(a.width, a.height)
		a.frame = ebiten.NewImage(a.width, a.height)
		// Preserve the vertical span, rederive the horizontal one.
		a.view.Width = a.view.Height * a.aspect()
		a.render()
	}
	return a.width, a.height
}

func selectionRect(x0, y0, x1, y1 int) mandel.PixelRect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return mandel.PixelRect{
		X:      float64(x0),
		Y:      float64(y0),
		Width:  float64(x1 - x0),
		Height: float64(y1 - y0),
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func main() {
	if os.Getenv("MANDEL_DEBUG") != "" {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	a := newApp()
	defer a.surface.Close()
	a.render()

	ebiten.SetWindowSize(initialWidth, initialHeight)
	ebiten.SetWindowTitle("mandelview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
