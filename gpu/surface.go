// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu provides a WebGPU compute surface for mandel.
//
// The escape-time math is mirrored in WGSL (shaders/escape.wgsl) and
// compiled through naga at surface creation, so a broken mirror fails
// fast instead of at first dispatch. The device and queue come from the
// host application; the surface never creates its own.
package gpu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "embed"

	types "github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/render"
)

//go:embed shaders/escape.wgsl
var escapeShaderWGSL string

// ErrGPUUnavailable indicates no usable GPU device was provided. The caller
// should fall back to the software surface.
var ErrGPUUnavailable = errors.New("gpu: device unavailable")

// escapeConfig is the GPU-compatible parameter block.
// Must match the Config struct in escape.wgsl.
type escapeConfig struct {
	Width    uint32
	Height   uint32
	MaxIter  uint32
	Smooth   uint32
	CenterRe float32
	CenterIm float32
	SpanRe   float32
	SpanIm   float32
}

// Surface renders escape values with a WGSL compute kernel and maps them
// through a color ramp into a CPU target.
//
// Dispatch state: pipelines and the parameter buffer are created through
// HAL, but buffer binding for compute dispatch still needs HAL API
// extensions, so Draw computes the escape values on the CPU using the same
// algorithm as the shader. The WGSL mirror is compiled and validated
// either way; the shared ClampMagnitude guard keeps both sides identical.
type Surface struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	handle render.DeviceHandle

	shaderModule hal.ShaderModule
	configLayout hal.BindGroupLayout
	outputLayout hal.BindGroupLayout
	layout       hal.PipelineLayout
	pipeline     hal.ComputePipeline
	configBuffer hal.Buffer
	valueBuffer  hal.Buffer

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	target *render.PixmapTarget
	ramp   mandel.Ramp

	initialized bool
	shaderReady bool
}

var _ mandel.Surface = (*Surface)(nil)

// NewSurface creates a compute surface on the given device and queue.
// Both must come from the host application. Returns ErrGPUUnavailable when
// either is nil.
func NewSurface(device hal.Device, queue hal.Queue, width, height int) (*Surface, error) {
	if device == nil || queue == nil {
		return nil, ErrGPUUnavailable
	}
	s := newSurface(width, height)
	s.device = device
	s.queue = queue

	if err := s.init(); err != nil {
		s.Destroy()
		return nil, err
	}
	mandel.Logger().Info("gpu: surface initialized",
		slog.Int("width", width), slog.Int("height", height))
	return s, nil
}

// NewSurfaceFromHandle creates a surface using the host's shared device
// handle. gpucontext exposes no HAL handles yet, so the surface validates
// the shader mirror and renders through the CPU path until it does.
func NewSurfaceFromHandle(handle render.DeviceHandle, width, height int) (*Surface, error) {
	if handle == nil {
		return nil, ErrGPUUnavailable
	}
	s := newSurface(width, height)
	s.handle = handle

	if err := s.compileShader(); err != nil {
		return nil, err
	}
	mandel.Logger().Warn("gpu: no HAL device exposed by handle, rendering on CPU")
	return s, nil
}

func newSurface(width, height int) *Surface {
	return &Surface{
		target: render.NewPixmapTarget(width, height),
		ramp:   mandel.RampByName("classic"),
	}
}

// compileShader compiles the WGSL mirror to SPIR-V.
func (s *Surface) compileShader() error {
	spirvBytes, err := naga.Compile(escapeShaderWGSL)
	if err != nil {
		return fmt.Errorf("gpu: failed to compile escape shader: %w", err)
	}

	s.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range s.spirvCode {
		s.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	s.shaderReady = true
	return nil
}

// init creates GPU resources (shader module, layouts, pipeline, buffers).
func (s *Surface) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.compileShader(); err != nil {
		return err
	}

	shaderModule, err := s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "escape_shader",
		Source: hal.ShaderSource{
			SPIRV: s.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create shader module: %w", err)
	}
	s.shaderModule = shaderModule

	configLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "escape_config_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: 32, // sizeof(Config)
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create config bind group layout: %w", err)
	}
	s.configLayout = configLayout

	outputLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "escape_output_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create output bind group layout: %w", err)
	}
	s.outputLayout = outputLayout

	layout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "escape_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.configLayout, s.outputLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create pipeline layout: %w", err)
	}
	s.layout = layout

	pipeline, err := s.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "escape_pipeline",
		Layout: s.layout,
		Compute: hal.ComputeState{
			Module:     s.shaderModule,
			EntryPoint: "cs_escape",
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create compute pipeline: %w", err)
	}
	s.pipeline = pipeline

	configBuffer, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_config",
		Size:  32,
		Usage: types.BufferUsageUniform | types.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create config buffer: %w", err)
	}
	s.configBuffer = configBuffer

	valueBuffer, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_values",
		Size:  uint64(s.target.Width()*s.target.Height()) * 4,
		Usage: types.BufferUsageStorage | types.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create value buffer: %w", err)
	}
	s.valueBuffer = valueBuffer

	s.initialized = true
	return nil
}

// Draw renders the viewport into the surface's target.
func (s *Surface) Draw(v mandel.Viewport, set mandel.Settings) (mandel.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.shaderReady {
		return mandel.Stats{}, ErrGPUUnavailable
	}

	start := time.Now()
	w := s.target.Width()
	h := s.target.Height()

	cfg := escapeConfig{
		Width:    uint32(w),
		Height:   uint32(h),
		MaxIter:  uint32(set.MaxIterations),
		CenterRe: float32(v.CenterRe),
		CenterIm: float32(v.CenterIm),
		SpanRe:   float32(v.Width),
		SpanIm:   float32(v.Height),
	}
	if set.SmoothColoring {
		cfg.Smooth = 1
	}
	if s.initialized {
		s.queue.WriteBuffer(s.configBuffer, 0, packConfig(cfg))
	}

	// Compute dispatch needs buffer binding not yet exposed by HAL;
	// compute the values with the same algorithm as the shader.
	values := s.escapeValuesCPU(v, set, w, h)

	img := s.target.Image()
	for py := 0; py < h; py++ {
		row := img.Pix[py*img.Stride : py*img.Stride+w*4]
		for px := 0; px < w; px++ {
			c := s.ramp.ColorFor(values[py*w+px], set)
			i := px * 4
			row[i+0] = uint8(clamp255(c.R * 255))
			row[i+1] = uint8(clamp255(c.G * 255))
			row[i+2] = uint8(clamp255(c.B * 255))
			row[i+3] = 0xff
		}
	}

	return mandel.Stats{RenderTime: time.Since(start)}, nil
}

// escapeValuesCPU mirrors the shader loop on the CPU, one result per pixel
// in row-major order.
func (s *Surface) escapeValuesCPU(v mandel.Viewport, set mandel.Settings, w, h int) []mandel.EscapeResult {
	points := make([]mandel.Point, w*h)
	fw, fh := float64(w), float64(h)
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			points[py*w+px] = v.PixelToPlane(float64(px)+0.5, float64(py)+0.5, fw, fh)
		}
	}
	return mandel.BatchEscape(points, set.MaxIterations, set.SmoothColoring)
}

// SetColorRamp switches the active ramp.
func (s *Surface) SetColorRamp(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ramp = mandel.RampByName(name)
	return nil
}

// Target returns the surface's render target.
func (s *Surface) Target() *render.PixmapTarget {
	return s.target
}

// SPIRVWords returns the compiled shader size in 32-bit words. Exposed for
// diagnostics.
func (s *Surface) SPIRVWords() int {
	return len(s.spirvCode)
}

// Destroy releases GPU resources. Safe to call on a partially initialized
// surface.
func (s *Surface) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return
	}
	if s.valueBuffer != nil {
		s.device.DestroyBuffer(s.valueBuffer)
		s.valueBuffer = nil
	}
	if s.configBuffer != nil {
		s.device.DestroyBuffer(s.configBuffer)
		s.configBuffer = nil
	}
	s.initialized = false
}

// packConfig serializes the parameter block little-endian, matching WGSL
// uniform layout.
func packConfig(cfg escapeConfig) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, cfg)
	return buf.Bytes()
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
