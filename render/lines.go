//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/debuglines"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/lines.wgsl
var lineShaderSource string

// chunkResources holds the GPU buffers of one chunk mesh. Buffers are
// created on first use at full chunk capacity and reused every frame.
type chunkResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	vertCount  uint32
	indexCount uint32
}

func (c *chunkResources) destroy(device hal.Device) {
	if c.idxBuf != nil {
		device.DestroyBuffer(c.idxBuf)
		c.idxBuf = nil
	}
	if c.vertBuf != nil {
		device.DestroyBuffer(c.vertBuf)
		c.vertBuf = nil
	}
	c.vertCount = 0
	c.indexCount = 0
}

// LineRenderer draws the chunk meshes of a debuglines.Lines instance as a
// line list.
//
// Every chunk gets its own vertex buffer sized to the chunk capacity;
// retained chunks also get an index buffer. Prepare uploads the meshes
// after Lines.Update, RecordDraws records one draw per non-empty chunk into
// a render pass owned by the caller.
type LineRenderer struct {
	device hal.Device
	queue  hal.Queue
	target Target

	depthTest     bool
	chunkCapacity int

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	uniformBuf    hal.Buffer
	bindGroup     hal.BindGroup

	immediate []chunkResources
	retained  []chunkResources

	vertStaging  []byte
	indexStaging []byte
	uniform      [uniformSize]byte
}

// NewLineRenderer creates a renderer for meshes produced with cfg. GPU
// objects are created lazily by the first Prepare.
func NewLineRenderer(device hal.Device, queue hal.Queue, cfg debuglines.Config, target Target) *LineRenderer {
	if target.SampleCount == 0 {
		target.SampleCount = cfg.SampleCount
	}
	return &LineRenderer{
		device:        device,
		queue:         queue,
		target:        target,
		depthTest:     cfg.DepthTest,
		chunkCapacity: cfg.ChunkCapacity,
		immediate:     make([]chunkResources, cfg.ChunkCount),
		retained:      make([]chunkResources, cfg.ChunkCount),
	}
}

// NewFromProvider creates a renderer on the device shared by the host. The
// color format follows the host surface.
func NewFromProvider(handle DeviceHandle, cfg debuglines.Config) (*LineRenderer, error) {
	device, queue, err := halObjects(handle)
	if err != nil {
		return nil, err
	}
	target := DefaultTarget()
	target.SampleCount = cfg.SampleCount
	if f := handle.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		target.ColorFormat = f
	}
	return NewLineRenderer(device, queue, cfg, target), nil
}

// Target returns the attachment description the pipeline is built for.
func (r *LineRenderer) Target() Target {
	return r.target
}

// Prepare uploads the meshes of the last Lines.Update and the camera
// matrix. It must be called before RecordDraws in every frame.
func (r *LineRenderer) Prepare(lines *debuglines.Lines, viewProj mgl32.Mat4) error {
	if err := r.ensurePipeline(); err != nil {
		return err
	}

	packMatrix(r.uniform[:], viewProj)
	r.queue.WriteBuffer(r.uniformBuf, 0, r.uniform[:])

	for i, m := range lines.ImmediateMeshes() {
		if i >= len(r.immediate) {
			break
		}
		if err := r.uploadChunk(&r.immediate[i], m, "immediate"); err != nil {
			return err
		}
	}
	for i, m := range lines.RetainedMeshes() {
		if i >= len(r.retained) {
			break
		}
		if err := r.uploadChunk(&r.retained[i], m, "retained"); err != nil {
			return err
		}
	}
	return nil
}

func (r *LineRenderer) uploadChunk(c *chunkResources, m *debuglines.Mesh, label string) error {
	c.vertCount, c.indexCount = 0, 0
	if m.Empty() {
		return nil
	}

	if c.vertBuf == nil {
		buf, err := r.createBuffer("debuglines_"+label+"_vertices",
			uint64(r.chunkCapacity*vertexStride), //nolint:gosec // validated positive
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		c.vertBuf = buf
	}
	var data []byte
	r.vertStaging, data = packVertices(m.Positions(), m.Colors(), r.vertStaging)
	r.queue.WriteBuffer(c.vertBuf, 0, data)
	c.vertCount = uint32(m.Len()) //nolint:gosec // bounded by chunk capacity

	if !m.Indexed() {
		return nil
	}
	if c.idxBuf == nil {
		buf, err := r.createBuffer("debuglines_"+label+"_indices",
			uint64(r.chunkCapacity*indexSize), //nolint:gosec // validated positive
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		c.idxBuf = buf
	}
	r.indexStaging, data = packIndices(m.Indices(), r.indexStaging)
	r.queue.WriteBuffer(c.idxBuf, 0, data)
	c.indexCount = uint32(len(m.Indices())) //nolint:gosec // bounded by chunk capacity
	return nil
}

func (r *LineRenderer) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	debuglines.Logger().Debug("debuglines/render: buffer created",
		slog.String("label", label), slog.Uint64("size", size))
	return buf, nil
}

// DrawCalls returns the number of draws the next RecordDraws will record.
func (r *LineRenderer) DrawCalls() int {
	n := 0
	for i := range r.immediate {
		if r.immediate[i].vertCount > 0 {
			n++
		}
	}
	for i := range r.retained {
		if r.retained[i].indexCount > 0 {
			n++
		}
	}
	return n
}

// RecordDraws records the prepared chunks into an existing render pass.
// Immediate chunks are drawn directly, retained chunks through their index
// buffer so expired lines are skipped. It is a no-op before Prepare.
func (r *LineRenderer) RecordDraws(rp hal.RenderPassEncoder) {
	if r.pipeline == nil || r.DrawCalls() == 0 {
		return
	}
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)

	for i := range r.immediate {
		c := &r.immediate[i]
		if c.vertCount == 0 {
			continue
		}
		rp.SetVertexBuffer(0, c.vertBuf, 0)
		rp.Draw(c.vertCount, 1, 0, 0)
	}
	for i := range r.retained {
		c := &r.retained[i]
		if c.indexCount == 0 {
			continue
		}
		rp.SetVertexBuffer(0, c.vertBuf, 0)
		rp.SetIndexBuffer(c.idxBuf, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(c.indexCount, 1, 0, 0, 0)
	}
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times.
func (r *LineRenderer) Destroy() {
	if r.device == nil {
		return
	}
	for i := range r.immediate {
		r.immediate[i].destroy(r.device)
	}
	for i := range r.retained {
		r.retained[i].destroy(r.device)
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

func (r *LineRenderer) ensurePipeline() error {
	if r.pipeline != nil {
		return nil
	}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return err
	}
	debuglines.Logger().Info("debuglines/render: pipeline created",
		slog.Bool("depth_test", r.depthTest),
		slog.Uint64("samples", uint64(r.target.SampleCount)),
		slog.Int("chunks", len(r.immediate)))
	return nil
}

func (r *LineRenderer) createPipeline() error { //nolint:funlen // one descriptor per GPU object
	if lineShaderSource == "" {
		return fmt.Errorf("line shader source is empty")
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "debuglines_shader",
		Source: hal.ShaderSource{WGSL: lineShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile line shader: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "debuglines_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create line uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "debuglines_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create line pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	blend := alphaBlend()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "debuglines_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.target.ColorFormat,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: depthStencilState(r.target.DepthFormat, r.depthTest),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyLineList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: r.target.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create line pipeline: %w", err)
	}
	r.pipeline = pipeline

	uniformBuf, err := r.createBuffer("debuglines_uniforms", uniformSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "debuglines_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create line bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// vertexLayout returns the vertex buffer layout for the line pipeline.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},  // color
				{Format: gputypes.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 1}, // position
			},
		},
	}
}

// depthStencilState tests lines against scene depth when depthTest is set,
// and draws them on top of everything otherwise. The stencil is ignored.
func depthStencilState(format gputypes.TextureFormat, depthTest bool) *hal.DepthStencilState {
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	state := &hal.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0x00,
		StencilWriteMask:  0x00,
	}
	if depthTest {
		state.DepthWriteEnabled = true
		state.DepthCompare = gputypes.CompareFunctionLess
	}
	return state
}

// alphaBlend blends straight-alpha line colors over the target.
func alphaBlend() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}
