// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package pipeline

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shade"
)

// ErrUnsupportedStencilOp is returned when a Description uses a stencil
// operation the HAL conversion does not map.
var ErrUnsupportedStencilOp = errors.New("pipeline: unsupported stencil operation")

// Pipeline holds the GPU objects created from one Description.
type Pipeline struct {
	desc Description

	device       hal.Device
	shader       hal.ShaderModule
	groupLayouts []hal.BindGroupLayout
	layout       hal.PipelineLayout
	pipeline     hal.RenderPipeline
	sampler      hal.Sampler
}

// Create builds the render pipeline for d on device from its WGSL source.
func Create(device hal.Device, d Description) (*Pipeline, error) {
	return create(device, d, hal.ShaderSource{WGSL: d.ShaderSource})
}

// CreateSPIRV builds the render pipeline for d on device from compiled
// SPIR-V, typically taken from a shader.Cache.
func CreateSPIRV(device hal.Device, d Description, code []uint32) (*Pipeline, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("pipeline %v: empty SPIR-V", d.Kind)
	}
	return create(device, d, hal.ShaderSource{SPIRV: code})
}

func create(device hal.Device, d Description, src hal.ShaderSource) (*Pipeline, error) {
	if device == nil {
		return nil, errors.New("pipeline: nil device")
	}
	depth, err := halDepthStencil(d.DepthStencil)
	if err != nil {
		return nil, fmt.Errorf("pipeline %v: %w", d.Kind, err)
	}

	p := &Pipeline{desc: d, device: device}
	if err := p.build(src, depth); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("pipeline %v: %w", d.Kind, err)
	}
	shade.Logger().Info("created pipeline", "kind", d.Kind, "spirv", len(src.SPIRV) > 0)
	return p, nil
}

func (p *Pipeline) build(src hal.ShaderSource, depth *hal.DepthStencilState) error {
	d := p.desc

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  d.Kind.String() + "_shader",
		Source: src,
	})
	if err != nil {
		return fmt.Errorf("compile shader: %w", err)
	}
	p.shader = shader

	for i, entries := range d.BindGroups {
		l, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%v_group%d_layout", d.Kind, i),
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("create bind group layout %d: %w", i, err)
		}
		p.groupLayouts = append(p.groupLayouts, l)
	}

	layout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            d.Kind.String() + "_pipe_layout",
		BindGroupLayouts: p.groupLayouts,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.layout = layout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  d.Label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: d.VertexEntry,
			Buffers:    d.VertexBuffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: d.FragmentEntry,
			Targets:    d.Targets,
		},
		DepthStencil: depth,
		Multisample:  d.Multisample,
		Primitive:    d.Primitive,
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	if d.Sampler != nil {
		s, err := p.device.CreateSampler(halSampler(d.Sampler))
		if err != nil {
			return fmt.Errorf("create sampler: %w", err)
		}
		p.sampler = s
	}
	return nil
}

// Description returns the description the pipeline was built from.
func (p *Pipeline) Description() Description { return p.desc }

// RenderPipeline returns the HAL pipeline, or nil after Destroy.
func (p *Pipeline) RenderPipeline() hal.RenderPipeline { return p.pipeline }

// Layout returns the pipeline layout, or nil after Destroy.
func (p *Pipeline) Layout() hal.PipelineLayout { return p.layout }

// BindGroupLayout returns the layout of bind group i, or nil if the
// pipeline has no such group.
func (p *Pipeline) BindGroupLayout(i int) hal.BindGroupLayout {
	if i < 0 || i >= len(p.groupLayouts) {
		return nil
	}
	return p.groupLayouts[i]
}

// Sampler returns the image sampler. It is nil for every other kind.
func (p *Pipeline) Sampler() hal.Sampler { return p.sampler }

// Destroy releases the pipeline's GPU objects in reverse creation order.
// It is safe to call more than once.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		p.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	for i := len(p.groupLayouts) - 1; i >= 0; i-- {
		p.device.DestroyBindGroupLayout(p.groupLayouts[i])
	}
	p.groupLayouts = nil
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

func halDepthStencil(ds gputypes.DepthStencilState) (*hal.DepthStencilState, error) {
	front, err := halStencilFace(ds.StencilFront)
	if err != nil {
		return nil, fmt.Errorf("stencil front: %w", err)
	}
	back, err := halStencilFace(ds.StencilBack)
	if err != nil {
		return nil, fmt.Errorf("stencil back: %w", err)
	}
	return &hal.DepthStencilState{
		Format:            ds.Format,
		DepthWriteEnabled: ds.DepthWriteEnabled,
		DepthCompare:      ds.DepthCompare,
		StencilFront:      front,
		StencilBack:       back,
		StencilReadMask:   stencilMask,
		StencilWriteMask:  stencilMask,
	}, nil
}

func halStencilFace(f gputypes.StencilFaceState) (hal.StencilFaceState, error) {
	var out hal.StencilFaceState
	out.Compare = f.Compare
	ops := []struct {
		dst *hal.StencilOperation
		src gputypes.StencilOperation
	}{
		{&out.FailOp, f.FailOp},
		{&out.DepthFailOp, f.DepthFailOp},
		{&out.PassOp, f.PassOp},
	}
	for _, op := range ops {
		v, err := halStencilOp(op.src)
		if err != nil {
			return hal.StencilFaceState{}, err
		}
		*op.dst = v
	}
	return out, nil
}

func halStencilOp(op gputypes.StencilOperation) (hal.StencilOperation, error) {
	switch op {
	case gputypes.StencilOperationKeep:
		return hal.StencilOperationKeep, nil
	case gputypes.StencilOperationZero:
		return hal.StencilOperationZero, nil
	case gputypes.StencilOperationInvert:
		return hal.StencilOperationInvert, nil
	case gputypes.StencilOperationIncrementWrap:
		return hal.StencilOperationIncrementWrap, nil
	case gputypes.StencilOperationDecrementWrap:
		return hal.StencilOperationDecrementWrap, nil
	default:
		return hal.StencilOperationKeep, fmt.Errorf("%w: %v", ErrUnsupportedStencilOp, op)
	}
}

func halSampler(s *gputypes.SamplerDescriptor) *hal.SamplerDescriptor {
	return &hal.SamplerDescriptor{
		Label:        s.Label,
		AddressModeU: s.AddressModeU,
		AddressModeV: s.AddressModeV,
		AddressModeW: s.AddressModeW,
		MagFilter:    s.MagFilter,
		MinFilter:    s.MinFilter,
		// Mipmap and texel filter modes share their values.
		MipmapFilter: gputypes.FilterMode(s.MipmapFilter),
	}
}
