// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pipeline describes the GPU render pipelines for the five paint
// kinds using gputypes, and builds them on a wgpu HAL device with Create or
// a Set.
//
// Every pipeline shares bind group 0 (the transform block) and one vertex
// buffer of float32x2 positions. Bind group 1 carries the paint data:
//
//	SolidColor      binding 0: color
//	LinearGradient  binding 0: info, 1: matrix, 2: geometry
//	RadialGradient  binding 0: info, 1: matrix, 2: geometry
//	Image           binding 0: transform, 1: info, 2: texture, 3: sampler
//	ClipOnly        (none)
//
// Content pipelines test clip depth with LessEqual and never write depth.
// The ClipOnly pipeline writes depth with compare Always and masks all color
// writes. A single depth compare cannot express the nested-clip parent test,
// so nested clips on the GPU need an extra stencil pass; the software
// renderer in package render applies the full test.
package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shade"
	"github.com/gogpu/shade/shader"
)

// VertexStride is the byte stride per vertex: 2 x float32 (x, y) = 8 bytes.
const VertexStride = 8

// DepthFormat is the depth/stencil attachment format used by every pipeline.
const DepthFormat = gputypes.TextureFormatDepth24PlusStencil8

// stencilMask is the read and write mask of every pipeline.
const stencilMask = 0xFF

// Bind group indices.
const (
	TransformGroup = 0
	PaintGroup     = 1
)

// Description is a device-independent render pipeline description.
type Description struct {
	Label         string
	Kind          shade.Kind
	ShaderSource  string
	VertexEntry   string
	FragmentEntry string

	VertexBuffers []gputypes.VertexBufferLayout

	// BindGroups holds the layout entries per group index. ClipOnly has a
	// single group.
	BindGroups [][]gputypes.BindGroupLayoutEntry

	Targets      []gputypes.ColorTargetState
	DepthStencil gputypes.DepthStencilState
	Primitive    gputypes.PrimitiveState
	Multisample  gputypes.MultisampleState

	// Sampler is set only for image pipelines.
	Sampler *gputypes.SamplerDescriptor
}

// Options adjusts the parts of a Description that depend on the target.
type Options struct {
	// ColorFormat is the render target format. Zero means RGBA8Unorm.
	ColorFormat gputypes.TextureFormat
	// SampleCount is the MSAA sample count. Zero means 1.
	SampleCount uint32
}

func (o Options) colorFormat() gputypes.TextureFormat {
	if o.ColorFormat == gputypes.TextureFormatUndefined {
		return gputypes.TextureFormatRGBA8Unorm
	}
	return o.ColorFormat
}

func (o Options) multisample() gputypes.MultisampleState {
	if o.SampleCount <= 1 {
		return gputypes.DefaultMultisampleState()
	}
	return gputypes.MultisampleState{
		Count: o.SampleCount,
		Mask:  0xFFFFFFFF,
	}
}

// Describe returns the pipeline description for kind with default options.
func Describe(kind shade.Kind) (Description, error) {
	return DescribeWith(kind, Options{})
}

// DescribeWith returns the pipeline description for kind.
func DescribeWith(kind shade.Kind, opts Options) (Description, error) {
	paint, err := paintEntries(kind)
	if err != nil {
		return Description{}, err
	}
	src, err := shader.Source(kind)
	if err != nil {
		return Description{}, err
	}

	groups := [][]gputypes.BindGroupLayoutEntry{transformEntries()}
	if len(paint) > 0 {
		groups = append(groups, paint)
	}

	blend := gputypes.BlendStatePremultiplied()
	target := gputypes.ColorTargetState{
		Format:    opts.colorFormat(),
		Blend:     &blend,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
	depth := gputypes.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionLessEqual,
		StencilFront:      gputypes.DefaultStencilFaceState(),
		StencilBack:       gputypes.DefaultStencilFaceState(),
		StencilReadMask:   stencilMask,
		StencilWriteMask:  stencilMask,
	}
	if kind == shade.KindClipOnly {
		target.Blend = nil
		target.WriteMask = gputypes.ColorWriteMaskNone
		depth.DepthWriteEnabled = true
		depth.DepthCompare = gputypes.CompareFunctionAlways
	}

	d := Description{
		Label:         kind.String() + "_pipeline",
		Kind:          kind,
		ShaderSource:  src,
		VertexEntry:   shader.VertexEntry,
		FragmentEntry: shader.FragmentEntry,
		VertexBuffers: []gputypes.VertexBufferLayout{
			{
				ArrayStride: VertexStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{
						Format:         gputypes.VertexFormatFloat32x2,
						Offset:         0,
						ShaderLocation: 0,
					},
				},
			},
		},
		BindGroups:   groups,
		Targets:      []gputypes.ColorTargetState{target},
		DepthStencil: depth,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: opts.multisample(),
	}
	if kind == shade.KindImage {
		s := gputypes.LinearSamplerDescriptor()
		s.Label = "image_sampler"
		d.Sampler = &s
	}
	return d, nil
}

// DescribeAll returns descriptions for every paint kind, indexed by kind.
func DescribeAll(opts Options) ([]Description, error) {
	out := make([]Description, len(shade.Kinds))
	for i, k := range shade.Kinds {
		d, err := DescribeWith(k, opts)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// TextureFormat returns the texture format an image of the given color type
// is uploaded as. BGRA and RGBX data upload raw and the image shader
// swizzles; Alpha8 masks use a single channel.
func TextureFormat(ct shade.ColorType) gputypes.TextureFormat {
	if ct == shade.ColorAlpha8 {
		return gputypes.TextureFormatR8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

func uniformEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}
}

func transformEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{uniformEntry(0)}
}

func paintEntries(kind shade.Kind) ([]gputypes.BindGroupLayoutEntry, error) {
	switch kind {
	case shade.KindSolidColor:
		return []gputypes.BindGroupLayoutEntry{uniformEntry(0)}, nil
	case shade.KindLinearGradient, shade.KindRadialGradient:
		return []gputypes.BindGroupLayoutEntry{
			uniformEntry(0),
			uniformEntry(1),
			uniformEntry(2),
		}, nil
	case shade.KindImage:
		return []gputypes.BindGroupLayoutEntry{
			uniformEntry(0),
			uniformEntry(1),
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    3,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		}, nil
	case shade.KindClipOnly:
		return nil, nil
	default:
		return nil, fmt.Errorf("pipeline: unknown kind %v", kind)
	}
}
