// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package pipeline

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shade"
	"github.com/gogpu/shade/shader"
	"github.com/gogpu/shade/uniform"
)

// ErrNoHALDevice is returned when a device provider does not expose a
// wgpu HAL device and queue.
var ErrNoHALDevice = errors.New("pipeline: provider does not expose a HAL device")

// Set owns the five paint pipelines and the frame uniform buffer for one
// device.
type Set struct {
	device    hal.Device
	queue     hal.Queue
	pipelines map[shade.Kind]*Pipeline
	uniforms  *uniform.Uploader
}

// NewSet creates a pipeline for every paint kind. With a non-nil cache the
// shaders are loaded as SPIR-V; otherwise the device compiles the WGSL.
func NewSet(device hal.Device, queue hal.Queue, opts Options, cache *shader.Cache) (*Set, error) {
	if device == nil || queue == nil {
		return nil, errors.New("pipeline: nil device or queue")
	}
	descs, err := DescribeAll(opts)
	if err != nil {
		return nil, err
	}

	s := &Set{
		device:    device,
		queue:     queue,
		pipelines: make(map[shade.Kind]*Pipeline, len(descs)),
		uniforms:  uniform.NewUploader(device, queue),
	}
	for _, d := range descs {
		var p *Pipeline
		if cache != nil {
			code, cerr := cache.SPIRV(d.Kind)
			if cerr != nil {
				s.Destroy()
				return nil, cerr
			}
			p, err = CreateSPIRV(device, d, code)
		} else {
			p, err = Create(device, d)
		}
		if err != nil {
			s.Destroy()
			return nil, err
		}
		s.pipelines[d.Kind] = p
	}
	return s, nil
}

// NewSetFromProvider creates a Set on the device of a gpucontext provider.
// The provider must hand out hal.Device and hal.Queue values, either
// directly or through HalDevice and HalQueue methods. A zero
// opts.ColorFormat takes the provider's surface format.
func NewSetFromProvider(provider gpucontext.DeviceProvider, opts Options, cache *shader.Cache) (*Set, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	if opts.ColorFormat == gputypes.TextureFormatUndefined {
		opts.ColorFormat = provider.SurfaceFormat()
	}
	return NewSet(device, queue, opts, cache)
}

func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNoHALDevice
	}
	var dev, q any = provider.Device(), provider.Queue()
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if hp, ok := provider.(halProvider); ok {
		dev, q = hp.HalDevice(), hp.HalQueue()
	}
	device, ok := dev.(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: device is %T", ErrNoHALDevice, dev)
	}
	queue, ok := q.(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: queue is %T", ErrNoHALDevice, q)
	}
	return device, queue, nil
}

// Pipeline returns the pipeline for kind, or nil for an unknown kind.
func (s *Set) Pipeline(kind shade.Kind) *Pipeline {
	return s.pipelines[kind]
}

// Upload copies the staged blocks of b to the GPU uniform buffer.
func (s *Set) Upload(b *uniform.Buffer) (hal.Buffer, error) {
	return s.uniforms.Upload(b)
}

// Uniforms returns the uploader behind Upload.
func (s *Set) Uniforms() *uniform.Uploader {
	return s.uniforms
}

// Destroy releases every pipeline and the uniform buffer.
func (s *Set) Destroy() {
	for k, p := range s.pipelines {
		p.Destroy()
		delete(s.pipelines, k)
	}
	s.uniforms.Destroy()
}
