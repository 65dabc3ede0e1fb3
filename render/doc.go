// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render is a CPU consumer of shade draws.
//
// It rasterizes triangle meshes into a premultiplied RGBA Target, shades each
// covered pixel with the draw's paint and enforces the clip depth policy of
// package clip. It plays the role of the GPU pipelines described by package
// pipeline, so the shading stage can be exercised and inspected without a
// device.
//
// # Clipping
//
// Clip regions nest. PushClip draws a clip-only shape at a fresh clip depth
// and makes it current; Fill draws content at the current depth; PopClip
// restores the parent region:
//
//	r := render.NewRenderer()
//	t := render.NewTarget(256, 256)
//	r.PushClip(ctx, t, render.Rect(16, 16, 128, 128), shade.Identity4())
//	r.Fill(ctx, t, render.Rect(0, 0, 256, 256), shade.Identity4(), paint)
//	r.PopClip(t)
package render
