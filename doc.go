// Package shade implements the paint-shading stage of a 2D vector
// rasterizer.
//
// # Overview
//
// Given geometry that has already been tessellated into triangles, shade
// computes the color a paint contributes to each covered pixel and the
// clip-space position of each vertex, with depth replaced by the clip depth
// assigned to the draw.
//
// # Quick Start
//
//	import "github.com/gogpu/shade"
//
//	g, err := shade.NewLinearGradient(shade.V2(0, 0), shade.V2(100, 0),
//	    []shade.Color{shade.Red, shade.Blue}, nil)
//	if err != nil {
//	    return err
//	}
//	d := shade.Draw{
//	    Transform: shade.NewTransformBlock(800, 600, shade.Identity4(), 0.5),
//	    Paint:     g,
//	}
//	res, ok := d.Evaluate(shade.V2(50, 10)) // 50% red, 50% blue
//
// # Paints
//
// Every draw selects one of five pipelines through its Paint:
//   - SolidColor: a premultiplied color
//   - *Gradient: linear or radial ramp (NewLinearGradient, NewRadialGradient)
//   - *ImagePaint: a sampled Texture such as *Bitmap
//   - ClipOnly: no color, only clip depth
//
// Results are always premultiplied. Paints are validated when they are
// built; evaluation never fails.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Paint, Draw, TransformBlock, Gradient, ImagePaint, Color, Mat4
//   - clip: clip keys and the per-pixel clip depth test
//   - render: software consumer that rasterizes triangles into an image
//   - uniform: packing of per-draw data into fixed GPU uniform blocks
//   - shader, pipeline: WGSL sources and GPU pipeline descriptions
//
// # Coordinate System
//
// Viewport coordinates have the origin at the top-left, x increasing right
// and y increasing down. ViewportProjection maps them to normalized device
// coordinates.
package shade

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
