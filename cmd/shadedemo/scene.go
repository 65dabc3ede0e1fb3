package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shade"
	"github.com/gogpu/shade/render"
)

// Scene is a YAML list of fills and clip operations rendered in order.
type Scene struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	Steps      []Step `yaml:"steps"`
}

// Step is one scene operation. Exactly one of Fill, Clip and Pop is set.
type Step struct {
	Fill *FillStep `yaml:"fill"`
	Clip *Shape    `yaml:"clip"`
	Pop  bool      `yaml:"pop"`
}

// FillStep draws a paint over a shape.
type FillStep struct {
	Shape `yaml:",inline"`
	Paint PaintDesc `yaml:"paint"`
}

// Shape is a rectangle or a convex polygon with an optional placement.
type Shape struct {
	Rect      []float32    `yaml:"rect"`    // x, y, w, h
	Polygon   [][2]float32 `yaml:"polygon"` // convex, fanned from the first point
	Translate []float32    `yaml:"translate"`
	Rotate    float32      `yaml:"rotate"` // degrees
	Scale     []float32    `yaml:"scale"`
}

// PaintDesc selects one paint.
type PaintDesc struct {
	Solid  string        `yaml:"solid"`
	Linear *GradientDesc `yaml:"linear"`
	Radial *GradientDesc `yaml:"radial"`
	Image  *ImageDesc    `yaml:"image"`
}

// GradientDesc describes a linear or radial gradient.
type GradientDesc struct {
	P0     []float32 `yaml:"p0"`
	P1     []float32 `yaml:"p1"`
	Center []float32 `yaml:"center"`
	Radius float32   `yaml:"radius"`
	Colors []string  `yaml:"colors"`
	Stops  []float32 `yaml:"stops"`
	Tile   string    `yaml:"tile"`
}

// ImageDesc places an image file.
type ImageDesc struct {
	Path   string    `yaml:"path"`
	At     []float32 `yaml:"at"`   // x, y of the top-left corner
	Size   []float32 `yaml:"size"` // drawn width, height
	Filter string    `yaml:"filter"`
	Tint   string    `yaml:"tint"`
}

var errScene = errors.New("scene")

// LoadScene reads a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for _, st := range s.Steps {
		if st.Fill != nil && st.Fill.Paint.Image != nil && !filepath.IsAbs(st.Fill.Paint.Image.Path) {
			st.Fill.Paint.Image.Path = filepath.Join(dir, st.Fill.Paint.Image.Path)
		}
	}
	return s, nil
}

// ParseScene decodes a YAML scene and applies defaults.
func ParseScene(data []byte) (*Scene, error) {
	s := &Scene{Width: 512, Height: 512, Background: "#ffffff"}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", errScene, s.Width, s.Height)
	}
	return s, nil
}

// Render draws the scene into a new target.
func (s *Scene) Render(ctx context.Context, r *render.Renderer) (*render.Target, error) {
	target := render.NewTarget(s.Width, s.Height)
	target.Clear(shade.Hex(s.Background).NRGBA())

	for i, st := range s.Steps {
		var err error
		switch {
		case st.Fill != nil:
			var paint shade.Paint
			paint, err = st.Fill.Paint.build()
			if err == nil {
				err = r.Fill(ctx, target, st.Fill.mesh(), st.Fill.local(), paint)
			}
		case st.Clip != nil:
			_, err = r.PushClip(ctx, target, st.Clip.mesh(), st.Clip.local())
		case st.Pop:
			r.PopClip(target)
		default:
			err = fmt.Errorf("%w: empty step", errScene)
		}
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return target, nil
}

func (sh *Shape) mesh() render.Mesh {
	if len(sh.Polygon) >= 3 {
		pts := make([]shade.Vec2, len(sh.Polygon))
		for i, p := range sh.Polygon {
			pts[i] = shade.V2(p[0], p[1])
		}
		return render.Polygon(pts...)
	}
	r := pad(sh.Rect, 4)
	return render.Rect(r[0], r[1], r[2], r[3])
}

// local returns translate * rotate * scale.
func (sh *Shape) local() shade.Mat4 {
	m := shade.Identity4()
	if len(sh.Translate) > 0 {
		t := pad(sh.Translate, 2)
		m = m.Mul(shade.Translate4(t[0], t[1], 0))
	}
	if sh.Rotate != 0 {
		m = m.Mul(shade.RotateZ(sh.Rotate * math32.Pi / 180))
	}
	if len(sh.Scale) > 0 {
		s := pad(sh.Scale, 2)
		m = m.Mul(shade.Scale4(s[0], s[1], 1))
	}
	return m
}

func (p *PaintDesc) build() (shade.Paint, error) {
	switch {
	case p.Linear != nil:
		colors, err := p.Linear.colors()
		if err != nil {
			return nil, err
		}
		p0, p1 := pad(p.Linear.P0, 2), pad(p.Linear.P1, 2)
		return shade.NewLinearGradient(shade.V2(p0[0], p0[1]), shade.V2(p1[0], p1[1]), colors, p.Linear.Stops)
	case p.Radial != nil:
		colors, err := p.Radial.colors()
		if err != nil {
			return nil, err
		}
		mode, err := parseTile(p.Radial.Tile)
		if err != nil {
			return nil, err
		}
		c := pad(p.Radial.Center, 2)
		return shade.NewRadialGradient(shade.V2(c[0], c[1]), p.Radial.Radius, colors, p.Radial.Stops, mode)
	case p.Image != nil:
		return p.Image.build()
	case p.Solid != "":
		return shade.SolidColorFrom(shade.Hex(p.Solid)), nil
	default:
		return nil, fmt.Errorf("%w: paint has no kind", errScene)
	}
}

func (g *GradientDesc) colors() ([]shade.Color, error) {
	if len(g.Colors) == 0 {
		return nil, shade.ErrNoColors
	}
	out := make([]shade.Color, len(g.Colors))
	for i, h := range g.Colors {
		out[i] = shade.Hex(h)
	}
	return out, nil
}

func parseTile(s string) (shade.TileMode, error) {
	switch strings.ToLower(s) {
	case "", "clamp":
		return shade.TileClamp, nil
	case "repeat":
		return shade.TileRepeat, nil
	case "mirror":
		return shade.TileMirror, nil
	case "decal":
		return shade.TileDecal, nil
	default:
		return 0, fmt.Errorf("%w: unknown tile mode %q", errScene, s)
	}
}

func (im *ImageDesc) build() (shade.Paint, error) {
	f, err := os.Open(im.Path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", im.Path, err)
	}
	bmp := shade.BitmapFromImage(img)
	ip, err := shade.NewImagePaint(bmp, shade.Identity4())
	if err != nil {
		return nil, err
	}

	w, h := bmp.Size()
	at := pad(im.At, 2)
	size := []float32{float32(w), float32(h)}
	if len(im.Size) > 0 {
		size = pad(im.Size, 2)
	}
	ip.Matrix = shade.Translate4(at[0], at[1], 0).Mul(shade.Scale4(size[0]/float32(w), size[1]/float32(h), 1))
	if strings.EqualFold(im.Filter, "nearest") {
		ip.Filter = shade.FilterNearest
	}
	if im.Tint != "" {
		tint := shade.Hex(im.Tint)
		ip.Tint = &tint
	}
	return ip, nil
}

// pad returns v extended with zeros to n entries.
func pad(v []float32, n int) []float32 {
	if len(v) >= n {
		return v
	}
	out := make([]float32, n)
	copy(out, v)
	return out
}
