// Package shader holds the WGSL sources of the five shading pipelines and
// compiles them to SPIR-V.
package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/naga"

	"github.com/gogpu/shade"
)

// Embedded WGSL shader sources.

//go:embed wgsl/transform.wgsl
var transformSource string

//go:embed wgsl/gradient.wgsl
var gradientSource string

//go:embed wgsl/solid.wgsl
var solidSource string

//go:embed wgsl/linear_gradient.wgsl
var linearGradientSource string

//go:embed wgsl/radial_gradient.wgsl
var radialGradientSource string

//go:embed wgsl/image.wgsl
var imageSource string

//go:embed wgsl/clip_only.wgsl
var clipOnlySource string

// Entry points shared by every pipeline.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// ErrUnknownKind is returned for a kind without a shader.
var ErrUnknownKind = errors.New("shader: unknown pipeline kind")

// Source returns the complete WGSL module for kind.
func Source(kind shade.Kind) (string, error) {
	switch kind {
	case shade.KindSolidColor:
		return transformSource + solidSource, nil
	case shade.KindLinearGradient:
		return transformSource + gradientSource + linearGradientSource, nil
	case shade.KindRadialGradient:
		return transformSource + gradientSource + radialGradientSource, nil
	case shade.KindImage:
		return transformSource + imageSource, nil
	case shade.KindClipOnly:
		return transformSource + clipOnlySource, nil
	default:
		return "", fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

// ErrBadSPIRV is returned when the compiler output is not whole words.
var ErrBadSPIRV = errors.New("shader: SPIR-V length is not a multiple of 4")

// Compile compiles the WGSL module for kind to SPIR-V words.
func Compile(kind shade.Kind) ([]uint32, error) {
	src, err := Source(kind)
	if err != nil {
		return nil, err
	}
	code, err := compileWGSL(src)
	if err != nil {
		return nil, fmt.Errorf("shader %v: %w", kind, err)
	}
	return code, nil
}

func compileWGSL(src string) ([]uint32, error) {
	out, err := naga.Compile(src)
	if err != nil {
		return nil, err
	}
	return spirvWords(out)
}

func spirvWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// Cache compiles each pipeline's shader once.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	modules map[shade.Kind][]uint32
}

// NewCache creates an empty shader cache.
func NewCache() *Cache {
	return &Cache{modules: make(map[shade.Kind][]uint32)}
}

// SPIRV returns the compiled module for kind, compiling it on first use.
func (c *Cache) SPIRV(kind shade.Kind) ([]uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, ok := c.modules[kind]; ok {
		shade.Logger().Debug("shader cache hit", "kind", kind)
		return code, nil
	}

	code, err := Compile(kind)
	if err != nil {
		return nil, err
	}
	shade.Logger().Info("compiled shader", "kind", kind, "words", len(code))
	c.modules[kind] = code
	return code, nil
}

// Len returns the number of compiled modules.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.modules)
}
