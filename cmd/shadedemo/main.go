// Command shadedemo renders a YAML scene of shaded fills and clips to PNG.
//
// Usage:
//
//	shadedemo -scene scene.yaml -output out.png
//
// Without -scene a built-in scene is rendered. Image paints decode PNG,
// JPEG, GIF, BMP and WebP files.
package main

import (
	"context"
	_ "embed"
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/shade"
	"github.com/gogpu/shade/render"
)

//go:embed default_scene.yaml
var defaultScene []byte

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (YAML); empty renders the built-in scene")
		output    = flag.String("output", "shade.png", "output file")
		workers   = flag.Int("workers", 0, "concurrent row bands (0 = GOMAXPROCS)")
		band      = flag.Int("band", render.DefaultBandHeight, "rows per band")
		timeout   = flag.Duration("timeout", time.Minute, "render timeout")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		shade.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	scene, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	opts := []render.Option{render.WithBandHeight(*band)}
	if *workers > 0 {
		opts = append(opts, render.WithWorkers(*workers))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	target, err := scene.Render(ctx, render.NewRenderer(opts...))
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := savePNG(*output, target); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Scene saved to %s (%dx%d)\n", *output, scene.Width, scene.Height)
}

func loadScene(path string) (*Scene, error) {
	if path == "" {
		return ParseScene(defaultScene)
	}
	return LoadScene(path)
}

func savePNG(path string, target *render.Target) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	if err := png.Encode(f, target.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
