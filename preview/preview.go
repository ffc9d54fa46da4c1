// Package preview renders adjustments onto images for on-screen
// inspection. The color transform is applied per pixel with one
// goroutine per row; rows are independent, so no ordering or locking
// is needed beyond the final wait.
package preview

import (
	"image"
	"sync"

	"github.com/tesenwein/recipekit/engine"
	"github.com/tesenwein/recipekit/observability"
	"github.com/tesenwein/recipekit/recipe"
)

// Config controls preview rendering.
type Config struct {
	// Intensity blends between the source image (0) and the fully
	// adjusted image (1). Values outside [0,1] are clamped; the zero
	// value renders at full intensity.
	Intensity *float64

	Log observability.Logger
}

// Apply renders adj onto img and returns the adjusted copy.
func Apply(img image.Image, adj *recipe.Adjustments, cfg Config) *image.RGBA {
	log := cfg.Log
	if log == nil {
		log = observability.NopLogger{}
	}
	n := adj.Normalize()
	intensity := 1.0
	if cfg.Intensity != nil {
		intensity = clamp01(*cfg.Intensity)
	}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)

	var wg sync.WaitGroup
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			processRow(img, out, bounds, y, n, intensity)
		}(y)
	}
	wg.Wait()

	log.Debug("preview rendered",
		observability.Int("width", bounds.Dx()),
		observability.Int("height", bounds.Dy()),
		observability.Float64("intensity", intensity))
	return out
}

func processRow(img image.Image, out *image.RGBA, bounds image.Rectangle, y int, n *recipe.Adjustments, intensity float64) {
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		r16, g16, b16, a16 := img.At(x, y).RGBA()
		r := float64(r16) / 65535
		g := float64(g16) / 65535
		b := float64(b16) / 65535

		ar, ag, ab := engine.Apply(r, g, b, n)
		if intensity < 1 {
			ar = r + intensity*(ar-r)
			ag = g + intensity*(ag-g)
			ab = b + intensity*(ab-b)
		}

		i := out.PixOffset(x, y)
		out.Pix[i+0] = uint8(clamp01(ar)*255 + 0.5)
		out.Pix[i+1] = uint8(clamp01(ag)*255 + 0.5)
		out.Pix[i+2] = uint8(clamp01(ab)*255 + 0.5)
		out.Pix[i+3] = uint8(a16 >> 8)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
