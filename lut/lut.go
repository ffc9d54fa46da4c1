// Package lut discretizes the color transform engine over a regular 3D
// grid and serializes the result to lookup-table text formats. Two formats
// are supported: the `.cube` float format and a 10-bit integer 3D mesh
// format. An unrecognized format tag is a hard error; the baker never
// silently falls back.
package lut

import (
	"errors"
	"fmt"
	"time"

	"github.com/tesenwein/recipekit/engine"
	"github.com/tesenwein/recipekit/observability"
	"github.com/tesenwein/recipekit/recipe"
)

// Format tags a serialized LUT layout.
type Format string

const (
	// FormatCube is the `.cube` text format: LUT_3D_SIZE header and N³
	// rows of three 6-decimal floats, red varying fastest.
	FormatCube Format = "cube"
	// FormatMesh is a 10-bit 3D mesh format: `Mesh N N N` header and N³
	// rows of three 0..1023 integers, blue varying fastest.
	FormatMesh Format = "3dl"
)

// ErrUnknownFormat is returned for a format tag the baker does not
// implement.
var ErrUnknownFormat = errors.New("lut: unknown format")

// DefaultSize is the grid size used when Config.Size is zero.
const DefaultSize = 33

// minSize is the smallest grid that still spans the unit cube.
const minSize = 2

// Config controls one bake.
type Config struct {
	Size   int    // grid size N; 0 means DefaultSize, values below 2 are raised to 2
	Format Format // target layout; required
	Title  string // optional title comment for formats that carry one
	Log    observability.Logger
}

// Bake evaluates the engine over an N³ grid and returns the serialized
// table text for the configured format.
func Bake(adj *recipe.Adjustments, cfg Config) (string, error) {
	if cfg.Log == nil {
		cfg.Log = observability.NopLogger{}
	}
	size := cfg.Size
	if size == 0 {
		size = DefaultSize
	}
	if size < minSize {
		size = minSize
	}

	n := adj.Normalize()
	start := time.Now()

	var out string
	switch cfg.Format {
	case FormatCube:
		out = bakeCube(n, size, cfg.Title)
	case FormatMesh:
		out = bakeMesh(n, size)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	cfg.Log.Debug("baked lut",
		observability.String("format", string(cfg.Format)),
		observability.Int(observability.MetricBakeCells, size*size*size),
		observability.Float64(observability.MetricBakeTime, time.Since(start).Seconds()))
	return out, nil
}

// grid maps index i of an N-point grid to its normalized 0..1 coordinate.
func grid(i, size int) float64 {
	return float64(i) / float64(size-1)
}

func transform(n *recipe.Adjustments, ri, gi, bi, size int) (float64, float64, float64) {
	return engine.Apply(grid(ri, size), grid(gi, size), grid(bi, size), n)
}
