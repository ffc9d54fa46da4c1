package lut

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tesenwein/recipekit/recipe"
)

func TestBakeCubeRowCount(t *testing.T) {
	for _, size := range []int{2, 3, 17} {
		out, err := Bake(&recipe.Adjustments{}, Config{Size: size, Format: FormatCube})
		if err != nil {
			t.Fatalf("Bake size %d: %v", size, err)
		}
		rows := 0
		for _, line := range strings.Split(out, "\n") {
			if line == "" || !strings.ContainsAny(line, "0123456789") {
				continue
			}
			if strings.HasPrefix(line, "LUT_3D_SIZE") ||
				strings.HasPrefix(line, "DOMAIN_") || strings.HasPrefix(line, "TITLE") {
				continue
			}
			rows++
		}
		if want := size * size * size; rows != want {
			t.Errorf("size %d: %d data rows, want %d", size, rows, want)
		}
		if !strings.Contains(out, "LUT_3D_SIZE") {
			t.Errorf("missing size header")
		}
	}
}

func TestBakeCubeNeutralEndpoints(t *testing.T) {
	out, err := Bake(&recipe.Adjustments{}, Config{Size: 3, Format: FormatCube, Title: "neutral"})
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	tab, err := ParseCube(out)
	if err != nil {
		t.Fatalf("ParseCube: %v", err)
	}
	if tab.Title != "neutral" {
		t.Errorf("title = %q", tab.Title)
	}

	first := tab.Samples[0]
	last := tab.Samples[len(tab.Samples)-1]
	for i := 0; i < 3; i++ {
		if math.Abs(first[i]) > 1e-6 {
			t.Errorf("black corner channel %d = %v, want ~0", i, first[i])
		}
		if math.Abs(last[i]-1) > 1e-6 {
			t.Errorf("white corner channel %d = %v, want ~1", i, last[i])
		}
	}
}

func TestBakeCubeOrdering(t *testing.T) {
	// Red varies fastest: the second row of a neutral cube is the first
	// red grid step with green and blue still at zero.
	out, err := Bake(&recipe.Adjustments{}, Config{Size: 3, Format: FormatCube})
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	tab, err := ParseCube(out)
	if err != nil {
		t.Fatalf("ParseCube: %v", err)
	}
	second := tab.Samples[1]
	if math.Abs(second[0]-0.5) > 1e-6 || second[1] != 0 || second[2] != 0 {
		t.Errorf("second row = %v, want (0.5, 0, 0)", second)
	}
}

func TestBakeMesh(t *testing.T) {
	out, err := Bake(&recipe.Adjustments{}, Config{Size: 2, Format: FormatMesh})
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "Mesh 2 2 2" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 1+8 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	if lines[1] != "0 0 0" {
		t.Errorf("first row = %q, want \"0 0 0\"", lines[1])
	}
	if lines[len(lines)-1] != "1023 1023 1023" {
		t.Errorf("last row = %q, want \"1023 1023 1023\"", lines[len(lines)-1])
	}
	// Blue varies fastest in the mesh layout.
	if lines[2] != "0 0 1023" {
		t.Errorf("second row = %q, want \"0 0 1023\"", lines[2])
	}
}

func TestBakeUnknownFormatFails(t *testing.T) {
	_, err := Bake(&recipe.Adjustments{}, Config{Size: 4, Format: "hald"})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestBakeSizeClamping(t *testing.T) {
	out, err := Bake(&recipe.Adjustments{}, Config{Size: 1, Format: FormatMesh})
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if !strings.HasPrefix(out, "Mesh 2 2 2") {
		t.Errorf("size 1 not raised to 2: %q", strings.SplitN(out, "\n", 2)[0])
	}

	out, err = Bake(&recipe.Adjustments{}, Config{Format: FormatMesh})
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if !strings.HasPrefix(out, "Mesh 33 33 33") {
		t.Errorf("zero size did not default: %q", strings.SplitN(out, "\n", 2)[0])
	}
}

func TestBakeAppliesAdjustments(t *testing.T) {
	warm := &recipe.Adjustments{Temperature: recipe.F(10000)}
	out, err := Bake(warm, Config{Size: 2, Format: FormatCube})
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	tab, err := ParseCube(out)
	if err != nil {
		t.Fatalf("ParseCube: %v", err)
	}
	// Row order is blue-outer/red-inner, so index 3 is (r=1, g=1, b=0):
	// any row with red content keeps red above blue under a warm shift.
	white := tab.Samples[len(tab.Samples)-1]
	if white[0] < white[2] {
		t.Errorf("warm bake left white cooler than expected: %v", white)
	}
	mid := tab.Samples[1] // pure red input
	if mid[0] <= mid[2] {
		t.Errorf("warm bake lost red dominance: %v", mid)
	}
}

func TestBakeNeverEmitsNonFinite(t *testing.T) {
	adj := &recipe.Adjustments{
		Temperature: recipe.F(math.Inf(1)),
		Contrast:    recipe.F(math.NaN()),
	}
	for _, f := range []Format{FormatCube, FormatMesh} {
		out, err := Bake(adj, Config{Size: 2, Format: f})
		if err != nil {
			t.Fatalf("Bake %s: %v", f, err)
		}
		if strings.Contains(out, "NaN") || strings.Contains(out, "Inf") {
			t.Errorf("%s output contains non-finite token", f)
		}
	}
}

func TestParseCubeErrors(t *testing.T) {
	if _, err := ParseCube("DOMAIN_MIN 0 0 0\n0.0 0.0 0.0\n"); !errors.Is(err, ErrMissingSize) {
		t.Errorf("missing size: err = %v", err)
	}
	if _, err := ParseCube("LUT_3D_SIZE 2\n0 0 0\n"); !errors.Is(err, ErrBadRowCount) {
		t.Errorf("short table: err = %v", err)
	}
	if _, err := ParseCube("LUT_3D_SIZE 2\nnot a row at all here\n"); err == nil {
		t.Errorf("garbage line accepted")
	}
}
