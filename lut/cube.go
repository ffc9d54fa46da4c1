package lut

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/tesenwein/recipekit/recipe"
)

// bakeCube serializes the `.cube` layout: optional TITLE, LUT_3D_SIZE and
// unit domain header, then N³ rows of three 6-decimal floats with the
// blue-outer / green-middle / red-inner iteration the format mandates.
func bakeCube(n *recipe.Adjustments, size int, title string) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "TITLE %q\n", title)
	}
	fmt.Fprintf(&sb, "LUT_3D_SIZE %d\n", size)
	sb.WriteString("DOMAIN_MIN 0.0 0.0 0.0\n")
	sb.WriteString("DOMAIN_MAX 1.0 1.0 1.0\n")

	for bi := 0; bi < size; bi++ {
		for gi := 0; gi < size; gi++ {
			for ri := 0; ri < size; ri++ {
				r, g, b := transform(n, ri, gi, bi, size)
				fmt.Fprintf(&sb, "%.6f %.6f %.6f\n", r, g, b)
			}
		}
	}
	return sb.String()
}

// Table is a parsed 3D lookup table.
type Table struct {
	Title   string
	Size    int
	Samples [][3]float64 // len Size³, cube row order
}

// Cube parse errors.
var (
	ErrMissingSize = errors.New("lut: missing LUT_3D_SIZE header")
	ErrBadRowCount = errors.New("lut: row count does not match grid size")
)

// ParseCube reads `.cube` text back into a Table. Comment lines and the
// domain header are accepted and ignored; a malformed data row or a row
// count that disagrees with the declared size is an error.
func ParseCube(text string) (*Table, error) {
	t := &Table{}
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "TITLE":
			if start := strings.Index(line, `"`); start != -1 {
				if end := strings.LastIndex(line, `"`); end > start {
					t.Title = line[start+1 : end]
				}
			}
		case "LUT_3D_SIZE":
			if _, err := fmt.Sscanf(line, "LUT_3D_SIZE %d", &t.Size); err != nil {
				return nil, fmt.Errorf("lut: bad size header %q: %w", line, err)
			}
		case "DOMAIN_MIN", "DOMAIN_MAX":
			// unit domain assumed
		default:
			if len(fields) != 3 {
				return nil, fmt.Errorf("lut: unrecognized line %q", line)
			}
			var s [3]float64
			if _, err := fmt.Sscanf(line, "%f %f %f", &s[0], &s[1], &s[2]); err != nil {
				return nil, fmt.Errorf("lut: bad sample row %q: %w", line, err)
			}
			t.Samples = append(t.Samples, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if t.Size == 0 {
		return nil, ErrMissingSize
	}
	if len(t.Samples) != t.Size*t.Size*t.Size {
		return nil, fmt.Errorf("%w: got %d rows for size %d", ErrBadRowCount, len(t.Samples), t.Size)
	}
	return t, nil
}
