package lut

import (
	"fmt"
	"strings"

	"github.com/tesenwein/recipekit/recipe"
)

// meshScale is the full-scale value of the 10-bit mesh format.
const meshScale = 1023

// bakeMesh serializes the 3D mesh layout: a `Mesh N N N` header followed
// by N³ rows of three 0..1023 integers, red-outer / blue-inner as the
// format mandates.
func bakeMesh(n *recipe.Adjustments, size int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mesh %d %d %d\n", size, size, size)

	for ri := 0; ri < size; ri++ {
		for gi := 0; gi < size; gi++ {
			for bi := 0; bi < size; bi++ {
				r, g, b := transform(n, ri, gi, bi, size)
				fmt.Fprintf(&sb, "%d %d %d\n", quant10(r), quant10(g), quant10(b))
			}
		}
	}
	return sb.String()
}

// quant10 quantizes a 0..1 channel to the 10-bit integer scale.
func quant10(v float64) int {
	q := int(v*meshScale + 0.5)
	if q < 0 {
		return 0
	}
	if q > meshScale {
		return meshScale
	}
	return q
}
