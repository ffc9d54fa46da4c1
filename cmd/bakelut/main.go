// Command bakelut renders a recipe JSON file into a 3D LUT.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tesenwein/recipekit/lut"
	"github.com/tesenwein/recipekit/recipe"
)

func main() {
	in := flag.String("in", "", "recipe JSON file")
	out := flag.String("out", "", "output LUT file (default stdout)")
	size := flag.Int("size", lut.DefaultSize, "grid size per axis")
	format := flag.String("format", string(lut.FormatCube), "lut format: cube or 3dl")
	title := flag.String("title", "", "LUT title")
	flag.Parse()

	if err := run(*in, *out, *size, *format, *title); err != nil {
		fmt.Fprintln(os.Stderr, "bakelut:", err)
		os.Exit(1)
	}
}

func run(in, out string, size int, format, title string) error {
	if in == "" {
		return fmt.Errorf("missing -in")
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	var adj recipe.Adjustments
	if err := json.Unmarshal(data, &adj); err != nil {
		return fmt.Errorf("decoding recipe: %w", err)
	}

	text, err := lut.Bake(&adj, lut.Config{
		Size:   size,
		Format: lut.Format(format),
		Title:  title,
	})
	if err != nil {
		return err
	}

	if out == "" {
		_, err = os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(out, []byte(text), 0o644)
}
