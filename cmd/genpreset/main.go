// Command genpreset renders a recipe JSON file into one of the preset
// text formats: a full XMP preset, a camera-profile look, or a
// zone/layer style document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tesenwein/recipekit/codec/style"
	"github.com/tesenwein/recipekit/codec/xmp"
	"github.com/tesenwein/recipekit/recipe"
)

func main() {
	in := flag.String("in", "", "recipe JSON file")
	out := flag.String("out", "", "output preset file (default stdout)")
	format := flag.String("format", "xmp", "preset format: xmp, look, or style")
	name := flag.String("name", "", "preset name override")
	masks := flag.Bool("masks", true, "emit mask corrections / layers")
	flag.Parse()

	if err := run(*in, *out, *format, *name, *masks); err != nil {
		fmt.Fprintln(os.Stderr, "genpreset:", err)
		os.Exit(1)
	}
}

func run(in, out, format, name string, masks bool) error {
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
	if name != "" {
		adj.Name = name
	}

	inc := xmp.IncludeAll()
	inc.Masks = masks

	var text string
	switch format {
	case "xmp":
		text = xmp.Generate(&adj, inc)
	case "look":
		text = xmp.GenerateLook(&adj, inc, xmp.LookConfig{})
	case "style":
		text = style.Generate(&adj, style.Config{Masks: masks})
	default:
		return fmt.Errorf("unknown preset format %q", format)
	}

	if out == "" {
		_, err = os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(out, []byte(text), 0o644)
}
