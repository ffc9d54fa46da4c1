// Command inspectxmp parses an XMP preset and prints the reconstructed
// recipe as JSON together with a summary of the groups found.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tesenwein/recipekit/codec/xmp"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspectxmp <preset.xmp>")
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "inspectxmp:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := xmp.Parse(string(data))
	if err != nil {
		return err
	}

	g := res.Groups
	fmt.Printf("groups: basic=%t whitebalance=%t hsl=%t grading=%t curves=%t grain=%t vignette=%t pointcolor=%t masks=%t\n",
		g.Basic, g.WhiteBalance, g.HSL, g.Grading, g.Curves, g.Grain, g.Vignette, g.PointColor, g.Masks)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Recipe)
}
