// Package style serializes adjustments into the zone/layer style format
// used by a second editing tool. The document is a flat list of
// <E K="key" V="value" /> elements inside a fixed root tag, sorted
// lexicographically by key, plus a mandatory nine-zone color-correction
// string. Several fields of the source model have no equivalent in this
// format (post-crop vignette, per-wheel grading colors) and are never
// emitted.
package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tesenwein/recipekit/observability"
	"github.com/tesenwein/recipekit/recipe"
)

const engineVersion = "1300"

// Config controls style generation.
type Config struct {
	// Name overrides the recipe name for the emitted style.
	Name string

	// Masks enables the layered output shape: a full-image background
	// layer followed by one layer per mask.
	Masks bool

	// ID fixes the style id. Empty generates a fresh UUID.
	ID string

	Log observability.Logger
}

type element struct {
	key, val string
}

// Generate renders the complete style document for adj.
func Generate(adj *recipe.Adjustments, cfg Config) string {
	log := cfg.Log
	if log == nil {
		log = observability.NopLogger{}
	}
	n := adj.Normalize()

	elems := baseElements(n, cfg)
	sortElements(elems)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<SL Engine=\"%s\">\n", engineVersion)
	writeElements(&sb, " ", elems)
	if cfg.Masks && len(n.Masks) > 0 {
		writeLayers(&sb, n)
	}
	sb.WriteString("</SL>\n")

	out := sb.String()
	log.Debug("style generated",
		observability.String("name", styleName(n, cfg)),
		observability.Int(observability.MetricGenerateBytes, len(out)))
	return out
}

func styleName(n *recipe.Adjustments, cfg Config) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	if n.Name != "" {
		return n.Name
	}
	return "Untitled Style"
}

func styleID(cfg Config) string {
	if cfg.ID != "" {
		return cfg.ID
	}
	return uuid.NewString()
}

// baseElements builds the unsorted global element list. Highlight and
// shadow recovery carry inverted signs relative to the source model:
// recovery is a positive-only amount, so highlights:-200 becomes
// HighlightRecoveryEx=100.
func baseElements(n *recipe.Adjustments, cfg Config) []element {
	var elems []element
	add := func(key, val string) {
		elems = append(elems, element{key, val})
	}
	addNum := func(key string, p *float64) {
		if p != nil {
			add(key, trimNum(*p))
		}
	}

	add("Name", escape(styleName(n, cfg)))
	add("UUID", styleID(cfg))
	add("ColorBalance", "1;1;1")
	add("ColorCorrections", colorCorrections(n))

	addNum("Exposure", n.Exposure)
	addNum("Contrast", n.Contrast)
	addNum("Brightness", n.Brightness)
	addNum("Clarity", n.Clarity)
	addNum("Saturation", n.Saturation)
	if n.Highlights != nil {
		add("HighlightRecoveryEx", trimNum(recovery(-*n.Highlights)))
	}
	if n.Shadows != nil {
		add("ShadowRecovery", trimNum(recovery(*n.Shadows)))
	}

	addNum("WhiteBalanceTemperature", n.Temperature)
	addNum("WhiteBalanceTint", n.Tint)

	if n.Grain != nil {
		addNum("FilmGrainAmount", n.Grain.Amount)
		addNum("FilmGrainGranularity", n.Grain.Size)
	}

	if n.Treatment.IsMono() {
		add("BlackAndWhiteEnabled", "1")
		if mixer := n.Treatment.Mixer(); mixer != nil {
			for i := 0; i < recipe.NumBands; i++ {
				band := recipe.Band(i)
				if v := (*mixer)[band]; v != nil {
					add("BlackAndWhite"+band.String(), trimNum(*v))
				}
			}
		}
	}

	return elems
}

// recovery clamps a recovery amount to the positive 0..100 range.
func recovery(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func sortElements(elems []element) {
	sort.Slice(elems, func(i, j int) bool { return elems[i].key < elems[j].key })
}

func writeElements(sb *strings.Builder, indent string, elems []element) {
	for _, e := range elems {
		fmt.Fprintf(sb, "%s<E K=\"%s\" V=\"%s\" />\n", indent, e.key, e.val)
	}
}

// trimNum formats a number without trailing fractional zeros.
func trimNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
