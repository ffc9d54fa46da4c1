package style

import (
	"fmt"
	"strings"

	"github.com/tesenwein/recipekit/recipe"
)

// Layer mask-type discriminator codes.
const (
	maskTypeRadial     = 1
	maskTypeLinear     = 2
	maskTypeBrush      = 3
	maskTypeSubject    = 4
	maskTypeSky        = 5
	maskTypeBackground = 6
	maskTypePerson     = 7
	maskTypeColorRange = 8
	maskTypeLumRange   = 9
	maskTypeFace       = 10
)

func maskType(k recipe.MaskKind) int {
	switch k {
	case recipe.MaskRadial:
		return maskTypeRadial
	case recipe.MaskLinear:
		return maskTypeLinear
	case recipe.MaskBrush:
		return maskTypeBrush
	case recipe.MaskSubject:
		return maskTypeSubject
	case recipe.MaskSky:
		return maskTypeSky
	case recipe.MaskBackground:
		return maskTypeBackground
	case recipe.MaskPerson:
		return maskTypePerson
	case recipe.MaskColorRange:
		return maskTypeColorRange
	case recipe.MaskLuminanceRange:
		return maskTypeLumRange
	default:
		return maskTypeFace
	}
}

// writeLayers emits the layered document section: one full-image
// background layer, then one layer per mask. Local adjustments use the
// same slider scale as the global elements, so fractional local values
// are rescaled by 100 (exposure stays in stops).
func writeLayers(sb *strings.Builder, n *recipe.Adjustments) {
	sb.WriteString(" <LL>\n")
	sb.WriteString("  <L N=\"Background\">\n")
	writeElements(sb, "   ", []element{{"Enabled", "1"}})
	sb.WriteString("  </L>\n")

	for i, m := range n.Masks {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("Layer %d", i+1)
		}
		fmt.Fprintf(sb, "  <L N=\"%s\">\n", escape(name))
		elems := layerElements(m)
		sortElements(elems)
		writeElements(sb, "   ", elems)
		sb.WriteString("  </L>\n")
	}
	sb.WriteString(" </LL>\n")
}

func layerElements(m recipe.Mask) []element {
	elems := []element{
		{"Enabled", "1"},
		{"MaskType", fmt.Sprintf("%d", maskType(m.Kind))},
	}
	add := func(key string, p *float64, scale float64) {
		if p != nil {
			elems = append(elems, element{key, trimNum(*p * scale)})
		}
	}
	la := m.Adjust
	add("Exposure", la.Exposure, 1)
	add("Contrast", la.Contrast, 100)
	add("Saturation", la.Saturation, 100)
	add("Clarity", la.Clarity, 100)
	if la.Highlights != nil {
		elems = append(elems, element{"HighlightRecoveryEx", trimNum(recovery(-*la.Highlights * 100))})
	}
	if la.Shadows != nil {
		elems = append(elems, element{"ShadowRecovery", trimNum(recovery(*la.Shadows * 100))})
	}
	if m.Inverted {
		elems = append(elems, element{"Inverted", "1"})
	}
	return elems
}
