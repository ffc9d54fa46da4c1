package xmp

import (
	"fmt"
	"strings"

	"github.com/tesenwein/recipekit/recipe"
)

// Mask type discriminators used in the crs:What attribute of a geometry
// block.
const (
	whatCorrection     = "Correction"
	whatRadial         = "Mask/CircularGradient"
	whatLinear         = "Mask/Gradient"
	whatBrush          = "Mask/Paint"
	whatColorRange     = "Mask/ColorRange"
	whatLuminanceRange = "Mask/LuminanceRange"
	whatImage          = "Mask/Image" // AI-detected region; sub-category id picks the kind
)

func maskWhat(k recipe.MaskKind) string {
	switch k {
	case recipe.MaskRadial:
		return whatRadial
	case recipe.MaskLinear:
		return whatLinear
	case recipe.MaskBrush:
		return whatBrush
	case recipe.MaskColorRange:
		return whatColorRange
	case recipe.MaskLuminanceRange:
		return whatLuminanceRange
	default:
		return whatImage
	}
}

// appendMaskCorrections writes the mask list as a sequence of correction
// blocks, each carrying its bounded local-adjustment subset as fixed-point
// attributes plus one geometry description whose shape depends on the
// mask kind.
func appendMaskCorrections(sb *strings.Builder, masks []recipe.Mask) {
	sb.WriteString("   <crs:MaskGroupBasedCorrections>\n    <rdf:Seq>\n")
	for _, m := range masks {
		attrs := &attrList{indent: "        "}
		attrs.add("crs:What", whatCorrection)
		attrs.add("crs:CorrectionAmount", "1.000000")
		attrs.add("crs:CorrectionActive", "true")
		if m.Name != "" {
			attrs.add("crs:CorrectionName", m.Name)
		}
		la := m.Adjust
		attrs.addFixed("crs:LocalExposure2012", la.Exposure, 2)
		attrs.addFixed("crs:LocalContrast2012", la.Contrast, 2)
		attrs.addFixed("crs:LocalHighlights2012", la.Highlights, 2)
		attrs.addFixed("crs:LocalShadows2012", la.Shadows, 2)
		attrs.addFixed("crs:LocalWhites2012", la.Whites, 2)
		attrs.addFixed("crs:LocalBlacks2012", la.Blacks, 2)
		attrs.addFixed("crs:LocalClarity2012", la.Clarity, 2)
		attrs.addFixed("crs:LocalSaturation", la.Saturation, 2)

		sb.WriteString("     <rdf:li>\n      <rdf:Description\n")
		sb.WriteString(attrs.String())
		sb.WriteString(">\n")
		appendGeometry(sb, m)
		sb.WriteString("      </rdf:Description>\n     </rdf:li>\n")
	}
	sb.WriteString("    </rdf:Seq>\n   </crs:MaskGroupBasedCorrections>\n")
}

func appendGeometry(sb *strings.Builder, m recipe.Mask) {
	attrs := &attrList{indent: "            "}
	attrs.add("crs:What", maskWhat(m.Kind))
	attrs.add("crs:MaskValue", "1.000000")

	switch g := m.Geometry.(type) {
	case recipe.RadialGeometry:
		attrs.add("crs:Left", fmt.Sprintf("%.6f", g.Left))
		attrs.add("crs:Top", fmt.Sprintf("%.6f", g.Top))
		attrs.add("crs:Right", fmt.Sprintf("%.6f", g.Right))
		attrs.add("crs:Bottom", fmt.Sprintf("%.6f", g.Bottom))
		attrs.add("crs:Angle", fmt.Sprintf("%.6f", g.Angle))
		attrs.add("crs:Feather", fmt.Sprintf("%.6f", g.Feather))
	case recipe.LinearGeometry:
		attrs.add("crs:ZeroX", fmt.Sprintf("%.6f", g.X0))
		attrs.add("crs:ZeroY", fmt.Sprintf("%.6f", g.Y0))
		attrs.add("crs:FullX", fmt.Sprintf("%.6f", g.X1))
		attrs.add("crs:FullY", fmt.Sprintf("%.6f", g.Y1))
	case recipe.BrushGeometry:
		attrs.add("crs:SizeX", fmt.Sprintf("%.6f", g.Size))
		attrs.add("crs:Flow", fmt.Sprintf("%.6f", g.Flow))
		attrs.add("crs:Density", fmt.Sprintf("%.6f", g.Density))
	case recipe.ColorRangeGeometry:
		attrs.add("crs:PointX", fmt.Sprintf("%.6f", g.PointX))
		attrs.add("crs:PointY", fmt.Sprintf("%.6f", g.PointY))
		attrs.add("crs:RangeAmount", fmt.Sprintf("%.6f", g.Amount))
	case recipe.LuminanceRangeGeometry:
		attrs.add("crs:LumMin", fmt.Sprintf("%.6f", g.Min))
		attrs.add("crs:LumMax", fmt.Sprintf("%.6f", g.Max))
	case recipe.AIGeometry:
		attrs.add("crs:ReferencePoint", fmt.Sprintf("%.6f %.6f", g.RefX, g.RefY))
	}

	if m.Kind.IsAI() && m.SubCategory != nil {
		attrs.add("crs:MaskSubCategoryID", fmt.Sprintf("%d", *m.SubCategory))
	}
	if m.Inverted {
		attrs.add("crs:MaskInverted", "true")
	}
	if m.Flipped {
		attrs.add("crs:MaskFlipped", "true")
	}

	sb.WriteString("       <crs:CorrectionMasks>\n        <rdf:Seq>\n")
	sb.WriteString("         <rdf:li>\n          <rdf:Description\n")
	sb.WriteString(attrs.String())
	sb.WriteString("/>\n")
	sb.WriteString("         </rdf:li>\n        </rdf:Seq>\n       </crs:CorrectionMasks>\n")
}
