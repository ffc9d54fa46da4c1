package xmp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tesenwein/recipekit/recipe"
)

const processVersion = "11.0"

// Generate renders a complete XMP/RDF preset document for adj. Only the
// groups selected by inc are emitted; absent fields are omitted. A
// black-and-white treatment forces saturation to zero and suppresses HSL
// emission regardless of inc.
func Generate(adj *recipe.Adjustments, inc Include) string {
	n := adj.Normalize()
	mono := n.Treatment.IsMono()

	attrs := &attrList{indent: "    "}
	attrs.add("crs:PresetType", "Normal")
	attrs.add("crs:ProcessVersion", processVersion)
	if mono {
		attrs.add("crs:ConvertToGrayscale", "True")
	}

	appendGroupAttrs(attrs, n, inc, true)

	var elems strings.Builder
	if n.Name != "" {
		appendAlt(&elems, "crs:Name", n.Name)
	}
	if n.Description != "" {
		appendAlt(&elems, "crs:ShortName", n.Description)
	}
	appendGroupElements(&elems, n, inc)

	return document(attrs, &elems)
}

// appendGroupAttrs emits the attribute-valued adjustment groups selected
// by inc. Exposure can be withheld, which the look variant requires.
func appendGroupAttrs(attrs *attrList, n *recipe.Adjustments, inc Include, exposure bool) {
	mono := n.Treatment.IsMono()

	if inc.Basic {
		attrs.add("crs:CameraProfile", profileName(n))
		if exposure {
			attrs.addFixed("crs:Exposure2012", n.Exposure, 2)
		}
		attrs.addInt("crs:Contrast2012", n.Contrast)
		attrs.addInt("crs:Highlights2012", n.Highlights)
		attrs.addInt("crs:Shadows2012", n.Shadows)
		attrs.addInt("crs:Whites2012", n.Whites)
		attrs.addInt("crs:Blacks2012", n.Blacks)
		attrs.addInt("crs:Clarity2012", n.Clarity)
		attrs.addInt("crs:Vibrance", n.Vibrance)
		if mono {
			attrs.add("crs:Saturation", "0")
		} else {
			attrs.addInt("crs:Saturation", n.Saturation)
		}
		attrs.addInt("crs:Brightness", n.Brightness)
	}

	if inc.WhiteBalance && (n.Temperature != nil || n.Tint != nil) {
		attrs.add("crs:WhiteBalance", "Custom")
		attrs.addInt("crs:Temperature", n.Temperature)
		attrs.addInt("crs:Tint", n.Tint)
	}

	if inc.HSL {
		if mono {
			if mixer := n.Treatment.Mixer(); mixer != nil {
				for i := 0; i < recipe.NumBands; i++ {
					band := recipe.Band(i)
					attrs.addInt("crs:GrayMixer"+band.String(), (*mixer)[band])
				}
			}
		} else if hsl := n.Treatment.HSL(); hsl != nil {
			for i := 0; i < recipe.NumBands; i++ {
				band := recipe.Band(i)
				a := (*hsl)[band]
				attrs.addInt("crs:HueAdjustment"+band.String(), a.Hue)
				attrs.addInt("crs:SaturationAdjustment"+band.String(), a.Sat)
				attrs.addInt("crs:LuminanceAdjustment"+band.String(), a.Lum)
			}
		}
	}

	if inc.Grading && n.Grading != nil {
		g := n.Grading
		attrs.addInt("crs:SplitToningShadowHue", g.Shadows.Hue)
		attrs.addInt("crs:SplitToningShadowSaturation", g.Shadows.Sat)
		attrs.addInt("crs:SplitToningHighlightHue", g.Highlights.Hue)
		attrs.addInt("crs:SplitToningHighlightSaturation", g.Highlights.Sat)
		attrs.addInt("crs:SplitToningBalance", g.Balance)
		attrs.addInt("crs:ColorGradeShadowLum", g.Shadows.Lum)
		attrs.addInt("crs:ColorGradeMidtoneHue", g.Midtones.Hue)
		attrs.addInt("crs:ColorGradeMidtoneSat", g.Midtones.Sat)
		attrs.addInt("crs:ColorGradeMidtoneLum", g.Midtones.Lum)
		attrs.addInt("crs:ColorGradeHighlightLum", g.Highlights.Lum)
		attrs.addInt("crs:ColorGradeGlobalHue", g.Global.Hue)
		attrs.addInt("crs:ColorGradeGlobalSat", g.Global.Sat)
		attrs.addInt("crs:ColorGradeGlobalLum", g.Global.Lum)
		attrs.addInt("crs:ColorGradeBlending", g.Blending)
	}

	if inc.Grain && n.Grain != nil {
		attrs.addInt("crs:GrainAmount", n.Grain.Amount)
		attrs.addInt("crs:GrainSize", n.Grain.Size)
		attrs.addInt("crs:GrainFrequency", n.Grain.Frequency)
	}

	if inc.Vignette && n.Vignette != nil {
		v := n.Vignette
		attrs.addInt("crs:PostCropVignetteAmount", v.Amount)
		attrs.addInt("crs:PostCropVignetteMidpoint", v.Midpoint)
		attrs.addInt("crs:PostCropVignetteFeather", v.Feather)
		attrs.addInt("crs:PostCropVignetteRoundness", v.Roundness)
		if v.Style != nil {
			attrs.add("crs:PostCropVignetteStyle", strconv.Itoa(*v.Style))
		}
		attrs.addInt("crs:PostCropVignetteHighlightContrast", v.HighlightContrast)
	}
}

// appendGroupElements emits the element-valued groups: curves, point
// colors, and the mask correction list.
func appendGroupElements(elems *strings.Builder, n *recipe.Adjustments, inc Include) {
	if inc.Curves && !n.Curves.Empty() {
		appendCurve(elems, "crs:ToneCurvePV2012", n.Curves.Composite)
		appendCurve(elems, "crs:ToneCurvePV2012Red", n.Curves.Red)
		appendCurve(elems, "crs:ToneCurvePV2012Green", n.Curves.Green)
		appendCurve(elems, "crs:ToneCurvePV2012Blue", n.Curves.Blue)
	}
	if inc.PointColor && len(n.PointColors) > 0 {
		appendVectorSeq(elems, "crs:PointColors", n.PointColors)
		if len(n.PointVariance) > 0 {
			appendVectorSeq(elems, "crs:PointColorsVariance", n.PointVariance)
		}
	}
	if inc.Masks && len(n.Masks) > 0 {
		appendMaskCorrections(elems, n.Masks)
	}
}

func document(attrs *attrList, elems *strings.Builder) string {
	var sb strings.Builder
	sb.WriteString("<x:xmpmeta xmlns:x=\"adobe:ns:meta/\" x:xmptk=\"recipekit\">\n")
	sb.WriteString(" <rdf:RDF xmlns:rdf=\"" + nsRDF + "\">\n")
	sb.WriteString("  <rdf:Description rdf:about=\"\"\n")
	sb.WriteString("    xmlns:crs=\"" + nsCRS + "\"\n")
	sb.WriteString(attrs.String())
	sb.WriteString(">\n")
	sb.WriteString(elems.String())
	sb.WriteString("  </rdf:Description>\n")
	sb.WriteString(" </rdf:RDF>\n")
	sb.WriteString("</x:xmpmeta>\n")
	return sb.String()
}

func profileName(n *recipe.Adjustments) string {
	if n.Profile != "" {
		return n.Profile
	}
	if n.Treatment.IsMono() {
		return defaultMonoProfile
	}
	return defaultColorProfile
}

// appendAlt writes a language-alternative text element.
func appendAlt(sb *strings.Builder, tag, value string) {
	fmt.Fprintf(sb, "   <%s>\n    <rdf:Alt>\n     <rdf:li xml:lang=\"x-default\">%s</rdf:li>\n    </rdf:Alt>\n   </%s>\n",
		tag, escape(value), tag)
}

// appendCurve writes one tone curve as a sequence of "x, y" integer
// points in the 0..255 domain.
func appendCurve(sb *strings.Builder, tag string, pts []recipe.CurvePoint) {
	if len(pts) == 0 {
		return
	}
	fmt.Fprintf(sb, "   <%s>\n    <rdf:Seq>\n", tag)
	for _, p := range pts {
		fmt.Fprintf(sb, "     <rdf:li>%d, %d</rdf:li>\n", roundByte(p.X), roundByte(p.Y))
	}
	fmt.Fprintf(sb, "    </rdf:Seq>\n   </%s>\n", tag)
}

func roundByte(v float64) int {
	i := int(v + 0.5)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return i
}

// appendVectorSeq writes a list of numeric vectors, each vector one list
// item of comma-separated 6-decimal floats.
func appendVectorSeq(sb *strings.Builder, tag string, vectors [][]float64) {
	fmt.Fprintf(sb, "   <%s>\n    <rdf:Seq>\n", tag)
	for _, vec := range vectors {
		parts := make([]string, len(vec))
		for i, v := range vec {
			parts[i] = fmt.Sprintf("%.6f", v)
		}
		fmt.Fprintf(sb, "     <rdf:li>%s</rdf:li>\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(sb, "    </rdf:Seq>\n   </%s>\n", tag)
}
