package xmp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tesenwein/recipekit/observability"
	"github.com/tesenwein/recipekit/recipe"
)

// Parse failure classes. Individual malformed fields inside a valid
// document are skipped silently; only a document missing its structural
// markers fails.
var (
	ErrNotXMP = fmt.Errorf("xmp: missing camera-raw namespace marker")
	ErrNoRDF  = fmt.Errorf("xmp: missing RDF root element")
)

// Groups summarizes which adjustment groups a parsed document carried.
type Groups struct {
	Basic        bool
	WhiteBalance bool
	HSL          bool
	GrayMixer    bool
	Grading      bool
	Curves       bool
	Grain        bool
	Vignette     bool
	PointColor   bool
	Masks        bool
}

// ParseResult is a successfully reconstructed recipe plus its group
// summary.
type ParseResult struct {
	Recipe *recipe.Adjustments
	Groups Groups
}

// Parser extracts adjustment records from XMP preset text.
type Parser struct {
	Log observability.Logger
}

// Parse runs a default Parser over doc.
func Parse(doc string) (*ParseResult, error) {
	return Parser{}.Parse(doc)
}

var (
	attrRe       = regexp.MustCompile(`crs:([A-Za-z0-9]+)="([^"]*)"`)
	altTextRe    = regexp.MustCompile(`(?s)<crs:(Name|ShortName)>.*?<rdf:li[^>]*>(.*?)</rdf:li>`)
	liRe         = regexp.MustCompile(`<rdf:li>([^<]*)</rdf:li>`)
	correctionRe = regexp.MustCompile(`(?s)<rdf:Description\s+crs:What="Correction".*?</rdf:Description>`)
	geometryRe   = regexp.MustCompile(`(?s)<rdf:Description\s+crs:What="Mask/[^"]*".*?/>`)
)

// Parse validates the document's structural markers and extracts every
// recognizable field. Malformed or empty numeric tokens are skipped, never
// defaulted to zero; the parse still succeeds.
func (p Parser) Parse(doc string) (*ParseResult, error) {
	log := p.Log
	if log == nil {
		log = observability.NopLogger{}
	}
	start := time.Now()

	if !strings.Contains(doc, "camera-raw-settings") {
		return nil, ErrNotXMP
	}
	if !strings.Contains(doc, "<rdf:RDF") {
		return nil, ErrNoRDF
	}

	// The mask section carries its own crs attributes; cut it out so the
	// global scan does not pick them up.
	maskSection, rest := splitSection(doc, "crs:MaskGroupBasedCorrections")

	f := make(fields)
	for _, m := range attrRe.FindAllStringSubmatch(rest, -1) {
		f[m[1]] = m[2]
	}

	adj := &recipe.Adjustments{}
	var groups Groups

	for _, m := range altTextRe.FindAllStringSubmatch(rest, -1) {
		switch m[1] {
		case "Name":
			adj.Name = unescape(strings.TrimSpace(m[2]))
		case "ShortName":
			adj.Description = unescape(strings.TrimSpace(m[2]))
		}
	}
	adj.Profile = unescape(f.str("CameraProfile"))

	adj.Exposure = f.num("Exposure2012")
	adj.Contrast = f.num("Contrast2012")
	adj.Highlights = f.num("Highlights2012")
	adj.Shadows = f.num("Shadows2012")
	adj.Whites = f.num("Whites2012")
	adj.Blacks = f.num("Blacks2012")
	adj.Clarity = f.num("Clarity2012")
	adj.Vibrance = f.num("Vibrance")
	adj.Saturation = f.num("Saturation")
	adj.Brightness = f.num("Brightness")
	groups.Basic = adj.Exposure != nil || adj.Contrast != nil || adj.Highlights != nil ||
		adj.Shadows != nil || adj.Whites != nil || adj.Blacks != nil ||
		adj.Clarity != nil || adj.Vibrance != nil || adj.Saturation != nil ||
		adj.Brightness != nil

	adj.Temperature = f.num("Temperature")
	adj.Tint = f.num("Tint")
	groups.WhiteBalance = adj.Temperature != nil || adj.Tint != nil

	mono := strings.EqualFold(f.str("ConvertToGrayscale"), "true")
	if mono {
		monoT := &recipe.MonoTreatment{}
		for i := 0; i < recipe.NumBands; i++ {
			band := recipe.Band(i)
			if v := f.num("GrayMixer" + band.String()); v != nil {
				monoT.Mixer[band] = v
				groups.GrayMixer = true
			}
		}
		adj.Treatment = recipe.Treatment{Monochrome: monoT}
	} else {
		colorT := &recipe.ColorTreatment{}
		found := false
		for i := 0; i < recipe.NumBands; i++ {
			band := recipe.Band(i)
			a := recipe.BandAdjust{
				Hue: f.num("HueAdjustment" + band.String()),
				Sat: f.num("SaturationAdjustment" + band.String()),
				Lum: f.num("LuminanceAdjustment" + band.String()),
			}
			if a.Hue != nil || a.Sat != nil || a.Lum != nil {
				found = true
			}
			colorT.HSL[band] = a
		}
		if found {
			adj.Treatment = recipe.Treatment{Color: colorT}
			groups.HSL = true
		}
	}

	grading := &recipe.ColorGrading{
		Shadows: recipe.GradeWheel{
			Hue: f.num("SplitToningShadowHue"),
			Sat: f.num("SplitToningShadowSaturation"),
			Lum: f.num("ColorGradeShadowLum"),
		},
		Midtones: recipe.GradeWheel{
			Hue: f.num("ColorGradeMidtoneHue"),
			Sat: f.num("ColorGradeMidtoneSat"),
			Lum: f.num("ColorGradeMidtoneLum"),
		},
		Highlights: recipe.GradeWheel{
			Hue: f.num("SplitToningHighlightHue"),
			Sat: f.num("SplitToningHighlightSaturation"),
			Lum: f.num("ColorGradeHighlightLum"),
		},
		Global: recipe.GradeWheel{
			Hue: f.num("ColorGradeGlobalHue"),
			Sat: f.num("ColorGradeGlobalSat"),
			Lum: f.num("ColorGradeGlobalLum"),
		},
		Blending: f.num("ColorGradeBlending"),
		Balance:  f.num("SplitToningBalance"),
	}
	if gradingPresent(grading) {
		adj.Grading = grading
		groups.Grading = true
	}

	curves := &recipe.ToneCurves{
		Composite: parseCurve(rest, "crs:ToneCurvePV2012"),
		Red:       parseCurve(rest, "crs:ToneCurvePV2012Red"),
		Green:     parseCurve(rest, "crs:ToneCurvePV2012Green"),
		Blue:      parseCurve(rest, "crs:ToneCurvePV2012Blue"),
	}
	if !curves.Empty() {
		adj.Curves = curves
		groups.Curves = true
	}

	grain := &recipe.Grain{
		Amount:    f.num("GrainAmount"),
		Size:      f.num("GrainSize"),
		Frequency: f.num("GrainFrequency"),
	}
	if grain.Amount != nil || grain.Size != nil || grain.Frequency != nil {
		adj.Grain = grain
		groups.Grain = true
	}

	vignette := &recipe.Vignette{
		Amount:            f.num("PostCropVignetteAmount"),
		Midpoint:          f.num("PostCropVignetteMidpoint"),
		Feather:           f.num("PostCropVignetteFeather"),
		Roundness:         f.num("PostCropVignetteRoundness"),
		HighlightContrast: f.num("PostCropVignetteHighlightContrast"),
	}
	if s := f.num("PostCropVignetteStyle"); s != nil {
		style := int(*s)
		vignette.Style = &style
	}
	if vignette.Amount != nil || vignette.Midpoint != nil || vignette.Feather != nil ||
		vignette.Roundness != nil || vignette.Style != nil || vignette.HighlightContrast != nil {
		adj.Vignette = vignette
		groups.Vignette = true
	}

	adj.PointColors = parseVectorSeq(rest, "crs:PointColors")
	adj.PointVariance = parseVectorSeq(rest, "crs:PointColorsVariance")
	groups.PointColor = len(adj.PointColors) > 0

	if maskSection != "" {
		adj.Masks = parseMasks(maskSection)
		groups.Masks = len(adj.Masks) > 0
	}

	log.Debug("parsed xmp preset",
		observability.Float64(observability.MetricParseTime, time.Since(start).Seconds()),
		observability.Int("masks", len(adj.Masks)))

	return &ParseResult{Recipe: adj.Normalize(), Groups: groups}, nil
}

type fields map[string]string

func (f fields) str(name string) string { return f[name] }

// num parses an attribute as a float. Missing, empty or malformed tokens
// yield nil: the field stays absent.
func (f fields) num(name string) *float64 {
	s, ok := f[name]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// splitSection cuts the element named tag out of doc, returning the
// section text and the remainder.
func splitSection(doc, tag string) (section, rest string) {
	open := "<" + tag + ">"
	closing := "</" + tag + ">"
	i := strings.Index(doc, open)
	if i == -1 {
		return "", doc
	}
	j := strings.Index(doc[i:], closing)
	if j == -1 {
		return "", doc
	}
	end := i + j + len(closing)
	return doc[i:end], doc[:i] + doc[end:]
}

func gradingPresent(g *recipe.ColorGrading) bool {
	wheels := []recipe.GradeWheel{g.Shadows, g.Midtones, g.Highlights, g.Global}
	for _, w := range wheels {
		if w.Hue != nil || w.Sat != nil || w.Lum != nil {
			return true
		}
	}
	return g.Blending != nil || g.Balance != nil
}

// parseCurve extracts the "x, y" integer points of one curve element.
// Malformed points are skipped individually.
func parseCurve(doc, tag string) []recipe.CurvePoint {
	section, _ := splitSection(doc, tag)
	if section == "" {
		return nil
	}
	var pts []recipe.CurvePoint
	for _, m := range liRe.FindAllStringSubmatch(section, -1) {
		parts := strings.SplitN(m[1], ",", 2)
		if len(parts) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, recipe.CurvePoint{X: x, Y: y})
	}
	return pts
}

// parseVectorSeq extracts a sequence of comma-separated float vectors.
func parseVectorSeq(doc, tag string) [][]float64 {
	section, _ := splitSection(doc, tag)
	if section == "" {
		return nil
	}
	var out [][]float64
	for _, m := range liRe.FindAllStringSubmatch(section, -1) {
		var vec []float64
		ok := true
		for _, tok := range strings.Split(m[1], ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				ok = false
				break
			}
			vec = append(vec, v)
		}
		if ok && len(vec) > 0 {
			out = append(out, vec)
		}
	}
	return out
}

// parseMasks iterates the correction blocks of the mask container,
// rebuilding one Mask per block. Blocks whose geometry cannot be
// recognized are dropped; the rest of the document is unaffected.
func parseMasks(section string) []recipe.Mask {
	var masks []recipe.Mask
	for _, block := range correctionRe.FindAllString(section, -1) {
		geomText := geometryRe.FindString(block)
		head := block
		if geomText != "" {
			head = block[:strings.Index(block, geomText)]
		}

		cf := make(fields)
		for _, m := range attrRe.FindAllStringSubmatch(head, -1) {
			cf[m[1]] = m[2]
		}
		gf := make(fields)
		for _, m := range attrRe.FindAllStringSubmatch(geomText, -1) {
			gf[m[1]] = m[2]
		}

		kind, geom, sub := resolveGeometry(gf)
		if geom == nil {
			continue
		}
		mask := recipe.Mask{
			Name:        unescape(cf.str("CorrectionName")),
			Kind:        kind,
			SubCategory: sub,
			Inverted:    strings.EqualFold(gf.str("MaskInverted"), "true"),
			Flipped:     strings.EqualFold(gf.str("MaskFlipped"), "true"),
			Geometry:    geom,
			Adjust: recipe.LocalAdjust{
				Exposure:   cf.num("LocalExposure2012"),
				Contrast:   cf.num("LocalContrast2012"),
				Highlights: cf.num("LocalHighlights2012"),
				Shadows:    cf.num("LocalShadows2012"),
				Whites:     cf.num("LocalWhites2012"),
				Blacks:     cf.num("LocalBlacks2012"),
				Clarity:    cf.num("LocalClarity2012"),
				Saturation: cf.num("LocalSaturation"),
			},
		}
		masks = append(masks, mask)
	}
	return masks
}

func resolveGeometry(gf fields) (recipe.MaskKind, recipe.Geometry, *int) {
	num := func(name string) float64 {
		if v := gf.num(name); v != nil {
			return *v
		}
		return 0
	}
	switch gf.str("What") {
	case whatRadial:
		return recipe.MaskRadial, recipe.RadialGeometry{
			Left:    num("Left"),
			Top:     num("Top"),
			Right:   num("Right"),
			Bottom:  num("Bottom"),
			Angle:   num("Angle"),
			Feather: num("Feather"),
		}, nil
	case whatLinear:
		return recipe.MaskLinear, recipe.LinearGeometry{
			X0: num("ZeroX"),
			Y0: num("ZeroY"),
			X1: num("FullX"),
			Y1: num("FullY"),
		}, nil
	case whatBrush:
		return recipe.MaskBrush, recipe.BrushGeometry{
			Size:    num("SizeX"),
			Flow:    num("Flow"),
			Density: num("Density"),
		}, nil
	case whatColorRange:
		return recipe.MaskColorRange, recipe.ColorRangeGeometry{
			PointX: num("PointX"),
			PointY: num("PointY"),
			Amount: num("RangeAmount"),
		}, nil
	case whatLuminanceRange:
		return recipe.MaskLuminanceRange, recipe.LuminanceRangeGeometry{
			Min: num("LumMin"),
			Max: num("LumMax"),
		}, nil
	case whatImage:
		kind := recipe.MaskSubject
		var sub *int
		if v := gf.num("MaskSubCategoryID"); v != nil {
			id := int(*v)
			if k, ok := recipe.KindForSubCategory(id); ok {
				kind = k
			}
			sub = &id
		}
		geom := recipe.AIGeometry{}
		if ref := gf.str("ReferencePoint"); ref != "" {
			parts := strings.Fields(ref)
			if len(parts) == 2 {
				if x, err := strconv.ParseFloat(parts[0], 64); err == nil {
					geom.RefX = x
				}
				if y, err := strconv.ParseFloat(parts[1], 64); err == nil {
					geom.RefY = y
				}
			}
		}
		return kind, geom, sub
	}
	return recipe.MaskSubject, nil, nil
}
