package recipe

import "math"

// Field ranges are clamped in exactly one place: Normalize. Codecs and the
// engine assume normalized input and never re-validate.

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampOpt clamps *p to [lo, hi]. Nil and non-finite values become nil:
// a field the caller never set, or that arrived as NaN/Inf from a malformed
// source, must stay absent rather than collapse to a bound.
func clampOpt(p *float64, lo, hi float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	v := clamp(*p, lo, hi)
	return &v
}

// wrapHue normalizes a hue angle into [0, 360). Hue is a circular domain;
// it wraps instead of clamping.
func wrapHue(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	v := math.Mod(*p, 360)
	if v < 0 {
		v += 360
	}
	return &v
}

// Normalize returns a deep copy of a with every present field clamped to
// its documented range, non-finite values dropped, hue fields wrapped,
// curve points rescaled to the 0..255 domain and the treatment variant
// invariant enforced. The receiver is not modified. Normalize is
// idempotent.
func (a *Adjustments) Normalize() *Adjustments {
	if a == nil {
		return &Adjustments{}
	}
	n := &Adjustments{
		Name:        a.Name,
		Description: a.Description,
		Profile:     a.Profile,

		Confidence: clampOpt(a.Confidence, 0, 1),

		Exposure:   clampOpt(a.Exposure, -5, 5),
		Contrast:   clampOpt(a.Contrast, -100, 100),
		Highlights: clampOpt(a.Highlights, -100, 100),
		Shadows:    clampOpt(a.Shadows, -100, 100),
		Whites:     clampOpt(a.Whites, -100, 100),
		Blacks:     clampOpt(a.Blacks, -100, 100),
		Clarity:    clampOpt(a.Clarity, -100, 100),
		Vibrance:   clampOpt(a.Vibrance, -100, 100),
		Saturation: clampOpt(a.Saturation, -100, 100),
		Brightness: clampOpt(a.Brightness, -100, 100),

		Temperature: clampOpt(a.Temperature, 2000, 50000),
		Tint:        clampOpt(a.Tint, -150, 150),
	}

	n.Treatment = a.Treatment.normalize()
	n.Grading = a.Grading.normalize()
	n.Curves = a.Curves.normalize()
	n.Grain = a.Grain.normalize()
	n.Vignette = a.Vignette.normalize()
	n.PointColors = normalizeVectors(a.PointColors)
	n.PointVariance = normalizeVectors(a.PointVariance)

	for _, m := range a.Masks {
		n.Masks = append(n.Masks, m.normalize())
	}
	return n
}

func (t Treatment) normalize() Treatment {
	// Monochrome wins if both variants were somehow populated; the gray
	// mixer and HSL banding are mutually exclusive in effect.
	if t.Monochrome != nil {
		mono := &MonoTreatment{}
		for i, p := range t.Monochrome.Mixer {
			mono.Mixer[i] = clampOpt(p, -100, 100)
		}
		return Treatment{Monochrome: mono}
	}
	if t.Color == nil {
		return Treatment{}
	}
	col := &ColorTreatment{}
	for i, b := range t.Color.HSL {
		col.HSL[i] = BandAdjust{
			Hue: clampOpt(b.Hue, -100, 100),
			Sat: clampOpt(b.Sat, -100, 100),
			Lum: clampOpt(b.Lum, -100, 100),
		}
	}
	return Treatment{Color: col}
}

func (w GradeWheel) normalize() GradeWheel {
	return GradeWheel{
		Hue: wrapHue(w.Hue),
		Sat: clampOpt(w.Sat, 0, 100),
		Lum: clampOpt(w.Lum, -100, 100),
	}
}

func (g *ColorGrading) normalize() *ColorGrading {
	if g == nil {
		return nil
	}
	return &ColorGrading{
		Shadows:    g.Shadows.normalize(),
		Midtones:   g.Midtones.normalize(),
		Highlights: g.Highlights.normalize(),
		Global:     g.Global.normalize(),
		Blending:   clampOpt(g.Blending, 0, 100),
		Balance:    clampOpt(g.Balance, -100, 100),
	}
}

func (c *ToneCurves) normalize() *ToneCurves {
	if c.Empty() {
		return nil
	}
	return &ToneCurves{
		Composite: normalizeCurve(c.Composite),
		Red:       normalizeCurve(c.Red),
		Green:     normalizeCurve(c.Green),
		Blue:      normalizeCurve(c.Blue),
	}
}

// normalizeCurve rescales a point list to the 0..255 domain. Lists whose
// coordinates all fit in 0..1 are treated as unit-domain and scaled up;
// anything else is assumed to already be 0..255 and is clamped.
func normalizeCurve(pts []CurvePoint) []CurvePoint {
	if len(pts) == 0 {
		return nil
	}
	unit := true
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		if p.X > 1 || p.Y > 1 {
			unit = false
			break
		}
	}
	out := make([]CurvePoint, 0, len(pts))
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		x, y := p.X, p.Y
		if unit {
			x *= 255
			y *= 255
		}
		out = append(out, CurvePoint{X: clamp(x, 0, 255), Y: clamp(y, 0, 255)})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (g *Grain) normalize() *Grain {
	if g == nil {
		return nil
	}
	return &Grain{
		Amount:    clampOpt(g.Amount, 0, 100),
		Size:      clampOpt(g.Size, 0, 100),
		Frequency: clampOpt(g.Frequency, 0, 100),
	}
}

func (v *Vignette) normalize() *Vignette {
	if v == nil {
		return nil
	}
	n := &Vignette{
		Amount:            clampOpt(v.Amount, -100, 100),
		Midpoint:          clampOpt(v.Midpoint, 0, 100),
		Feather:           clampOpt(v.Feather, 0, 100),
		Roundness:         clampOpt(v.Roundness, -100, 100),
		HighlightContrast: clampOpt(v.HighlightContrast, 0, 100),
	}
	if v.Style != nil {
		s := *v.Style
		if s < 0 {
			s = 0
		}
		if s > 2 {
			s = 2
		}
		n.Style = &s
	}
	return n
}

func normalizeVectors(vs [][]float64) [][]float64 {
	if len(vs) == 0 {
		return nil
	}
	out := make([][]float64, 0, len(vs))
	for _, v := range vs {
		row := make([]float64, 0, len(v))
		for _, x := range v {
			if !finite(x) {
				x = 0
			}
			row = append(row, x)
		}
		out = append(out, row)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
