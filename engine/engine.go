// Package engine implements the deterministic color transform at the core
// of recipe rendering: a pure function from one normalized RGB triple and
// an adjustment record to a new RGB triple. It is stateless, performs no
// I/O and never fails; absent fields are neutral and out-of-range inputs
// are clamped.
//
// Stage order: white balance, exposure, tone region shaping, global
// saturation/vibrance (or the grayscale mix under a monochrome treatment),
// per-hue HSL banding, three-way plus global color grading, final clamp.
package engine

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tesenwein/recipekit/recipe"
)

// Per-band effect bounds: a full-scale band adjustment rotates hue by at
// most maxBandHueShift degrees, scales saturation by at most
// maxBandSatScale and offsets lightness by at most maxBandLumOffset.
const (
	maxBandHueShift  = 50.0
	maxBandSatScale  = 0.6
	maxBandLumOffset = 0.15
)

// Apply maps one RGB triple (each channel 0..1) through the look described
// by adj and returns the transformed triple, clamped to 0..1. adj is
// expected to be normalized; nil behaves as a neutral look.
func Apply(r, g, b float64, adj *recipe.Adjustments) (float64, float64, float64) {
	r, g, b = clamp01(r), clamp01(g), clamp01(b)
	if adj == nil {
		return r, g, b
	}

	r, g, b = whiteBalance(r, g, b, adj)
	r, g, b = exposure(r, g, b, adj)
	r, g, b = toneRegions(r, g, b, adj)
	r, g, b = clamp01(r), clamp01(g), clamp01(b)

	if adj.Treatment.IsMono() {
		r, g, b = grayMix(r, g, b, adj.Treatment.Mixer())
	} else {
		r, g, b = saturationVibrance(r, g, b, adj)
		r, g, b = hslBands(r, g, b, adj.Treatment.HSL())
	}
	r, g, b = colorGrade(r, g, b, adj.Grading)

	return clamp01(r), clamp01(g), clamp01(b)
}

// whiteBalance divides out the target illuminant relative to the 6500K
// reference, then applies the tint correction: positive tint (magenta)
// lifts red and blue and pulls green down twice as hard, negative tint
// (green) does the inverse.
func whiteBalance(r, g, b float64, adj *recipe.Adjustments) (float64, float64, float64) {
	if adj.Temperature != nil && *adj.Temperature != recipe.ReferenceTemperature {
		refR, refG, refB := KelvinToRGB(recipe.ReferenceTemperature)
		tgtR, tgtG, tgtB := KelvinToRGB(*adj.Temperature)
		if tgtR > 0 && tgtG > 0 && tgtB > 0 {
			r *= refR / tgtR
			g *= refG / tgtG
			b *= refB / tgtB
		}
	}
	if tint := recipe.Value(adj.Tint, 0); tint != 0 {
		t := tint / 150 // normalized to [-1, 1]
		r *= 1 + 0.1*t
		b *= 1 + 0.1*t
		g *= 1 - 0.2*t
	}
	return r, g, b
}

// exposure scales all channels by 2^(stops/4). The quarter-stop factor is
// tuned to match the visual intensity of the target tools' exposure
// sliders.
func exposure(r, g, b float64, adj *recipe.Adjustments) (float64, float64, float64) {
	stops := recipe.Value(adj.Exposure, 0)
	if stops == 0 {
		return r, g, b
	}
	m := math.Exp2(stops * 0.25)
	return r * m, g * m, b * m
}

// toneRegions adds luma-weighted contributions from the blacks, shadows,
// highlights and whites sliders, then applies contrast around mid-gray.
func toneRegions(r, g, b float64, adj *recipe.Adjustments) (float64, float64, float64) {
	shadows := recipe.Value(adj.Shadows, 0) / 100
	highlights := recipe.Value(adj.Highlights, 0) / 100
	blacks := recipe.Value(adj.Blacks, 0) / 100
	whites := recipe.Value(adj.Whites, 0) / 100
	contrast := recipe.Value(adj.Contrast, 0) / 100

	if shadows != 0 || highlights != 0 || blacks != 0 || whites != 0 {
		l := luma(r, g, b)
		shadowW := 1 - smoothstep(0.0, 0.5, l)
		highlightW := smoothstep(0.5, 1.0, l)
		blackW := 1 - smoothstep(0.0, 0.25, l)
		whiteW := smoothstep(0.75, 1.0, l)

		delta := 0.25 * (shadows*shadowW + highlights*highlightW +
			blacks*blackW + whites*whiteW)
		r += delta
		g += delta
		b += delta
	}

	if contrast != 0 {
		m := 1 + 0.8*contrast
		r = (r-0.5)*m + 0.5
		g = (g-0.5)*m + 0.5
		b = (b-0.5)*m + 0.5
	}
	return r, g, b
}

// saturationVibrance scales HSL saturation by the saturation slider, then
// by a vibrance factor that attenuates already-saturated pixels more than
// desaturated ones.
func saturationVibrance(r, g, b float64, adj *recipe.Adjustments) (float64, float64, float64) {
	sat := recipe.Value(adj.Saturation, 0) / 100
	vib := recipe.Value(adj.Vibrance, 0) / 100
	if sat == 0 && vib == 0 {
		return r, g, b
	}
	h, s, l := colorful.Color{R: r, G: g, B: b}.Hsl()
	s *= 1 + sat
	if vib != 0 {
		s *= 1 + vib*(1-clamp01(s))
	}
	c := colorful.Hsl(h, clamp01(s), l)
	return c.R, c.G, c.B
}

// grayMix collapses the pixel to the mixer-weighted luma. Each band's
// mixer value brightens or darkens pixels whose hue falls in that band,
// scaled by how saturated the pixel was.
func grayMix(r, g, b float64, mixer *recipe.GrayMixer) (float64, float64, float64) {
	l := luma(r, g, b)
	if mixer != nil {
		h, s, _ := colorful.Color{R: r, G: g, B: b}.Hsl()
		var shift float64
		for band, w := range bandWeights(h) {
			if w == 0 {
				continue
			}
			shift += w * recipe.Value((*mixer)[band], 0) / 100
		}
		l = clamp01(l * (1 + 0.5*shift*clamp01(s*2)))
	}
	return l, l, l
}

// hslBands applies the per-band hue/saturation/luminance shifts, blended
// by the pixel's soft membership in each of the 8 fixed bands. Neutral
// pixels have an unstable hue, so the whole effect fades out below ~15%
// saturation.
func hslBands(r, g, b float64, mix *recipe.HSLMix) (float64, float64, float64) {
	if mix == nil || mix.Zero() {
		return r, g, b
	}
	h, s, l := colorful.Color{R: r, G: g, B: b}.Hsl()
	stability := smoothstep(0, 0.15, s)
	if stability == 0 {
		return r, g, b
	}

	var hueShift, satScale, lumOffset float64
	for band, w := range bandWeights(h) {
		if w == 0 {
			continue
		}
		a := (*mix)[band]
		hueShift += w * recipe.Value(a.Hue, 0) / 100 * maxBandHueShift
		satScale += w * recipe.Value(a.Sat, 0) / 100 * maxBandSatScale
		lumOffset += w * recipe.Value(a.Lum, 0) / 100 * maxBandLumOffset
	}

	h = math.Mod(h+hueShift*stability+360, 360)
	s = clamp01(s * (1 + satScale*stability))
	l = clamp01(l + lumOffset*stability)
	c := colorful.Hsl(h, s, l)
	return c.R, c.G, c.B
}

// bandWeights computes the soft triangular membership of hue angle h
// against the 8 band centers, normalized so the weights sum to at most 1.
func bandWeights(h float64) [recipe.NumBands]float64 {
	var w [recipe.NumBands]float64
	var sum float64
	for i := 0; i < recipe.NumBands; i++ {
		band := recipe.Band(i)
		d := hueDistance(h, band.Center())
		if hw := band.HalfWidth(); d < hw {
			w[i] = 1 - d/hw
			sum += w[i]
		}
	}
	if sum > 1 {
		for i := range w {
			w[i] /= sum
		}
	}
	return w
}

// hueDistance returns the angular distance between two hue angles,
// always in 0..180.
func hueDistance(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b+360, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// colorGrade blends the pixel toward each active wheel's flat color,
// weighted by the pixel's luma region, then applies the global wheel
// unconditionally.
func colorGrade(r, g, b float64, grading *recipe.ColorGrading) (float64, float64, float64) {
	if grading == nil {
		return r, g, b
	}
	l := luma(r, g, b)
	bal := recipe.Value(grading.Balance, 0) / 100
	blend := recipe.Value(grading.Blending, 50) / 50 // neutral at 50

	// Balance shifts the shadow/highlight crossover: positive widens the
	// highlight region.
	shadowW := 1 - smoothstep(0.15+0.2*bal, 0.55+0.2*bal, l)
	highlightW := smoothstep(0.45+0.2*bal, 0.85+0.2*bal, l)
	midW := math.Max(0, 1-shadowW-highlightW)

	r, g, b = applyWheel(r, g, b, grading.Shadows, shadowW*blend)
	r, g, b = applyWheel(r, g, b, grading.Midtones, midW*blend)
	r, g, b = applyWheel(r, g, b, grading.Highlights, highlightW*blend)
	r, g, b = applyWheel(r, g, b, grading.Global, 1)
	return r, g, b
}

func applyWheel(r, g, b float64, w recipe.GradeWheel, weight float64) (float64, float64, float64) {
	if weight <= 0 || !w.Active() {
		return r, g, b
	}
	if sat := recipe.Value(w.Sat, 0) / 100; sat > 0 {
		target := colorful.Hsl(recipe.Value(w.Hue, 0), sat, 0.5)
		k := weight * sat * 0.25
		r += (target.R - r) * k
		g += (target.G - g) * k
		b += (target.B - b) * k
	}
	if lum := recipe.Value(w.Lum, 0) / 100; lum != 0 {
		off := lum * 0.1 * weight
		r += off
		g += off
		b += off
	}
	return r, g, b
}

// luma returns the BT.601 luma of a linear triple.
func luma(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// smoothstep is the Hermite interpolation of x between edges e0 and e1.
func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
