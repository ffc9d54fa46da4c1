// Package recipe defines the canonical in-memory representation of a
// photographic look: a flat record of mostly-optional adjustment fields
// produced by the external analysis service, by a preset parser, or by hand.
//
// Every numeric field is a pointer: nil means "absent", which codecs
// translate into an omitted output field rather than a zero. Normalize
// returns a copy with every present field clamped to its documented range;
// consumers (the transform engine, the codecs, the LUT baker) operate on
// normalized copies and never mutate their input.
package recipe

// Adjustments is the structured record of all photographic adjustment
// parameters for one look.
type Adjustments struct {
	// Metadata.
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"` // 0..1
	Profile     string   `json:"profile,omitempty"`    // camera profile name

	// Treatment selects the color rendition and carries the fields that
	// only exist under that rendition (HSL banding vs. gray mixer).
	Treatment Treatment `json:"treatment"`

	// Basic tone. Exposure is in stops (-5..5); the rest are -100..100.
	Exposure   *float64 `json:"exposure,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
	Highlights *float64 `json:"highlights,omitempty"`
	Shadows    *float64 `json:"shadows,omitempty"`
	Whites     *float64 `json:"whites,omitempty"`
	Blacks     *float64 `json:"blacks,omitempty"`
	Clarity    *float64 `json:"clarity,omitempty"`
	Vibrance   *float64 `json:"vibrance,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"`

	// White balance. Temperature is in Kelvin (2000..50000, reference
	// 6500); Tint is -150..150.
	Temperature *float64 `json:"temperature,omitempty"`
	Tint        *float64 `json:"tint,omitempty"`

	Grading *ColorGrading `json:"color_grading,omitempty"`
	Curves  *ToneCurves   `json:"tone_curves,omitempty"`

	Grain    *Grain    `json:"grain,omitempty"`
	Vignette *Vignette `json:"vignette,omitempty"`

	// Point color samples: arbitrary-length numeric vectors plus a
	// parallel variance list.
	PointColors   [][]float64 `json:"point_colors,omitempty"`
	PointVariance [][]float64 `json:"point_variance,omitempty"`

	Masks []Mask `json:"masks,omitempty"`
}

// ReferenceTemperature is the neutral white-balance point in Kelvin.
const ReferenceTemperature = 6500.0

// Treatment is a tagged variant: exactly one of Color or Monochrome should
// be set. HSL band adjustments exist only under a color treatment and the
// gray mixer only under a monochrome one, so a document can never carry
// both. The zero value means color treatment with no band adjustments.
type Treatment struct {
	Color      *ColorTreatment `json:"color,omitempty"`
	Monochrome *MonoTreatment  `json:"black_and_white,omitempty"`
}

// ColorTreatment carries the per-band HSL shifts of a color look.
type ColorTreatment struct {
	HSL HSLMix `json:"hsl,omitempty"`
}

// MonoTreatment carries the 8-band grayscale mixer of a black-and-white
// look.
type MonoTreatment struct {
	Mixer GrayMixer `json:"gray_mixer,omitempty"`
}

// IsMono reports whether the treatment is black-and-white.
func (t Treatment) IsMono() bool { return t.Monochrome != nil }

// Label returns the wire label used by the analysis service.
func (t Treatment) Label() string {
	if t.IsMono() {
		return "black_and_white"
	}
	return "color"
}

// HSL returns the band shifts of a color treatment, or nil.
func (t Treatment) HSL() *HSLMix {
	if t.Color == nil {
		return nil
	}
	return &t.Color.HSL
}

// Mixer returns the gray mixer of a monochrome treatment, or nil.
func (t Treatment) Mixer() *GrayMixer {
	if t.Monochrome == nil {
		return nil
	}
	return &t.Monochrome.Mixer
}

// Band identifies one of the 8 fixed hue regions.
type Band int

const (
	BandRed Band = iota
	BandOrange
	BandYellow
	BandGreen
	BandAqua
	BandBlue
	BandPurple
	BandMagenta

	NumBands = 8
)

var bandNames = [NumBands]string{
	"Red", "Orange", "Yellow", "Green", "Aqua", "Blue", "Purple", "Magenta",
}

var bandCenters = [NumBands]float64{0, 30, 60, 120, 180, 240, 270, 300}

var bandHalfWidths = [NumBands]float64{25, 25, 30, 35, 35, 35, 25, 25}

func (b Band) String() string {
	if b < 0 || b >= NumBands {
		return "Unknown"
	}
	return bandNames[b]
}

// Center returns the band's hue center angle in degrees.
func (b Band) Center() float64 { return bandCenters[b] }

// HalfWidth returns the band's membership half-width in degrees.
func (b Band) HalfWidth() float64 { return bandHalfWidths[b] }

// BandAdjust is one hue band's shift triple, each -100..100.
type BandAdjust struct {
	Hue *float64 `json:"hue,omitempty"`
	Sat *float64 `json:"sat,omitempty"`
	Lum *float64 `json:"lum,omitempty"`
}

// Zero reports whether all three shifts are absent or zero.
func (a BandAdjust) Zero() bool {
	return orZero(a.Hue) == 0 && orZero(a.Sat) == 0 && orZero(a.Lum) == 0
}

// HSLMix holds the shift triples for all 8 bands, indexed by Band.
type HSLMix [NumBands]BandAdjust

// Zero reports whether no band carries an adjustment.
func (m HSLMix) Zero() bool {
	for _, a := range m {
		if !a.Zero() {
			return false
		}
	}
	return true
}

// GrayMixer holds the per-band luminance contributions (-100..100) of a
// black-and-white conversion, indexed by Band.
type GrayMixer [NumBands]*float64

// GradeWheel is one color grading wheel: hue 0..360 (wrapping),
// saturation 0..100, luminance -100..100.
type GradeWheel struct {
	Hue *float64 `json:"hue,omitempty"`
	Sat *float64 `json:"sat,omitempty"`
	Lum *float64 `json:"lum,omitempty"`
}

// Active reports whether the wheel has a visible effect.
func (w GradeWheel) Active() bool {
	return orZero(w.Sat) > 0 || orZero(w.Lum) != 0
}

// ColorGrading holds the shadow/midtone/highlight/global wheels plus
// overall blending (0..100) and balance (-100..100).
type ColorGrading struct {
	Shadows    GradeWheel `json:"shadows,omitempty"`
	Midtones   GradeWheel `json:"midtones,omitempty"`
	Highlights GradeWheel `json:"highlights,omitempty"`
	Global     GradeWheel `json:"global,omitempty"`
	Blending   *float64   `json:"blending,omitempty"`
	Balance    *float64   `json:"balance,omitempty"`
}

// CurvePoint is one (input, output) pair of a tone curve, in the 0..255
// domain after normalization.
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToneCurves holds up to four ordered point lists. Points are accepted in
// either the 0..1 or 0..255 domain; Normalize rescales to 0..255.
type ToneCurves struct {
	Composite []CurvePoint `json:"composite,omitempty"`
	Red       []CurvePoint `json:"red,omitempty"`
	Green     []CurvePoint `json:"green,omitempty"`
	Blue      []CurvePoint `json:"blue,omitempty"`
}

// Empty reports whether no channel carries points.
func (c *ToneCurves) Empty() bool {
	return c == nil ||
		len(c.Composite) == 0 && len(c.Red) == 0 && len(c.Green) == 0 && len(c.Blue) == 0
}

// Grain holds film grain parameters, each 0..100.
type Grain struct {
	Amount    *float64 `json:"amount,omitempty"`
	Size      *float64 `json:"size,omitempty"`
	Frequency *float64 `json:"frequency,omitempty"`
}

// Vignette holds post-crop vignette parameters.
type Vignette struct {
	Amount            *float64 `json:"amount,omitempty"`             // -100..100
	Midpoint          *float64 `json:"midpoint,omitempty"`           // 0..100
	Feather           *float64 `json:"feather,omitempty"`            // 0..100
	Roundness         *float64 `json:"roundness,omitempty"`          // -100..100
	Style             *int     `json:"style,omitempty"`              // 0, 1 or 2
	HighlightContrast *float64 `json:"highlight_contrast,omitempty"` // 0..100
}

// F returns a pointer to v. Convenience for building literals.
func F(v float64) *float64 { return &v }

// I returns a pointer to v.
func I(v int) *int { return &v }

func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Value returns *p, or def when p is nil.
func Value(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
