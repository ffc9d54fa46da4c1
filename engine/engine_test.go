package engine

import (
	"math"
	"testing"

	"github.com/tesenwein/recipekit/recipe"
)

func TestNeutralIsIdentity(t *testing.T) {
	neutral := (&recipe.Adjustments{}).Normalize()
	inputs := [][3]float64{
		{0, 0, 0}, {1, 1, 1}, {0.5, 0.5, 0.5},
		{0.2, 0.4, 0.6}, {0.9, 0.1, 0.3}, {0.33, 0.66, 0.99},
	}
	for _, in := range inputs {
		r, g, b := Apply(in[0], in[1], in[2], neutral)
		if math.Abs(r-in[0]) > 1e-9 || math.Abs(g-in[1]) > 1e-9 || math.Abs(b-in[2]) > 1e-9 {
			t.Errorf("Apply(%v) = (%v, %v, %v), want identity", in, r, g, b)
		}
	}

	r, g, b := Apply(0.25, 0.5, 0.75, nil)
	if r != 0.25 || g != 0.5 || b != 0.75 {
		t.Errorf("nil adjustments not identity: (%v, %v, %v)", r, g, b)
	}
}

func TestOutputAlwaysInRange(t *testing.T) {
	extreme := (&recipe.Adjustments{
		Exposure:    recipe.F(5),
		Contrast:    recipe.F(100),
		Highlights:  recipe.F(100),
		Shadows:     recipe.F(-100),
		Whites:      recipe.F(100),
		Blacks:      recipe.F(-100),
		Saturation:  recipe.F(100),
		Vibrance:    recipe.F(100),
		Temperature: recipe.F(2000),
		Tint:        recipe.F(150),
		Treatment: recipe.Treatment{Color: &recipe.ColorTreatment{
			HSL: recipe.HSLMix{
				recipe.BandRed:  {Hue: recipe.F(100), Sat: recipe.F(100), Lum: recipe.F(100)},
				recipe.BandBlue: {Hue: recipe.F(-100), Sat: recipe.F(-100), Lum: recipe.F(-100)},
			},
		}},
		Grading: &recipe.ColorGrading{
			Shadows:    recipe.GradeWheel{Hue: recipe.F(220), Sat: recipe.F(100), Lum: recipe.F(-100)},
			Highlights: recipe.GradeWheel{Hue: recipe.F(40), Sat: recipe.F(100), Lum: recipe.F(100)},
			Global:     recipe.GradeWheel{Hue: recipe.F(0), Sat: recipe.F(100), Lum: recipe.F(100)},
			Balance:    recipe.F(100),
			Blending:   recipe.F(100),
		},
	}).Normalize()

	const steps = 8
	for ri := 0; ri <= steps; ri++ {
		for gi := 0; gi <= steps; gi++ {
			for bi := 0; bi <= steps; bi++ {
				in := [3]float64{
					float64(ri) / steps, float64(gi) / steps, float64(bi) / steps,
				}
				r, g, b := Apply(in[0], in[1], in[2], extreme)
				for i, v := range []float64{r, g, b} {
					if v < 0 || v > 1 || math.IsNaN(v) {
						t.Fatalf("Apply(%v) channel %d = %v, out of range", in, i, v)
					}
				}
			}
		}
	}
}

func TestOutOfRangeInputClamped(t *testing.T) {
	r, g, b := Apply(-0.5, 1.5, 2.0, nil)
	if r != 0 || g != 1 || b != 1 {
		t.Errorf("got (%v, %v, %v), want (0, 1, 1)", r, g, b)
	}
}

func TestWhiteBalanceDirection(t *testing.T) {
	warm := (&recipe.Adjustments{Temperature: recipe.F(10000)}).Normalize()
	r, _, b := Apply(0.5, 0.5, 0.5, warm)
	if r <= b {
		t.Errorf("high temperature should warm the image: r=%v b=%v", r, b)
	}

	cool := (&recipe.Adjustments{Temperature: recipe.F(3000)}).Normalize()
	r, _, b = Apply(0.5, 0.5, 0.5, cool)
	if b <= r {
		t.Errorf("low temperature should cool the image: r=%v b=%v", r, b)
	}
}

func TestTintDirection(t *testing.T) {
	magenta := (&recipe.Adjustments{Tint: recipe.F(100)}).Normalize()
	_, g, _ := Apply(0.5, 0.5, 0.5, magenta)
	if g >= 0.5 {
		t.Errorf("positive tint should suppress green, got g=%v", g)
	}

	green := (&recipe.Adjustments{Tint: recipe.F(-100)}).Normalize()
	_, g, _ = Apply(0.5, 0.5, 0.5, green)
	if g <= 0.5 {
		t.Errorf("negative tint should boost green, got g=%v", g)
	}
}

func TestExposureQuarterStops(t *testing.T) {
	adj := (&recipe.Adjustments{Exposure: recipe.F(4)}).Normalize()
	r, _, _ := Apply(0.25, 0.25, 0.25, adj)
	if math.Abs(r-0.5) > 1e-9 {
		t.Errorf("4 stops at quarter granularity should double: got %v", r)
	}
}

func TestContrastPivotsAtMidGray(t *testing.T) {
	adj := (&recipe.Adjustments{Contrast: recipe.F(50)}).Normalize()
	r, g, b := Apply(0.5, 0.5, 0.5, adj)
	if math.Abs(r-0.5) > 1e-9 || math.Abs(g-0.5) > 1e-9 || math.Abs(b-0.5) > 1e-9 {
		t.Errorf("mid-gray moved under contrast: (%v, %v, %v)", r, g, b)
	}
	lo, _, _ := Apply(0.25, 0.25, 0.25, adj)
	hi, _, _ := Apply(0.75, 0.75, 0.75, adj)
	if lo >= 0.25 || hi <= 0.75 {
		t.Errorf("positive contrast should spread around mid-gray: lo=%v hi=%v", lo, hi)
	}
}

func TestMonochromeCollapsesChannels(t *testing.T) {
	adj := (&recipe.Adjustments{
		Treatment: recipe.Treatment{Monochrome: &recipe.MonoTreatment{
			Mixer: recipe.GrayMixer{recipe.BandRed: recipe.F(50)},
		}},
	}).Normalize()
	r, g, b := Apply(0.8, 0.2, 0.2, adj)
	if r != g || g != b {
		t.Errorf("monochrome output not gray: (%v, %v, %v)", r, g, b)
	}

	// Positive red mixer brightens red pixels relative to a plain luma
	// conversion.
	plain := (&recipe.Adjustments{
		Treatment: recipe.Treatment{Monochrome: &recipe.MonoTreatment{}},
	}).Normalize()
	pr, _, _ := Apply(0.8, 0.2, 0.2, plain)
	if r <= pr {
		t.Errorf("red mixer +50 did not brighten red pixel: %v <= %v", r, pr)
	}
}

func TestHSLBandTargetsItsHue(t *testing.T) {
	adj := (&recipe.Adjustments{
		Treatment: recipe.Treatment{Color: &recipe.ColorTreatment{
			HSL: recipe.HSLMix{recipe.BandRed: {Sat: recipe.F(-100)}},
		}},
	}).Normalize()

	// A saturated red pixel loses saturation.
	r, g, b := Apply(0.8, 0.2, 0.2, adj)
	if (r - min2(g, b)) >= 0.6 {
		t.Errorf("red desaturation had no effect: (%v, %v, %v)", r, g, b)
	}
	// A green pixel is outside the red band and keeps its spread.
	r, g, b = Apply(0.2, 0.8, 0.2, adj)
	if math.Abs(g-0.8) > 1e-6 || math.Abs(r-0.2) > 1e-6 {
		t.Errorf("green pixel moved under red-band adjustment: (%v, %v, %v)", r, g, b)
	}
}

func TestGradingShadowsOnlyTouchShadows(t *testing.T) {
	adj := (&recipe.Adjustments{
		Grading: &recipe.ColorGrading{
			Shadows: recipe.GradeWheel{Hue: recipe.F(240), Sat: recipe.F(80)},
		},
	}).Normalize()

	// Dark pixel shifts toward blue.
	r, _, b := Apply(0.1, 0.1, 0.1, adj)
	if b <= r {
		t.Errorf("shadow wheel at 240 did not push shadows blue: r=%v b=%v", r, b)
	}
	// Bright pixel is nearly untouched.
	r2, g2, b2 := Apply(0.9, 0.9, 0.9, adj)
	if math.Abs(r2-0.9) > 0.02 || math.Abs(g2-0.9) > 0.02 || math.Abs(b2-0.9) > 0.02 {
		t.Errorf("shadow wheel leaked into highlights: (%v, %v, %v)", r2, g2, b2)
	}
}

func TestKelvinToRGB(t *testing.T) {
	cases := []struct {
		k    float64
		warm bool
	}{
		{2000, true},
		{3500, true},
		{20000, false},
	}
	for _, c := range cases {
		r, _, b := KelvinToRGB(c.k)
		if c.warm && r <= b {
			t.Errorf("KelvinToRGB(%v): expected r > b, got r=%v b=%v", c.k, r, b)
		}
		if !c.warm && b <= r {
			t.Errorf("KelvinToRGB(%v): expected b > r, got r=%v b=%v", c.k, r, b)
		}
	}

	// Clamped below its 1000K validity bound.
	r1, g1, b1 := KelvinToRGB(500)
	r2, g2, b2 := KelvinToRGB(1000)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Errorf("KelvinToRGB(500) != KelvinToRGB(1000)")
	}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
