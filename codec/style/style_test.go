package style

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/tesenwein/recipekit/recipe"
)

func elementValue(t *testing.T, doc, key string) string {
	t.Helper()
	marker := `K="` + key + `" V="`
	i := strings.Index(doc, marker)
	if i < 0 {
		t.Fatalf("element %q not found in document:\n%s", key, doc)
	}
	rest := doc[i+len(marker):]
	j := strings.Index(rest, `"`)
	if j < 0 {
		t.Fatalf("unterminated element value for %q", key)
	}
	return rest[:j]
}

func TestColorCorrectionsZoneShape(t *testing.T) {
	adj := &recipe.Adjustments{
		Treatment: recipe.Treatment{Color: &recipe.ColorTreatment{
			HSL: recipe.HSLMix{
				recipe.BandRed: {Hue: recipe.F(-10), Sat: recipe.F(-5)},
			},
		}},
	}
	doc := Generate(adj, Config{ID: "test"})
	cc := elementValue(t, doc, "ColorCorrections")

	zones := strings.Split(cc, ";")
	if len(zones) != 9 {
		t.Fatalf("zone count = %d, want 9", len(zones))
	}
	for i, z := range zones {
		if n := len(strings.Split(z, ",")); n != 18 {
			t.Errorf("zone %d field count = %d, want 18", i+1, n)
		}
	}
	if !strings.HasPrefix(zones[0], "1,") {
		t.Errorf("red zone not enabled: %q", zones[0])
	}
	for i := 1; i < 8; i++ {
		if !strings.HasPrefix(zones[i], "0,") {
			t.Errorf("untouched zone %d enabled: %q", i+1, zones[i])
		}
	}
	if zones[8] != "0,1,1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0" {
		t.Errorf("reserved zone 9 = %q", zones[8])
	}
}

func TestColorCorrectionsZoneValues(t *testing.T) {
	adj := &recipe.Adjustments{
		Treatment: recipe.Treatment{Color: &recipe.ColorTreatment{
			HSL: recipe.HSLMix{
				recipe.BandBlue: {Sat: recipe.F(40), Lum: recipe.F(-20)},
			},
		}},
	}
	doc := Generate(adj, Config{ID: "test"})
	cc := elementValue(t, doc, "ColorCorrections")
	zones := strings.Split(cc, ";")

	// Blue sits at index 5 (center 240) in band order.
	fields := strings.Split(zones[5], ",")
	if fields[0] != "1" {
		t.Fatalf("blue zone not enabled: %q", zones[5])
	}
	if fields[3] != "0" || fields[4] != "0.4" || fields[5] != "-0.2" {
		t.Errorf("hue/sat/lum fields = %v, want 0/0.4/-0.2", fields[3:6])
	}
	// Hue range bounds symmetric around the 240 degree center.
	if fields[9] != "205" || fields[10] != "275" {
		t.Errorf("range bounds = %v,%v, want 205,275", fields[9], fields[10])
	}
}

func TestSignInversionAndClamping(t *testing.T) {
	adj := &recipe.Adjustments{
		Contrast:   recipe.F(200),
		Highlights: recipe.F(-200),
	}
	doc := Generate(adj, Config{ID: "test"})
	if got := elementValue(t, doc, "Contrast"); got != "100" {
		t.Errorf("Contrast = %q, want 100", got)
	}
	if got := elementValue(t, doc, "HighlightRecoveryEx"); got != "100" {
		t.Errorf("HighlightRecoveryEx = %q, want 100", got)
	}
}

func TestPositiveHighlightsGiveZeroRecovery(t *testing.T) {
	adj := &recipe.Adjustments{Highlights: recipe.F(40)}
	doc := Generate(adj, Config{ID: "test"})
	if got := elementValue(t, doc, "HighlightRecoveryEx"); got != "0" {
		t.Errorf("HighlightRecoveryEx = %q, want 0", got)
	}
}

func TestElementsSortedByKey(t *testing.T) {
	adj := &recipe.Adjustments{
		Name:        "Sorted",
		Exposure:    recipe.F(0.5),
		Contrast:    recipe.F(10),
		Saturation:  recipe.F(-5),
		Temperature: recipe.F(6000),
	}
	doc := Generate(adj, Config{ID: "test"})

	var keys []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, `<E K="`) {
			continue
		}
		rest := line[len(`<E K="`):]
		keys = append(keys, rest[:strings.Index(rest, `"`)])
	}
	if len(keys) < 5 {
		t.Fatalf("too few elements parsed: %v", keys)
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("element keys not sorted: %v", keys)
	}
}

func TestNeutralColorBalanceAlwaysPresent(t *testing.T) {
	doc := Generate(&recipe.Adjustments{}, Config{ID: "test"})
	if got := elementValue(t, doc, "ColorBalance"); got != "1;1;1" {
		t.Errorf("ColorBalance = %q, want 1;1;1", got)
	}
}

func TestGeneratedIDUnique(t *testing.T) {
	adj := &recipe.Adjustments{Name: "x"}
	a := elementValue(t, Generate(adj, Config{}), "UUID")
	b := elementValue(t, Generate(adj, Config{}), "UUID")
	if a == b {
		t.Errorf("two generated styles share id %q", a)
	}
	if got := elementValue(t, Generate(adj, Config{ID: "fixed"}), "UUID"); got != "fixed" {
		t.Errorf("fixed id not honored: %q", got)
	}
}

func TestIncompatibleFieldsNeverEmitted(t *testing.T) {
	adj := &recipe.Adjustments{
		Vignette: &recipe.Vignette{Amount: recipe.F(-40)},
		Grading: &recipe.ColorGrading{
			Shadows: recipe.GradeWheel{Hue: recipe.F(220), Sat: recipe.F(30)},
		},
	}
	doc := Generate(adj, Config{ID: "test"})
	for _, banned := range []string{"Vignette", "ShadowHue", "SplitToning", "ColorGrade"} {
		if strings.Contains(doc, banned) {
			t.Errorf("incompatible field %q emitted", banned)
		}
	}
}

func TestMonochromeMixer(t *testing.T) {
	adj := &recipe.Adjustments{
		Treatment: recipe.Treatment{Monochrome: &recipe.MonoTreatment{
			Mixer: recipe.GrayMixer{recipe.BandRed: recipe.F(30)},
		}},
	}
	doc := Generate(adj, Config{ID: "test"})
	if got := elementValue(t, doc, "BlackAndWhiteEnabled"); got != "1" {
		t.Errorf("BlackAndWhiteEnabled = %q", got)
	}
	if got := elementValue(t, doc, "BlackAndWhiteRed"); got != "30" {
		t.Errorf("BlackAndWhiteRed = %q, want 30", got)
	}
}

func TestNonFiniteProducesNoTokens(t *testing.T) {
	adj := &recipe.Adjustments{
		Temperature: recipe.F(math.Inf(1)),
		Contrast:    recipe.F(math.NaN()),
	}
	doc := Generate(adj, Config{ID: "test"})
	if strings.Contains(doc, "NaN") || strings.Contains(doc, "Inf") {
		t.Errorf("document contains non-finite token:\n%s", doc)
	}
	if strings.Contains(doc, "WhiteBalanceTemperature") {
		t.Errorf("infinite temperature produced an element")
	}
}

func TestLayeredMaskOutput(t *testing.T) {
	adj := &recipe.Adjustments{
		Contrast: recipe.F(10),
		Masks: []recipe.Mask{
			{
				Name:     "sky",
				Kind:     recipe.MaskSky,
				Adjust:   recipe.LocalAdjust{Exposure: recipe.F(-0.25), Saturation: recipe.F(0.2)},
				Geometry: recipe.AIGeometry{RefX: 0.5, RefY: 0.1},
			},
			{
				Kind:     recipe.MaskRadial,
				Inverted: true,
				Adjust:   recipe.LocalAdjust{Contrast: recipe.F(0.1)},
				Geometry: recipe.RadialGeometry{Left: 0.1, Top: 0.1, Right: 0.9, Bottom: 0.9},
			},
		},
	}
	doc := Generate(adj, Config{ID: "test", Masks: true})

	if !strings.Contains(doc, `<L N="Background">`) {
		t.Errorf("background layer missing")
	}
	if !strings.Contains(doc, `<L N="sky">`) {
		t.Errorf("named mask layer missing")
	}
	if !strings.Contains(doc, `<L N="Layer 2">`) {
		t.Errorf("unnamed mask layer not numbered")
	}
	if !strings.Contains(doc, `K="MaskType" V="5"`) {
		t.Errorf("sky mask type code missing")
	}
	if !strings.Contains(doc, `K="MaskType" V="1"`) {
		t.Errorf("radial mask type code missing")
	}
	if !strings.Contains(doc, `K="Exposure" V="-0.25"`) {
		t.Errorf("local exposure missing")
	}
	if !strings.Contains(doc, `K="Saturation" V="20"`) {
		t.Errorf("local saturation not rescaled to slider range")
	}
	if !strings.Contains(doc, `K="Inverted" V="1"`) {
		t.Errorf("inverted flag missing")
	}
}

func TestMasksDisabledByDefault(t *testing.T) {
	adj := &recipe.Adjustments{
		Masks: []recipe.Mask{{
			Kind:     recipe.MaskSubject,
			Geometry: recipe.AIGeometry{RefX: 0.5, RefY: 0.5},
		}},
	}
	doc := Generate(adj, Config{ID: "test"})
	if strings.Contains(doc, "<LL>") {
		t.Errorf("layer section emitted without mask support enabled")
	}
}
