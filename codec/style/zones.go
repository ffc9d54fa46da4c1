package style

import (
	"math"
	"strings"

	"github.com/tesenwein/recipekit/recipe"
)

// The color-correction string always carries nine semicolon-separated
// zones of eighteen comma-separated fields each. Zones 1-8 sit on the
// fixed hue-band centers of the source model; zone 9 is the reserved
// rainbow slot and stays disabled.
const (
	zoneCount  = 9
	zoneFields = 18

	zoneSmoothness = 0.5
)

const disabledZone = "0,1,1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"

// colorCorrections renders the nine-zone string. A zone is enabled only
// when its band carries a nonzero hue, saturation, or luminance value.
func colorCorrections(n *recipe.Adjustments) string {
	zones := make([]string, zoneCount)
	for i := range zones {
		zones[i] = disabledZone
	}

	hsl := n.Treatment.HSL()
	if hsl != nil {
		for i := 0; i < recipe.NumBands; i++ {
			band := recipe.Band(i)
			a := (*hsl)[band]
			hue := recipe.Value(a.Hue, 0)
			sat := recipe.Value(a.Sat, 0)
			lum := recipe.Value(a.Lum, 0)
			if hue == 0 && sat == 0 && lum == 0 {
				continue
			}
			zones[i] = enabledZone(band, hue, sat, lum)
		}
	}
	return strings.Join(zones, ";")
}

func enabledZone(band recipe.Band, hue, sat, lum float64) string {
	center := band.Center()
	half := band.HalfWidth()
	r, g, b := zoneTriple(center)

	fields := []string{
		"1", "1", "1",
		trimNum(hue),
		trimNum(sat / 100),
		trimNum(lum / 100),
		trimNum(r),
		trimNum(g),
		trimNum(b),
		trimNum(center - half),
		trimNum(center + half),
		trimNum(zoneSmoothness),
		"0", "0", "0", "0", "0", "0",
	}
	return strings.Join(fields, ",")
}

// zoneTriple derives the zone's reference color from its center angle by
// cosine interpolation against the three primaries, mapped into [0,1].
func zoneTriple(center float64) (r, g, b float64) {
	rad := center * math.Pi / 180
	r = (math.Cos(rad) + 1) / 2
	g = (math.Cos(rad-2*math.Pi/3) + 1) / 2
	b = (math.Cos(rad-4*math.Pi/3) + 1) / 2
	return r, g, b
}
