// Package xmp serializes adjustment records to the XMP/RDF preset format
// and parses such documents back. It is the only codec with a parse path;
// generate-then-parse round trips every included nonzero field subject to
// each group's rounding convention.
package xmp

// Include selects which adjustment groups a generated document carries.
// Groups whose flag is false are never emitted; sections are built
// conditionally at construction time, not stripped afterwards.
type Include struct {
	Basic        bool // tone sliders, treatment, camera profile
	WhiteBalance bool
	HSL          bool // per-band HSL shifts, or the gray mixer under monochrome
	Grading      bool
	Curves       bool
	Grain        bool
	Vignette     bool
	PointColor   bool
	Masks        bool
}

// IncludeAll returns an Include with every group enabled.
func IncludeAll() Include {
	return Include{
		Basic:        true,
		WhiteBalance: true,
		HSL:          true,
		Grading:      true,
		Curves:       true,
		Grain:        true,
		Vignette:     true,
		PointColor:   true,
		Masks:        true,
	}
}

// Namespace markers of the preset dialect.
const (
	nsCRS = "http://ns.adobe.com/camera-raw-settings/1.0/"
	nsRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// Built-in camera profile names used when the recipe does not name one.
const (
	defaultColorProfile = "Adobe Color"
	defaultMonoProfile  = "Adobe Monochrome"
)
