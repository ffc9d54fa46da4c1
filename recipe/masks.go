package recipe

import (
	"encoding/json"
	"fmt"
)

// MaskKind is the closed taxonomy of local correction masks. Geometric
// kinds carry explicit geometry, range kinds select pixels by value and the
// AI kinds reference a machine-detected region through a 2D reference point
// plus an optional sub-category id.
type MaskKind int

const (
	MaskRadial MaskKind = iota
	MaskLinear
	MaskBrush
	MaskColorRange
	MaskLuminanceRange
	MaskSubject
	MaskPerson
	MaskSky
	MaskBackground
	MaskFace
)

var maskKindNames = map[MaskKind]string{
	MaskRadial:         "radial",
	MaskLinear:         "linear",
	MaskBrush:          "brush",
	MaskColorRange:     "color_range",
	MaskLuminanceRange: "luminance_range",
	MaskSubject:        "subject",
	MaskPerson:         "person",
	MaskSky:            "sky",
	MaskBackground:     "background",
	MaskFace:           "face",
}

func (k MaskKind) String() string {
	if s, ok := maskKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsAI reports whether the kind refers to a machine-detected region.
func (k MaskKind) IsAI() bool { return k >= MaskSubject }

// kindByName is the inverse of maskKindNames, built once.
var kindByName = func() map[string]MaskKind {
	m := make(map[string]MaskKind, len(maskKindNames))
	for k, s := range maskKindNames {
		m[s] = k
	}
	return m
}()

// KindForName resolves a wire label to a MaskKind.
func KindForName(name string) (MaskKind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// AI sub-category identifiers, as used by the detection service and by the
// preset formats' sub-category attributes. This table is the single place
// that maps the numeric codes to mask kinds.
var subCategoryKinds = map[int]MaskKind{
	0:  MaskSubject,
	1:  MaskPerson,
	2:  MaskSky,
	3:  MaskBackground,
	12: MaskFace, // facial skin
	13: MaskFace, // eye region
	14: MaskFace, // lips
	15: MaskFace, // teeth
	16: MaskFace, // hair
	17: MaskFace, // eyebrows
}

var defaultSubCategory = map[MaskKind]int{
	MaskSubject:    0,
	MaskPerson:     1,
	MaskSky:        2,
	MaskBackground: 3,
	MaskFace:       12,
}

// KindForSubCategory resolves an AI sub-category id to its mask kind.
func KindForSubCategory(id int) (MaskKind, bool) {
	k, ok := subCategoryKinds[id]
	return k, ok
}

// SubCategoryFor returns the canonical sub-category id for an AI mask kind.
func SubCategoryFor(k MaskKind) (int, bool) {
	id, ok := defaultSubCategory[k]
	return id, ok
}

// Geometry is the per-kind geometry payload of a mask. Exactly one concrete
// type is meaningful per MaskKind.
type Geometry interface{ isGeometry() }

// RadialGeometry is an ellipse given by its bounding rectangle in
// normalized image coordinates, a rotation angle in degrees and a feather
// fraction.
type RadialGeometry struct {
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Right   float64 `json:"right"`
	Bottom  float64 `json:"bottom"`
	Angle   float64 `json:"angle"`
	Feather float64 `json:"feather"`
}

// LinearGeometry is a gradient between two endpoints in normalized image
// coordinates.
type LinearGeometry struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// BrushGeometry carries the stroke parameters of a painted mask.
type BrushGeometry struct {
	Size    float64 `json:"size"`
	Flow    float64 `json:"flow"`
	Density float64 `json:"density"`
}

// ColorRangeGeometry selects pixels near the color sampled at a point.
type ColorRangeGeometry struct {
	PointX float64 `json:"point_x"`
	PointY float64 `json:"point_y"`
	Amount float64 `json:"amount"`
}

// LuminanceRangeGeometry selects pixels inside a luminance interval,
// both bounds in 0..1.
type LuminanceRangeGeometry struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AIGeometry anchors a machine-detected region at a reference point in
// normalized image coordinates.
type AIGeometry struct {
	RefX float64 `json:"ref_x"`
	RefY float64 `json:"ref_y"`
}

func (RadialGeometry) isGeometry()         {}
func (LinearGeometry) isGeometry()         {}
func (BrushGeometry) isGeometry()          {}
func (ColorRangeGeometry) isGeometry()     {}
func (LuminanceRangeGeometry) isGeometry() {}
func (AIGeometry) isGeometry()             {}

// LocalAdjust is the bounded adjustment subset a mask may carry. Values are
// fractional: a LocalContrast of 0.25 corresponds to +25 on the global
// scale. Normalize clamps each field to the local limit (±0.5 stops for
// exposure, ±0.3 for everything else).
type LocalAdjust struct {
	Exposure   *float64 `json:"exposure,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
	Highlights *float64 `json:"highlights,omitempty"`
	Shadows    *float64 `json:"shadows,omitempty"`
	Whites     *float64 `json:"whites,omitempty"`
	Blacks     *float64 `json:"blacks,omitempty"`
	Clarity    *float64 `json:"clarity,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
}

const (
	localExposureLimit = 0.5
	localLimit         = 0.3
)

func (l LocalAdjust) normalize() LocalAdjust {
	return LocalAdjust{
		Exposure:   clampOpt(l.Exposure, -localExposureLimit, localExposureLimit),
		Contrast:   clampOpt(l.Contrast, -localLimit, localLimit),
		Highlights: clampOpt(l.Highlights, -localLimit, localLimit),
		Shadows:    clampOpt(l.Shadows, -localLimit, localLimit),
		Whites:     clampOpt(l.Whites, -localLimit, localLimit),
		Blacks:     clampOpt(l.Blacks, -localLimit, localLimit),
		Clarity:    clampOpt(l.Clarity, -localLimit, localLimit),
		Saturation: clampOpt(l.Saturation, -localLimit, localLimit),
	}
}

// Mask is one local correction: a named region with a bounded adjustment
// subset and kind-specific geometry.
type Mask struct {
	Name        string
	Kind        MaskKind
	SubCategory *int // AI kinds only
	Inverted    bool
	Flipped     bool
	Adjust      LocalAdjust
	Geometry    Geometry
}

func (m Mask) normalize() Mask {
	n := m
	n.Adjust = m.Adjust.normalize()
	if !m.Kind.IsAI() {
		n.SubCategory = nil
	} else if m.SubCategory == nil {
		if id, ok := SubCategoryFor(m.Kind); ok {
			n.SubCategory = &id
		}
	}
	// Geometry only means something for its declared kind.
	switch m.Kind {
	case MaskRadial:
		if _, ok := m.Geometry.(RadialGeometry); !ok {
			n.Geometry = nil
		}
	case MaskLinear:
		if _, ok := m.Geometry.(LinearGeometry); !ok {
			n.Geometry = nil
		}
	case MaskBrush:
		if _, ok := m.Geometry.(BrushGeometry); !ok {
			n.Geometry = nil
		}
	case MaskColorRange:
		if _, ok := m.Geometry.(ColorRangeGeometry); !ok {
			n.Geometry = nil
		}
	case MaskLuminanceRange:
		if _, ok := m.Geometry.(LuminanceRangeGeometry); !ok {
			n.Geometry = nil
		}
	default:
		if _, ok := m.Geometry.(AIGeometry); !ok {
			n.Geometry = nil
		}
	}
	return n
}

// maskJSON is the flat wire shape of a mask as exchanged with the analysis
// service: a type label plus the union of all geometry fields.
type maskJSON struct {
	Name        string      `json:"name,omitempty"`
	Type        string      `json:"type"`
	SubCategory *int        `json:"sub_category,omitempty"`
	Inverted    bool        `json:"inverted,omitempty"`
	Flipped     bool        `json:"flipped,omitempty"`
	Adjust      LocalAdjust `json:"adjust,omitempty"`

	Radial     *RadialGeometry         `json:"radial,omitempty"`
	Linear     *LinearGeometry         `json:"linear,omitempty"`
	Brush      *BrushGeometry          `json:"brush,omitempty"`
	ColorRange *ColorRangeGeometry     `json:"color_range,omitempty"`
	LumRange   *LuminanceRangeGeometry `json:"luminance_range,omitempty"`
	Reference  *AIGeometry             `json:"reference,omitempty"`
}

// MarshalJSON flattens the geometry union into the wire shape.
func (m Mask) MarshalJSON() ([]byte, error) {
	j := maskJSON{
		Name:        m.Name,
		Type:        m.Kind.String(),
		SubCategory: m.SubCategory,
		Inverted:    m.Inverted,
		Flipped:     m.Flipped,
		Adjust:      m.Adjust,
	}
	switch g := m.Geometry.(type) {
	case RadialGeometry:
		j.Radial = &g
	case LinearGeometry:
		j.Linear = &g
	case BrushGeometry:
		j.Brush = &g
	case ColorRangeGeometry:
		j.ColorRange = &g
	case LuminanceRangeGeometry:
		j.LumRange = &g
	case AIGeometry:
		j.Reference = &g
	}
	return json.Marshal(j)
}

// UnmarshalJSON resolves the type label and picks the matching geometry
// field; mismatched geometry fields are ignored.
func (m *Mask) UnmarshalJSON(data []byte) error {
	var j maskJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	kind, ok := KindForName(j.Type)
	if !ok {
		return fmt.Errorf("unknown mask type %q", j.Type)
	}
	*m = Mask{
		Name:        j.Name,
		Kind:        kind,
		SubCategory: j.SubCategory,
		Inverted:    j.Inverted,
		Flipped:     j.Flipped,
		Adjust:      j.Adjust,
	}
	switch {
	case kind == MaskRadial && j.Radial != nil:
		m.Geometry = *j.Radial
	case kind == MaskLinear && j.Linear != nil:
		m.Geometry = *j.Linear
	case kind == MaskBrush && j.Brush != nil:
		m.Geometry = *j.Brush
	case kind == MaskColorRange && j.ColorRange != nil:
		m.Geometry = *j.ColorRange
	case kind == MaskLuminanceRange && j.LumRange != nil:
		m.Geometry = *j.LumRange
	case kind.IsAI() && j.Reference != nil:
		m.Geometry = *j.Reference
	}
	return nil
}
