package xmp

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tesenwein/recipekit/recipe"
)

// LookConfig controls the camera-profile variant of the generator.
type LookConfig struct {
	// Group names the profile group shown by the target tool. Empty
	// falls back to "Profiles".
	Group string

	// WithExposure opts exposure back in. Looks exclude it by default
	// because a profile should not change image brightness.
	WithExposure bool

	// UUID fixes the profile id. Empty generates one.
	UUID string
}

// GenerateLook renders the camera-profile document shape: a Look-type
// preset with its own mandatory attribute set, reusing the regular
// group emission for everything else.
func GenerateLook(adj *recipe.Adjustments, inc Include, cfg LookConfig) string {
	n := adj.Normalize()

	attrs := &attrList{indent: "    "}
	attrs.add("crs:PresetType", "Look")
	attrs.add("crs:ProcessVersion", processVersion)
	attrs.add("crs:UUID", lookUUID(cfg))
	attrs.add("crs:Cluster", "")
	attrs.add("crs:Amount", "1.000000")
	attrs.add("crs:SupportsAmount", "true")
	attrs.add("crs:SupportsColor", "true")
	attrs.add("crs:SupportsMonochrome", "true")
	if n.Treatment.IsMono() {
		attrs.add("crs:ConvertToGrayscale", "True")
	}

	appendGroupAttrs(attrs, n, inc, cfg.WithExposure)

	var elems strings.Builder
	if n.Name != "" {
		appendAlt(&elems, "crs:Name", n.Name)
	}
	group := cfg.Group
	if group == "" {
		group = "Profiles"
	}
	appendAlt(&elems, "crs:Group", group)
	appendGroupElements(&elems, n, inc)

	return document(attrs, &elems)
}

func lookUUID(cfg LookConfig) string {
	if cfg.UUID != "" {
		return cfg.UUID
	}
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
