package engine

import "math"

// KelvinToRGB approximates the RGB rendition of a black-body radiator at
// temperature k using the piecewise log/power fit commonly attributed to
// Tanner Helland. Valid for 1000K..40000K; out-of-range input is clamped.
// Channels are returned normalized to 0..1.
func KelvinToRGB(k float64) (r, g, b float64) {
	if k < 1000 {
		k = 1000
	}
	if k > 40000 {
		k = 40000
	}
	t := k / 100

	if t <= 66 {
		r = 255
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
	}

	if t <= 66 {
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	if t >= 66 {
		b = 255
	} else if t <= 19 {
		b = 0
	} else {
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	return clamp255(r) / 255, clamp255(g) / 255, clamp255(b) / 255
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
