package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales img so its longer edge is at most maxDim pixels,
// preserving aspect ratio. Images already within bounds are returned
// as an unscaled RGBA copy.
func Thumbnail(img image.Image, maxDim int) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim < 1 {
		maxDim = 1
	}

	tw, th := w, h
	if w > maxDim || h > maxDim {
		if w >= h {
			tw = maxDim
			th = h * maxDim / w
		} else {
			th = maxDim
			tw = w * maxDim / h
		}
		if tw < 1 {
			tw = 1
		}
		if th < 1 {
			th = 1
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, bounds, draw.Src, nil)
	return out
}
