// Package render writes rasters to disk and scales previews.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// WritePNG encodes img to path, creating or truncating the file.
func WritePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Preview returns img scaled down so its longer side is at most maxSide,
// preserving aspect ratio. Images already within the bound are returned
// unchanged; Preview never upscales.
func Preview(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}
	if maxSide <= 0 || long <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(long)
	pw := int(float64(w) * scale)
	ph := int(float64(h) * scale)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
