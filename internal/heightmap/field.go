package heightmap

import (
	"image"
	"math"
)

// Field is a width×height grid of normalized elevation samples in [0, 1],
// stored row-major. A Field is a plain value owned by its caller; nothing
// mutates it after Generate returns.
type Field struct {
	Width  int
	Height int
	Values []float64
}

// NewField allocates a zeroed field of the given dimensions.
func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the sample at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Row returns the y-th row as a slice into the underlying buffer.
func (f *Field) Row(y int) []float64 {
	return f.Values[y*f.Width : (y+1)*f.Width]
}

// Gray quantizes the field to an 8-bit greyscale image, rounding to the
// nearest level and clamping to [0, 255]. The float field keeps full
// precision for downstream classification.
func (f *Field) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			level := math.Round(f.At(x, y) * 255)
			if level < 0 {
				level = 0
			} else if level > 255 {
				level = 255
			}
			img.Pix[y*img.Stride+x] = uint8(level)
		}
	}
	return img
}

// FromImage builds a field from an externally supplied raster (a loaded or
// hand-edited heightmap) by reading each pixel's red channel — identical to
// luminance for greyscale inputs — scaled to [0, 1]. The classifier accepts
// the result directly, so generation and classification stay decoupled.
func FromImage(img image.Image) *Field {
	b := img.Bounds()
	f := NewField(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, _, _, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			f.Values[y*f.Width+x] = float64(r>>8) / 255.0
		}
	}
	return f
}
