package terrain

import (
	"errors"
	"image"
	"slices"

	"github.com/talgya/mapforge/internal/heightmap"
)

// ErrEmptyPalette is returned when classification has no region to assign.
var ErrEmptyPalette = errors.New("palette has no regions")

// Classify maps every sample of f to the color of its elevation band,
// producing an RGB raster of the same dimensions. Samples outside [0, 1] are
// clamped first. Regions are tested in ascending Min order and the first
// half-open match wins; a sample no region contains — including elevation
// exactly 1.0, which every [min, 1.0) band excludes — takes the color of the
// region with the largest Max.
//
// Classify is pure: it never mutates f or p, performs no I/O, and the same
// inputs always produce the same output.
func Classify(f *heightmap.Field, p Palette) (*image.RGBA, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPalette
	}

	regions := slices.Clone(p)
	slices.SortStableFunc(regions, func(a, b Region) int {
		switch {
		case a.Min < b.Min:
			return -1
		case a.Min > b.Min:
			return 1
		}
		return 0
	})

	// Highest band catches everything the half-open intervals miss.
	catchAll := regions[0]
	for _, r := range regions[1:] {
		if r.Max > catchAll.Max {
			catchAll = r
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := f.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}

			c := catchAll.Color
			for _, r := range regions {
				if v >= r.Min && v < r.Max {
					c = r.Color
					break
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}
