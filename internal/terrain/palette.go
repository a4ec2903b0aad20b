// Package terrain colors normalized heightmaps by elevation band.
package terrain

import "image/color"

// Region is one elevation band: samples with Min <= v < Max take Color.
type Region struct {
	Name  string
	Min   float64
	Max   float64
	Color color.RGBA
}

// Palette is an ordered set of regions, ascending by Min. Regions should tile
// [0, 1]; overlaps and gaps are still classified deterministically (first
// match wins, unmatched samples fall to the highest band).
type Palette []Region

// DefaultPalette returns the seven reference bands spanning deep water to
// snow. It is a starting configuration, not a structural constraint — any
// number of regions classifies the same way.
func DefaultPalette() Palette {
	return Palette{
		{Name: "deep water", Min: 0.00, Max: 0.30, Color: color.RGBA{0, 0, 128, 255}},
		{Name: "shallow water", Min: 0.30, Max: 0.40, Color: color.RGBA{64, 160, 224, 255}},
		{Name: "sand", Min: 0.40, Max: 0.45, Color: color.RGBA{238, 214, 175, 255}},
		{Name: "grassland", Min: 0.45, Max: 0.60, Color: color.RGBA{120, 200, 80, 255}},
		{Name: "forest", Min: 0.60, Max: 0.75, Color: color.RGBA{16, 128, 16, 255}},
		{Name: "mountain", Min: 0.75, Max: 0.90, Color: color.RGBA{128, 128, 128, 255}},
		{Name: "snow", Min: 0.90, Max: 1.00, Color: color.RGBA{255, 255, 255, 255}},
	}
}
