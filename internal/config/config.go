// Package config reads and writes the mapforge.toml parameter file.
package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/talgya/mapforge/internal/heightmap"
	"github.com/talgya/mapforge/internal/terrain"
)

// File is the on-disk parameter set: noise settings, output settings, and the
// terrain palette as an array of [[region]] tables.
type File struct {
	Noise   NoiseSection    `toml:"noise"`
	Output  OutputSection   `toml:"output"`
	Regions []RegionSection `toml:"region"`
}

type NoiseSection struct {
	Seed       int64   `toml:"seed"`
	Primitive  string  `toml:"primitive"`
	BaseFreq   float64 `toml:"base_frequency"`
	Octaves    int     `toml:"octaves"`
	Lacunarity float64 `toml:"lacunarity"`
	Gain       float64 `toml:"gain"`
	WarpAmp    float64 `toml:"warp_amplitude"`
	WarpFreq   float64 `toml:"warp_frequency"`
}

type OutputSection struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Heightmap string `toml:"heightmap"`
	Terrain   string `toml:"terrain"`
	Preview   int    `toml:"preview"` // Longest preview side in pixels, 0 disables
}

type RegionSection struct {
	Name string  `toml:"name"`
	Min  float64 `toml:"min_elevation"`
	Max  float64 `toml:"max_elevation"`
	R    uint8   `toml:"r"`
	G    uint8   `toml:"g"`
	B    uint8   `toml:"b"`
}

// Default returns the file contents written when no config exists yet.
func Default() File {
	f := File{
		Noise: fromNoiseConfig(heightmap.DefaultConfig()),
		Output: OutputSection{
			Width:     1024,
			Height:    1024,
			Heightmap: "heightmap.png",
			Terrain:   "terrain.png",
			Preview:   512,
		},
	}
	for _, r := range terrain.DefaultPalette() {
		f.Regions = append(f.Regions, RegionSection{
			Name: r.Name,
			Min:  r.Min,
			Max:  r.Max,
			R:    r.Color.R,
			G:    r.Color.G,
			B:    r.Color.B,
		})
	}
	return f
}

// Load reads the config at path. A missing file is created with defaults and
// the defaults returned, so a fresh checkout works without manual setup.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		f := Default()
		if err := Save(path, f); err != nil {
			return File{}, err
		}
		return f, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path as TOML.
func Save(path string, f File) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// NoiseConfig converts the [noise] section into a generator config.
func (f File) NoiseConfig() heightmap.Config {
	return heightmap.Config{
		Seed:       f.Noise.Seed,
		Primitive:  f.Noise.Primitive,
		BaseFreq:   f.Noise.BaseFreq,
		Octaves:    f.Noise.Octaves,
		Lacunarity: f.Noise.Lacunarity,
		Gain:       f.Noise.Gain,
		WarpAmp:    f.Noise.WarpAmp,
		WarpFreq:   f.Noise.WarpFreq,
	}
}

// Palette converts the [[region]] tables into a terrain palette. An empty
// region list falls back to the default palette.
func (f File) Palette() terrain.Palette {
	if len(f.Regions) == 0 {
		return terrain.DefaultPalette()
	}
	p := make(terrain.Palette, 0, len(f.Regions))
	for _, r := range f.Regions {
		p = append(p, terrain.Region{
			Name:  r.Name,
			Min:   r.Min,
			Max:   r.Max,
			Color: color.RGBA{R: r.R, G: r.G, B: r.B, A: 255},
		})
	}
	return p
}

func fromNoiseConfig(c heightmap.Config) NoiseSection {
	return NoiseSection{
		Seed:       c.Seed,
		Primitive:  c.Primitive,
		BaseFreq:   c.BaseFreq,
		Octaves:    c.Octaves,
		Lacunarity: c.Lacunarity,
		Gain:       c.Gain,
		WarpAmp:    c.WarpAmp,
		WarpFreq:   c.WarpFreq,
	}
}
