// Heightmap synthesis via domain-warped fractal noise.
// Generates a raw fBm field, then normalizes it globally to [0, 1].
package heightmap

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	perlin "github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Offset applied to the second warp sample so both displacement channels can
// come from the same noise field without correlating.
const warpOffset = 1000

// noiseSource is a deterministic 2-D noise function in roughly [-1, 1].
type noiseSource interface {
	Eval2(x, y float64) float64
}

// perlinSource adapts aquilax/go-perlin to the opensimplex Eval2 shape.
type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval2(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

// Generator synthesizes elevation fields for a fixed Config. It is immutable
// after construction: the seeded noise tables are built once and only read
// afterwards, so a single Generator is safe for concurrent use.
type Generator struct {
	cfg   Config
	noise noiseSource
}

// NewGenerator validates cfg and builds the seeded noise backend.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid noise config: %w", err)
	}

	var src noiseSource
	switch cfg.Primitive {
	case PrimitivePerlin:
		src = perlinSource{p: perlin.NewPerlin(2, 2, 3, cfg.Seed)}
	default:
		src = opensimplex.New(cfg.Seed)
	}

	return &Generator{cfg: cfg, noise: src}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate synthesizes a width×height elevation field. Rows are computed on a
// worker pool — each row writes a disjoint slice of the buffer — and the
// global normalization pass runs after all rows have joined, so the output is
// identical to serial evaluation for a given config.
func (g *Generator) Generate(width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %dx%d", width, height)
	}

	f := NewField(width, height)

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				row := f.Row(y)
				for x := 0; x < width; x++ {
					row[x] = g.sample(x, y)
				}
			}
		}()
	}
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	normalize(f)
	return f, nil
}

// sample evaluates one pixel: world scaling, domain warp, then the fBm sum.
func (g *Generator) sample(ix, iy int) float64 {
	wx := float64(ix) * g.cfg.BaseFreq
	wy := float64(iy) * g.cfg.BaseFreq

	dx := g.noise.Eval2(wx*g.cfg.WarpFreq, wy*g.cfg.WarpFreq)
	dy := g.noise.Eval2((wx+warpOffset)*g.cfg.WarpFreq, (wy+warpOffset)*g.cfg.WarpFreq)
	ux := wx + dx*g.cfg.WarpAmp
	uy := wy + dy*g.cfg.WarpAmp

	return g.fbm(ux, uy)
}

// fbm layers octaves of noise at increasing frequency and decreasing
// amplitude, dividing by the accumulated amplitude so the result stays in
// roughly [-1, 1] regardless of octave count.
func (g *Generator) fbm(x, y float64) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxAmp := 0.0

	for i := 0; i < g.cfg.Octaves; i++ {
		total += g.noise.Eval2(x*frequency, y*frequency) * amplitude
		maxAmp += amplitude
		amplitude *= g.cfg.Gain
		frequency *= g.cfg.Lacunarity
	}

	return total / maxAmp
}

// normalize rescales the whole field to exactly [0, 1]. Min and max are not
// known until every sample exists, so this is a second pass over the buffer.
// A flat field (max == min) becomes all zeros.
func normalize(f *Field) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range f.Values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if hi == lo {
		for i := range f.Values {
			f.Values[i] = 0
		}
		return
	}

	span := hi - lo
	for i, v := range f.Values {
		f.Values[i] = (v - lo) / span
	}
}
