package heightmap

import "fmt"

// Noise primitive backends. Both are seeded, deterministic functions with no
// global state, so identical configs reproduce identical fields on any platform.
const (
	PrimitiveSimplex = "simplex"
	PrimitivePerlin  = "perlin"
)

// Config holds the parameters for one heightmap generator.
type Config struct {
	Seed       int64   // Noise permutation seed
	Primitive  string  // Noise backend: "simplex" (default) or "perlin"
	BaseFreq   float64 // Base sampling frequency (larger → smaller features)
	Octaves    int     // Number of fBm layers
	Lacunarity float64 // Frequency multiplier per octave (> 1)
	Gain       float64 // Amplitude multiplier per octave (0 < gain < 1)
	WarpAmp    float64 // Strength of domain warp displacement (>= 0)
	WarpFreq   float64 // Frequency of the warp-displacement noise
}

// DefaultConfig returns the reference parameter set used for new maps.
func DefaultConfig() Config {
	return Config{
		Seed:       42,
		Primitive:  PrimitiveSimplex,
		BaseFreq:   0.005,
		Octaves:    6,
		Lacunarity: 2.2,
		Gain:       0.5,
		WarpAmp:    0.1,
		WarpFreq:   0.02,
	}
}

// Validate checks every parameter before any generation work happens.
// Invalid lacunarity or gain would otherwise degrade silently into flat or
// exploding fields rather than failing.
func (c Config) Validate() error {
	if c.Primitive != "" && c.Primitive != PrimitiveSimplex && c.Primitive != PrimitivePerlin {
		return fmt.Errorf("unknown noise primitive %q", c.Primitive)
	}
	if c.BaseFreq <= 0 {
		return fmt.Errorf("base frequency must be positive, got %g", c.BaseFreq)
	}
	if c.Octaves <= 0 {
		return fmt.Errorf("octaves must be positive, got %d", c.Octaves)
	}
	if c.Lacunarity <= 1 {
		return fmt.Errorf("lacunarity must be greater than 1, got %g", c.Lacunarity)
	}
	if c.Gain <= 0 || c.Gain >= 1 {
		return fmt.Errorf("gain must be in (0, 1), got %g", c.Gain)
	}
	if c.WarpAmp < 0 {
		return fmt.Errorf("warp amplitude must not be negative, got %g", c.WarpAmp)
	}
	if c.WarpFreq <= 0 {
		return fmt.Errorf("warp frequency must be positive, got %g", c.WarpFreq)
	}
	return nil
}
