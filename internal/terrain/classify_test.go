package terrain

import (
	"image/color"
	"testing"

	"github.com/talgya/mapforge/internal/heightmap"
)

var (
	colorA = color.RGBA{200, 0, 0, 255}
	colorB = color.RGBA{0, 200, 0, 255}
	colorC = color.RGBA{0, 0, 200, 255}
)

func threeBands() Palette {
	return Palette{
		{Name: "low", Min: 0.0, Max: 0.3, Color: colorA},
		{Name: "mid", Min: 0.3, Max: 0.6, Color: colorB},
		{Name: "high", Min: 0.6, Max: 1.0, Color: colorC},
	}
}

func fieldOf(values ...float64) *heightmap.Field {
	return &heightmap.Field{Width: len(values), Height: 1, Values: values}
}

// Band boundaries belong to the region starting there; elevation exactly 1.0
// misses every half-open band and falls into the topmost one.
func TestClassifyBoundaries(t *testing.T) {
	f := fieldOf(0.0, 0.3, 0.6, 1.0)

	img, err := Classify(f, threeBands())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	want := []color.RGBA{colorA, colorB, colorC, colorC}
	for x, exp := range want {
		if got := img.RGBAAt(x, 0); got != exp {
			t.Errorf("pixel %d = %v, want %v", x, got, exp)
		}
	}
}

func TestClassifyEmptyPalette(t *testing.T) {
	if _, err := Classify(fieldOf(0.5), Palette{}); err == nil {
		t.Fatal("Classify with empty palette succeeded, want error")
	}
}

func TestClassifyClampsOutOfRange(t *testing.T) {
	f := fieldOf(-0.5, 1.7)

	img, err := Classify(f, threeBands())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != colorA {
		t.Errorf("below-range sample = %v, want lowest band %v", got, colorA)
	}
	if got := img.RGBAAt(1, 0); got != colorC {
		t.Errorf("above-range sample = %v, want topmost band %v", got, colorC)
	}
}

// Samples inside an explicit gap fall to the region with the largest max
// elevation, never left unpainted.
func TestClassifyGapFallsToTopBand(t *testing.T) {
	gapped := Palette{
		{Name: "low", Min: 0.0, Max: 0.3, Color: colorA},
		{Name: "high", Min: 0.6, Max: 1.0, Color: colorC},
	}

	img, err := Classify(fieldOf(0.45), gapped)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != colorC {
		t.Errorf("gap sample = %v, want %v", got, colorC)
	}
}

// Overlapping regions resolve to the lowest-min region containing the value.
func TestClassifyOverlapFirstMatchWins(t *testing.T) {
	overlapping := Palette{
		{Name: "wide", Min: 0.0, Max: 1.0, Color: colorA},
		{Name: "narrow", Min: 0.4, Max: 0.6, Color: colorB},
	}

	img, err := Classify(fieldOf(0.5), overlapping)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != colorA {
		t.Errorf("overlap sample = %v, want earlier region %v", got, colorA)
	}
}

// Classify sorts internally and must not reorder the caller's palette.
func TestClassifyDoesNotMutateInputs(t *testing.T) {
	reversed := Palette{
		{Name: "high", Min: 0.6, Max: 1.0, Color: colorC},
		{Name: "mid", Min: 0.3, Max: 0.6, Color: colorB},
		{Name: "low", Min: 0.0, Max: 0.3, Color: colorA},
	}
	f := fieldOf(0.1, 0.45, 0.8)

	img, err := Classify(f, reversed)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	want := []color.RGBA{colorA, colorB, colorC}
	for x, exp := range want {
		if got := img.RGBAAt(x, 0); got != exp {
			t.Errorf("pixel %d = %v, want %v", x, got, exp)
		}
	}

	if reversed[0].Name != "high" || reversed[2].Name != "low" {
		t.Error("Classify reordered the caller's palette")
	}
	if f.Values[0] != 0.1 || f.Values[1] != 0.45 || f.Values[2] != 0.8 {
		t.Error("Classify mutated the input field")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	f := fieldOf(0.05, 0.33, 0.42, 0.51, 0.68, 0.81, 0.97)

	img1, err := Classify(f, DefaultPalette())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	img2, err := Classify(f, DefaultPalette())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	for i := range img1.Pix {
		if img1.Pix[i] != img2.Pix[i] {
			t.Fatalf("outputs diverge at byte %d", i)
		}
	}
}

// One sample inside each default band maps to that band's color.
func TestDefaultPaletteMapping(t *testing.T) {
	f := fieldOf(0.15, 0.35, 0.425, 0.525, 0.675, 0.825, 0.95)

	img, err := Classify(f, DefaultPalette())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	want := []color.RGBA{
		{0, 0, 128, 255},
		{64, 160, 224, 255},
		{238, 214, 175, 255},
		{120, 200, 80, 255},
		{16, 128, 16, 255},
		{128, 128, 128, 255},
		{255, 255, 255, 255},
	}
	for x, exp := range want {
		if got := img.RGBAAt(x, 0); got != exp {
			t.Errorf("pixel %d = %v, want %v", x, got, exp)
		}
	}
}

// Every sample in [0, 1] gets exactly one color, so reinterpreting a
// classified image's red channel as elevation classifies again without error.
func TestReclassifyOwnOutput(t *testing.T) {
	f := fieldOf(0.0, 0.2, 0.5, 0.9, 1.0)

	first, err := Classify(f, DefaultPalette())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	second, err := Classify(heightmap.FromImage(first), DefaultPalette())
	if err != nil {
		t.Fatalf("Classify on own output: %v", err)
	}
	if second.Bounds() != first.Bounds() {
		t.Fatalf("dimensions changed: %v → %v", first.Bounds(), second.Bounds())
	}
}
