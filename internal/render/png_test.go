package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")

	if err := WritePNG(path, testImage(20, 10)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer in.Close()

	decoded, err := png.Decode(in)
	if err != nil {
		t.Fatalf("decode written file: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("decoded size = %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}

func TestPreviewScalesDown(t *testing.T) {
	img := testImage(200, 100)

	out := Preview(img, 50)
	b := out.Bounds()
	if b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("preview size = %dx%d, want 50x25", b.Dx(), b.Dy())
	}
}

func TestPreviewNeverUpscales(t *testing.T) {
	img := testImage(30, 20)

	if out := Preview(img, 512); out != image.Image(img) {
		t.Error("Preview upscaled an image already within the bound")
	}
	if out := Preview(img, 0); out != image.Image(img) {
		t.Error("Preview with disabled bound should return the input unchanged")
	}
}
