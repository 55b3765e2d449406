package media

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func solidImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}
	return img
}

func TestThumbnailFitsBudget(t *testing.T) {
	out := Thumbnail(solidImage(8, 8), 4, 2)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if got := strings.Count(line, "▀"); got != 4 {
			t.Errorf("Expected 4 cells in row %d, got %d", i, got)
		}
	}
}

func TestThumbnailSmallImageNotUpscaled(t *testing.T) {
	out := Thumbnail(solidImage(2, 2), 20, 20)

	lines := strings.Split(out, "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(lines))
	}
	if got := strings.Count(lines[0], "▀"); got != 2 {
		t.Errorf("Expected 2 cells, got %d", got)
	}
}

func TestThumbnailOddHeight(t *testing.T) {
	out := Thumbnail(solidImage(3, 5), 10, 10)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 rows for a 5 pixel tall image, got %d", len(lines))
	}
}

func TestThumbnailDegenerateInputs(t *testing.T) {
	if out := Thumbnail(nil, 10, 10); out != "" {
		t.Errorf("Expected empty output for nil image, got %q", out)
	}
	if out := Thumbnail(solidImage(0, 0), 10, 10); out != "" {
		t.Errorf("Expected empty output for empty image, got %q", out)
	}
	if out := Thumbnail(solidImage(4, 4), 0, 10); out != "" {
		t.Errorf("Expected empty output for zero budget, got %q", out)
	}
}
