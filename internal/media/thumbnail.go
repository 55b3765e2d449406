package media

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Thumbnail renders an image as colored half-block cells for terminal
// display. Each text row packs two pixel rows: the upper pixel colors the
// foreground of '▀' and the lower pixel its background. The image is
// downscaled by integer subsampling to fit the cell budget.
func Thumbnail(img image.Image, maxCols, maxRows int) string {
	if img == nil || maxCols <= 0 || maxRows <= 0 {
		return ""
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return ""
	}

	factor := 1
	if f := (width + maxCols - 1) / maxCols; f > factor {
		factor = f
	}
	if f := (height + maxRows*2 - 1) / (maxRows * 2); f > factor {
		factor = f
	}

	var rows []string
	var row strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += factor * 2 {
		row.Reset()
		for x := bounds.Min.X; x < bounds.Max.X; x += factor {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(img.At(x, y))))
			if lowerY := y + factor; lowerY < bounds.Max.Y {
				style = style.Background(lipgloss.Color(hexColor(img.At(x, lowerY))))
			}
			row.WriteString(style.Render("▀"))
		}
		rows = append(rows, row.String())
	}

	return strings.Join(rows, "\n")
}

// hexColor converts a pixel to the #rrggbb form lipgloss colors take.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
