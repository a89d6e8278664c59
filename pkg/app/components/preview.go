package components

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Preview draws img with upper half blocks, one cell per column and two
// pixel rows per line. The image should already be scaled to the target
// size; an odd last row is paired with itself.
func Preview(img image.Image) string {
	if img == nil {
		return ""
	}
	bounds := img.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		lower := y + 1
		if lower >= bounds.Max.Y {
			lower = y
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cell := lipgloss.NewStyle().
				Foreground(hexColor(img, x, y)).
				Background(hexColor(img, x, lower))
			b.WriteString(cell.Render("▀"))
		}
		if y+2 < bounds.Max.Y {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func hexColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8))
}
