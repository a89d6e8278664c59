package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/comics/pkg/app/styles"
)

// PageProgress renders "current/total" followed by a bar width cells wide.
// current is zero based.
func PageProgress(current, total, width int) string {
	if total == 0 {
		return styles.MutedStyle.Render("0/0")
	}
	label := styles.TextStyle.Render(fmt.Sprintf("%d/%d", current+1, total))
	return label + " " + renderProgressBar(current+1, total, width)
}

func renderProgressBar(current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
