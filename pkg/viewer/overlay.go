package viewer

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites the overlay string on top of the background at
// position (x, y). Both may carry ANSI escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay, padding the background when it is shorter than x.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
