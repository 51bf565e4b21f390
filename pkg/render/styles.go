package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Layout constants
const (
	cellW        = 11 // width of each step column in characters
	labelVisualW = 7  // visual width of qubit label area
	gateNameW    = 7  // width of gate name inside box
	gateBoxW     = 9  // ┤ + gateNameW + ├
)

type palette struct {
	title         lipgloss.Style
	cursor        lipgloss.Style
	gate          lipgloss.Style
	control       lipgloss.Style
	qubitLabel    lipgloss.Style
	dim           lipgloss.Style
	cbitLabel     lipgloss.Style
	cbitWire      lipgloss.Style
	cbitConnector lipgloss.Style
}

// newPalette builds the diagram styles. Without color every style renders
// its input unchanged.
func newPalette(color bool) palette {
	r := lipgloss.DefaultRenderer()
	if !color {
		r = lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64")),
		cursor: r.NewStyle().
			Foreground(lipgloss.Color("#ff9e64")).
			Bold(true),
		gate: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca")),
		control: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bb9af7")),
		qubitLabel: r.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("#565f89")),
		cbitLabel: r.NewStyle().
			Foreground(lipgloss.Color("#e0af68")),
		cbitWire: r.NewStyle().
			Foreground(lipgloss.Color("#565f89")),
		cbitConnector: r.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Bold(true),
	}
}
