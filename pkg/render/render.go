// Package render draws circuits as box drawing diagrams.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qcomposer/pkg/circuit"
)

// Position addresses one cell of a diagram.
type Position struct {
	Step  int
	Qubit int
}

// Options control Diagram.
type Options struct {
	Color bool
	// Width is the visible width available. Steps that do not fit after
	// Start are cut; zero draws every step.
	Width int
	// Start is the first step drawn.
	Start int
	// Cursor highlights one cell when set.
	Cursor *Position
}

// Diagram draws c with three lines per qubit wire, a step header and, when
// any bit is written, a classical wire collecting the measurements.
func Diagram(c *circuit.Circuit, opts Options) string {
	p := newPalette(opts.Color)
	steps := c.Steps()
	qubits := c.Capacity()
	if len(steps) == 0 {
		return ""
	}

	start := min(max(opts.Start, 0), len(steps)-1)
	end := len(steps)
	if opts.Width > 0 {
		end = min(start+StepsThatFit(opts.Width), len(steps))
	}
	visible := steps[start:end]
	grid := make([][]cell, len(visible))
	for i, s := range visible {
		grid[i] = layout(s, qubits)
	}

	var sb strings.Builder
	if start > 0 || end < len(steps) {
		sb.WriteString(" ")
		if start > 0 {
			sb.WriteString(" ◀")
		}
		fmt.Fprintf(&sb, " showing steps %d–%d of %d", start, end-1, len(steps))
		if end < len(steps) {
			sb.WriteString(" ▶")
		}
		sb.WriteString("\n")
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for _, s := range visible {
		style := p.dim
		if opts.Cursor != nil && opts.Cursor.Step == s.Index {
			style = p.cursor
		}
		header += style.Render(padCenter(strconv.Itoa(s.Index), cellW))
	}
	sb.WriteString(header + "\n")

	for q := 0; q < qubits; q++ {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := p.qubitLabel.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for i, s := range visible {
			hl := opts.Cursor != nil && opts.Cursor.Step == s.Index && opts.Cursor.Qubit == q
			top, mid, bot := p.render(grid[i][q], hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if bits := c.BitCount(); bits > 0 {
		sb.WriteString(p.classical(visible, bits))
	}
	return sb.String()
}

// StepsThatFit returns how many step columns a diagram of the given width
// shows, never less than one.
func StepsThatFit(width int) int {
	return max((width-labelVisualW)/cellW, 1)
}

// classical draws the separator and the single classical wire with the
// landing point of every measuring step.
func (p palette) classical(steps []circuit.Step, bits int) string {
	sepLine := strings.Repeat(" ", labelVisualW)
	cbitLine := p.cbitLabel.Render(fmt.Sprintf("%-5s", fmt.Sprintf("c%d", bits))) + p.cbitWire.Render("══")

	dashL := (cellW - 1) / 2
	for _, s := range steps {
		measured := measuredBits(s)
		if len(measured) == 0 {
			sepLine += strings.Repeat(" ", cellW)
			cbitLine += p.cbitWire.Render(strings.Repeat("═", cellW))
			continue
		}
		sepLine += centered(p.cbitConnector.Render("║"), cellW, " ")

		names := make([]string, len(measured))
		for i, b := range measured {
			names[i] = strconv.Itoa(b)
		}
		landing := truncate("╩"+strings.Join(names, ","), cellW-dashL)
		dashR := max(cellW-dashL-lipgloss.Width(landing), 0)
		cbitLine += p.cbitWire.Render(strings.Repeat("═", dashL)) +
			p.cbitConnector.Render(landing) +
			p.cbitWire.Render(strings.Repeat("═", dashR))
	}
	return sepLine + "\n" + cbitLine + "\n"
}

// render returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func (p palette) render(info cell, hl bool) (top, mid, bot string) {
	if hl {
		return p.highlighted(info)
	}

	blank := strings.Repeat(" ", cellW)
	vert := centered("│", cellW, " ")
	dblVert := centered(p.cbitConnector.Render("║"), cellW, " ")

	switch {
	case info.gate != nil:
		sym, ok := p.wireSymbol(info)
		if !ok {
			return p.box(info)
		}
		top = blank
		if info.vertAbove {
			top = vert
		}
		mid = centered(sym, cellW, "─")
		bot = blank
		if info.vertBelow {
			bot = vert
		}
		if info.measureBelow {
			bot = dblVert
		}

	case info.passThrough:
		top = vert
		mid = centered("┼", cellW, "─")
		bot = vert
		if info.measureBelow {
			bot = dblVert
		}

	case info.barrier:
		top = vert
		mid = centered("│", cellW, "─")
		bot = vert

	case info.measureBelow:
		// A measurement wire crosses a free qubit.
		top = dblVert
		mid = centered(p.cbitConnector.Render("╫"), cellW, "─")
		bot = dblVert

	default:
		top = blank
		mid = strings.Repeat("─", cellW)
		bot = blank
	}
	return
}

// highlighted draws the cursor cell inside a double border.
func (p palette) highlighted(info cell) (top, mid, bot string) {
	innerW := cellW - 2
	edge := func(inner string) string {
		return p.cursor.Render("║") + inner + p.cursor.Render("║")
	}

	if info.barrier && info.gate == nil && !info.passThrough {
		vert := centered("│", cellW, " ")
		return vert, edge(centered("│", innerW, "─")), vert
	}

	top = p.cursor.Render("╔" + strings.Repeat("═", innerW) + "╗")
	bot = p.cursor.Render("╚" + strings.Repeat("═", innerW) + "╝")

	switch {
	case info.gate != nil:
		if sym, ok := p.wireSymbol(info); ok {
			mid = edge(centered(sym, innerW, "─"))
		} else {
			mid = edge(p.gate.Render("┤" + padCenter(label(info.gate), gateNameW) + "├"))
		}
	case info.passThrough:
		mid = edge(centered("┼", innerW, "─"))
	case info.measureBelow:
		mid = edge(centered(p.cbitConnector.Render("╫"), innerW, "─"))
	default:
		mid = edge(strings.Repeat("─", innerW))
	}
	return
}

// wireSymbol returns the styled symbol drawn on the wire for controls and
// for targets that are not boxed.
func (p palette) wireSymbol(info cell) (string, bool) {
	if info.control {
		return p.control.Render(controlSymbol(info.state)), true
	}
	if sym, ok := targetSymbol(info.gate); ok {
		return p.gate.Render(sym), true
	}
	return "", false
}

// box draws a labelled gate box. Connectors meet the top and bottom edges
// at the wire column.
func (p palette) box(info cell) (top, mid, bot string) {
	margin := (cellW - gateBoxW) / 2
	right := cellW - margin - gateBoxW

	topEdge := strings.Repeat("─", gateNameW)
	if info.vertAbove {
		topEdge = centered("┴", gateNameW, "─")
	}
	botEdge := strings.Repeat("─", gateNameW)
	switch {
	case info.measureBelow || info.gate.Kind.Measurement():
		botEdge = centered("╥", gateNameW, "─")
	case info.vertBelow:
		botEdge = centered("┬", gateNameW, "─")
	}

	top = strings.Repeat(" ", margin) + p.gate.Render("┌"+topEdge+"┐") + strings.Repeat(" ", right)
	mid = strings.Repeat("─", margin) + p.gate.Render("┤"+padCenter(label(info.gate), gateNameW)+"├") + strings.Repeat("─", right)
	bot = strings.Repeat(" ", margin) + p.gate.Render("└"+botEdge+"┘") + strings.Repeat(" ", right)
	return
}

// padCenter centres a string within the given width, cutting it when it
// is wider.
func padCenter(s string, width int) string {
	s = truncate(s, width)
	total := width - lipgloss.Width(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// centered places sym in the middle of width columns filled with fill.
func centered(sym string, width int, fill string) string {
	w := lipgloss.Width(sym)
	left := max((width-w)/2, 0)
	return strings.Repeat(fill, left) + sym + strings.Repeat(fill, max(width-w-left, 0))
}

// truncate cuts an unstyled string to at most width columns.
func truncate(s string, width int) string {
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width {
		r = r[:len(r)-1]
	}
	return string(r)
}
