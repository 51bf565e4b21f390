// Package viewer is an interactive terminal viewer showing a circuit
// document next to its translation.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/document"
	"qcomposer/pkg/exporter"
	"qcomposer/pkg/qasm"
	"qcomposer/pkg/render"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusCode
	focusMenu
)

const controlsHeight = 6

// Config sets up a viewer.
type Config struct {
	// Name is the base name of saved translations.
	Name string
	// Dir is where translations are saved.
	Dir     string
	Format  string
	Options exporter.Options
	Circuit []circuit.Option
}

// Model represents the viewer state.
type Model struct {
	doc     *document.Document
	circuit *circuit.Circuit
	name    string
	dir     string

	exporters []exporter.Exporter
	format    int
	options   exporter.Options
	code      string
	codeErr   error

	viewport viewport.Model
	help     help.Model
	keys     keyMap

	cursorQubit   int
	cursorStep    int
	viewStartStep int // first step currently visible
	width         int
	height        int
	focus         focus
	menuItem      int
	statusMsg     string
}

// New replays doc into a circuit and translates it with the configured
// framework.
func New(doc *document.Document, cfg Config) (Model, error) {
	c, err := doc.Circuit(cfg.Circuit...)
	if err != nil {
		return Model{}, errors.Wrap(err, "build circuit")
	}
	exp, err := exporter.Lookup(cfg.Format)
	if err != nil {
		return Model{}, err
	}
	var exporters []exporter.Exporter
	for _, n := range exporter.Names() {
		e, err := exporter.Lookup(n)
		if err != nil {
			return Model{}, err
		}
		exporters = append(exporters, e)
	}
	format := slices.IndexFunc(exporters, func(e exporter.Exporter) bool { return e.Name() == exp.Name() })

	name := cfg.Name
	if name == "" {
		name = "circuit"
	}
	h := help.New()
	h.ShowAll = true

	m := Model{
		doc:       doc,
		circuit:   c,
		name:      name,
		dir:       cfg.Dir,
		exporters: exporters,
		format:    format,
		options:   cfg.Options,
		viewport:  viewport.New(40, 20),
		help:      h,
		keys:      defaultKeyMap(),
		focus:     focusCircuit,
	}
	m.translate()
	return m, nil
}

func (m Model) exporter() exporter.Exporter {
	return m.exporters[m.format]
}

// translate regenerates the code panel for the current framework and
// options.
func (m *Model) translate() {
	exp := m.exporter()
	m.code, m.codeErr = exporter.Translate(m.doc, exp, m.options)
	if m.codeErr != nil {
		log.Debugf("viewer: %s translation failed: %v", exp.Name(), m.codeErr)
		m.viewport.SetContent(errorStyle.Render(m.codeErr.Error()))
	} else {
		m.viewport.SetContent(m.code)
	}
	m.viewport.GotoTop()
}

// save writes the current translation next to the document.
func (m *Model) save() {
	if m.codeErr != nil {
		m.statusMsg = "Nothing to save: " + m.codeErr.Error()
		return
	}
	path := filepath.Join(m.dir, m.name+m.exporter().Extension())
	if err := os.WriteFile(path, []byte(m.code), 0o644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + path
}

func (m *Model) layout() (circuitWidth, codeWidth, panelHeight int) {
	codeWidth = m.width / 3
	circuitWidth = m.width - codeWidth - 4
	panelHeight = max(m.height-controlsHeight-2, 6)
	return
}

func (m *Model) resize() {
	_, codeWidth, panelHeight := m.layout()
	m.viewport.Width = max(codeWidth-2, 10)
	m.viewport.Height = max(panelHeight-4, 3)
	m.help.Width = m.width - 4
}

// visibleSteps is the number of diagram columns the circuit panel shows.
func (m *Model) visibleSteps() int {
	circuitWidth, _, _ := m.layout()
	return render.StepsThatFit(circuitWidth - 2)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		m.statusMsg = ""

		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch {
			case key.Matches(msg, m.keys.Up):
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case key.Matches(msg, m.keys.Down):
				if m.cursorQubit < m.circuit.Capacity()-1 {
					m.cursorQubit++
				}
			case key.Matches(msg, m.keys.Left):
				if m.cursorStep > 0 {
					m.cursorStep--
					if m.cursorStep < m.viewStartStep {
						m.viewStartStep = m.cursorStep
					}
				}
			case key.Matches(msg, m.keys.Right):
				if m.cursorStep < m.circuit.CurrentStep() {
					m.cursorStep++
					if visible := m.visibleSteps(); m.cursorStep >= m.viewStartStep+visible {
						m.viewStartStep = m.cursorStep - visible + 1
					}
				}
			case key.Matches(msg, m.keys.Switch):
				m.focus = focusCode
			default:
				m.common(msg)
			}

		case focusCode:
			switch {
			case key.Matches(msg, m.keys.Switch):
				m.focus = focusCircuit
			case key.Matches(msg, m.keys.Menu, m.keys.Comments, m.keys.Unitary, m.keys.Save):
				m.common(msg)
			default:
				m.viewport, cmd = m.viewport.Update(msg)
			}

		case focusMenu:
			switch {
			case key.Matches(msg, m.keys.Back):
				m.focus = focusCircuit
			case key.Matches(msg, m.keys.Up):
				if m.menuItem > 0 {
					m.menuItem--
				}
			case key.Matches(msg, m.keys.Down):
				if m.menuItem < len(m.exporters)-1 {
					m.menuItem++
				}
			case key.Matches(msg, m.keys.Select):
				m.format = m.menuItem
				m.translate()
				m.focus = focusCircuit
			}
		}
	}

	return m, cmd
}

// common handles the keys shared by the circuit and code panels.
func (m *Model) common(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Menu):
		m.menuItem = m.format
		m.focus = focusMenu
	case key.Matches(msg, m.keys.Comments):
		m.options.Comments = !m.options.Comments
		m.translate()
	case key.Matches(msg, m.keys.Unitary):
		m.options.SkipNonUnitary = !m.options.SkipNonUnitary
		m.translate()
	case key.Matches(msg, m.keys.Save):
		m.save()
	}
}

// gateAt returns the gate touching qubit in step, if any.
func (m Model) gateAt(step, qubit int) (circuit.Gate, bool) {
	steps := m.circuit.Steps()
	if step < 0 || step >= len(steps) {
		return circuit.Gate{}, false
	}
	for _, g := range steps[step].Gates {
		if g.Kind == circuit.Barrier || slices.Contains(g.Qubits(), qubit) {
			return g, true
		}
	}
	return circuit.Gate{}, false
}

// describe summarizes a gate for the status line.
func describe(g circuit.Gate) string {
	parts := []string{g.Kind.String()}
	if len(g.Targets) > 0 {
		qs := make([]string, len(g.Targets))
		for i, t := range g.Targets {
			qs[i] = fmt.Sprintf("q[%d]", t)
		}
		parts = append(parts, strings.Join(qs, ","))
	}
	for _, sub := range g.Gates {
		parts = append(parts, fmt.Sprintf("%s q[%d]", sub.Kind, sub.Targets[0]))
	}
	for _, c := range g.Controls {
		parts = append(parts, fmt.Sprintf("if q[%d]=%s", c.Target, c.State))
	}
	p := g.Params
	if p.Theta != nil {
		parts = append(parts, "θ="+qasm.FormatParam(*p.Theta))
	}
	if p.Phi != nil {
		parts = append(parts, "φ="+qasm.FormatParam(*p.Phi))
	}
	if p.Lambda != nil {
		parts = append(parts, "λ="+qasm.FormatParam(*p.Lambda))
	}
	if !p.Root.IsZero() {
		parts = append(parts, "root="+p.Root.String())
	}
	if g.Bit != nil {
		parts = append(parts, fmt.Sprintf("→ c[%d]", *g.Bit))
	}
	return strings.Join(parts, " ")
}

// ──────────────────────────── View ────────────────────────────

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	circuitWidth, codeWidth, panelHeight := m.layout()

	circuitPanel := m.renderCircuitPanel(circuitWidth, panelHeight)
	codePanel := m.renderCodePanel(codeWidth, panelHeight)
	controlsPanel := controlsStyle.Width(m.width - 4).Height(controlsHeight - 2).Render(m.help.View(m.keys))

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, codePanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}

func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %d qubits · %d bits", m.name, m.circuit.Capacity(), m.circuit.BitCount())))
	sb.WriteString("\n\n")
	sb.WriteString(render.Diagram(m.circuit, render.Options{
		Color:  true,
		Width:  width - 2,
		Start:  m.viewStartStep,
		Cursor: &render.Position{Step: m.cursorStep, Qubit: m.cursorQubit},
	}))

	fmt.Fprintf(&sb, "\n  Position: Step %d, Qubit %d", m.cursorStep, m.cursorQubit)
	if g, ok := m.gateAt(m.cursorStep, m.cursorQubit); ok {
		fmt.Fprintf(&sb, "  │  %s", activeStyle.Render(describe(g)))
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "\n  %s", activeStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderCodePanel(width, height int) string {
	var sb strings.Builder

	title := m.exporter().Name()
	if m.focus == focusCode {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))

	var flags []string
	if m.options.Comments {
		flags = append(flags, "comments")
	}
	if m.options.SkipNonUnitary {
		flags = append(flags, "unitary only")
	}
	if len(flags) > 0 {
		sb.WriteString(dimStyle.Render("  " + strings.Join(flags, " · ")))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.viewport.View())

	return codeStyle.Width(width).Height(height).Render(sb.String())
}

// renderMenu renders the floating framework picker.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Framework"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 30)))
	sb.WriteString("\n")

	for i, exp := range m.exporters {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", exp.Name())))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", exp.Name())))
		}
		sb.WriteString(dimStyle.Render(exp.Extension()))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
