package viewer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/document"
	"qcomposer/pkg/exporter"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func bellDocument(t *testing.T) *document.Document {
	t.Helper()
	c, err := circuit.New(2)
	require.NoError(t, err)
	c.Hadamard(nil, []int{0}).
		IncrementStep().
		PauliX(circuit.On(0), []int{1}).
		IncrementStep().
		MeasureZ([]int{0}, 0).
		MeasureZ([]int{1}, 1)
	require.NoError(t, c.Err())
	return document.FromCircuit(c)
}

func newModel(t *testing.T, doc *document.Document, format string) Model {
	t.Helper()
	m, err := New(doc, Config{
		Dir:     t.TempDir(),
		Format:  format,
		Options: exporter.Options{Comments: true},
	})
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := newModel(t, bellDocument(t), "Qiskit")
	assert.Equal(t, "qiskit", m.exporter().Name())
	assert.NoError(t, m.codeErr)
	assert.Contains(t, m.code, "qc.measure(")
	assert.Equal(t, "circuit", m.name)

	_, err := New(bellDocument(t), Config{Format: "cirq"})
	assert.True(t, errors.Is(err, exporter.ErrUnknownExporter))

	bad := &document.Document{Steps: []document.Step{{Gates: []document.Gate{{Name: "qft", Targets: []int{0}}}}}}
	_, err = New(bad, Config{Format: "qiskit"})
	assert.True(t, errors.Is(err, circuit.ErrUnknownGateKind))
}

func TestNavigation(t *testing.T) {
	m := newModel(t, bellDocument(t), "qiskit")
	m = press(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = press(m, keyRight, keyRight, keyRight, keyRight)
	assert.Equal(t, 2, m.cursorStep)

	m = press(m, keyDown, keyDown, keyDown)
	assert.Equal(t, 1, m.cursorQubit)

	m = press(m, keyUp, runes("h"), runes("h"), runes("h"))
	assert.Equal(t, 0, m.cursorQubit)
	assert.Equal(t, 0, m.cursorStep)
}

func TestNavigationScrolls(t *testing.T) {
	c, err := circuit.New(1)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		if i > 0 {
			c.IncrementStep()
		}
		c.T(nil, []int{0})
	}
	require.NoError(t, c.Err())

	m := newModel(t, document.FromCircuit(c), "qiskit")
	m = press(m, tea.WindowSizeMsg{Width: 60, Height: 30})
	visible := m.visibleSteps()
	require.Less(t, visible, 12)

	for i := 0; i < 11; i++ {
		m = press(m, keyRight)
	}
	assert.Equal(t, 11, m.cursorStep)
	assert.Equal(t, 11-visible+1, m.viewStartStep)

	for i := 0; i < 11; i++ {
		m = press(m, keyLeft)
	}
	assert.Equal(t, 0, m.viewStartStep)
}

func TestFrameworkMenu(t *testing.T) {
	m := newModel(t, bellDocument(t), "qiskit")
	m = press(m, runes("f"))
	require.Equal(t, focusMenu, m.focus)
	assert.Equal(t, m.format, m.menuItem)

	m = press(m, keyUp, keyUp, keyEnter)
	assert.Equal(t, focusCircuit, m.focus)
	assert.Equal(t, "openqasm", m.exporter().Name())
	assert.True(t, strings.HasPrefix(m.code, "OPENQASM 2.0;"))

	m = press(m, runes("f"), keyDown, keyEsc)
	assert.Equal(t, focusCircuit, m.focus)
	assert.Equal(t, "openqasm", m.exporter().Name())
}

func TestToggleOptions(t *testing.T) {
	m := newModel(t, bellDocument(t), "qiskit")
	assert.Contains(t, m.code, "# hadamard gate")

	m = press(m, runes("c"))
	assert.False(t, m.options.Comments)
	assert.NotContains(t, m.code, "# hadamard gate")

	m = press(m, keyTab, runes("u"))
	assert.Equal(t, focusCode, m.focus)
	assert.True(t, m.options.SkipNonUnitary)
	assert.NotContains(t, m.code, "qc.measure(")
}

func TestSave(t *testing.T) {
	m := newModel(t, bellDocument(t), "quil")
	m = press(m, keySave)

	path := filepath.Join(m.dir, "circuit.quil")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.code, string(data))
	assert.Equal(t, "Saved "+path, m.statusMsg)

	m = press(m, keyDown)
	assert.Empty(t, m.statusMsg)
}

func TestUnimplementedGate(t *testing.T) {
	c, err := circuit.New(1)
	require.NoError(t, err)
	c.HadamardXY(nil, []int{0})
	require.NoError(t, c.Err())

	m := newModel(t, document.FromCircuit(c), "openqasm")
	assert.True(t, errors.Is(m.codeErr, exporter.ErrUnimplementedGate))

	m = press(m, keySave)
	assert.True(t, strings.HasPrefix(m.statusMsg, "Nothing to save"))
	_, err = os.Stat(filepath.Join(m.dir, "circuit.qasm"))
	assert.True(t, os.IsNotExist(err))
}

func TestView(t *testing.T) {
	m := newModel(t, bellDocument(t), "qiskit")
	assert.Equal(t, "Loading...", m.View())

	m = press(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Quantum Circuit")
	assert.Contains(t, view, "qiskit")
	assert.Contains(t, view, "hadamard q[0]")

	m = press(m, keyTab)
	assert.Contains(t, m.View(), "qiskit [ACTIVE]")

	m = press(m, runes("f"))
	assert.Contains(t, m.View(), "Framework")
}

func TestQuit(t *testing.T) {
	m := newModel(t, bellDocument(t), "qiskit")
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDescribe(t *testing.T) {
	g := circuit.Gate{
		Kind:     circuit.RXTheta,
		Controls: []circuit.Control{circuit.Ctrl(0, circuit.StatePlus)},
		Targets:  []int{1},
		Params:   circuit.Params{Theta: circuit.Angle(math.Pi / 2)},
	}
	assert.Equal(t, "rx-theta q[1] if q[0]=+ θ=pi/2", describe(g))

	m := circuit.Gate{Kind: circuit.MeasureZ, Targets: []int{2}, Bit: circuit.Bit(3)}
	assert.Equal(t, "measure-z q[2] → c[3]", describe(m))
}

func TestOverlayAt(t *testing.T) {
	bg := "abcdef\nghijkl\nmnopqr"
	assert.Equal(t, "abcdef\ngXYjkl\nmnopqr", overlayAt(bg, "XY", 1, 1))
	assert.Equal(t, "ab  Z", spliceLineAt("ab", "Z", 4))
}
