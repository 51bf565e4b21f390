// Package exporter translates circuit documents into source code for
// quantum programming frameworks.
package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/document"
)

var (
	ErrUnimplementedGate = errors.New("gate not implemented by exporter")
	ErrUnknownExporter   = errors.New("unknown export format")
)

// Exporter emits the code of one target framework. Gate receives gates
// whose controls are all in the computational basis: StateOne, or
// StateZero when the exporter implements ZeroControlled.
type Exporter interface {
	Name() string
	// Extension is the file suffix of the generated code, dot included.
	Extension() string
	Comment(text string) string
	Prologue(qubits, bits int) string
	Gate(g circuit.Gate) ([]string, error)
	Epilogue() string
}

// ZeroControlled is implemented by exporters that can condition a gate on
// a control in |0> without help.
type ZeroControlled interface {
	ZeroControls() bool
}

// Options tune a translation.
type Options struct {
	// Comments adds a comment line naming each gate.
	Comments bool
	// SkipNonUnitary drops measurements and barriers.
	SkipNonUnitary bool
}

var registry = map[string]func() Exporter{
	"openqasm": func() Exporter { return OpenQASM{} },
	"qiskit":   func() Exporter { return Qiskit{} },
	"quil":     func() Exporter { return Quil{} },
}

// Lookup returns the exporter registered under name.
func Lookup(name string) (Exporter, error) {
	mk, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownExporter, "%q (have %s)", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists the registered exporters in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Translate renders doc with exp. Nothing is returned on error, so a
// caller never sees half a program.
func Translate(doc *document.Document, exp Exporter, opts Options) (string, error) {
	var b strings.Builder
	qubits := document.QubitCount(doc)
	b.WriteString(exp.Prologue(qubits, document.BitCount(doc)))

	zc, ok := exp.(ZeroControlled)
	zero := ok && zc.ZeroControls()
	for _, s := range doc.Steps {
		fmt.Fprintf(&b, "\n%s\n\n", exp.Comment(fmt.Sprintf("step %d", s.Index)))
		for i, rec := range s.Gates {
			g, err := rec.Decode()
			if errors.Is(err, circuit.ErrUnknownGateKind) {
				return "", errors.Wrapf(ErrUnimplementedGate, "%s: step %d gate %d: %s", exp.Name(), s.Index, i, rec.Name)
			}
			if err == nil {
				err = circuit.Validate(g)
			}
			if err != nil {
				return "", errors.Wrapf(err, "step %d gate %d", s.Index, i)
			}
			for _, part := range Expand(g) {
				if opts.SkipNonUnitary && !part.Kind.Unitary() {
					continue
				}
				// No register is declared to fence.
				if part.Kind == circuit.Barrier && qubits == 0 {
					continue
				}
				lines, err := emit(exp, part, zero)
				if err != nil {
					return "", errors.Wrapf(err, "step %d gate %d", s.Index, i)
				}
				if opts.Comments {
					b.WriteString(exp.Comment(part.Kind.String()+" gate") + "\n")
				}
				for _, line := range lines {
					b.WriteString(line + "\n")
				}
			}
		}
		log.Debugf("%s: translated step %d with %d gates", exp.Name(), s.Index, len(s.Gates))
	}
	b.WriteString(exp.Epilogue())
	return b.String(), nil
}

// Expand splits an aggregate into its sub-gates, each carrying the
// aggregate's controls. Other gates are returned as they are.
func Expand(g circuit.Gate) []circuit.Gate {
	if g.Kind != circuit.Aggregate {
		return []circuit.Gate{g}
	}
	out := make([]circuit.Gate, 0, len(g.Gates))
	for _, sub := range g.Gates {
		sub.Controls = append([]circuit.Control(nil), g.Controls...)
		out = append(out, sub)
	}
	return out
}

// emit rotates every control into the computational basis, asks the
// exporter for the gate, then rotates the controls back.
func emit(exp Exporter, g circuit.Gate, zero bool) ([]string, error) {
	g.Controls = append([]circuit.Control(nil), g.Controls...)
	var pre, post []circuit.Gate
	for i, c := range g.Controls {
		kinds, state := BasisChange(c.State, zero)
		for _, k := range kinds {
			pre = append(pre, circuit.Gate{Kind: k, Targets: []int{c.Target}})
		}
		for j := len(kinds) - 1; j >= 0; j-- {
			post = append(post, circuit.Gate{Kind: inverse(kinds[j]), Targets: []int{c.Target}})
		}
		g.Controls[i].State = state
	}

	var lines []string
	for _, p := range pre {
		out, err := exp.Gate(p)
		if err != nil {
			return nil, err
		}
		lines = append(lines, out...)
	}
	out, err := exp.Gate(g)
	if err != nil {
		return nil, err
	}
	lines = append(lines, out...)
	for _, p := range post {
		out, err := exp.Gate(p)
		if err != nil {
			return nil, err
		}
		lines = append(lines, out...)
	}
	return lines, nil
}

// BasisChange returns the gates that map a control state onto a
// computational one, and the state reached. With zero set the result may
// be StateZero, otherwise it is always StateOne.
func BasisChange(s circuit.ControlState, zero bool) ([]circuit.Kind, circuit.ControlState) {
	var kinds []circuit.Kind
	var state circuit.ControlState
	switch s {
	case circuit.StateZero:
		state = circuit.StateZero
	case circuit.StatePlus:
		kinds, state = []circuit.Kind{circuit.Hadamard}, circuit.StateZero
	case circuit.StateMinus:
		kinds, state = []circuit.Kind{circuit.Hadamard}, circuit.StateOne
	case circuit.StatePlusI:
		kinds, state = []circuit.Kind{circuit.SDagger, circuit.Hadamard}, circuit.StateZero
	case circuit.StateMinusI:
		kinds, state = []circuit.Kind{circuit.SDagger, circuit.Hadamard}, circuit.StateOne
	default:
		return nil, circuit.StateOne
	}
	if state == circuit.StateZero && !zero {
		kinds = append(kinds, circuit.PauliX)
		state = circuit.StateOne
	}
	return kinds, state
}

func inverse(k circuit.Kind) circuit.Kind {
	switch k {
	case circuit.SDagger:
		return circuit.S
	case circuit.S:
		return circuit.SDagger
	}
	return k
}

func unimplemented(exp Exporter, g circuit.Gate) error {
	if len(g.Controls) > 0 {
		return errors.Wrapf(ErrUnimplementedGate, "%s: %s with %d controls", exp.Name(), g.Kind, len(g.Controls))
	}
	return errors.Wrapf(ErrUnimplementedGate, "%s: %s", exp.Name(), g.Kind)
}
