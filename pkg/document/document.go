// Package document reads circuit documents back into memory for the
// exporters and the viewer.
package document

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"qcomposer/pkg/circuit"
)

// Document is a parsed circuit document.
type Document struct {
	Steps []Step `yaml:"steps"`
}

// Step is one time slice of a document.
type Step struct {
	Index int    `yaml:"index"`
	Gates []Gate `yaml:"gates"`
}

// Control is a control record as written in the document.
type Control struct {
	Target int    `yaml:"target"`
	State  string `yaml:"state"`
}

// Gate is a raw gate record. Names and encoded roots are only checked by
// Kind and Decode, so unknown gates survive parsing and can be reported by
// the consumer that trips over them.
type Gate struct {
	Name     string    `yaml:"name"`
	Controls []Control `yaml:"controls,omitempty"`
	Targets  []int     `yaml:"targets,omitempty"`
	Gates    []Gate    `yaml:"gates,omitempty"`
	Theta    *float64  `yaml:"theta,omitempty"`
	Phi      *float64  `yaml:"phi,omitempty"`
	Lambda   *float64  `yaml:"lambda,omitempty"`
	Root     *string   `yaml:"root,omitempty"`
	Bit      *int      `yaml:"bit,omitempty"`
}

// Parse decodes a document from r.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, errors.Wrap(err, "decode circuit document")
	}
	log.Debugf("parsed circuit document with %d steps", len(doc.Steps))
	return &doc, nil
}

// ParseBytes decodes a document held in memory.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Load reads and decodes the document stored at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open circuit document")
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return doc, nil
}

// Kind resolves the gate name against the catalog.
func (g Gate) Kind() (circuit.Kind, error) {
	return circuit.Lookup(g.Name)
}

// Qubits returns every qubit the record references, including aggregate
// sub-gates.
func (g Gate) Qubits() []int {
	var out []int
	for _, c := range g.Controls {
		out = append(out, c.Target)
	}
	out = append(out, g.Targets...)
	for _, sub := range g.Gates {
		out = append(out, sub.Qubits()...)
	}
	return out
}

// Decode converts the record into a builder gate. It checks names, control
// states and roots but leaves placement rules to the builder.
func (g Gate) Decode() (circuit.Gate, error) {
	kind, err := g.Kind()
	if err != nil {
		return circuit.Gate{}, err
	}
	out := circuit.Gate{
		Kind:    kind,
		Targets: append([]int(nil), g.Targets...),
		Params: circuit.Params{
			Theta:  copyFloat(g.Theta),
			Phi:    copyFloat(g.Phi),
			Lambda: copyFloat(g.Lambda),
		},
	}
	for _, c := range g.Controls {
		state, err := circuit.ParseControlState(c.State)
		if err != nil {
			return circuit.Gate{}, errors.Wrapf(err, "%s control on qubit %d", g.Name, c.Target)
		}
		out.Controls = append(out.Controls, circuit.Control{Target: c.Target, State: state})
	}
	if g.Root != nil {
		root, err := circuit.ParseRoot(*g.Root)
		if err != nil {
			return circuit.Gate{}, errors.Wrap(err, g.Name)
		}
		out.Params.Root = root
	}
	if g.Bit != nil {
		out.Bit = circuit.Bit(*g.Bit)
	}
	if len(g.Gates) > 0 {
		out.Gates = make([]circuit.Gate, len(g.Gates))
		for i, sub := range g.Gates {
			if out.Gates[i], err = sub.Decode(); err != nil {
				return circuit.Gate{}, errors.Wrapf(err, "%s gate %d", g.Name, i)
			}
		}
	}
	return out, nil
}

// FromGate converts a builder gate into its document record.
func FromGate(g circuit.Gate) Gate {
	out := Gate{
		Name:    g.Kind.String(),
		Targets: append([]int(nil), g.Targets...),
		Theta:   copyFloat(g.Params.Theta),
		Phi:     copyFloat(g.Params.Phi),
		Lambda:  copyFloat(g.Params.Lambda),
	}
	for _, c := range g.Controls {
		out.Controls = append(out.Controls, Control{Target: c.Target, State: string(c.State)})
	}
	if !g.Params.Root.IsZero() {
		s := g.Params.Root.String()
		out.Root = &s
	}
	if g.Bit != nil {
		b := *g.Bit
		out.Bit = &b
	}
	for _, sub := range g.Gates {
		out.Gates = append(out.Gates, FromGate(sub))
	}
	return out
}

// FromCircuit snapshots a live circuit as a document without going through
// YAML.
func FromCircuit(c *circuit.Circuit) *Document {
	doc := &Document{}
	for _, s := range c.Steps() {
		step := Step{Index: s.Index, Gates: make([]Gate, 0, len(s.Gates))}
		for _, g := range s.Gates {
			step.Gates = append(step.Gates, FromGate(g))
		}
		doc.Steps = append(doc.Steps, step)
	}
	return doc
}

// Circuit replays the document through the builder, so every placement rule
// is checked again. The capacity is the document's qubit count, with a
// floor of one.
func (d *Document) Circuit(opts ...circuit.Option) (*circuit.Circuit, error) {
	c, err := circuit.New(max(QubitCount(d), 1), opts...)
	if err != nil {
		return nil, err
	}
	for i, s := range d.Steps {
		if i > 0 {
			c.IncrementStep()
		}
		for j, g := range s.Gates {
			cg, err := g.Decode()
			if err != nil {
				return nil, errors.Wrapf(err, "step %d gate %d", s.Index, j)
			}
			if err := c.Apply(cg); err != nil {
				return nil, errors.Wrapf(err, "step %d gate %d", s.Index, j)
			}
		}
	}
	return c, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
