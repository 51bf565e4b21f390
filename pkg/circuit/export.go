package circuit

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Extension is appended by Export to names without a YAML extension.
const Extension = ".yaml"

// Export writes the circuit document to the file name, adding the .yaml
// extension when missing.
func (c *Circuit) Export(name string) error {
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += Extension
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(ErrSerializationIO, "create %s: %v", name, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(ErrSerializationIO, "close %s: %v", name, err)
	}
	return nil
}

// WriteTo encodes the circuit document to w.
func (c *Circuit) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := yaml.NewEncoder(cw)
	enc.SetIndent(2)
	if err := enc.Encode(c.Node()); err != nil {
		return cw.n, errors.Wrapf(ErrSerializationIO, "%v", err)
	}
	if err := enc.Close(); err != nil {
		return cw.n, errors.Wrapf(ErrSerializationIO, "%v", err)
	}
	return cw.n, nil
}

// Node returns the document as a YAML mapping node.
func (c *Circuit) Node() *yaml.Node {
	steps := seq()
	for _, s := range c.steps {
		gates := seq()
		for _, g := range s.Gates {
			gates.Content = append(gates.Content, GateNode(g))
		}
		step := mapping()
		addPair(step, "index", intNode(s.Index))
		addPair(step, "gates", gates)
		steps.Content = append(steps.Content, step)
	}
	doc := mapping()
	addPair(doc, "steps", steps)
	return doc
}

// GateNode encodes a single gate record. Keys follow a fixed order and
// empty fields are omitted.
func GateNode(g Gate) *yaml.Node {
	n := mapping()
	addPair(n, "name", strNode(g.Kind.String(), 0))
	if len(g.Controls) > 0 {
		controls := seq()
		for _, ctl := range g.Controls {
			cn := mapping()
			addPair(cn, "target", intNode(ctl.Target))
			addPair(cn, "state", strNode(string(ctl.State), yaml.SingleQuotedStyle))
			controls.Content = append(controls.Content, cn)
		}
		addPair(n, "controls", controls)
	}
	if len(g.Targets) > 0 {
		targets := seq()
		for _, t := range g.Targets {
			targets.Content = append(targets.Content, intNode(t))
		}
		addPair(n, "targets", targets)
	}
	if len(g.Gates) > 0 {
		gates := seq()
		for _, sub := range g.Gates {
			gates.Content = append(gates.Content, GateNode(sub))
		}
		addPair(n, "gates", gates)
	}
	if g.Params.Theta != nil {
		addPair(n, "theta", floatNode(*g.Params.Theta))
	}
	if g.Params.Phi != nil {
		addPair(n, "phi", floatNode(*g.Params.Phi))
	}
	if g.Params.Lambda != nil {
		addPair(n, "lambda", floatNode(*g.Params.Lambda))
	}
	if !g.Params.Root.IsZero() {
		addPair(n, "root", strNode(g.Params.Root.String(), yaml.SingleQuotedStyle))
	}
	if g.Bit != nil {
		addPair(n, "bit", intNode(*g.Bit))
	}
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func seq() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key, 0), value)
}

func strNode(v string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: style}
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func floatNode(v float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatFloat(v)}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
