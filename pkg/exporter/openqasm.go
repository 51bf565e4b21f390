package exporter

import (
	"fmt"
	"math"
	"strings"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/qasm"
)

// op is one framework instruction applied to absolute qubits.
type op struct {
	name   string
	params []float64
	qubits []int
}

func newOp(name string, qubits []int, params ...float64) op {
	return op{name: name, params: params, qubits: qubits}
}

// lowering expresses a gate as core conjugated by pre and post. Only the
// core picks up controls; pre and post undo each other when it does not
// fire.
type lowering struct {
	pre  []op
	core []op
	post []op
}

func (l lowering) ops() []op {
	out := append(append([]op(nil), l.pre...), l.core...)
	return append(out, l.post...)
}

func conjugated(pre []op, core op, post []op) lowering {
	return lowering{pre: pre, core: []op{core}, post: post}
}

func plain(core op) lowering {
	return lowering{core: []op{core}}
}

// qelib1 names of a gate under 0, 1, 2 ... controls.
var qasmControlled = map[string][]string{
	"x":    {"x", "cx", "ccx", "c3x", "c4x"},
	"y":    {"y", "cy"},
	"z":    {"z", "cz"},
	"h":    {"h", "ch"},
	"sx":   {"sx", "csx"},
	"p":    {"p", "cp"},
	"u1":   {"u1", "cu1"},
	"u3":   {"u3", "cu3"},
	"rx":   {"rx", "crx"},
	"ry":   {"ry", "cry"},
	"rz":   {"rz", "crz"},
	"swap": {"swap", "cswap"},
}

// OpenQASM writes OpenQASM 2.0 against qelib1.inc, with one quantum
// register q and one classical register c.
type OpenQASM struct{}

func (OpenQASM) Name() string      { return "openqasm" }
func (OpenQASM) Extension() string { return ".qasm" }

func (OpenQASM) Comment(text string) string {
	return "// " + text
}

func (OpenQASM) Prologue(qubits, bits int) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\ninclude \"qelib1.inc\";\n")
	if qubits > 0 {
		fmt.Fprintf(&b, "qreg q[%d];\n", qubits)
	}
	if bits > 0 {
		fmt.Fprintf(&b, "creg c[%d];\n", bits)
	}
	return b.String()
}

func (OpenQASM) Epilogue() string { return "" }

func (e OpenQASM) Gate(g circuit.Gate) ([]string, error) {
	switch g.Kind {
	case circuit.Barrier:
		return []string{"barrier q;"}, nil
	case circuit.MeasureX, circuit.MeasureY, circuit.MeasureZ:
		t := g.Targets[0]
		var lines []string
		if g.Kind == circuit.MeasureY {
			lines = append(lines, qasmLine(newOp("sdg", []int{t})))
		}
		if g.Kind != circuit.MeasureZ {
			lines = append(lines, qasmLine(newOp("h", []int{t})))
		}
		return append(lines, fmt.Sprintf("measure q[%d] -> c[%d];", t, *g.Bit)), nil
	}

	n := len(g.Controls)
	l, ok := lowerQASM(g, n > 0)
	if !ok {
		return nil, unimplemented(e, g)
	}
	if n == 0 {
		return qasmLines(l.ops()), nil
	}
	if len(l.core) != 1 {
		return nil, unimplemented(e, g)
	}
	names := qasmControlled[l.core[0].name]
	if n >= len(names) {
		return nil, unimplemented(e, g)
	}
	core := l.core[0]
	qubits := make([]int, 0, n+len(core.qubits))
	for _, c := range g.Controls {
		qubits = append(qubits, c.Target)
	}
	l.core = []op{newOp(names[n], append(qubits, core.qubits...), core.params...)}
	return qasmLines(l.ops()), nil
}

// lowerQASM maps a gate onto qelib1 instructions. With controlled set
// the core is restricted to gates that have a controlled form.
func lowerQASM(g circuit.Gate, controlled bool) (lowering, bool) {
	t := g.Targets
	p := g.Params
	switch g.Kind {
	case circuit.Identity:
		return plain(newOp("id", t)), true
	case circuit.Hadamard, circuit.HadamardZX:
		return plain(newOp("h", t)), true
	case circuit.PauliX, circuit.Toffoli:
		return plain(newOp("x", t)), true
	case circuit.PauliY:
		return plain(newOp("y", t)), true
	case circuit.PauliZ:
		return plain(newOp("z", t)), true
	case circuit.T, circuit.TDagger, circuit.S, circuit.SDagger:
		return lowerPhase(g.Kind, t, controlled), true
	case circuit.V:
		return plain(newOp("sx", t)), true
	case circuit.VDagger:
		if !controlled {
			return plain(newOp("sxdg", t)), true
		}
		return conjugated([]op{newOp("h", t)}, newOp("p", t, -math.Pi/2), []op{newOp("h", t)}), true
	case circuit.U1:
		return plain(newOp("u1", t, *p.Lambda)), true
	case circuit.U2:
		if controlled {
			return plain(newOp("u3", t, math.Pi/2, *p.Phi, *p.Lambda)), true
		}
		return plain(newOp("u2", t, *p.Phi, *p.Lambda)), true
	case circuit.U3:
		return plain(newOp("u3", t, *p.Theta, *p.Phi, *p.Lambda)), true
	case circuit.RXTheta:
		return plain(newOp("rx", t, *p.Theta)), true
	case circuit.RYTheta:
		return plain(newOp("ry", t, *p.Theta)), true
	case circuit.RZTheta:
		return plain(newOp("rz", t, *p.Theta)), true
	case circuit.P:
		return plain(newOp("p", t, *p.Theta)), true
	case circuit.PauliXRoot, circuit.PauliYRoot, circuit.PauliZRoot,
		circuit.PauliXRootDagger, circuit.PauliYRootDagger, circuit.PauliZRootDagger:
		return lowerRoot(g), true
	case circuit.Swap, circuit.Fredkin:
		return plain(newOp("swap", t)), true
	}

	if controlled || len(t) != 2 {
		return lowering{}, false
	}
	a, b := t[0], t[1]
	switch g.Kind {
	case circuit.ISwap:
		return lowering{core: []op{
			newOp("s", []int{a}),
			newOp("s", []int{b}),
			newOp("h", []int{a}),
			newOp("cx", []int{a, b}),
			newOp("cx", []int{b, a}),
			newOp("h", []int{b}),
		}}, true
	case circuit.SqrtSwap:
		return lowering{core: sqrtSwapOps(a, b)}, true
	case circuit.XX:
		return plain(newOp("rxx", t, *p.Theta)), true
	case circuit.ZZ:
		return plain(newOp("rzz", t, *p.Theta)), true
	case circuit.YY:
		return conjugated(
			[]op{newOp("rx", []int{a}, math.Pi/2), newOp("rx", []int{b}, math.Pi/2)},
			newOp("rzz", t, *p.Theta),
			[]op{newOp("rx", []int{a}, -math.Pi/2), newOp("rx", []int{b}, -math.Pi/2)},
		), true
	case circuit.CrossResonance, circuit.CrossResonanceDagger:
		theta := *p.Theta
		if g.Kind == circuit.CrossResonanceDagger {
			theta = -theta
		}
		return conjugated([]op{newOp("h", []int{b})}, newOp("rzz", t, theta), []op{newOp("h", []int{b})}), true
	}
	return lowering{}, false
}

// lowerPhase keeps the named qelib1 gates when uncontrolled and falls back
// to p, which has a controlled form.
func lowerPhase(k circuit.Kind, t []int, controlled bool) lowering {
	var name string
	var angle float64
	switch k {
	case circuit.T:
		name, angle = "t", math.Pi/4
	case circuit.TDagger:
		name, angle = "tdg", -math.Pi/4
	case circuit.S:
		name, angle = "s", math.Pi/2
	default:
		name, angle = "sdg", -math.Pi/2
	}
	if controlled {
		return plain(newOp("p", t, angle))
	}
	return plain(newOp(name, t))
}

// lowerRoot writes Z^a as p(pi*a), X^a as H Z^a H and Y^a as S X^a Sdg.
func lowerRoot(g circuit.Gate) lowering {
	t := g.Targets
	angle := g.Params.Root.Angle()
	switch g.Kind {
	case circuit.PauliXRootDagger, circuit.PauliYRootDagger, circuit.PauliZRootDagger:
		angle = -angle
	}
	var axis circuit.Kind
	switch g.Kind {
	case circuit.PauliXRoot, circuit.PauliXRootDagger:
		axis = circuit.PauliX
	case circuit.PauliYRoot, circuit.PauliYRootDagger:
		axis = circuit.PauliY
	default:
		axis = circuit.PauliZ
	}

	core := newOp("p", t, angle)
	switch axis {
	case circuit.PauliX:
		if g.Kind == circuit.PauliXRoot && g.Params.Root.Denominator() == 2 {
			return plain(newOp("sx", t))
		}
		return conjugated([]op{newOp("h", t)}, core, []op{newOp("h", t)})
	case circuit.PauliY:
		return conjugated(
			[]op{newOp("sdg", t), newOp("h", t)},
			core,
			[]op{newOp("h", t), newOp("s", t)},
		)
	}
	return plain(core)
}

func sqrtSwapOps(a, b int) []op {
	qa, qb := []int{a}, []int{b}
	return []op{
		newOp("u3", qa, math.Pi/2, math.Pi/2, -math.Pi),
		newOp("u3", qb, math.Pi/2, -math.Pi/2, math.Pi),
		newOp("cx", []int{a, b}),
		newOp("u3", qa, math.Pi/4, -math.Pi/2, -math.Pi/2),
		newOp("u3", qb, math.Pi/2, 0, 1.75*math.Pi),
		newOp("cx", []int{a, b}),
		newOp("u3", qa, math.Pi/4, -math.Pi, -math.Pi/2),
		newOp("u3", qb, math.Pi/2, math.Pi, math.Pi/2),
		newOp("cx", []int{a, b}),
		newOp("u3", qa, math.Pi/2, 0, -1.5*math.Pi),
		newOp("u3", qb, math.Pi/2, math.Pi/2, 0),
	}
}

func qasmLine(o op) string {
	var b strings.Builder
	b.WriteString(o.name)
	if len(o.params) > 0 {
		params := make([]string, len(o.params))
		for i, v := range o.params {
			params[i] = qasm.FormatParam(v)
		}
		b.WriteString("(" + strings.Join(params, ",") + ")")
	}
	for i, q := range o.qubits {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "q[%d]", q)
	}
	b.WriteString(";")
	return b.String()
}

func qasmLines(ops []op) []string {
	lines := make([]string, len(ops))
	for i, o := range ops {
		lines[i] = qasmLine(o)
	}
	return lines
}
