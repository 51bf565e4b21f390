package exporter

import (
	"fmt"
	"strings"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/qasm"
)

const quilDefinitions = `DEFGATE SQRT-X:
    0.5+0.5i, 0.5-0.5i
    0.5-0.5i, 0.5+0.5i

DEFGATE U2(%phi, %lambda):
    1/SQRT(2), -1*EXP(i*%lambda)/SQRT(2)
    EXP(i*%phi)/SQRT(2), EXP(i*%lambda + i*%phi)/SQRT(2)

DEFGATE U3(%theta, %phi, %lambda):
    COS(%theta/2), -1*EXP(i*%lambda)*SIN(%theta/2)
    EXP(i*%phi)*SIN(%theta/2), EXP(i*%lambda + i*%phi)*COS(%theta/2)

DEFGATE SQRT-SWAP:
    1, 0, 0, 0
    0, 0.5+0.5i, 0.5-0.5i, 0
    0, 0.5-0.5i, 0.5+0.5i, 0
    0, 0, 0, 1
`

// Quil writes a Quil program reading results into the ro bit array.
// Controls become CONTROLLED modifiers and inverses DAGGER modifiers.
type Quil struct{}

func (Quil) Name() string      { return "quil" }
func (Quil) Extension() string { return ".quil" }

func (Quil) Comment(text string) string {
	return "# " + text
}

func (Quil) Prologue(qubits, bits int) string {
	var b strings.Builder
	if bits > 0 {
		fmt.Fprintf(&b, "DECLARE ro BIT[%d]\n\n", bits)
	}
	b.WriteString(quilDefinitions)
	return b.String()
}

func (Quil) Epilogue() string { return "" }

func (e Quil) Gate(g circuit.Gate) ([]string, error) {
	switch g.Kind {
	case circuit.Barrier:
		return nil, nil
	case circuit.MeasureX, circuit.MeasureY, circuit.MeasureZ:
		t := []int{g.Targets[0]}
		var ops []op
		if g.Kind == circuit.MeasureY {
			ops = append(ops, newOp("DAGGER S", t))
		}
		if g.Kind != circuit.MeasureZ {
			ops = append(ops, newOp("H", t))
		}
		return append(quilLines(ops), fmt.Sprintf("MEASURE %d ro[%d]", t[0], *g.Bit)), nil
	}

	l, ok := lowerQuil(g)
	if !ok {
		return nil, unimplemented(e, g)
	}
	if len(g.Controls) > 0 {
		if len(l.core) != 1 {
			return nil, unimplemented(e, g)
		}
		core := l.core[0]
		qubits := make([]int, 0, len(g.Controls)+len(core.qubits))
		for _, c := range g.Controls {
			qubits = append(qubits, c.Target)
		}
		name := strings.Repeat("CONTROLLED ", len(g.Controls)) + core.name
		l.core = []op{newOp(name, append(qubits, core.qubits...), core.params...)}
	}
	return quilLines(l.ops()), nil
}

var quilNames = map[circuit.Kind]string{
	circuit.Identity:       "I",
	circuit.Hadamard:       "H",
	circuit.HadamardZX:     "H",
	circuit.PauliX:         "X",
	circuit.PauliY:         "Y",
	circuit.PauliZ:         "Z",
	circuit.T:              "T",
	circuit.TDagger:        "DAGGER T",
	circuit.S:              "S",
	circuit.SDagger:        "DAGGER S",
	circuit.V:              "SQRT-X",
	circuit.VDagger:        "DAGGER SQRT-X",
	circuit.Swap:           "SWAP",
	circuit.ISwap:          "ISWAP",
	circuit.SqrtSwap:       "SQRT-SWAP",
	circuit.SqrtSwapDagger: "DAGGER SQRT-SWAP",
	circuit.Toffoli:        "X",
	circuit.Fredkin:        "SWAP",
}

func lowerQuil(g circuit.Gate) (lowering, bool) {
	t := g.Targets
	if name, ok := quilNames[g.Kind]; ok {
		return plain(newOp(name, t)), true
	}
	p := g.Params
	switch g.Kind {
	case circuit.U1:
		return plain(newOp("PHASE", t, *p.Lambda)), true
	case circuit.U2:
		return plain(newOp("U2", t, *p.Phi, *p.Lambda)), true
	case circuit.U3:
		return plain(newOp("U3", t, *p.Theta, *p.Phi, *p.Lambda)), true
	case circuit.RXTheta:
		return plain(newOp("RX", t, *p.Theta)), true
	case circuit.RYTheta:
		return plain(newOp("RY", t, *p.Theta)), true
	case circuit.RZTheta:
		return plain(newOp("RZ", t, *p.Theta)), true
	case circuit.P:
		return plain(newOp("PHASE", t, *p.Theta)), true
	case circuit.PauliXRoot, circuit.PauliXRootDagger, circuit.PauliYRoot,
		circuit.PauliYRootDagger, circuit.PauliZRoot, circuit.PauliZRootDagger:
		// Reuse the qelib1 rewrite and rename its instructions.
		l := lowerRoot(g)
		for _, ops := range [][]op{l.pre, l.core, l.post} {
			for i := range ops {
				ops[i].name = quilRename[ops[i].name]
			}
		}
		return l, true
	case circuit.CrossResonance, circuit.CrossResonanceDagger:
		if len(g.Controls) > 0 {
			return lowering{}, false
		}
		theta := *p.Theta
		if g.Kind == circuit.CrossResonanceDagger {
			theta = -theta
		}
		b := []int{t[1]}
		return lowering{core: []op{
			newOp("H", b),
			newOp("CNOT", t),
			newOp("RZ", b, theta),
			newOp("CNOT", t),
			newOp("H", b),
		}}, true
	}
	return lowering{}, false
}

var quilRename = map[string]string{
	"h":   "H",
	"s":   "S",
	"sdg": "DAGGER S",
	"sx":  "SQRT-X",
	"p":   "PHASE",
}

func quilLines(ops []op) []string {
	lines := make([]string, len(ops))
	for i, o := range ops {
		var b strings.Builder
		b.WriteString(o.name)
		if len(o.params) > 0 {
			params := make([]string, len(o.params))
			for j, v := range o.params {
				params[j] = qasm.FormatParam(v)
			}
			b.WriteString("(" + strings.Join(params, ", ") + ")")
		}
		for _, q := range o.qubits {
			fmt.Fprintf(&b, " %d", q)
		}
		lines[i] = b.String()
	}
	return lines
}
