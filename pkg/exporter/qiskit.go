package exporter

import (
	_ "embed"
	"fmt"
	"strings"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/qasm"
)

//go:embed prelude/qiskit.py
var qiskitPrelude string

// Qiskit writes a Python script building a QuantumCircuit. Gates without a
// standard library class are defined as unitaries in the prelude.
type Qiskit struct{}

func (Qiskit) Name() string       { return "qiskit" }
func (Qiskit) Extension() string  { return ".py" }
func (Qiskit) ZeroControls() bool { return true }

func (Qiskit) Comment(text string) string {
	return "# " + text
}

func (Qiskit) Prologue(qubits, bits int) string {
	var b strings.Builder
	b.WriteString(qiskitPrelude)
	fmt.Fprintf(&b, "\n\nqr = QuantumRegister(%d, 'q')\n", qubits)
	if bits > 0 {
		fmt.Fprintf(&b, "cr = ClassicalRegister(%d, 'c')\n", bits)
		b.WriteString("qc = QuantumCircuit(qr, cr)\n")
	} else {
		b.WriteString("qc = QuantumCircuit(qr)\n")
	}
	return b.String()
}

func (Qiskit) Epilogue() string { return "" }

func (e Qiskit) Gate(g circuit.Gate) ([]string, error) {
	switch g.Kind {
	case circuit.Barrier:
		return []string{"qc.barrier()"}, nil
	case circuit.MeasureX, circuit.MeasureY, circuit.MeasureZ:
		t := g.Targets[0]
		var lines []string
		if g.Kind == circuit.MeasureY {
			lines = append(lines, fmt.Sprintf("qc.sdg(qr[%d])", t))
		}
		if g.Kind != circuit.MeasureZ {
			lines = append(lines, fmt.Sprintf("qc.h(qr[%d])", t))
		}
		return append(lines, fmt.Sprintf("qc.measure(qr[%d], cr[%d])", t, *g.Bit)), nil
	}

	expr, ok := qiskitGate(g)
	if !ok {
		return nil, unimplemented(e, g)
	}
	qubits := make([]string, 0, len(g.Controls)+len(g.Targets))
	for _, c := range g.Controls {
		qubits = append(qubits, fmt.Sprintf("qr[%d]", c.Target))
	}
	for _, t := range g.Targets {
		qubits = append(qubits, fmt.Sprintf("qr[%d]", t))
	}
	if n := len(g.Controls); n > 0 {
		expr = fmt.Sprintf("%s.control(%d, ctrl_state='%s')", expr, n, ctrlState(g.Controls))
	}
	return []string{fmt.Sprintf("qc.append(%s, [%s])", expr, strings.Join(qubits, ", "))}, nil
}

var qiskitClasses = map[circuit.Kind]string{
	circuit.Identity:   "IGate()",
	circuit.Hadamard:   "HGate()",
	circuit.HadamardZX: "HGate()",
	circuit.PauliX:     "XGate()",
	circuit.PauliY:     "YGate()",
	circuit.PauliZ:     "ZGate()",
	circuit.T:          "TGate()",
	circuit.TDagger:    "TdgGate()",
	circuit.S:          "SGate()",
	circuit.SDagger:    "SdgGate()",
	circuit.V:          "SXGate()",
	circuit.VDagger:    "SXdgGate()",
	circuit.Swap:       "SwapGate()",
	circuit.ISwap:      "iSwapGate()",
	circuit.Toffoli:    "XGate()",
	circuit.Fredkin:    "SwapGate()",
}

// qiskitGate returns the Python expression constructing the gate.
func qiskitGate(g circuit.Gate) (string, bool) {
	if expr, ok := qiskitClasses[g.Kind]; ok {
		return expr, true
	}
	p := g.Params
	switch g.Kind {
	case circuit.U1:
		return "PhaseGate(" + pyAngle(*p.Lambda) + ")", true
	case circuit.U2:
		return fmt.Sprintf("UGate(np.pi/2, %s, %s)", pyAngle(*p.Phi), pyAngle(*p.Lambda)), true
	case circuit.U3:
		return fmt.Sprintf("UGate(%s, %s, %s)", pyAngle(*p.Theta), pyAngle(*p.Phi), pyAngle(*p.Lambda)), true
	case circuit.RXTheta:
		return "RXGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.RYTheta:
		return "RYGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.RZTheta:
		return "RZGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.P:
		return "PhaseGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.XX:
		return "RXXGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.YY:
		return "RYYGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.ZZ:
		return "RZZGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.CrossResonance:
		return "RZXGate(" + pyAngle(*p.Theta) + ")", true
	case circuit.CrossResonanceDagger:
		return "RZXGate(" + pyAngle(-*p.Theta) + ")", true

	case circuit.HadamardXY, circuit.HadamardYZ, circuit.H, circuit.HDagger, circuit.C, circuit.CDagger,
		circuit.FSwap, circuit.SqrtSwap, circuit.SqrtSwapDagger, circuit.MolmerSorensen,
		circuit.MolmerSorensenDagger, circuit.Berkeley, circuit.BerkeleyDagger, circuit.ECP,
		circuit.ECPDagger, circuit.Magic, circuit.MagicDagger, circuit.W:
		return unitary(g.Kind), true
	case circuit.PauliXRoot, circuit.PauliYRoot, circuit.PauliZRoot, circuit.PauliXRootDagger,
		circuit.PauliYRootDagger, circuit.PauliZRootDagger, circuit.SwapRoot, circuit.SwapRootDagger:
		return unitary(g.Kind, pyRoot(p.Root)), true
	case circuit.XY, circuit.SwapTheta, circuit.Givens:
		return unitary(g.Kind, pyAngle(*p.Theta)), true
	case circuit.A:
		return unitary(g.Kind, pyAngle(*p.Theta), pyAngle(*p.Phi)), true
	}
	return "", false
}

// unitary calls the prelude helper named after the kind.
func unitary(k circuit.Kind, args ...string) string {
	name := k.String()
	args = append(args, fmt.Sprintf("label='%s'", name))
	return fmt.Sprintf("%s(%s)", strings.ReplaceAll(name, "-", "_"), strings.Join(args, ", "))
}

// ctrlState renders the control states with the first control as the
// least significant bit.
func ctrlState(controls []circuit.Control) string {
	bits := make([]byte, len(controls))
	for i, c := range controls {
		bit := byte('1')
		if c.State == circuit.StateZero {
			bit = '0'
		}
		bits[len(controls)-1-i] = bit
	}
	return string(bits)
}

func pyAngle(v float64) string {
	return strings.ReplaceAll(qasm.FormatParam(v), "pi", "np.pi")
}

func pyRoot(r circuit.Root) string {
	if r.Kind == circuit.RootPowerOfTwo {
		return "(2**" + circuit.FormatFloat(r.Value) + ")"
	}
	return circuit.FormatFloat(r.Value)
}
