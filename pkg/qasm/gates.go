package qasm

import (
	"qcomposer/pkg/circuit"
)

// qasmGate maps a qelib1 gate onto a catalog kind. The first controls
// operands become |1> controls, the rest are targets.
type qasmGate struct {
	kind     circuit.Kind
	controls int
	params   int
	bind     func(p []float64) circuit.Params
}

func (d qasmGate) build(qubits []int, values []float64) circuit.Gate {
	g := circuit.Gate{
		Kind:     d.kind,
		Controls: circuit.On(qubits[:d.controls]...),
		Targets:  append([]int(nil), qubits[d.controls:]...),
	}
	if len(g.Controls) == 0 {
		g.Controls = nil
	}
	if d.bind != nil {
		g.Params = d.bind(values)
	}
	return g
}

func theta(p []float64) circuit.Params {
	return circuit.Params{Theta: circuit.Angle(p[0])}
}

func lambda(p []float64) circuit.Params {
	return circuit.Params{Lambda: circuit.Angle(p[0])}
}

func phiLambda(p []float64) circuit.Params {
	return circuit.Params{Phi: circuit.Angle(p[0]), Lambda: circuit.Angle(p[1])}
}

func thetaPhiLambda(p []float64) circuit.Params {
	return circuit.Params{Theta: circuit.Angle(p[0]), Phi: circuit.Angle(p[1]), Lambda: circuit.Angle(p[2])}
}

func squareRoot([]float64) circuit.Params {
	return circuit.Params{Root: circuit.ExactRoot(2)}
}

var gateTable = map[string]qasmGate{
	"id":   {kind: circuit.Identity},
	"h":    {kind: circuit.Hadamard},
	"x":    {kind: circuit.PauliX},
	"y":    {kind: circuit.PauliY},
	"z":    {kind: circuit.PauliZ},
	"s":    {kind: circuit.S},
	"sdg":  {kind: circuit.SDagger},
	"t":    {kind: circuit.T},
	"tdg":  {kind: circuit.TDagger},
	"sx":   {kind: circuit.PauliXRoot, bind: squareRoot},
	"sxdg": {kind: circuit.PauliXRootDagger, bind: squareRoot},
	"rx":   {kind: circuit.RXTheta, params: 1, bind: theta},
	"ry":   {kind: circuit.RYTheta, params: 1, bind: theta},
	"rz":   {kind: circuit.RZTheta, params: 1, bind: theta},
	"p":    {kind: circuit.P, params: 1, bind: theta},
	"u1":   {kind: circuit.U1, params: 1, bind: lambda},
	"u2":   {kind: circuit.U2, params: 2, bind: phiLambda},
	"u3":   {kind: circuit.U3, params: 3, bind: thetaPhiLambda},
	"u":    {kind: circuit.U3, params: 3, bind: thetaPhiLambda},

	"cx":  {kind: circuit.PauliX, controls: 1},
	"cy":  {kind: circuit.PauliY, controls: 1},
	"cz":  {kind: circuit.PauliZ, controls: 1},
	"ch":  {kind: circuit.Hadamard, controls: 1},
	"csx": {kind: circuit.PauliXRoot, controls: 1, bind: squareRoot},
	"crx": {kind: circuit.RXTheta, controls: 1, params: 1, bind: theta},
	"cry": {kind: circuit.RYTheta, controls: 1, params: 1, bind: theta},
	"crz": {kind: circuit.RZTheta, controls: 1, params: 1, bind: theta},
	"cp":  {kind: circuit.P, controls: 1, params: 1, bind: theta},
	"cu1": {kind: circuit.U1, controls: 1, params: 1, bind: lambda},
	"cu3": {kind: circuit.U3, controls: 1, params: 3, bind: thetaPhiLambda},
	"ccx": {kind: circuit.Toffoli, controls: 2},

	"swap":  {kind: circuit.Swap},
	"iswap": {kind: circuit.ISwap},
	"cswap": {kind: circuit.Fredkin, controls: 1},
	"rxx":   {kind: circuit.XX, params: 1, bind: theta},
	"ryy":   {kind: circuit.YY, params: 1, bind: theta},
	"rzz":   {kind: circuit.ZZ, params: 1, bind: theta},
}
