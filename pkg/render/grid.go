package render

import (
	"slices"

	"qcomposer/pkg/circuit"
)

// cell describes what is drawn on one qubit in one step.
type cell struct {
	gate         *circuit.Gate // gate drawn on this qubit, nil when the wire is free
	control      bool
	state        circuit.ControlState
	vertAbove    bool // a connector enters from the qubit above
	vertBelow    bool // a connector leaves to the qubit below
	passThrough  bool
	measureBelow bool // a measurement wire crosses towards the classical register
	barrier      bool
}

// layout computes the cells of every qubit for one step.
func layout(s circuit.Step, qubits int) []cell {
	cells := make([]cell, qubits)
	spanned := make([]bool, qubits)

	for i := range s.Gates {
		g := &s.Gates[i]
		switch {
		case g.Kind == circuit.Barrier:
			for q := range cells {
				cells[q].barrier = true
			}
			continue
		case g.Kind.Measurement():
			t := g.Targets[0]
			cells[t].gate = g
			for q := t + 1; q < qubits; q++ {
				cells[q].measureBelow = true
			}
			continue
		}

		for _, c := range g.Controls {
			cells[c.Target].gate = g
			cells[c.Target].control = true
			cells[c.Target].state = c.State
		}
		for _, t := range g.Targets {
			cells[t].gate = g
		}
		for j := range g.Gates {
			sub := &g.Gates[j]
			for _, t := range sub.Targets {
				cells[t].gate = sub
			}
		}

		refs := g.Qubits()
		if len(refs) < 2 {
			continue
		}
		lo, hi := slices.Min(refs), slices.Max(refs)
		for q := lo; q <= hi; q++ {
			if q > lo {
				cells[q].vertAbove = true
			}
			if q < hi {
				cells[q].vertBelow = true
			}
			if q > lo && q < hi {
				spanned[q] = true
			}
		}
	}

	for q := range cells {
		if spanned[q] && cells[q].gate == nil {
			cells[q].passThrough = true
		}
	}
	return cells
}

// measuredBits returns the classical bits written in a step.
func measuredBits(s circuit.Step) []int {
	var bits []int
	for _, g := range s.Gates {
		if g.Kind.Measurement() && g.Bit != nil {
			bits = append(bits, *g.Bit)
		}
	}
	slices.Sort(bits)
	return bits
}
