package document

// QubitCount returns one more than the highest qubit index referenced by
// any gate, controls and aggregate sub-gates included. An empty document
// has no qubits.
func QubitCount(doc *Document) int {
	count := 0
	for _, s := range doc.Steps {
		for _, g := range s.Gates {
			for _, q := range g.Qubits() {
				count = max(count, q+1)
			}
		}
	}
	return count
}

// BitCount returns one more than the highest classical bit written.
func BitCount(doc *Document) int {
	count := 0
	for _, s := range doc.Steps {
		for _, g := range s.Gates {
			count = max(count, bitCount(g))
		}
	}
	return count
}

func bitCount(g Gate) int {
	count := 0
	if g.Bit != nil {
		count = *g.Bit + 1
	}
	for _, sub := range g.Gates {
		count = max(count, bitCount(sub))
	}
	return count
}
