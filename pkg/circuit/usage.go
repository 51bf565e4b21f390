package circuit

// QubitCount returns one more than the highest qubit index any placed gate
// references, or 0 when no gate references a qubit.
func (c *Circuit) QubitCount() int {
	count := 0
	for _, s := range c.steps {
		for _, g := range s.Gates {
			for _, q := range g.Qubits() {
				count = max(count, q+1)
			}
		}
	}
	return count
}

// BitCount returns one more than the highest classical bit written, or 0
// when the circuit has no measurement.
func (c *Circuit) BitCount() int {
	count := 0
	for _, s := range c.steps {
		for _, g := range s.Gates {
			if g.Bit != nil {
				count = max(count, *g.Bit+1)
			}
		}
	}
	return count
}
