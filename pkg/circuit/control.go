package circuit

import (
	"github.com/pkg/errors"
)

// ControlState is the basis state that activates a control qubit.
type ControlState string

const (
	StateZero   ControlState = "0"
	StateOne    ControlState = "1"
	StatePlus   ControlState = "+"
	StateMinus  ControlState = "-"
	StatePlusI  ControlState = "+i"
	StateMinusI ControlState = "-i"
)

var controlStates = []ControlState{StateZero, StateOne, StatePlus, StateMinus, StatePlusI, StateMinusI}

// ControlStates lists the accepted control states.
func ControlStates() []ControlState {
	out := make([]ControlState, len(controlStates))
	copy(out, controlStates)
	return out
}

// ParseControlState validates s against the six accepted states.
func ParseControlState(s string) (ControlState, error) {
	for _, st := range controlStates {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidControlState, "%q", s)
}

// Valid reports whether s is one of the accepted states.
func (s ControlState) Valid() bool {
	_, err := ParseControlState(string(s))
	return err == nil
}

// Control is a (qubit, state) pair gating a target operation.
type Control struct {
	Target int
	State  ControlState
}

// Ctrl is shorthand for a control on qubit in state.
func Ctrl(qubit int, state ControlState) Control {
	return Control{Target: qubit, State: state}
}

// On returns controls on each qubit, all activated by |1>.
func On(qubits ...int) []Control {
	out := make([]Control, len(qubits))
	for i, q := range qubits {
		out[i] = Control{Target: q, State: StateOne}
	}
	return out
}
