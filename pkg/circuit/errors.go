package circuit

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors returned by the builder. Position-carrying failures are
// wrapped in a *QubitError, so match them with errors.Is.
var (
	ErrInvalidCapacity      = errors.New("circuit capacity must be positive")
	ErrUnknownGateKind      = errors.New("unknown gate kind")
	ErrWrongTargetCount     = errors.New("wrong number of target qubits")
	ErrWrongControlCount    = errors.New("wrong number of control qubits")
	ErrMissingParameter     = errors.New("missing gate parameter")
	ErrInvalidParameter     = errors.New("gate angle must be finite")
	ErrDuplicateQubit       = errors.New("qubit referenced more than once")
	ErrQubitIndexOutOfRange = errors.New("qubit index larger than circuit size")
	ErrQubitAlreadyTaken    = errors.New("qubit already taken")
	ErrInvalidControlState  = errors.New("invalid control state")
	ErrInvalidRoot          = errors.New("invalid root")
	ErrSerializationIO      = errors.New("circuit serialization failed")
)

// QubitError reports a placement failure on a specific qubit and step.
type QubitError struct {
	Err   error
	Qubit int
	Step  int
}

func (e *QubitError) Error() string {
	switch e.Err {
	case ErrQubitAlreadyTaken:
		return fmt.Sprintf("the position defined by step %d and qubit %d is already taken", e.Step, e.Qubit)
	case ErrQubitIndexOutOfRange:
		return fmt.Sprintf("requested qubit index %d during step %d is larger than the circuit size", e.Qubit, e.Step)
	default:
		return fmt.Sprintf("%v (qubit %d, step %d)", e.Err, e.Qubit, e.Step)
	}
}

func (e *QubitError) Unwrap() error {
	return e.Err
}
