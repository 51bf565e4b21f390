// Package circuit builds quantum circuits step by step and serializes them
// to the YAML document consumed by the exporters.
//
// A Circuit is owned by a single goroutine. It does no internal locking and
// must not be shared without external synchronization.
package circuit

import (
	"slices"

	"github.com/pkg/errors"
)

// OccupancyPolicy selects which qubits a gate reserves within its step.
type OccupancyPolicy uint8

const (
	// InclusiveSpan reserves every qubit between the lowest and highest
	// referenced index, so no wire crosses a gate in the same step.
	InclusiveSpan OccupancyPolicy = iota
	// ExactSet reserves only the referenced qubits.
	ExactSet
)

func (p OccupancyPolicy) String() string {
	switch p {
	case InclusiveSpan:
		return "inclusive-span"
	case ExactSet:
		return "exact-set"
	}
	return "unknown"
}

// ParseOccupancyPolicy maps a policy name back to its value.
func ParseOccupancyPolicy(s string) (OccupancyPolicy, error) {
	switch s {
	case "inclusive-span", "span", "":
		return InclusiveSpan, nil
	case "exact-set", "exact":
		return ExactSet, nil
	}
	return InclusiveSpan, errors.Errorf("unknown occupancy policy %q", s)
}

// Option configures a Circuit at construction.
type Option func(*Circuit)

// WithOccupancyPolicy overrides the default InclusiveSpan policy.
func WithOccupancyPolicy(p OccupancyPolicy) Option {
	return func(c *Circuit) {
		c.policy = p
	}
}

// Step is one time slice of the circuit.
type Step struct {
	Index int
	Gates []Gate

	taken []bool
}

// Occupied reports whether qubit q is reserved in this step.
func (s Step) Occupied(q int) bool {
	return q >= 0 && q < len(s.taken) && s.taken[q]
}

// Circuit is a fixed capacity circuit under construction.
type Circuit struct {
	capacity int
	policy   OccupancyPolicy
	steps    []*Step
	err      error
}

// New returns a circuit over capacity qubits with one empty step.
func New(capacity int, opts ...Option) (*Circuit, error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "got %d", capacity)
	}
	c := &Circuit{capacity: capacity}
	for _, opt := range opts {
		opt(c)
	}
	c.steps = []*Step{c.newStep(0)}
	return c, nil
}

func (c *Circuit) newStep(index int) *Step {
	return &Step{Index: index, taken: make([]bool, c.capacity)}
}

// Capacity returns the number of addressable qubits.
func (c *Circuit) Capacity() int { return c.capacity }

// Policy returns the configured occupancy policy.
func (c *Circuit) Policy() OccupancyPolicy { return c.policy }

// CurrentStep returns the index of the step receiving gates.
func (c *Circuit) CurrentStep() int {
	return len(c.steps) - 1
}

// IncrementStep opens a new empty step and makes it current.
func (c *Circuit) IncrementStep() *Circuit {
	if c.err != nil {
		return c
	}
	c.steps = append(c.steps, c.newStep(len(c.steps)))
	return c
}

// Steps returns a copy of the recorded steps.
func (c *Circuit) Steps() []Step {
	out := make([]Step, len(c.steps))
	for i, s := range c.steps {
		gates := make([]Gate, len(s.Gates))
		for j, g := range s.Gates {
			gates[j] = g.clone()
		}
		out[i] = Step{Index: s.Index, Gates: gates, taken: slices.Clone(s.taken)}
	}
	return out
}

// Err returns the first error recorded by a fluent call.
func (c *Circuit) Err() error { return c.err }

// ClearErr drops the recorded fluent error so chaining can resume.
func (c *Circuit) ClearErr() { c.err = nil }

// Apply validates g and places it in the current step. On error the
// circuit is left untouched.
func (c *Circuit) Apply(g Gate) error {
	if err := g.validate(); err != nil {
		return err
	}
	step := c.steps[len(c.steps)-1]
	refs := g.Qubits()
	for _, q := range refs {
		if q < 0 || q >= c.capacity {
			return &QubitError{Err: ErrQubitIndexOutOfRange, Qubit: q, Step: step.Index}
		}
	}
	reserved := c.occupancy(refs)
	for _, q := range reserved {
		if step.taken[q] {
			return &QubitError{Err: ErrQubitAlreadyTaken, Qubit: q, Step: step.Index}
		}
	}
	for _, q := range reserved {
		step.taken[q] = true
	}
	step.Gates = append(step.Gates, g.clone().normalize())
	return nil
}

// place is the fluent form of Apply.
func (c *Circuit) place(g Gate) *Circuit {
	if c.err != nil {
		return c
	}
	if err := c.Apply(g); err != nil {
		c.err = err
	}
	return c
}

// occupancy returns the qubits a gate referencing refs reserves.
func (c *Circuit) occupancy(refs []int) []int {
	if len(refs) == 0 {
		return nil
	}
	if c.policy == ExactSet {
		return refs
	}
	lo, hi := slices.Min(refs), slices.Max(refs)
	span := make([]int, 0, hi-lo+1)
	for q := lo; q <= hi; q++ {
		span = append(span, q)
	}
	return span
}
