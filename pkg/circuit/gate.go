package circuit

import (
	"math"

	"github.com/pkg/errors"
)

// Params holds the continuous parameters of a gate. Nil angles and a zero
// Root are absent.
type Params struct {
	Theta  *float64
	Phi    *float64
	Lambda *float64
	Root   Root
}

// Angle returns a pointer to v, for filling Params.
func Angle(v float64) *float64 {
	return &v
}

// Bit returns a pointer to b, for filling Gate.Bit.
func Bit(b int) *int {
	return &b
}

// Gate is one gate application. Aggregates carry their single qubit
// sub-gates in Gates and no Targets of their own.
type Gate struct {
	Kind     Kind
	Controls []Control
	Targets  []int
	Params   Params
	Bit      *int
	Gates    []Gate
}

// Qubits returns every qubit the gate references: controls first, then
// targets, then aggregate sub-gate targets.
func (g Gate) Qubits() []int {
	out := make([]int, 0, len(g.Controls)+len(g.Targets)+len(g.Gates))
	for _, c := range g.Controls {
		out = append(out, c.Target)
	}
	out = append(out, g.Targets...)
	for _, sub := range g.Gates {
		out = append(out, sub.Targets...)
	}
	return out
}

func (g Gate) clone() Gate {
	out := Gate{
		Kind:     g.Kind,
		Controls: append([]Control(nil), g.Controls...),
		Targets:  append([]int(nil), g.Targets...),
		Params:   g.Params.clone(),
	}
	if g.Bit != nil {
		out.Bit = Bit(*g.Bit)
	}
	if g.Gates != nil {
		out.Gates = make([]Gate, len(g.Gates))
		for i, sub := range g.Gates {
			out.Gates[i] = sub.clone()
		}
	}
	return out
}

func (p Params) clone() Params {
	out := Params{Root: p.Root}
	if p.Theta != nil {
		out.Theta = Angle(*p.Theta)
	}
	if p.Phi != nil {
		out.Phi = Angle(*p.Phi)
	}
	if p.Lambda != nil {
		out.Lambda = Angle(*p.Lambda)
	}
	return out
}

// normalize drops the parameters the kind does not take.
func (g Gate) normalize() Gate {
	spec := g.Kind.Spec()
	if !spec.Params.Has(ParamTheta) {
		g.Params.Theta = nil
	}
	if !spec.Params.Has(ParamPhi) {
		g.Params.Phi = nil
	}
	if !spec.Params.Has(ParamLambda) {
		g.Params.Lambda = nil
	}
	if !spec.Params.Has(ParamRoot) {
		g.Params.Root = Root{}
	}
	if !spec.Bit {
		g.Bit = nil
	}
	if g.Kind != Aggregate {
		g.Gates = nil
	}
	for i := range g.Gates {
		g.Gates[i] = g.Gates[i].normalize()
	}
	return g
}

// Validate runs the placement checks that need no circuit and rejects
// negative qubits. Decoded document records must pass it before use.
func Validate(g Gate) error {
	if err := g.validate(); err != nil {
		return err
	}
	for _, q := range g.Qubits() {
		if q < 0 {
			return errors.Wrapf(ErrQubitIndexOutOfRange, "%s: qubit %d", g.Kind, q)
		}
	}
	return nil
}

// validate runs the placement checks that do not depend on circuit state:
// kind, arity, control policy, parameters and duplicate qubits.
func (g Gate) validate() error {
	if !g.Kind.Valid() {
		return errors.Wrapf(ErrUnknownGateKind, "kind %d", g.Kind)
	}
	if err := g.validateShape(); err != nil {
		return err
	}
	if g.Kind == Aggregate {
		for i, sub := range g.Gates {
			if err := sub.validateSub(); err != nil {
				return errors.Wrapf(err, "aggregate gate %d", i)
			}
		}
	}
	if err := g.validateParams(); err != nil {
		return err
	}
	seen := make(map[int]struct{})
	for _, q := range g.Qubits() {
		if _, ok := seen[q]; ok {
			return errors.Wrapf(ErrDuplicateQubit, "%s: qubit %d", g.Kind, q)
		}
		seen[q] = struct{}{}
	}
	return nil
}

func (g Gate) validateShape() error {
	spec := g.Kind.Spec()
	if len(g.Targets) != spec.Arity {
		return errors.Wrapf(ErrWrongTargetCount, "%s: got %d, want %d", spec.Name, len(g.Targets), spec.Arity)
	}
	if spec.Controls != AnyControls && len(g.Controls) != spec.Controls {
		return errors.Wrapf(ErrWrongControlCount, "%s: got %d, want %d", spec.Name, len(g.Controls), spec.Controls)
	}
	for _, c := range g.Controls {
		if !c.State.Valid() {
			return errors.Wrapf(ErrInvalidControlState, "%s: %q on qubit %d", spec.Name, c.State, c.Target)
		}
	}
	if g.Kind == Aggregate && len(g.Gates) == 0 {
		return errors.Wrap(ErrWrongTargetCount, "aggregate: no gates")
	}
	return nil
}

// validateSub checks a gate nested in an aggregate.
func (g Gate) validateSub() error {
	if !g.Kind.Valid() {
		return errors.Wrapf(ErrUnknownGateKind, "kind %d", g.Kind)
	}
	spec := g.Kind.Spec()
	if spec.Arity != 1 || !spec.Unitary || spec.Controls != AnyControls {
		return errors.Wrapf(ErrUnknownGateKind, "%s cannot be aggregated", spec.Name)
	}
	if len(g.Controls) != 0 {
		return errors.Wrapf(ErrWrongControlCount, "%s: aggregated gates share the aggregate controls", spec.Name)
	}
	if len(g.Targets) != 1 {
		return errors.Wrapf(ErrWrongTargetCount, "%s: got %d, want 1", spec.Name, len(g.Targets))
	}
	return g.validateParams()
}

func (g Gate) validateParams() error {
	spec := g.Kind.Spec()
	name := spec.Name
	for _, a := range []struct {
		shape ParamShape
		label string
		value *float64
	}{
		{ParamTheta, "theta", g.Params.Theta},
		{ParamPhi, "phi", g.Params.Phi},
		{ParamLambda, "lambda", g.Params.Lambda},
	} {
		if !spec.Params.Has(a.shape) {
			continue
		}
		if a.value == nil {
			return errors.Wrapf(ErrMissingParameter, "%s: %s", name, a.label)
		}
		if math.IsNaN(*a.value) || math.IsInf(*a.value, 0) {
			return errors.Wrapf(ErrInvalidParameter, "%s: %s %v", name, a.label, *a.value)
		}
	}
	if spec.Params.Has(ParamRoot) {
		if err := g.Params.Root.validate(); err != nil {
			return errors.Wrap(err, name)
		}
	}
	if spec.Bit {
		if g.Bit == nil {
			return errors.Wrapf(ErrMissingParameter, "%s: bit", name)
		}
		if *g.Bit < 0 {
			return errors.Wrapf(ErrMissingParameter, "%s: negative bit %d", name, *g.Bit)
		}
	}
	return nil
}
