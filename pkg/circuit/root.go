package circuit

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RootKind discriminates the two root encodings.
type RootKind uint8

const (
	RootNone RootKind = iota
	RootExact
	RootPowerOfTwo
)

// Root is the fractional power of a root gate. An exact root t gives the
// angle pi/t, a power-of-two root k gives pi/2^k. The zero Root is absent.
type Root struct {
	Kind  RootKind
	Value float64
}

// ExactRoot returns the root pi/t.
func ExactRoot(t float64) Root {
	return Root{Kind: RootExact, Value: t}
}

// PowerOfTwoRoot returns the root pi/2^k.
func PowerOfTwoRoot(k float64) Root {
	return Root{Kind: RootPowerOfTwo, Value: k}
}

// RootFrom builds a root from the optional t and k pair. Exactly one of
// them must be set.
func RootFrom(t, k *float64) (Root, error) {
	switch {
	case t != nil && k != nil:
		return Root{}, errors.Wrap(ErrMissingParameter, "root takes either t or k, not both")
	case t != nil:
		return ExactRoot(*t), nil
	case k != nil:
		return PowerOfTwoRoot(*k), nil
	default:
		return Root{}, errors.Wrap(ErrMissingParameter, "root requires t or k")
	}
}

// IsZero reports whether the root is absent.
func (r Root) IsZero() bool {
	return r.Kind == RootNone
}

func (r Root) validate() error {
	switch r.Kind {
	case RootNone:
		return errors.Wrap(ErrMissingParameter, "root")
	case RootExact:
		if r.Value == 0 || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return errors.Wrapf(ErrInvalidRoot, "exact root %v", r.Value)
		}
	case RootPowerOfTwo:
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return errors.Wrapf(ErrInvalidRoot, "power of two root %v", r.Value)
		}
	default:
		return errors.Wrapf(ErrInvalidRoot, "root kind %d", r.Kind)
	}
	return nil
}

// Denominator returns the divisor of pi: t or 2^k.
func (r Root) Denominator() float64 {
	if r.Kind == RootPowerOfTwo {
		return math.Pow(2, r.Value)
	}
	return r.Value
}

// Angle returns the rotation angle the root represents.
func (r Root) Angle() float64 {
	return math.Pi / r.Denominator()
}

// String returns the document encoding, '1/<t>' or '1/2^<k>'.
func (r Root) String() string {
	switch r.Kind {
	case RootExact:
		return "1/" + FormatFloat(r.Value)
	case RootPowerOfTwo:
		return "1/2^" + FormatFloat(r.Value)
	}
	return ""
}

// ParseRoot decodes the document encoding of a root.
func ParseRoot(s string) (Root, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "1/")
	if !ok {
		return Root{}, errors.Wrapf(ErrInvalidRoot, "%q", s)
	}
	kind := RootExact
	if exp, ok := strings.CutPrefix(rest, "2^"); ok {
		kind = RootPowerOfTwo
		rest = exp
	}
	v, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return Root{}, errors.Wrapf(ErrInvalidRoot, "%q", s)
	}
	r := Root{Kind: kind, Value: v}
	if err := r.validate(); err != nil {
		return Root{}, err
	}
	return r, nil
}

// FormatFloat renders v in shortest round-trip form, keeping a trailing
// ".0" on integral values.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
