package circuit

import (
	"github.com/pkg/errors"
)

// Kind identifies one entry of the gate catalog.
type Kind uint8

// Gate kinds. The zero value is not a valid kind.
const (
	KindInvalid Kind = iota

	// Single qubit, no parameters.
	Identity
	Hadamard
	HadamardXY
	HadamardYZ
	HadamardZX
	PauliX
	PauliY
	PauliZ
	T
	TDagger
	S
	SDagger
	V
	VDagger
	H
	HDagger
	C
	CDagger

	// Single qubit, angle parameters.
	U1
	U2
	U3
	RXTheta
	RYTheta
	RZTheta
	P

	// Single qubit, root parameter.
	PauliXRoot
	PauliYRoot
	PauliZRoot
	PauliXRootDagger
	PauliYRootDagger
	PauliZRootDagger

	// Two qubits, no parameters.
	Swap
	ISwap
	FSwap
	SqrtSwap
	SqrtSwapDagger
	MolmerSorensen
	MolmerSorensenDagger
	Berkeley
	BerkeleyDagger
	ECP
	ECPDagger
	Magic
	MagicDagger
	W

	// Two qubits, angle or root parameters.
	XX
	YY
	ZZ
	XY
	SwapTheta
	SwapRoot
	SwapRootDagger
	A
	Givens
	CrossResonance
	CrossResonanceDagger

	// Legacy three qubit gates.
	Toffoli
	Fredkin

	// Measurements.
	MeasureX
	MeasureY
	MeasureZ

	// Structural.
	Aggregate
	Barrier

	kindCount
)

// ParamShape is the set of continuous parameters a kind requires.
type ParamShape uint8

const (
	ParamTheta ParamShape = 1 << iota
	ParamPhi
	ParamLambda
	ParamRoot
)

// Has reports whether every parameter of o is part of the shape.
func (s ParamShape) Has(o ParamShape) bool {
	return s&o == o
}

// AnyControls marks a kind that accepts an arbitrary number of controls.
const AnyControls = -1

// Category groups kinds for listings.
type Category uint8

const (
	CategorySingle Category = iota
	CategoryRotation
	CategoryRoot
	CategoryTwo
	CategoryThree
	CategoryMeasurement
	CategoryStructural
)

var categoryNames = [...]string{
	CategorySingle:      "Single Qubit",
	CategoryRotation:    "Rotation",
	CategoryRoot:        "Root",
	CategoryTwo:         "Two Qubit",
	CategoryThree:       "Three Qubit",
	CategoryMeasurement: "Measurement",
	CategoryStructural:  "Structural",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// Spec describes the shape of a gate kind.
type Spec struct {
	Name     string
	Arity    int // number of target qubits
	Controls int // exact control count, or AnyControls
	Params   ParamShape
	Bit      bool // writes a classical bit
	Unitary  bool
	Category Category
}

func single(name string, params ParamShape, cat Category) Spec {
	return Spec{Name: name, Arity: 1, Controls: AnyControls, Params: params, Unitary: true, Category: cat}
}

func double(name string, params ParamShape) Spec {
	return Spec{Name: name, Arity: 2, Controls: AnyControls, Params: params, Unitary: true, Category: CategoryTwo}
}

func measure(name string) Spec {
	return Spec{Name: name, Arity: 1, Controls: 0, Bit: true, Category: CategoryMeasurement}
}

var catalog = [kindCount]Spec{
	Identity:   {Name: "identity", Arity: 1, Controls: 0, Unitary: true, Category: CategorySingle},
	Hadamard:   single("hadamard", 0, CategorySingle),
	HadamardXY: single("hadamard-xy", 0, CategorySingle),
	HadamardYZ: single("hadamard-yz", 0, CategorySingle),
	HadamardZX: single("hadamard-zx", 0, CategorySingle),
	PauliX:     single("pauli-x", 0, CategorySingle),
	PauliY:     single("pauli-y", 0, CategorySingle),
	PauliZ:     single("pauli-z", 0, CategorySingle),
	T:          single("t", 0, CategorySingle),
	TDagger:    single("t-dagger", 0, CategorySingle),
	S:          single("s", 0, CategorySingle),
	SDagger:    single("s-dagger", 0, CategorySingle),
	V:          single("v", 0, CategorySingle),
	VDagger:    single("v-dagger", 0, CategorySingle),
	H:          single("h", 0, CategorySingle),
	HDagger:    single("h-dagger", 0, CategorySingle),
	C:          single("c", 0, CategorySingle),
	CDagger:    single("c-dagger", 0, CategorySingle),

	U1:      single("u1", ParamLambda, CategoryRotation),
	U2:      single("u2", ParamPhi|ParamLambda, CategoryRotation),
	U3:      single("u3", ParamTheta|ParamPhi|ParamLambda, CategoryRotation),
	RXTheta: single("rx-theta", ParamTheta, CategoryRotation),
	RYTheta: single("ry-theta", ParamTheta, CategoryRotation),
	RZTheta: single("rz-theta", ParamTheta, CategoryRotation),
	P:       single("p", ParamTheta, CategoryRotation),

	PauliXRoot:       single("pauli-x-root", ParamRoot, CategoryRoot),
	PauliYRoot:       single("pauli-y-root", ParamRoot, CategoryRoot),
	PauliZRoot:       single("pauli-z-root", ParamRoot, CategoryRoot),
	PauliXRootDagger: single("pauli-x-root-dagger", ParamRoot, CategoryRoot),
	PauliYRootDagger: single("pauli-y-root-dagger", ParamRoot, CategoryRoot),
	PauliZRootDagger: single("pauli-z-root-dagger", ParamRoot, CategoryRoot),

	Swap:                 double("swap", 0),
	ISwap:                double("iswap", 0),
	FSwap:                double("fswap", 0),
	SqrtSwap:             double("sqrt-swap", 0),
	SqrtSwapDagger:       double("sqrt-swap-dagger", 0),
	MolmerSorensen:       double("molmer-sorensen", 0),
	MolmerSorensenDagger: double("molmer-sorensen-dagger", 0),
	Berkeley:             double("berkeley", 0),
	BerkeleyDagger:       double("berkeley-dagger", 0),
	ECP:                  double("ecp", 0),
	ECPDagger:            double("ecp-dagger", 0),
	Magic:                double("magic", 0),
	MagicDagger:          double("magic-dagger", 0),
	W:                    double("w", 0),

	XX:                   double("xx", ParamTheta),
	YY:                   double("yy", ParamTheta),
	ZZ:                   double("zz", ParamTheta),
	XY:                   double("xy", ParamTheta),
	SwapTheta:            double("swap-theta", ParamTheta),
	SwapRoot:             double("swap-root", ParamRoot),
	SwapRootDagger:       double("swap-root-dagger", ParamRoot),
	A:                    double("a", ParamTheta|ParamPhi),
	Givens:               double("givens", ParamTheta),
	CrossResonance:       double("cross-resonance", ParamTheta),
	CrossResonanceDagger: double("cross-resonance-dagger", ParamTheta),

	Toffoli: {Name: "toffoli", Arity: 1, Controls: 2, Unitary: true, Category: CategoryThree},
	Fredkin: {Name: "fredkin", Arity: 2, Controls: 1, Unitary: true, Category: CategoryThree},

	MeasureX: measure("measure-x"),
	MeasureY: measure("measure-y"),
	MeasureZ: measure("measure-z"),

	Aggregate: {Name: "aggregate", Arity: 0, Controls: AnyControls, Unitary: true, Category: CategoryStructural},
	Barrier:   {Name: "barrier", Arity: 0, Controls: 0, Category: CategoryStructural},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := Identity; k < kindCount; k++ {
		m[catalog[k].Name] = k
	}
	return m
}()

// Lookup resolves a document gate name to its kind.
func Lookup(name string) (Kind, error) {
	if k, ok := kindsByName[name]; ok {
		return k, nil
	}
	return KindInvalid, errors.Wrapf(ErrUnknownGateKind, "%q", name)
}

// Kinds returns every catalog kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := Identity; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is part of the catalog.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// Spec returns the catalog entry for k. Invalid kinds yield a zero Spec.
func (k Kind) Spec() Spec {
	if !k.Valid() {
		return Spec{}
	}
	return catalog[k]
}

func (k Kind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return catalog[k].Name
}

// Unitary reports whether exporters may treat the kind as a reversible gate.
func (k Kind) Unitary() bool {
	return k.Spec().Unitary
}

// Measurement reports whether the kind writes a classical bit.
func (k Kind) Measurement() bool {
	return k.Spec().Bit
}
