package circuit

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policies = []OccupancyPolicy{InclusiveSpan, ExactSet}

func newCircuit(t *testing.T, capacity int, opts ...Option) *Circuit {
	t.Helper()
	c, err := New(capacity, opts...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		c, err := New(capacity)
		assert.Nil(t, c)
		assert.True(t, errors.Is(err, ErrInvalidCapacity), "capacity %d: %v", capacity, err)
	}
}

func TestNewStartsWithOneEmptyStep(t *testing.T) {
	c := newCircuit(t, 4)
	assert.Equal(t, 0, c.CurrentStep())
	assert.Equal(t, 4, c.Capacity())
	assert.Equal(t, InclusiveSpan, c.Policy())

	steps := c.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, 0, steps[0].Index)
	assert.Empty(t, steps[0].Gates)
}

func TestScenarioTwoSteps(t *testing.T) {
	c := newCircuit(t, 3)
	c.Hadamard(nil, []int{0}).
		PauliX(nil, []int{1}).
		IncrementStep().
		MeasureZ([]int{0}, 0)
	require.NoError(t, c.Err())
	assert.Equal(t, 1, c.CurrentStep())

	steps := c.Steps()
	require.Len(t, steps, 2)
	require.Len(t, steps[0].Gates, 2)
	assert.Equal(t, Hadamard, steps[0].Gates[0].Kind)
	assert.Equal(t, []int{0}, steps[0].Gates[0].Targets)
	assert.Equal(t, PauliX, steps[0].Gates[1].Kind)
	assert.Equal(t, []int{1}, steps[0].Gates[1].Targets)
	require.Len(t, steps[1].Gates, 1)
	assert.Equal(t, MeasureZ, steps[1].Gates[0].Kind)
	require.NotNil(t, steps[1].Gates[0].Bit)
	assert.Equal(t, 0, *steps[1].Gates[0].Bit)
}

func TestSwapBlocksHadamardInSameStep(t *testing.T) {
	for _, p := range policies {
		c := newCircuit(t, 2, WithOccupancyPolicy(p))
		require.NoError(t, c.Apply(Gate{Kind: Swap, Targets: []int{0, 1}}))

		err := c.Apply(Gate{Kind: Hadamard, Targets: []int{0}})
		require.Error(t, err, p.String())
		assert.True(t, errors.Is(err, ErrQubitAlreadyTaken), p.String())

		var qe *QubitError
		require.True(t, errors.As(err, &qe))
		assert.Equal(t, 0, qe.Qubit)
		assert.Equal(t, 0, qe.Step)
	}
}

func TestRootEncoding(t *testing.T) {
	c := newCircuit(t, 5)
	c.PauliXRoot(nil, []int{2}, ExactRoot(2.0)).
		PauliXRoot(nil, []int{3}, PowerOfTwoRoot(3.0))
	require.NoError(t, c.Err())

	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "root: '1/2.0'")
	assert.Contains(t, out, "root: '1/2^3.0'")
}

func TestQubitOutOfRange(t *testing.T) {
	c := newCircuit(t, 1)
	err := c.Apply(Gate{Kind: Hadamard, Targets: []int{1}})
	assert.True(t, errors.Is(err, ErrQubitIndexOutOfRange))

	var qe *QubitError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, 1, qe.Qubit)
	assert.Equal(t, 0, qe.Step)

	err = c.Apply(Gate{Kind: Hadamard, Targets: []int{-1}})
	assert.True(t, errors.Is(err, ErrQubitIndexOutOfRange))

	err = c.Apply(Gate{Kind: PauliX, Controls: On(3), Targets: []int{0}})
	assert.True(t, errors.Is(err, ErrQubitIndexOutOfRange))
}

func TestCapacityBoundaryAccepted(t *testing.T) {
	c := newCircuit(t, 4, WithOccupancyPolicy(ExactSet))
	for q := 0; q < 4; q++ {
		assert.NoError(t, c.Apply(Gate{Kind: Hadamard, Targets: []int{q}}))
	}
}

func TestFailedPlacementLeavesStepUnchanged(t *testing.T) {
	for _, p := range policies {
		c := newCircuit(t, 4, WithOccupancyPolicy(p))
		require.NoError(t, c.Apply(Gate{Kind: PauliX, Controls: On(0), Targets: []int{1}}))
		before := c.Steps()

		err := c.Apply(Gate{Kind: Swap, Targets: []int{1, 3}})
		require.True(t, errors.Is(err, ErrQubitAlreadyTaken))

		after := c.Steps()
		assert.Equal(t, before, after, p.String())
		assert.False(t, after[0].Occupied(3), p.String())
	}
}

func TestOccupancyPolicies(t *testing.T) {
	span := newCircuit(t, 3)
	require.NoError(t, span.Apply(Gate{Kind: PauliX, Controls: On(0), Targets: []int{2}}))
	assert.True(t, span.Steps()[0].Occupied(1))
	err := span.Apply(Gate{Kind: Hadamard, Targets: []int{1}})
	assert.True(t, errors.Is(err, ErrQubitAlreadyTaken))

	exact := newCircuit(t, 3, WithOccupancyPolicy(ExactSet))
	require.NoError(t, exact.Apply(Gate{Kind: PauliX, Controls: On(0), Targets: []int{2}}))
	assert.False(t, exact.Steps()[0].Occupied(1))
	assert.NoError(t, exact.Apply(Gate{Kind: Hadamard, Targets: []int{1}}))
	assert.Len(t, exact.Steps()[0].Gates, 2)
}

func TestOccupancySetsAreDisjoint(t *testing.T) {
	for _, p := range policies {
		c := newCircuit(t, 6, WithOccupancyPolicy(p))
		c.Hadamard(nil, []int{0}).
			Swap(nil, []int{1, 2}).
			PauliZ(On(3), []int{4})
		require.NoError(t, c.Err())

		owner := map[int]int{}
		for i, g := range c.Steps()[0].Gates {
			for _, q := range c.occupancy(g.Qubits()) {
				prev, seen := owner[q]
				assert.False(t, seen, "qubit %d reserved by gates %d and %d", q, prev, i)
				owner[q] = i
			}
		}
	}
}

func TestStepIsolation(t *testing.T) {
	for _, p := range policies {
		c := newCircuit(t, 1, WithOccupancyPolicy(p))
		require.NoError(t, c.Apply(Gate{Kind: Hadamard, Targets: []int{0}}))
		c.IncrementStep()
		assert.NoError(t, c.Apply(Gate{Kind: Hadamard, Targets: []int{0}}))
		assert.Equal(t, 1, c.CurrentStep())
	}
}

func TestWrongTargetCount(t *testing.T) {
	c := newCircuit(t, 4)
	for _, targets := range [][]int{{0}, {0, 1, 2}} {
		err := c.Apply(Gate{Kind: Swap, Targets: targets})
		assert.True(t, errors.Is(err, ErrWrongTargetCount), "%v: %v", targets, err)
	}
	err := c.Apply(Gate{Kind: Hadamard})
	assert.True(t, errors.Is(err, ErrWrongTargetCount))
	assert.Empty(t, c.Steps()[0].Gates)
}

func TestMissingParameter(t *testing.T) {
	c := newCircuit(t, 2)
	cases := []Gate{
		{Kind: RXTheta, Targets: []int{0}},
		{Kind: U2, Targets: []int{0}, Params: Params{Phi: Angle(1)}},
		{Kind: U3, Targets: []int{0}, Params: Params{Theta: Angle(1), Phi: Angle(1)}},
		{Kind: A, Targets: []int{0, 1}, Params: Params{Theta: Angle(1)}},
		{Kind: PauliZRoot, Targets: []int{0}},
		{Kind: SwapRoot, Targets: []int{0, 1}},
		{Kind: MeasureX, Targets: []int{0}},
		{Kind: MeasureZ, Targets: []int{0}, Bit: Bit(-1)},
	}
	for _, g := range cases {
		err := c.Apply(g)
		assert.True(t, errors.Is(err, ErrMissingParameter), "%s: %v", g.Kind, err)
	}
	assert.Empty(t, c.Steps()[0].Gates)
}

func TestNonFiniteAngle(t *testing.T) {
	c := newCircuit(t, 2)
	cases := []Gate{
		{Kind: RXTheta, Targets: []int{0}, Params: Params{Theta: Angle(math.Inf(1))}},
		{Kind: P, Targets: []int{0}, Params: Params{Theta: Angle(math.NaN())}},
		{Kind: U3, Targets: []int{0}, Params: Params{Theta: Angle(1), Phi: Angle(math.Inf(-1)), Lambda: Angle(0)}},
		{Kind: U1, Targets: []int{0}, Params: Params{Lambda: Angle(math.NaN())}},
		{Kind: Aggregate, Gates: []Gate{{Kind: RYTheta, Targets: []int{1}, Params: Params{Theta: Angle(math.Inf(1))}}}},
	}
	for _, g := range cases {
		err := c.Apply(g)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "%s: %v", g.Kind, err)
	}
	assert.Empty(t, c.Steps()[0].Gates)

	c.RXTheta(nil, []int{0}, math.NaN())
	assert.True(t, errors.Is(c.Err(), ErrInvalidParameter))

	// Angles the builder does not use are dropped, not checked.
	require.NoError(t, c.Apply(Gate{Kind: Hadamard, Targets: []int{1}, Params: Params{Theta: Angle(math.NaN())}}))
	require.NoError(t, c.Apply(Gate{Kind: RZTheta, Targets: []int{0}, Params: Params{Theta: Angle(1e-300)}}))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Gate{Kind: Swap, Targets: []int{3, 9}}))
	assert.True(t, errors.Is(Validate(Gate{Kind: Swap, Targets: []int{3}}), ErrWrongTargetCount))
	assert.True(t, errors.Is(Validate(Gate{Kind: MeasureZ, Targets: []int{0}}), ErrMissingParameter))
	assert.True(t, errors.Is(Validate(Gate{Kind: Hadamard, Targets: []int{-2}}), ErrQubitIndexOutOfRange))
	assert.True(t, errors.Is(Validate(Gate{Kind: PauliX, Controls: On(4), Targets: []int{4}}), ErrDuplicateQubit))
}

func TestDuplicateQubit(t *testing.T) {
	for _, p := range policies {
		c := newCircuit(t, 4, WithOccupancyPolicy(p))
		c.PauliX(On(2), []int{2})
		assert.True(t, errors.Is(c.Err(), ErrDuplicateQubit))
		assert.Empty(t, c.Steps()[0].Gates)
		assert.False(t, c.Steps()[0].Occupied(2))

		err := c.Apply(Gate{Kind: Swap, Targets: []int{1, 1}})
		assert.True(t, errors.Is(err, ErrDuplicateQubit))
	}
}

func TestDuplicateCheckedBeforeCapacity(t *testing.T) {
	c := newCircuit(t, 2)
	err := c.Apply(Gate{Kind: Swap, Targets: []int{5, 5}})
	assert.True(t, errors.Is(err, ErrDuplicateQubit))
}

func TestControlPolicy(t *testing.T) {
	c := newCircuit(t, 4)
	err := c.Apply(Gate{Kind: Toffoli, Controls: On(0), Targets: []int{1}})
	assert.True(t, errors.Is(err, ErrWrongControlCount))
	err = c.Apply(Gate{Kind: Fredkin, Targets: []int{1, 2}})
	assert.True(t, errors.Is(err, ErrWrongControlCount))
	err = c.Apply(Gate{Kind: MeasureZ, Controls: On(0), Targets: []int{1}, Bit: Bit(0)})
	assert.True(t, errors.Is(err, ErrWrongControlCount))
	err = c.Apply(Gate{Kind: Identity, Controls: On(0), Targets: []int{1}})
	assert.True(t, errors.Is(err, ErrWrongControlCount))

	err = c.Apply(Gate{Kind: PauliX, Controls: []Control{{Target: 0, State: "2"}}, Targets: []int{1}})
	assert.True(t, errors.Is(err, ErrInvalidControlState))
}

func TestToffoliAndFredkin(t *testing.T) {
	c := newCircuit(t, 3)
	c.Toffoli(Ctrl(0, StateOne), Ctrl(1, StateZero), 2).
		IncrementStep().
		Fredkin(Ctrl(2, StatePlus), 0, 1)
	require.NoError(t, c.Err())

	steps := c.Steps()
	assert.Equal(t, []Control{{0, StateOne}, {1, StateZero}}, steps[0].Gates[0].Controls)
	assert.Equal(t, []int{0, 1}, steps[1].Gates[0].Targets)
	assert.Equal(t, 3, c.QubitCount())
}

func TestUnknownKind(t *testing.T) {
	c := newCircuit(t, 1)
	err := c.Apply(Gate{Kind: Kind(200), Targets: []int{0}})
	assert.True(t, errors.Is(err, ErrUnknownGateKind))
	err = c.Apply(Gate{Targets: []int{0}})
	assert.True(t, errors.Is(err, ErrUnknownGateKind))
}

func TestStickyFluentError(t *testing.T) {
	c := newCircuit(t, 2)
	c.Hadamard(nil, []int{0}).
		Hadamard(nil, []int{0}).
		IncrementStep().
		PauliX(nil, []int{1})
	require.True(t, errors.Is(c.Err(), ErrQubitAlreadyTaken))
	assert.Equal(t, 0, c.CurrentStep())
	assert.Len(t, c.Steps()[0].Gates, 1)

	c.ClearErr()
	c.IncrementStep().PauliX(nil, []int{1})
	require.NoError(t, c.Err())
	assert.Equal(t, 1, c.CurrentStep())
}

func TestAggregate(t *testing.T) {
	for _, p := range policies {
		c := newCircuit(t, 5, WithOccupancyPolicy(p))
		c.Aggregate(On(0), []Gate{
			{Kind: Hadamard, Targets: []int{1}},
			{Kind: RZTheta, Targets: []int{3}, Params: Params{Theta: Angle(0.5)}},
		})
		require.NoError(t, c.Err())
		step := c.Steps()[0]
		assert.True(t, step.Occupied(0))
		assert.True(t, step.Occupied(3))
		assert.Equal(t, p == InclusiveSpan, step.Occupied(2), p.String())
		assert.False(t, step.Occupied(4))
		assert.Equal(t, 4, c.QubitCount())
	}
}

func TestAggregateValidation(t *testing.T) {
	c := newCircuit(t, 4)
	err := c.Apply(Gate{Kind: Aggregate, Controls: On(0), Gates: []Gate{
		{Kind: Hadamard, Targets: []int{1}},
		{Kind: PauliX, Targets: []int{1}},
	}})
	assert.True(t, errors.Is(err, ErrDuplicateQubit))

	err = c.Apply(Gate{Kind: Aggregate, Controls: On(0), Gates: []Gate{
		{Kind: Hadamard, Targets: []int{0}},
	}})
	assert.True(t, errors.Is(err, ErrDuplicateQubit))

	err = c.Apply(Gate{Kind: Aggregate, Gates: []Gate{{Kind: Swap, Targets: []int{1, 2}}}})
	assert.True(t, errors.Is(err, ErrUnknownGateKind))

	err = c.Apply(Gate{Kind: Aggregate, Gates: []Gate{{Kind: MeasureZ, Targets: []int{1}, Bit: Bit(0)}}})
	assert.True(t, errors.Is(err, ErrUnknownGateKind))

	err = c.Apply(Gate{Kind: Aggregate, Gates: []Gate{{Kind: RXTheta, Targets: []int{1}}}})
	assert.True(t, errors.Is(err, ErrMissingParameter))

	err = c.Apply(Gate{Kind: Aggregate, Gates: []Gate{{Kind: Hadamard, Controls: On(2), Targets: []int{1}}}})
	assert.True(t, errors.Is(err, ErrWrongControlCount))

	err = c.Apply(Gate{Kind: Aggregate, Controls: On(0)})
	assert.True(t, errors.Is(err, ErrWrongTargetCount))

	assert.Empty(t, c.Steps()[0].Gates)
}

func TestBarrierReservesNothing(t *testing.T) {
	c := newCircuit(t, 2)
	c.Hadamard(nil, []int{0}).Barrier().PauliX(nil, []int{1})
	require.NoError(t, c.Err())
	step := c.Steps()[0]
	require.Len(t, step.Gates, 3)
	assert.Equal(t, Barrier, step.Gates[1].Kind)

	err := c.Apply(Gate{Kind: Barrier, Targets: []int{0}})
	assert.True(t, errors.Is(err, ErrWrongTargetCount))
}

func TestApplyDropsForeignParams(t *testing.T) {
	c := newCircuit(t, 1)
	require.NoError(t, c.Apply(Gate{
		Kind:    Hadamard,
		Targets: []int{0},
		Params:  Params{Theta: Angle(1), Root: ExactRoot(2)},
		Bit:     Bit(3),
	}))
	g := c.Steps()[0].Gates[0]
	assert.Nil(t, g.Params.Theta)
	assert.True(t, g.Params.Root.IsZero())
	assert.Nil(t, g.Bit)
	assert.Equal(t, 0, c.BitCount())
}

func TestStepsIsACopy(t *testing.T) {
	c := newCircuit(t, 2)
	c.PauliX(On(0), []int{1})
	steps := c.Steps()
	steps[0].Gates[0].Targets[0] = 0
	steps[0].Gates[0].Controls[0].State = StateZero
	fresh := c.Steps()[0].Gates[0]
	assert.Equal(t, []int{1}, fresh.Targets)
	assert.Equal(t, StateOne, fresh.Controls[0].State)
}

func TestUsage(t *testing.T) {
	c := newCircuit(t, 8)
	assert.Equal(t, 0, c.QubitCount())
	assert.Equal(t, 0, c.BitCount())

	c.Barrier()
	assert.Equal(t, 0, c.QubitCount())

	c.Hadamard(On(5), []int{2}).
		IncrementStep().
		MeasureZ([]int{2}, 3).
		MeasureX([]int{0}, 1)
	require.NoError(t, c.Err())
	assert.Equal(t, 6, c.QubitCount())
	assert.Equal(t, 4, c.BitCount())
}

func TestEveryFluentKindPlaces(t *testing.T) {
	c := newCircuit(t, 4, WithOccupancyPolicy(ExactSet))
	r := ExactRoot(4)
	calls := []func() *Circuit{
		func() *Circuit { return c.Identity([]int{0}) },
		func() *Circuit { return c.Hadamard(nil, []int{0}) },
		func() *Circuit { return c.HadamardXY(nil, []int{0}) },
		func() *Circuit { return c.HadamardYZ(nil, []int{0}) },
		func() *Circuit { return c.HadamardZX(nil, []int{0}) },
		func() *Circuit { return c.PauliY(nil, []int{0}) },
		func() *Circuit { return c.T(nil, []int{0}) },
		func() *Circuit { return c.TDagger(nil, []int{0}) },
		func() *Circuit { return c.S(nil, []int{0}) },
		func() *Circuit { return c.SDagger(nil, []int{0}) },
		func() *Circuit { return c.V(nil, []int{0}) },
		func() *Circuit { return c.VDagger(nil, []int{0}) },
		func() *Circuit { return c.H(nil, []int{0}) },
		func() *Circuit { return c.HDagger(nil, []int{0}) },
		func() *Circuit { return c.C(nil, []int{0}) },
		func() *Circuit { return c.CDagger(nil, []int{0}) },
		func() *Circuit { return c.U1(nil, []int{0}, 0.1) },
		func() *Circuit { return c.U2(nil, []int{0}, 0.1, 0.2) },
		func() *Circuit { return c.U3(nil, []int{0}, 0.1, 0.2, 0.3) },
		func() *Circuit { return c.RXTheta(nil, []int{0}, 0.1) },
		func() *Circuit { return c.RYTheta(nil, []int{0}, 0.1) },
		func() *Circuit { return c.RZTheta(nil, []int{0}, 0.1) },
		func() *Circuit { return c.P(nil, []int{0}, 0.1) },
		func() *Circuit { return c.PauliYRoot(nil, []int{0}, r) },
		func() *Circuit { return c.PauliZRoot(nil, []int{0}, r) },
		func() *Circuit { return c.PauliXRootDagger(nil, []int{0}, r) },
		func() *Circuit { return c.PauliYRootDagger(nil, []int{0}, r) },
		func() *Circuit { return c.PauliZRootDagger(nil, []int{0}, r) },
		func() *Circuit { return c.ISwap(nil, []int{0, 1}) },
		func() *Circuit { return c.FSwap(nil, []int{0, 1}) },
		func() *Circuit { return c.SqrtSwap(nil, []int{0, 1}) },
		func() *Circuit { return c.SqrtSwapDagger(nil, []int{0, 1}) },
		func() *Circuit { return c.MolmerSorensen(nil, []int{0, 1}) },
		func() *Circuit { return c.MolmerSorensenDagger(nil, []int{0, 1}) },
		func() *Circuit { return c.Berkeley(nil, []int{0, 1}) },
		func() *Circuit { return c.BerkeleyDagger(nil, []int{0, 1}) },
		func() *Circuit { return c.ECP(nil, []int{0, 1}) },
		func() *Circuit { return c.ECPDagger(nil, []int{0, 1}) },
		func() *Circuit { return c.Magic(nil, []int{0, 1}) },
		func() *Circuit { return c.MagicDagger(nil, []int{0, 1}) },
		func() *Circuit { return c.W(nil, []int{0, 1}) },
		func() *Circuit { return c.XX(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.YY(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.ZZ(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.XY(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.SwapTheta(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.SwapRoot(nil, []int{0, 1}, r) },
		func() *Circuit { return c.SwapRootDagger(nil, []int{0, 1}, r) },
		func() *Circuit { return c.A(nil, []int{0, 1}, 0.1, 0.2) },
		func() *Circuit { return c.Givens(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.CrossResonance(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.CrossResonanceDagger(nil, []int{0, 1}, 0.1) },
		func() *Circuit { return c.MeasureY([]int{0}, 0) },
	}
	for i, call := range calls {
		call().IncrementStep()
		require.NoError(t, c.Err(), "call %d", i)
	}
	assert.Equal(t, len(calls), c.CurrentStep())
}
