package document

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcomposer/pkg/circuit"
)

func sample(t *testing.T) *circuit.Circuit {
	t.Helper()
	c, err := circuit.New(5)
	require.NoError(t, err)
	c.Hadamard(nil, []int{0}).
		PauliXRoot([]circuit.Control{circuit.Ctrl(1, circuit.StateMinusI)}, []int{2}, circuit.PowerOfTwoRoot(7)).
		IncrementStep().
		U3(circuit.On(4), []int{3}, math.Pi/3, 0.25, -1.5).
		SwapRoot(nil, []int{0, 1}, circuit.ExactRoot(128)).
		IncrementStep().
		Aggregate([]circuit.Control{circuit.Ctrl(0, circuit.StatePlus)}, []circuit.Gate{
			{Kind: circuit.Hadamard, Targets: []int{1}},
			{Kind: circuit.RYTheta, Targets: []int{2}, Params: circuit.Params{Theta: circuit.Angle(2)}},
		}).
		Barrier().
		MeasureZ([]int{4}, 2).
		IncrementStep().
		Toffoli(circuit.Ctrl(0, circuit.StateOne), circuit.Ctrl(1, circuit.StateZero), 2).
		MeasureY([]int{3}, 0)
	require.NoError(t, c.Err())
	return c
}

func roundTrip(t *testing.T, c *circuit.Circuit) *Document {
	t.Helper()
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)
	doc, err := Parse(&buf)
	require.NoError(t, err)
	return doc
}

func TestRoundTripRecoversGates(t *testing.T) {
	c := sample(t)
	doc := roundTrip(t, c)

	steps := c.Steps()
	require.Len(t, doc.Steps, len(steps))
	for i, s := range steps {
		assert.Equal(t, s.Index, doc.Steps[i].Index)
		require.Len(t, doc.Steps[i].Gates, len(s.Gates))
		for j, want := range s.Gates {
			got, err := doc.Steps[i].Gates[j].Decode()
			require.NoError(t, err, "step %d gate %d", i, j)
			assert.Equal(t, want, got, "step %d gate %d", i, j)
		}
	}
}

func TestRoundTripKeepsRootDiscriminant(t *testing.T) {
	doc := roundTrip(t, sample(t))

	g := doc.Steps[0].Gates[1]
	require.NotNil(t, g.Root)
	assert.Equal(t, "1/2^7.0", *g.Root)
	decoded, err := g.Decode()
	require.NoError(t, err)
	assert.Equal(t, circuit.PowerOfTwoRoot(7), decoded.Params.Root)

	exact, err := doc.Steps[1].Gates[1].Decode()
	require.NoError(t, err)
	assert.Equal(t, circuit.ExactRoot(128), exact.Params.Root)
}

func TestRoundTripExtremeAngles(t *testing.T) {
	c, err := circuit.New(2)
	require.NoError(t, err)
	c.RXTheta(nil, []int{0}, 1e-300).
		P(nil, []int{1}, 1e21).
		IncrementStep().
		U2(nil, []int{0}, -math.MaxFloat64, math.SmallestNonzeroFloat64)
	require.NoError(t, c.Err())

	doc := roundTrip(t, c)
	assert.Equal(t, 1e-300, *doc.Steps[0].Gates[0].Theta)
	assert.Equal(t, 1e21, *doc.Steps[0].Gates[1].Theta)
	assert.Equal(t, -math.MaxFloat64, *doc.Steps[1].Gates[0].Phi)
	assert.Equal(t, math.SmallestNonzeroFloat64, *doc.Steps[1].Gates[0].Lambda)
}

func TestFromCircuitMatchesParsedDocument(t *testing.T) {
	c := sample(t)
	assert.Equal(t, roundTrip(t, c), FromCircuit(c))
}

func TestReplay(t *testing.T) {
	c := sample(t)
	replayed, err := roundTrip(t, c).Circuit()
	require.NoError(t, err)
	assert.Equal(t, c.CurrentStep(), replayed.CurrentStep())
	assert.Equal(t, c.QubitCount(), replayed.Capacity())
	assert.Equal(t, c.Steps(), replayed.Steps())
}

func TestReplayRejectsCollisions(t *testing.T) {
	doc, err := ParseBytes([]byte(`
steps:
  - index: 0
    gates:
      - name: swap
        targets: [0, 2]
      - name: hadamard
        targets: [1]
`))
	require.NoError(t, err)

	_, err = doc.Circuit()
	assert.True(t, errors.Is(err, circuit.ErrQubitAlreadyTaken))

	c, err := doc.Circuit(circuit.WithOccupancyPolicy(circuit.ExactSet))
	require.NoError(t, err)
	assert.Len(t, c.Steps()[0].Gates, 2)
}

func TestUnknownGateSurvivesParse(t *testing.T) {
	doc, err := ParseBytes([]byte(`
steps:
  - index: 0
    gates:
      - name: teleport
        targets: [0]
`))
	require.NoError(t, err)
	_, err = doc.Steps[0].Gates[0].Kind()
	assert.True(t, errors.Is(err, circuit.ErrUnknownGateKind))
	_, err = doc.Circuit()
	assert.True(t, errors.Is(err, circuit.ErrUnknownGateKind))
}

func TestDecodeRejectsBadStateAndRoot(t *testing.T) {
	bad := Gate{Name: "pauli-x", Targets: []int{1}, Controls: []Control{{Target: 0, State: "2"}}}
	_, err := bad.Decode()
	assert.True(t, errors.Is(err, circuit.ErrInvalidControlState))

	root := "one half"
	bad = Gate{Name: "pauli-x-root", Targets: []int{1}, Root: &root}
	_, err = bad.Decode()
	assert.True(t, errors.Is(err, circuit.ErrInvalidRoot))
}

func TestParseMalformed(t *testing.T) {
	_, err := ParseBytes([]byte("steps: [index: {"))
	assert.Error(t, err)

	doc, err := ParseBytes(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Steps)
}

func TestLoad(t *testing.T) {
	c := sample(t)
	path := filepath.Join(t.TempDir(), "sample")
	require.NoError(t, c.Export(path))

	doc, err := Load(path + ".yaml")
	require.NoError(t, err)
	assert.Len(t, doc.Steps, 4)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestUsageCounts(t *testing.T) {
	assert.Equal(t, 0, QubitCount(&Document{}))
	assert.Equal(t, 0, BitCount(&Document{}))

	doc := roundTrip(t, sample(t))
	assert.Equal(t, 5, QubitCount(doc))
	assert.Equal(t, 3, BitCount(doc))

	doc, err := ParseBytes([]byte(strings.TrimSpace(`
steps:
  - index: 0
    gates:
      - name: aggregate
        controls:
          - target: 1
            state: '1'
        gates:
          - name: hadamard
            targets: [6]
`)))
	require.NoError(t, err)
	assert.Equal(t, 7, QubitCount(doc))
	assert.Equal(t, 0, BitCount(doc))
}
