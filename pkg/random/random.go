// Package random generates reproducible random circuits for exercising
// exporters and renderers.
package random

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"qcomposer/pkg/circuit"
)

// DefaultSeed is used when Options.Seed is zero.
const DefaultSeed = 1024

var ErrInvalidOptions = errors.New("invalid generator options")

// Options configure Generate.
type Options struct {
	Qubits int
	Gates  int
	Seed   int64
	// Measure appends a step measuring every qubit into the bit of the
	// same index.
	Measure bool
	// Fill packs gates onto neighbouring qubits instead of leaving random
	// gaps between them.
	Fill   bool
	Policy circuit.OccupancyPolicy
}

type generator struct {
	r      *rand.Rand
	c      *circuit.Circuit
	qubits int
	fill   bool
	latest int // highest qubit used in the current step, -1 when empty
}

var (
	singleKinds []circuit.Kind
	doubleKinds []circuit.Kind
)

func init() {
	for _, k := range circuit.Kinds() {
		spec := k.Spec()
		if !spec.Unitary || spec.Controls != circuit.AnyControls {
			continue
		}
		switch spec.Arity {
		case 1:
			singleKinds = append(singleKinds, k)
		case 2:
			doubleKinds = append(doubleKinds, k)
		}
	}
}

// Generate builds a circuit of opts.Gates random gates. Gates are laid out
// left to right over the qubits; a gate that does not fit above the last
// one opens a new step.
func Generate(opts Options) (*circuit.Circuit, error) {
	if opts.Gates < 0 {
		return nil, errors.Wrapf(ErrInvalidOptions, "gate count %d", opts.Gates)
	}
	c, err := circuit.New(opts.Qubits, circuit.WithOccupancyPolicy(opts.Policy))
	if err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	g := &generator{
		r:      rand.New(rand.NewSource(seed)),
		c:      c,
		qubits: opts.Qubits,
		fill:   opts.Fill,
		latest: -1,
	}

	// Weights follow the size of each family, with three qubit gates
	// counted twice so they show up often enough.
	single := len(singleKinds)
	double := len(singleKinds) + len(doubleKinds)
	total := double + 4
	for i := 0; i < opts.Gates; i++ {
		arity := 3
		switch n := g.r.Intn(total); {
		case n < single:
			arity = 1
		case n < double:
			arity = 2
		}
		if err := g.add(min(arity, g.qubits)); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}

	if opts.Measure {
		if g.latest >= 0 {
			c.IncrementStep()
		}
		for q := 0; q < opts.Qubits; q++ {
			if err := c.Apply(circuit.Gate{Kind: circuit.MeasureZ, Targets: []int{q}, Bit: circuit.Bit(q)}); err != nil {
				return nil, err
			}
		}
	}
	log.Debugf("generated %d gates over %d qubits in %d steps (seed %d)", opts.Gates, opts.Qubits, c.CurrentStep()+1, seed)
	return c, nil
}

// add places one gate touching arity qubits above the cursor.
func (g *generator) add(arity int) error {
	span := arity
	if arity > 1 || !g.fill {
		span += g.r.Intn(3)
	}
	span = min(span, g.qubits)
	if g.latest+span >= g.qubits {
		g.c.IncrementStep()
		g.latest = -1
	}
	qubits := g.pick(arity, span)
	g.latest += span

	var gate circuit.Gate
	switch arity {
	case 1:
		gate = g.single(g.randomKind(singleKinds), qubits[0])
	case 2:
		gate = g.double(qubits)
	default:
		gate = g.triple(qubits)
	}
	return g.c.Apply(gate)
}

// pick returns arity distinct qubits in (latest, latest+span], always
// including the top one. With fill set the rest sit right above the
// cursor.
func (g *generator) pick(arity, span int) []int {
	offsets := []int{span}
	if g.fill {
		for i := 1; i < arity; i++ {
			offsets = append(offsets, i)
		}
	} else {
		for _, o := range g.r.Perm(span - 1)[:arity-1] {
			offsets = append(offsets, o+1)
		}
	}
	sort.Ints(offsets)
	qubits := make([]int, len(offsets))
	for i, o := range offsets {
		qubits[i] = g.latest + o
	}
	g.r.Shuffle(len(qubits), func(i, j int) { qubits[i], qubits[j] = qubits[j], qubits[i] })
	return qubits
}

func (g *generator) randomKind(kinds []circuit.Kind) circuit.Kind {
	return kinds[g.r.Intn(len(kinds))]
}

func (g *generator) single(k circuit.Kind, target int) circuit.Gate {
	return circuit.Gate{Kind: k, Targets: []int{target}, Params: g.params(k)}
}

// double is either a two qubit gate or a single qubit gate with one
// control, chosen in proportion to the number of kinds of each.
func (g *generator) double(qubits []int) circuit.Gate {
	n := g.r.Intn(len(singleKinds) + len(doubleKinds))
	if n >= len(singleKinds) {
		k := doubleKinds[n-len(singleKinds)]
		return circuit.Gate{Kind: k, Targets: qubits, Params: g.params(k)}
	}
	gate := g.single(singleKinds[n], qubits[1])
	gate.Controls = []circuit.Control{g.control(qubits[0])}
	return gate
}

func (g *generator) triple(qubits []int) circuit.Gate {
	if g.r.Intn(2) == 0 {
		return circuit.Gate{
			Kind:     circuit.Toffoli,
			Controls: []circuit.Control{g.control(qubits[0]), g.control(qubits[1])},
			Targets:  []int{qubits[2]},
		}
	}
	return circuit.Gate{
		Kind:     circuit.Fredkin,
		Controls: []circuit.Control{g.control(qubits[0])},
		Targets:  []int{qubits[1], qubits[2]},
	}
}

func (g *generator) control(q int) circuit.Control {
	states := circuit.ControlStates()
	return circuit.Ctrl(q, states[g.r.Intn(len(states))])
}

// params fills every parameter k takes. Angles are rounded to three
// decimals to keep documents readable.
func (g *generator) params(k circuit.Kind) circuit.Params {
	shape := k.Spec().Params
	var p circuit.Params
	if shape.Has(circuit.ParamTheta) {
		p.Theta = circuit.Angle(g.angle())
	}
	if shape.Has(circuit.ParamPhi) {
		p.Phi = circuit.Angle(g.angle())
	}
	if shape.Has(circuit.ParamLambda) {
		p.Lambda = circuit.Angle(g.angle())
	}
	if shape.Has(circuit.ParamRoot) {
		if g.r.Intn(2) == 0 {
			p.Root = circuit.PowerOfTwoRoot(float64(3 + g.r.Intn(8)))
		} else {
			p.Root = circuit.ExactRoot(float64(2 + g.r.Intn(15)))
		}
	}
	return p
}

func (g *generator) angle() float64 {
	return math.Round(g.r.Float64()*2*math.Pi*1000) / 1000
}
