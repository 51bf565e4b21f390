package random

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/document"
)

func countGates(c *circuit.Circuit) (unitary, measured int) {
	for _, s := range c.Steps() {
		for _, g := range s.Gates {
			if g.Kind.Measurement() {
				measured++
			} else {
				unitary++
			}
		}
	}
	return unitary, measured
}

func TestGenerate(t *testing.T) {
	Convey("Given generator options for a mid sized circuit", t, func() {
		opts := Options{Qubits: 6, Gates: 60, Seed: 7}

		Convey("When generating a circuit", func() {
			c, err := Generate(opts)

			Convey("It should place exactly the requested gates", func() {
				So(err, ShouldBeNil)
				unitary, measured := countGates(c)
				So(unitary, ShouldEqual, 60)
				So(measured, ShouldEqual, 0)
				So(c.Capacity(), ShouldEqual, 6)
			})

			Convey("It should replay through the builder", func() {
				doc := document.FromCircuit(c)
				replayed, err := doc.Circuit()
				So(err, ShouldBeNil)
				So(document.FromCircuit(replayed), ShouldResemble, doc)
			})

			Convey("It should never leave an empty step", func() {
				for _, s := range c.Steps() {
					So(s.Gates, ShouldNotBeEmpty)
				}
			})
		})

		Convey("When generating twice with the same seed", func() {
			a, errA := Generate(opts)
			b, errB := Generate(opts)

			Convey("It should produce the same circuit", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(document.FromCircuit(a), ShouldResemble, document.FromCircuit(b))
			})
		})

		Convey("When generating with another seed", func() {
			a, _ := Generate(opts)
			opts.Seed = 8
			b, err := Generate(opts)

			Convey("It should produce a different circuit", func() {
				So(err, ShouldBeNil)
				So(document.FromCircuit(a), ShouldNotResemble, document.FromCircuit(b))
			})
		})

		Convey("When the seed is left at zero", func() {
			opts.Seed = 0
			a, _ := Generate(opts)
			opts.Seed = DefaultSeed
			b, _ := Generate(opts)

			Convey("It should use the default seed", func() {
				So(document.FromCircuit(a), ShouldResemble, document.FromCircuit(b))
			})
		})
	})
}

func TestGenerateOptions(t *testing.T) {
	Convey("Given measurement enabled", t, func() {
		c, err := Generate(Options{Qubits: 4, Gates: 10, Measure: true})

		Convey("It should measure every qubit into its own bit in the last step", func() {
			So(err, ShouldBeNil)
			steps := c.Steps()
			last := steps[len(steps)-1]
			So(last.Gates, ShouldHaveLength, 4)
			for i, g := range last.Gates {
				So(g.Kind, ShouldEqual, circuit.MeasureZ)
				So(g.Targets, ShouldResemble, []int{i})
				So(*g.Bit, ShouldEqual, i)
			}
			So(c.BitCount(), ShouldEqual, 4)
		})
	})

	Convey("Given a single qubit", t, func() {
		c, err := Generate(Options{Qubits: 1, Gates: 20})

		Convey("It should only place uncontrolled single qubit gates", func() {
			So(err, ShouldBeNil)
			for _, s := range c.Steps() {
				So(s.Gates, ShouldHaveLength, 1)
				So(s.Gates[0].Controls, ShouldBeEmpty)
				So(s.Gates[0].Targets, ShouldResemble, []int{0})
			}
		})
	})

	Convey("Given two qubits", t, func() {
		c, err := Generate(Options{Qubits: 2, Gates: 40, Seed: 3})

		Convey("It should never place a three qubit gate", func() {
			So(err, ShouldBeNil)
			for _, s := range c.Steps() {
				for _, g := range s.Gates {
					So(len(g.Qubits()), ShouldBeLessThanOrEqualTo, 2)
				}
			}
		})
	})

	Convey("Given the fill option and the exact set policy", t, func() {
		c, err := Generate(Options{Qubits: 5, Gates: 30, Fill: true, Policy: circuit.ExactSet})

		Convey("It should build a valid circuit under that policy", func() {
			So(err, ShouldBeNil)
			So(c.Policy(), ShouldEqual, circuit.ExactSet)
			_, err := document.FromCircuit(c).Circuit(circuit.WithOccupancyPolicy(circuit.ExactSet))
			So(err, ShouldBeNil)
		})
	})

	Convey("Given invalid options", t, func() {
		_, errQubits := Generate(Options{Qubits: 0, Gates: 1})
		_, errGates := Generate(Options{Qubits: 2, Gates: -1})

		Convey("It should reject them", func() {
			So(errors.Is(errQubits, circuit.ErrInvalidCapacity), ShouldBeTrue)
			So(errors.Is(errGates, ErrInvalidOptions), ShouldBeTrue)
		})
	})
}
