package render

import (
	"strconv"

	"qcomposer/pkg/circuit"
)

var symbols = map[circuit.Kind]string{
	circuit.Identity:             "I",
	circuit.Hadamard:             "H",
	circuit.HadamardXY:           "H_xy",
	circuit.HadamardYZ:           "H_yz",
	circuit.HadamardZX:           "H_zx",
	circuit.PauliX:               "X",
	circuit.PauliY:               "Y",
	circuit.PauliZ:               "Z",
	circuit.T:                    "T",
	circuit.TDagger:              "T†",
	circuit.S:                    "S",
	circuit.SDagger:              "S†",
	circuit.V:                    "V",
	circuit.VDagger:              "V†",
	circuit.H:                    "h",
	circuit.HDagger:              "h†",
	circuit.C:                    "C",
	circuit.CDagger:              "C†",
	circuit.U1:                   "U1",
	circuit.U2:                   "U2",
	circuit.U3:                   "U3",
	circuit.RXTheta:              "Rx",
	circuit.RYTheta:              "Ry",
	circuit.RZTheta:              "Rz",
	circuit.P:                    "P",
	circuit.PauliXRoot:           "X^r",
	circuit.PauliYRoot:           "Y^r",
	circuit.PauliZRoot:           "Z^r",
	circuit.PauliXRootDagger:     "X^-r",
	circuit.PauliYRootDagger:     "Y^-r",
	circuit.PauliZRootDagger:     "Z^-r",
	circuit.Swap:                 "×",
	circuit.ISwap:                "iSWAP",
	circuit.FSwap:                "fSWAP",
	circuit.SqrtSwap:             "√SWAP",
	circuit.SqrtSwapDagger:       "√SWAP†",
	circuit.MolmerSorensen:       "MS",
	circuit.MolmerSorensenDagger: "MS†",
	circuit.Berkeley:             "B",
	circuit.BerkeleyDagger:       "B†",
	circuit.ECP:                  "ECP",
	circuit.ECPDagger:            "ECP†",
	circuit.Magic:                "MAG",
	circuit.MagicDagger:          "MAG†",
	circuit.W:                    "W",
	circuit.XX:                   "XX",
	circuit.YY:                   "YY",
	circuit.ZZ:                   "ZZ",
	circuit.XY:                   "XY",
	circuit.SwapTheta:            "SWAPθ",
	circuit.SwapRoot:             "SW^r",
	circuit.SwapRootDagger:       "SW^-r",
	circuit.A:                    "A",
	circuit.Givens:               "G",
	circuit.CrossResonance:       "CR",
	circuit.CrossResonanceDagger: "CR†",
	circuit.Toffoli:              "⊕",
	circuit.Fredkin:              "×",
	circuit.MeasureX:             "Mx",
	circuit.MeasureY:             "My",
	circuit.MeasureZ:             "M",
	circuit.Aggregate:            "[ ]",
	circuit.Barrier:              "│",
}

// rootBases name the operator a root gate raises to a fractional power.
var rootBases = map[circuit.Kind]string{
	circuit.PauliXRoot:       "X",
	circuit.PauliYRoot:       "Y",
	circuit.PauliZRoot:       "Z",
	circuit.PauliXRootDagger: "X",
	circuit.PauliYRootDagger: "Y",
	circuit.PauliZRootDagger: "Z",
	circuit.SwapRoot:         "SW",
	circuit.SwapRootDagger:   "SW",
}

// Symbol returns the short name drawn for a gate kind.
func Symbol(k circuit.Kind) string {
	if s, ok := symbols[k]; ok {
		return s
	}
	return k.String()
}

// label is the text inside a gate box. Root gates show their power when it
// fits, with square roots drawn as √.
func label(g *circuit.Gate) string {
	base, ok := rootBases[g.Kind]
	if !ok || g.Params.Root.IsZero() {
		return Symbol(g.Kind)
	}
	dagger := isRootDagger(g.Kind)
	d := g.Params.Root.Denominator()
	if d == 2 && len(base) == 1 {
		if dagger {
			return "√" + base + "†"
		}
		return "√" + base
	}
	sign := ""
	if dagger {
		sign = "-"
	}
	text := base + "^" + sign + "1/" + strconv.FormatFloat(d, 'g', 4, 64)
	if len([]rune(text)) > gateNameW {
		return Symbol(g.Kind)
	}
	return text
}

func isRootDagger(k circuit.Kind) bool {
	switch k {
	case circuit.PauliXRootDagger, circuit.PauliYRootDagger, circuit.PauliZRootDagger, circuit.SwapRootDagger:
		return true
	}
	return false
}

// targetSymbol returns the wire symbol used instead of a box on a target
// qubit, if the gate has one.
func targetSymbol(g *circuit.Gate) (string, bool) {
	switch g.Kind {
	case circuit.Swap, circuit.Fredkin:
		return "×", true
	case circuit.Toffoli:
		return "⊕", true
	case circuit.PauliX:
		if len(g.Controls) > 0 {
			return "⊕", true
		}
	case circuit.PauliZ:
		if len(g.Controls) > 0 {
			return "●", true
		}
	}
	return "", false
}

// controlSymbol returns the wire symbol for a control in the given state.
// Computational basis states are drawn as filled and open dots, the rest
// by their name.
func controlSymbol(s circuit.ControlState) string {
	switch s {
	case circuit.StateOne:
		return "●"
	case circuit.StateZero:
		return "○"
	}
	return string(s)
}
