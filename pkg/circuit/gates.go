package circuit

// Fluent gate methods. Each places one gate in the current step and
// returns the circuit. A failure is recorded in Err and every later fluent
// call is a no-op until ClearErr.

func (c *Circuit) simple(k Kind, controls []Control, targets []int) *Circuit {
	return c.place(Gate{Kind: k, Controls: controls, Targets: targets})
}

func (c *Circuit) theta(k Kind, controls []Control, targets []int, theta float64) *Circuit {
	return c.place(Gate{Kind: k, Controls: controls, Targets: targets, Params: Params{Theta: Angle(theta)}})
}

func (c *Circuit) root(k Kind, controls []Control, targets []int, root Root) *Circuit {
	return c.place(Gate{Kind: k, Controls: controls, Targets: targets, Params: Params{Root: root}})
}

func (c *Circuit) measure(k Kind, targets []int, bit int) *Circuit {
	return c.place(Gate{Kind: k, Targets: targets, Bit: Bit(bit)})
}

// Identity places an uncontrolled identity gate.
func (c *Circuit) Identity(targets []int) *Circuit {
	return c.simple(Identity, nil, targets)
}

// Hadamard places H, mapping the Z basis onto the X basis.
func (c *Circuit) Hadamard(controls []Control, targets []int) *Circuit {
	return c.simple(Hadamard, controls, targets)
}

// HadamardXY places the Hadamard variant exchanging the X and Y axes.
func (c *Circuit) HadamardXY(controls []Control, targets []int) *Circuit {
	return c.simple(HadamardXY, controls, targets)
}

// HadamardYZ places the Hadamard variant exchanging the Y and Z axes.
func (c *Circuit) HadamardYZ(controls []Control, targets []int) *Circuit {
	return c.simple(HadamardYZ, controls, targets)
}

// HadamardZX places the Hadamard variant exchanging the Z and X axes.
func (c *Circuit) HadamardZX(controls []Control, targets []int) *Circuit {
	return c.simple(HadamardZX, controls, targets)
}

// PauliX places a bit flip. With one control it is CNOT.
func (c *Circuit) PauliX(controls []Control, targets []int) *Circuit {
	return c.simple(PauliX, controls, targets)
}

// PauliY places a Pauli Y.
func (c *Circuit) PauliY(controls []Control, targets []int) *Circuit {
	return c.simple(PauliY, controls, targets)
}

// PauliZ places a phase flip.
func (c *Circuit) PauliZ(controls []Control, targets []int) *Circuit {
	return c.simple(PauliZ, controls, targets)
}

// T places the pi/4 phase gate.
func (c *Circuit) T(controls []Control, targets []int) *Circuit {
	return c.simple(T, controls, targets)
}

// TDagger places the inverse of T.
func (c *Circuit) TDagger(controls []Control, targets []int) *Circuit {
	return c.simple(TDagger, controls, targets)
}

// S places the pi/2 phase gate.
func (c *Circuit) S(controls []Control, targets []int) *Circuit {
	return c.simple(S, controls, targets)
}

// SDagger places the inverse of S.
func (c *Circuit) SDagger(controls []Control, targets []int) *Circuit {
	return c.simple(SDagger, controls, targets)
}

// V places the square root of X.
func (c *Circuit) V(controls []Control, targets []int) *Circuit {
	return c.simple(V, controls, targets)
}

// VDagger places the inverse of V.
func (c *Circuit) VDagger(controls []Control, targets []int) *Circuit {
	return c.simple(VDagger, controls, targets)
}

// H places the h gate.
func (c *Circuit) H(controls []Control, targets []int) *Circuit {
	return c.simple(H, controls, targets)
}

// HDagger places the inverse of H.
func (c *Circuit) HDagger(controls []Control, targets []int) *Circuit {
	return c.simple(HDagger, controls, targets)
}

// C places the c gate.
func (c *Circuit) C(controls []Control, targets []int) *Circuit {
	return c.simple(C, controls, targets)
}

// CDagger places the inverse of C.
func (c *Circuit) CDagger(controls []Control, targets []int) *Circuit {
	return c.simple(CDagger, controls, targets)
}

// U1 places a phase rotation by lambda.
func (c *Circuit) U1(controls []Control, targets []int, lambda float64) *Circuit {
	return c.place(Gate{Kind: U1, Controls: controls, Targets: targets, Params: Params{Lambda: Angle(lambda)}})
}

// U2 places the single qubit rotation with theta fixed at pi/2.
func (c *Circuit) U2(controls []Control, targets []int, phi, lambda float64) *Circuit {
	return c.place(Gate{Kind: U2, Controls: controls, Targets: targets, Params: Params{Phi: Angle(phi), Lambda: Angle(lambda)}})
}

// U3 places the generic single qubit rotation.
func (c *Circuit) U3(controls []Control, targets []int, theta, phi, lambda float64) *Circuit {
	return c.place(Gate{Kind: U3, Controls: controls, Targets: targets, Params: Params{Theta: Angle(theta), Phi: Angle(phi), Lambda: Angle(lambda)}})
}

// RXTheta places a rotation about X by theta.
func (c *Circuit) RXTheta(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(RXTheta, controls, targets, theta)
}

// RYTheta places a rotation about Y by theta.
func (c *Circuit) RYTheta(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(RYTheta, controls, targets, theta)
}

// RZTheta places a rotation about Z by theta.
func (c *Circuit) RZTheta(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(RZTheta, controls, targets, theta)
}

// P places a phase shift by theta.
func (c *Circuit) P(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(P, controls, targets, theta)
}

// PauliXRoot places a fractional power of X. Root gates take a Root built
// with ExactRoot, PowerOfTwoRoot or RootFrom.
func (c *Circuit) PauliXRoot(controls []Control, targets []int, root Root) *Circuit {
	return c.root(PauliXRoot, controls, targets, root)
}

// PauliYRoot places a fractional power of Y.
func (c *Circuit) PauliYRoot(controls []Control, targets []int, root Root) *Circuit {
	return c.root(PauliYRoot, controls, targets, root)
}

// PauliZRoot places a fractional power of Z.
func (c *Circuit) PauliZRoot(controls []Control, targets []int, root Root) *Circuit {
	return c.root(PauliZRoot, controls, targets, root)
}

// PauliXRootDagger places the inverse of PauliXRoot.
func (c *Circuit) PauliXRootDagger(controls []Control, targets []int, root Root) *Circuit {
	return c.root(PauliXRootDagger, controls, targets, root)
}

// PauliYRootDagger places the inverse of PauliYRoot.
func (c *Circuit) PauliYRootDagger(controls []Control, targets []int, root Root) *Circuit {
	return c.root(PauliYRootDagger, controls, targets, root)
}

// PauliZRootDagger places the inverse of PauliZRoot.
func (c *Circuit) PauliZRootDagger(controls []Control, targets []int, root Root) *Circuit {
	return c.root(PauliZRootDagger, controls, targets, root)
}

// SwapRoot places a fractional power of swap on two targets.
func (c *Circuit) SwapRoot(controls []Control, targets []int, root Root) *Circuit {
	return c.root(SwapRoot, controls, targets, root)
}

// SwapRootDagger places the inverse of SwapRoot.
func (c *Circuit) SwapRootDagger(controls []Control, targets []int, root Root) *Circuit {
	return c.root(SwapRootDagger, controls, targets, root)
}

// Swap exchanges two targets.
func (c *Circuit) Swap(controls []Control, targets []int) *Circuit {
	return c.simple(Swap, controls, targets)
}

// ISwap places the swap that adds a phase of i.
func (c *Circuit) ISwap(controls []Control, targets []int) *Circuit {
	return c.simple(ISwap, controls, targets)
}

// FSwap places the fermionic swap.
func (c *Circuit) FSwap(controls []Control, targets []int) *Circuit {
	return c.simple(FSwap, controls, targets)
}

// SqrtSwap places the square root of swap.
func (c *Circuit) SqrtSwap(controls []Control, targets []int) *Circuit {
	return c.simple(SqrtSwap, controls, targets)
}

// SqrtSwapDagger places the inverse of SqrtSwap.
func (c *Circuit) SqrtSwapDagger(controls []Control, targets []int) *Circuit {
	return c.simple(SqrtSwapDagger, controls, targets)
}

// MolmerSorensen places the Mølmer-Sørensen entangling gate.
func (c *Circuit) MolmerSorensen(controls []Control, targets []int) *Circuit {
	return c.simple(MolmerSorensen, controls, targets)
}

// MolmerSorensenDagger places the inverse of MolmerSorensen.
func (c *Circuit) MolmerSorensenDagger(controls []Control, targets []int) *Circuit {
	return c.simple(MolmerSorensenDagger, controls, targets)
}

// Berkeley places the B gate.
func (c *Circuit) Berkeley(controls []Control, targets []int) *Circuit {
	return c.simple(Berkeley, controls, targets)
}

// BerkeleyDagger places the inverse of Berkeley.
func (c *Circuit) BerkeleyDagger(controls []Control, targets []int) *Circuit {
	return c.simple(BerkeleyDagger, controls, targets)
}

// ECP places the ECP gate.
func (c *Circuit) ECP(controls []Control, targets []int) *Circuit {
	return c.simple(ECP, controls, targets)
}

// ECPDagger places the inverse of ECP.
func (c *Circuit) ECPDagger(controls []Control, targets []int) *Circuit {
	return c.simple(ECPDagger, controls, targets)
}

// Magic places the magic basis change.
func (c *Circuit) Magic(controls []Control, targets []int) *Circuit {
	return c.simple(Magic, controls, targets)
}

// MagicDagger places the inverse of Magic.
func (c *Circuit) MagicDagger(controls []Control, targets []int) *Circuit {
	return c.simple(MagicDagger, controls, targets)
}

// W places the W gate.
func (c *Circuit) W(controls []Control, targets []int) *Circuit {
	return c.simple(W, controls, targets)
}

// XX places the Ising XX coupling by theta.
func (c *Circuit) XX(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(XX, controls, targets, theta)
}

// YY places the Ising YY coupling by theta.
func (c *Circuit) YY(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(YY, controls, targets, theta)
}

// ZZ places the Ising ZZ coupling by theta.
func (c *Circuit) ZZ(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(ZZ, controls, targets, theta)
}

// XY places the XY interaction by theta.
func (c *Circuit) XY(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(XY, controls, targets, theta)
}

// SwapTheta places a swap raised to theta.
func (c *Circuit) SwapTheta(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(SwapTheta, controls, targets, theta)
}

// Givens places a Givens rotation by theta.
func (c *Circuit) Givens(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(Givens, controls, targets, theta)
}

// CrossResonance places the cross resonance gate by theta.
func (c *Circuit) CrossResonance(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(CrossResonance, controls, targets, theta)
}

// CrossResonanceDagger places the inverse of CrossResonance.
func (c *Circuit) CrossResonanceDagger(controls []Control, targets []int, theta float64) *Circuit {
	return c.theta(CrossResonanceDagger, controls, targets, theta)
}

// A places the two qubit A gate.
func (c *Circuit) A(controls []Control, targets []int, theta, phi float64) *Circuit {
	return c.place(Gate{Kind: A, Controls: controls, Targets: targets, Params: Params{Theta: Angle(theta), Phi: Angle(phi)}})
}

// Toffoli places a doubly controlled X on target.
func (c *Circuit) Toffoli(c1, c2 Control, target int) *Circuit {
	return c.simple(Toffoli, []Control{c1, c2}, []int{target})
}

// Fredkin places a controlled swap of t1 and t2.
func (c *Circuit) Fredkin(ctrl Control, t1, t2 int) *Circuit {
	return c.simple(Fredkin, []Control{ctrl}, []int{t1, t2})
}

// MeasureX measures in the X basis into bit.
func (c *Circuit) MeasureX(targets []int, bit int) *Circuit {
	return c.measure(MeasureX, targets, bit)
}

// MeasureY measures in the Y basis into bit.
func (c *Circuit) MeasureY(targets []int, bit int) *Circuit {
	return c.measure(MeasureY, targets, bit)
}

// MeasureZ measures in the computational basis into bit.
func (c *Circuit) MeasureZ(targets []int, bit int) *Circuit {
	return c.measure(MeasureZ, targets, bit)
}

// Aggregate places several single qubit gates sharing one control set as a
// single compound gate.
func (c *Circuit) Aggregate(controls []Control, gates []Gate) *Circuit {
	return c.place(Gate{Kind: Aggregate, Controls: controls, Gates: gates})
}

// Barrier places a scheduling fence. It reserves no qubits.
func (c *Circuit) Barrier() *Circuit {
	return c.place(Gate{Kind: Barrier})
}
