// Package qasm imports OpenQASM 2.0 programs into circuits and formats
// angles the way QASM sources write them.
package qasm

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"qcomposer/pkg/circuit"
)

var (
	ErrSyntax      = errors.New("qasm syntax error")
	ErrUnsupported = errors.New("unsupported qasm statement")
	ErrNoRegister  = errors.New("no quantum register declared")
)

// Pre-compiled regexps for QASM parsing.
var (
	headerRegex   = regexp.MustCompile(`^(OPENQASM\s+[\d.]+|include\s+"[^"]*")$`)
	qregRegex     = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	cregRegex     = regexp.MustCompile(`^creg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	barrierRegex  = regexp.MustCompile(`^barrier\b`)
	measureRegex  = regexp.MustCompile(`^measure\s+(\S+?)\s*->\s*(\S+)$`)
	gateRegex     = regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?:\(([^)]*)\))?\s+(.+)$`)
	operandRegex  = regexp.MustCompile(`^(\w+)(?:\s*\[\s*(\d+)\s*\])?$`)
	unsupportedRe = regexp.MustCompile(`^(reset|if|gate|opaque)\b`)
)

// Layout decides how imported gates are grouped into steps.
type Layout uint8

const (
	// Packed keeps adding gates to the current step until one collides,
	// then opens a new step.
	Packed Layout = iota
	// Sequential gives every gate its own step.
	Sequential
)

// Option configures Import.
type Option func(*importer)

// WithLayout selects the step layout. Packed is the default.
func WithLayout(l Layout) Option {
	return func(im *importer) {
		im.layout = l
	}
}

// WithCircuitOptions forwards options to the circuit under construction.
func WithCircuitOptions(opts ...circuit.Option) Option {
	return func(im *importer) {
		im.circuitOpts = append(im.circuitOpts, opts...)
	}
}

type register struct {
	offset int
	size   int
}

type statement struct {
	line int
	text string
}

type importer struct {
	layout      Layout
	circuitOpts []circuit.Option

	qregs   map[string]register
	cregs   map[string]register
	qubits  int
	bits    int
	c       *circuit.Circuit
	dirty   bool // the current step holds gates
	newStep bool // the next gate must open a step
}

// ImportReader reads a QASM program from r.
func ImportReader(r io.Reader, opts ...Option) (*circuit.Circuit, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read qasm")
	}
	return Import(string(src), opts...)
}

// Import builds a circuit from QASM source. Register declarations may
// appear anywhere; the circuit capacity is the total size of all qregs.
func Import(src string, opts ...Option) (*circuit.Circuit, error) {
	im := &importer{
		qregs: make(map[string]register),
		cregs: make(map[string]register),
	}
	for _, opt := range opts {
		opt(im)
	}

	stmts := split(src)
	var body []statement
	for _, st := range stmts {
		switch {
		case headerRegex.MatchString(st.text):
		case qregRegex.MatchString(st.text):
			m := qregRegex.FindStringSubmatch(st.text)
			if err := im.declare(im.qregs, &im.qubits, m[1], m[2]); err != nil {
				return nil, errors.Wrapf(err, "line %d", st.line)
			}
		case cregRegex.MatchString(st.text):
			m := cregRegex.FindStringSubmatch(st.text)
			if err := im.declare(im.cregs, &im.bits, m[1], m[2]); err != nil {
				return nil, errors.Wrapf(err, "line %d", st.line)
			}
		default:
			body = append(body, st)
		}
	}
	if im.qubits == 0 {
		return nil, ErrNoRegister
	}

	c, err := circuit.New(im.qubits, im.circuitOpts...)
	if err != nil {
		return nil, err
	}
	im.c = c

	for _, st := range body {
		if err := im.statement(st.text); err != nil {
			return nil, errors.Wrapf(err, "line %d: %s", st.line, st.text)
		}
	}
	log.Debugf("imported qasm into %d steps over %d qubits", c.CurrentStep()+1, im.qubits)
	return c, nil
}

// split strips comments and breaks the source into statements, keeping
// the line each one starts on.
func split(src string) []statement {
	var out []statement
	for i, line := range strings.Split(src, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, part := range strings.Split(line, ";") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, statement{line: i + 1, text: part})
			}
		}
	}
	return out
}

func (im *importer) declare(regs map[string]register, total *int, name, size string) error {
	if _, ok := regs[name]; ok {
		return errors.Wrapf(ErrSyntax, "register %s declared twice", name)
	}
	n, err := strconv.Atoi(size)
	if err != nil || n <= 0 {
		return errors.Wrapf(ErrSyntax, "register %s has size %s", name, size)
	}
	regs[name] = register{offset: *total, size: n}
	*total += n
	return nil
}

func (im *importer) statement(text string) error {
	switch {
	case unsupportedRe.MatchString(text):
		return ErrUnsupported
	case barrierRegex.MatchString(text):
		return im.barrier()
	case measureRegex.MatchString(text):
		m := measureRegex.FindStringSubmatch(text)
		return im.measure(m[1], m[2])
	case gateRegex.MatchString(text):
		m := gateRegex.FindStringSubmatch(text)
		return im.gate(strings.ToLower(m[1]), m[2], m[3])
	}
	return ErrSyntax
}

// resolve maps an operand to absolute indices. A bare register name
// expands to every index of the register.
func resolve(regs map[string]register, operand string) ([]int, error) {
	m := operandRegex.FindStringSubmatch(strings.TrimSpace(operand))
	if m == nil {
		return nil, errors.Wrapf(ErrSyntax, "operand %q", operand)
	}
	reg, ok := regs[m[1]]
	if !ok {
		return nil, errors.Wrapf(ErrSyntax, "undeclared register %s", m[1])
	}
	if m[2] == "" {
		out := make([]int, reg.size)
		for i := range out {
			out[i] = reg.offset + i
		}
		return out, nil
	}
	idx, _ := strconv.Atoi(m[2])
	if idx >= reg.size {
		return nil, errors.Wrapf(ErrSyntax, "%s[%d] outside register of size %d", m[1], idx, reg.size)
	}
	return []int{reg.offset + idx}, nil
}

func (im *importer) measure(qubit, bit string) error {
	qs, err := resolve(im.qregs, qubit)
	if err != nil {
		return err
	}
	bs, err := resolve(im.cregs, bit)
	if err != nil {
		return err
	}
	if len(qs) != len(bs) {
		return errors.Wrapf(ErrSyntax, "measure of %d qubits into %d bits", len(qs), len(bs))
	}
	for i := range qs {
		if err := im.place(circuit.Gate{Kind: circuit.MeasureZ, Targets: []int{qs[i]}, Bit: circuit.Bit(bs[i])}); err != nil {
			return err
		}
	}
	return nil
}

func (im *importer) gate(name, params, operands string) error {
	def, ok := gateTable[name]
	if !ok {
		return errors.Wrapf(ErrUnsupported, "gate %s", name)
	}
	values, err := ParseParams(params)
	if err != nil {
		return err
	}
	if len(values) != def.params {
		return errors.Wrapf(ErrSyntax, "%s takes %d parameters, got %d", name, def.params, len(values))
	}

	var qubits [][]int
	for _, op := range strings.Split(operands, ",") {
		qs, err := resolve(im.qregs, op)
		if err != nil {
			return err
		}
		qubits = append(qubits, qs)
	}

	// A single whole-register operand applies the gate to each qubit.
	if len(qubits) == 1 && len(qubits[0]) > 1 {
		for _, q := range qubits[0] {
			if err := im.place(def.build([]int{q}, values)); err != nil {
				return err
			}
		}
		return nil
	}
	flat := make([]int, len(qubits))
	for i, qs := range qubits {
		if len(qs) != 1 {
			return errors.Wrapf(ErrUnsupported, "register broadcast in %s", name)
		}
		flat[i] = qs[0]
	}
	if len(flat) != def.controls+def.kind.Spec().Arity {
		return errors.Wrapf(ErrSyntax, "%s takes %d qubits, got %d", name, def.controls+def.kind.Spec().Arity, len(flat))
	}
	return im.place(def.build(flat, values))
}

func (im *importer) barrier() error {
	if im.dirty {
		im.c.IncrementStep()
	}
	if err := im.c.Apply(circuit.Gate{Kind: circuit.Barrier}); err != nil {
		return err
	}
	im.dirty = true
	im.newStep = true
	return nil
}

// place puts g into the current step, opening a new one when the layout
// asks for it or when g collides with a gate already there.
func (im *importer) place(g circuit.Gate) error {
	if im.newStep && im.dirty {
		im.c.IncrementStep()
		im.dirty = false
	}
	err := im.c.Apply(g)
	if errors.Is(err, circuit.ErrQubitAlreadyTaken) {
		log.Debugf("%s collides in step %d, opening a new step", g.Kind, im.c.CurrentStep())
		im.c.IncrementStep()
		err = im.c.Apply(g)
	}
	if err != nil {
		return err
	}
	im.dirty = true
	im.newStep = im.layout == Sequential
	return nil
}
