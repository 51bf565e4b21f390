package qasm

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadParameter is returned for a parameter expression that is neither a
// number nor a pi expression.
var ErrBadParameter = errors.New("invalid parameter expression")

// piExprRegex captures sign, coefficient and denominator of n*pi/d.
var piExprRegex = regexp.MustCompile(`^([-+]?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseParam parses a finite number or a signed n*pi/d expression, where
// the coefficient, the "*" and the denominator are optional. Failures wrap
// ErrBadParameter.
func ParseParam(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrBadParameter, "empty")
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, errors.Wrapf(ErrBadParameter, "%q is not finite", s)
		}
		return val, nil
	}

	matches := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return 0, errors.Wrapf(ErrBadParameter, "%q", s)
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, errors.Wrapf(ErrBadParameter, "%q", s)
		}
	}
	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, errors.Wrapf(ErrBadParameter, "%q", s)
		}
		result /= denom
	}
	if matches[1] == "-" {
		result = -result
	}
	return result, nil
}

// ParseParams parses a comma separated parameter list. An empty list
// yields nil.
func ParseParams(input string) ([]float64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	var params []float64
	for _, part := range strings.Split(input, ",") {
		val, err := ParseParam(part)
		if err != nil {
			return nil, err
		}
		params = append(params, val)
	}
	return params, nil
}

// maxPiDenominator bounds the fractions FormatParam recognizes.
const maxPiDenominator = 16

// FormatParam formats an angle, using pi notation for small fractions of pi:
// pi, pi/2, 3*pi/4, -2*pi/3 and so on. Other values use %g.
func FormatParam(val float64) string {
	ratio := val / math.Pi
	for d := 1; d <= maxPiDenominator; d++ {
		n := math.Round(ratio * float64(d))
		if n == 0 || math.Abs(val-n*math.Pi/float64(d)) > 1e-10 {
			continue
		}
		sign := ""
		if n < 0 {
			sign, n = "-", -n
		}
		switch {
		case n == 1 && d == 1:
			return sign + "pi"
		case d == 1:
			return fmt.Sprintf("%s%g*pi", sign, n)
		case n == 1:
			return fmt.Sprintf("%spi/%d", sign, d)
		default:
			return fmt.Sprintf("%s%g*pi/%d", sign, n, d)
		}
	}
	return fmt.Sprintf("%g", val)
}
