// Package poly implements degree-(M-1) polynomial construction, evaluation,
// and Lagrange interpolation over GF(256), built on package field.
//
// Corresponds to §4.2 of the TSS core specification. This is the primitive
// the Splitter invokes once per secret octet to build a share polynomial,
// and the one the Combiner invokes once per payload octet position to
// recover a secret byte via interpolation at x=0.
package poly

import (
	"errors"
	"io"

	"github.com/gocrypto/tss/internal/field"
)

// ErrMismatchedLength is returned when the x and y vectors given to
// Interpolate do not have the same length.
var ErrMismatchedLength = errors.New("poly: xs and ys have different lengths")

// Eval evaluates the polynomial with the given coefficients (low degree
// first, coeffs[0] is the constant term) at x, using Horner's method in
// GF(256).
func Eval(coeffs []byte, x byte) byte {
	var result byte
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = field.Add(field.Mul(result, x), coeffs[i])
	}
	return result
}

// Random constructs the coefficients of a degree-(degree) polynomial whose
// constant term is secretByte and whose remaining coefficients are drawn
// from rnd, a cryptographically secure source. The returned slice has
// degree+1 elements.
func Random(secretByte byte, degree int, rnd io.Reader) ([]byte, error) {
	coeffs := make([]byte, degree+1)
	coeffs[0] = secretByte
	if degree > 0 {
		if _, err := io.ReadFull(rnd, coeffs[1:]); err != nil {
			return nil, err
		}
	}
	return coeffs, nil
}

// Interpolate performs Lagrange interpolation and returns the polynomial's
// value at x=0:
//
//	secret = Σ_i y_i · Π_{j≠i} x_j · (x_j ⊕ x_i)^-1
//
// xs must be nonzero and pairwise distinct; that invariant is enforced by
// the Combiner's validation step (§4.7) before this is ever called, so
// Interpolate trusts its inputs and does not re-check them.
func Interpolate(xs, ys []byte) (byte, error) {
	if len(xs) != len(ys) {
		return 0, ErrMismatchedLength
	}
	var secret byte
	for i := range xs {
		secret = field.Add(secret, field.Mul(ys[i], basisAtZero(i, xs)))
	}
	return secret, nil
}

// basisAtZero computes the i-th Lagrange basis polynomial evaluated at 0:
// Π_{j≠i} x_j / (x_j ⊕ x_i).
func basisAtZero(i int, xs []byte) byte {
	result := byte(1)
	xi := xs[i]
	for j, xj := range xs {
		if j == i {
			continue
		}
		result = field.Mul(result, field.Div(xj, field.Add(xj, xi)))
	}
	return result
}
