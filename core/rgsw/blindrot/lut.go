// Package blindrot implements the lookup-table accumulator, bootstrap
// key generation, and blind-rotate/sample-extract/key-switch pipeline
// of §4.5, grounded on core/rgsw/blindrot's InitTestPolynomial/
// GenEvaluationKeyNew/Evaluator shapes, simplified from the teacher's
// windowed discrete-log GINX bootstrap (eprint 2022/198) to the
// textbook per-coordinate blind rotate the spec describes.
package blindrot

import "github.com/latticeforge/shortint/ring"

// GenerateAccumulator builds the GLWE lookup-table accumulator
// encoding f over the totalSlots-valued domain [0, totalSlots): a
// step function of period N, one contiguous box of boxSize = N /
// totalSlots coefficients per domain value (§3 "Lookup table
// (accumulator)"), grounded on
// core/rgsw/blindrot/blindrot.go's InitTestPolynomial.
//
// totalSlots must evenly divide N; this is a contract violation
// otherwise (§7), not a recoverable error.
func GenerateAccumulator(f func(x uint64) uint64, totalSlots uint64, delta uint64, r *ring.Ring) ring.Poly {
	n := uint64(r.N)
	if totalSlots == 0 || n%totalSlots != 0 {
		panic("blindrot: totalSlots must evenly divide N")
	}
	boxSize := n / totalSlots

	out := r.NewPoly()
	for j := uint64(0); j < totalSlots; j++ {
		val := f(j) * delta
		fillBox(out.Coeffs, j*boxSize, boxSize, val)
	}

	// The first box_size/2 coefficients are negated and the whole
	// polynomial rotated left by box_size/2 (a plain cyclic rotation,
	// no sign change), aligning the non-centered message with the
	// rotation blind-rotate performs (§3): a phase just below zero
	// reads the negated coefficients at the top of the array through
	// the X^N = -1 sign flip and so recovers f(0).
	for i := uint64(0); i < boxSize/2; i++ {
		out.Coeffs[i] = r.OpposeScaled(out.Coeffs[i])
	}
	half := boxSize / 2
	rotated := r.NewPoly()
	copy(rotated.Coeffs, out.Coeffs[half:])
	copy(rotated.Coeffs[n-half:], out.Coeffs[:half])
	return rotated
}

func fillBox(coeffs []uint64, start, length, val uint64) {
	for i := uint64(0); i < length; i++ {
		coeffs[start+i] = val
	}
}
