package rgsw

import (
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
)

// Evaluator computes the external product GLWE x GGSW -> GLWE (§4.4),
// grounded on core/rgsw/evaluator.go's ExternalProduct but simplified
// to a single scalar ring: the GGSW operand is decomposed into its
// gadget levels and each level's digit polynomials are multiplied, in
// the negacyclic evaluation basis, against the matching GGSW row, then
// accumulated.
type Evaluator struct {
	ringQ *ring.Ring
	ntt   *ring.NTT
}

// NewEvaluator builds an Evaluator over ringQ, precomputing the
// negacyclic transform tables once so every ExternalProduct call
// amortizes their construction cost.
func NewEvaluator(ringQ *ring.Ring) *Evaluator {
	return &Evaluator{ringQ: ringQ, ntt: ring.NewNTT(ringQ.N, 128)}
}

// ExternalProduct computes opOut = op0 (GLWE) (dot) op1 (GGSW) (§4.4):
// op0's k+1 components are gadget-decomposed under op1's gadget, and
// each level's signed-digit polynomial is multiplied against the
// matching GGSW row and accumulated across all components and levels.
//
//	ACC ← sum_{c,l} decompose(op0[c])[l] * GGSW[c][l]
func (eval *Evaluator) ExternalProduct(op0 *rlwe.GLWECiphertext, op1 *Ciphertext, opOut *rlwe.GLWECiphertext) {
	k := op1.GLWEDimension()
	gadget := op1.Gadget

	acc := make([]ring.Poly, k+1)
	for i := range acc {
		acc[i] = eval.ringQ.NewPoly()
	}

	for c := 0; c <= k; c++ {
		digits := ring.SignedDecomposePoly(op0.Value[c], gadget)
		for l, digit := range digits {
			row := op1.Value[c][l]
			for i := 0; i <= k; i++ {
				prod := eval.ntt.MulNegacyclic(digit, row.Value[i], eval.ringQ)
				eval.ringQ.Add(&acc[i], &prod, &acc[i])
			}
		}
	}

	for i := range opOut.Value {
		copy(opOut.Value[i].Coeffs, acc[i].Coeffs)
	}
}

// CMux selects between op0 and op1 depending on the bit GGSW-encrypted
// in sel, computing op0 + sel*(op1-op0) homomorphically (the core step
// of blind-rotate, §4.5 step 2): opOut = op0 + ExternalProduct(op1-op0, sel).
func (eval *Evaluator) CMux(op0, op1 *rlwe.GLWECiphertext, sel *Ciphertext, opOut *rlwe.GLWECiphertext) {
	k := len(op0.Value) - 1
	diff := rlwe.NewGLWECiphertext(k, eval.ringQ.N)
	for i := range diff.Value {
		eval.ringQ.Sub(&op1.Value[i], &op0.Value[i], &diff.Value[i])
	}

	prod := rlwe.NewGLWECiphertext(k, eval.ringQ.N)
	eval.ExternalProduct(diff, sel, prod)

	for i := range opOut.Value {
		eval.ringQ.Add(&op0.Value[i], &prod.Value[i], &opOut.Value[i])
	}
}
