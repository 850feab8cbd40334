package blindrot

import (
	"math/big"

	"github.com/latticeforge/shortint/core/rgsw"
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
)

// Evaluator runs the blind-rotate + sample-extract half of PBS (§4.5
// steps 1-3), grounded on core/rgsw/blindrot/evaluator.go's Evaluate
// but reduced to the textbook per-coordinate CMux chain rather than
// the teacher's windowed discrete-log GINX bootstrap: step 4
// (key-switch) is left to rlwe.KeySwitchingKey.KeySwitch, composed by
// the caller according to pbs_order.
type Evaluator struct {
	rgswEval *rgsw.Evaluator
	ringQ    *ring.Ring
}

// NewEvaluator builds a blind-rotate Evaluator over ringQ.
func NewEvaluator(ringQ *ring.Ring) *Evaluator {
	return &Evaluator{rgswEval: rgsw.NewEvaluator(ringQ), ringQ: ringQ}
}

// ModSwitchTo2N rounds x (a coefficient of the native/custom torus) to
// the nearest multiple of q/2N, expressed as an integer in [0, 2N):
// the "modulus switch" §4.5 step 1 performs before blind-rotate can
// treat the LWE mask as a set of polynomial-rotation amounts.
func ModSwitchTo2N(x uint64, twoN int, r *ring.Ring) int {
	num := new(big.Int).Mul(new(big.Int).SetUint64(x), big.NewInt(int64(twoN)))
	var den *big.Int
	if r.Custom {
		den = new(big.Int).SetUint64(r.Modulus)
	} else {
		den = new(big.Int).Lsh(big.NewInt(1), 64)
	}
	// Round to nearest: (num + den/2) / den.
	num.Add(num, new(big.Int).Rsh(den, 1))
	q := new(big.Int).Div(num, den)
	v := int(q.Mod(q, big.NewInt(int64(twoN))).Int64())
	return v
}

// BlindRotate runs §4.5 step 2: starting from a trivial GLWE
// ciphertext encoding X^{-b} . lut, conditionally rotate by +a_i for
// every coordinate of ctIn's mask, controlled by the corresponding GGSW
// row of bk, so that the accumulator ends at X^{-(b - <a,s>)} . lut.
//
//	ACC <- ACC + (X^{a_i} - 1) . GGSW_i (x) ACC
func (eval *Evaluator) BlindRotate(ctIn *rlwe.LWECiphertext, bk *BootstrapKey, lut ring.Poly, k int) *rlwe.GLWECiphertext {
	N := eval.ringQ.N
	twoN := 2 * N

	acc := rlwe.NewGLWECiphertext(k, N)
	b := ModSwitchTo2N(ctIn.Body(), twoN, eval.ringQ)
	copy(acc.Body().Coeffs, eval.ringQ.MulXk(lut, -b).Coeffs)

	mask := ctIn.Mask()
	for i, a := range mask {
		ai := ModSwitchTo2N(a, twoN, eval.ringQ)
		if ai == 0 {
			continue
		}

		prod := rlwe.NewGLWECiphertext(k, N)
		eval.rgswEval.ExternalProduct(acc, &bk.Value[i], prod)

		for c := range acc.Value {
			rotated := eval.ringQ.MulXk(prod.Value[c], ai)
			diff := eval.ringQ.NewPoly()
			eval.ringQ.Sub(&rotated, &prod.Value[c], &diff)
			eval.ringQ.Add(&acc.Value[c], &diff, &acc.Value[c])
		}
	}
	return acc
}

// SampleExtract extracts coefficient 0 of acc as an LWE ciphertext
// under the "large" LWE key (§4.5 step 3): the k*N-dimensional key
// obtained by flattening the GLWE secret key's k polynomials
// (rlwe.GLWESecretKey.AsLargeLWESecretKey).
func SampleExtract(acc *rlwe.GLWECiphertext, r *ring.Ring) *rlwe.LWECiphertext {
	k := acc.GLWESize() - 1
	N := acc.PolynomialSize()
	out := rlwe.NewLWECiphertext(k * N)

	mask := out.Mask()
	for c := 0; c < k; c++ {
		coeffs := acc.Value[c].Coeffs
		mask[c*N] = coeffs[0]
		for j := 1; j < N; j++ {
			// Extracting coefficient 0 of a product by X^{-j} picks up
			// the negacyclic sign flip on every mask entry beyond the
			// first, mirroring the GLWE -> LWE coefficient-extraction
			// identity.
			mask[c*N+j] = r.OpposeScaled(coeffs[N-j])
		}
	}
	out.SetBody(acc.Body().Coeffs[0])
	return out
}

// Bootstrap runs the full PBS pipeline of §4.5 except the final
// key-switch, which the caller performs via a KeySwitchingKey chosen
// according to pbs_order.
func (eval *Evaluator) Bootstrap(ctIn *rlwe.LWECiphertext, bk *BootstrapKey, lut ring.Poly, k int) *rlwe.LWECiphertext {
	acc := eval.BlindRotate(ctIn, bk, lut, k)
	return SampleExtract(acc, eval.ringQ)
}
