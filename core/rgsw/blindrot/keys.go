package blindrot

import (
	"github.com/latticeforge/shortint/core/rgsw"
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
)

// BootstrapKey is an ordered list of GGSW ciphertexts, one per bit of
// the input LWE secret key, each encrypting that bit under the GLWE
// key (§3 "Bootstrap key"), grounded on
// core/rgsw/blindrot/keys.go's MemBlindRotationEvaluationKeySet but
// without the teacher's windowed/Galois-automorphism machinery: this
// is the textbook per-coordinate bootstrap key the spec's blind-rotate
// formula in §4.5 step 2 consumes directly.
type BootstrapKey struct {
	Value []rgsw.Ciphertext
}

// GenBootstrapKey encrypts every bit of skIn as a GGSW ciphertext under
// skOut, using gadget for the GGSW decomposition.
func GenBootstrapKey(skIn *rlwe.SecretKey, skOut *rlwe.GLWESecretKey, gadget ring.Gadget, sigma float64, r *ring.Ring, rlweEnc *rlwe.Encryptor) *BootstrapKey {
	ggswEnc := rgsw.NewEncryptor(rlweEnc)

	bk := &BootstrapKey{Value: make([]rgsw.Ciphertext, skIn.Dimension())}
	for i, bit := range skIn.Value {
		pt := r.NewPoly()
		pt.Coeffs[0] = bit
		bk.Value[i] = *ggswEnc.Encrypt(pt, skOut, sigma, r, gadget)
	}
	return bk
}
