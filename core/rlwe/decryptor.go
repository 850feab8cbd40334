package rlwe

import "github.com/latticeforge/shortint/ring"

// Decryptor decrypts LWE/GLWE ciphertexts under a secret key.
type Decryptor struct{}

// NewDecryptor builds a Decryptor. It carries no state: decryption is
// a pure function of ciphertext and key.
func NewDecryptor() *Decryptor { return &Decryptor{} }

// DecryptLWE returns the noisy plaintext m*Delta + e encoded in ct
// under sk (§3 "LWE ciphertext" invariant).
func (d *Decryptor) DecryptLWE(ct *LWECiphertext, sk *SecretKey) uint64 {
	return ct.Body() - ring.DotProduct(ct.Mask(), sk.Value)
}

// DecryptGLWE returns the noisy plaintext polynomial encoded in ct
// under sk.
func (d *Decryptor) DecryptGLWE(ct *GLWECiphertext, sk *GLWESecretKey, r *ring.Ring) ring.Poly {
	out := ring.Poly{Coeffs: make([]uint64, r.N)}
	copy(out.Coeffs, ct.Body().Coeffs)

	prod := ring.Poly{Coeffs: make([]uint64, r.N)}
	for i, a := range ct.Mask() {
		r.MulPoly(&a, &sk.Value[i], &prod)
		r.Sub(&out, &prod, &out)
	}
	return out
}
