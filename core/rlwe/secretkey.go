package rlwe

import "github.com/latticeforge/shortint/ring"

// SecretKey is a binary LWE secret key of dimension n (§3 "LWE
// ciphertext"). Coefficients are 0 or 1.
type SecretKey struct {
	Value []uint64
}

// NewSecretKey allocates a zeroed SecretKey of the given dimension.
func NewSecretKey(dimension int) *SecretKey {
	return &SecretKey{Value: make([]uint64, dimension)}
}

// Dimension returns n.
func (sk *SecretKey) Dimension() int { return len(sk.Value) }

// GLWESecretKey is the GLWE secret key: k polynomials of degree N
// (§3 "GLWE ciphertext"). Coefficients are ternary {-1,0,1} (mod the
// ring's modulus discipline).
type GLWESecretKey struct {
	Value []ring.Poly
}

// NewGLWESecretKey allocates a zeroed GLWESecretKey with k
// polynomials of degree N.
func NewGLWESecretKey(k, N int) *GLWESecretKey {
	v := make([]ring.Poly, k)
	for i := range v {
		v[i] = ring.Poly{Coeffs: make([]uint64, N)}
	}
	return &GLWESecretKey{Value: v}
}

// AsLargeLWESecretKey reinterprets the GLWE secret key as an LWE
// secret key of dimension k*N by flattening its k polynomials'
// coefficients in order (§2's "large_lwe_sk = glwe_sk reinterpreted as
// an LWE key of dimension k*N").
func (sk *GLWESecretKey) AsLargeLWESecretKey() *SecretKey {
	N := 0
	if len(sk.Value) > 0 {
		N = sk.Value[0].N()
	}
	flat := make([]uint64, len(sk.Value)*N)
	for i, poly := range sk.Value {
		copy(flat[i*N:(i+1)*N], poly.Coeffs)
	}
	return &SecretKey{Value: flat}
}
