package rlwe

import (
	"math"

	"github.com/latticeforge/shortint/ring"
	"github.com/latticeforge/shortint/utils/sampling"
)

// Encryptor encrypts LWE and GLWE plaintexts under a secret key, using
// an EncryptionGenerator's mask and noise substreams (§4.2).
type Encryptor struct {
	Gen *sampling.EncryptionGenerator
}

// NewEncryptor builds an Encryptor drawing its mask/noise streams from
// the next seeds of seeder.
func NewEncryptor(seeder *sampling.Seeder) *Encryptor {
	return &Encryptor{Gen: sampling.NewEncryptionGenerator(seeder)}
}

func gaussianBound(sigma float64) uint64 {
	// 10-sigma bound: generous enough that rejection almost never
	// triggers while still excluding pathological tail draws.
	return uint64(math.Ceil(10 * sigma))
}

// EncryptLWE samples a fresh LWE encryption of plaintext pt (already
// encoded, i.e. m*Delta) under sk with noise standard deviation sigma.
func (e *Encryptor) EncryptLWE(pt uint64, sk *SecretKey, sigma float64) *LWECiphertext {
	ct := NewLWECiphertext(sk.Dimension())
	e.encryptLWEInto(ct, pt, sk, sigma, e.Gen.MaskStream)
	return ct
}

func (e *Encryptor) encryptLWEInto(ct *LWECiphertext, pt uint64, sk *SecretKey, sigma float64, maskSrc ring.ByteSource) {
	maskPoly := ring.Poly{Coeffs: ct.Mask()}
	ring.UniformSampler{Modulus: 0}.Read(maskSrc, maskPoly)

	noise := ring.Poly{Coeffs: make([]uint64, 1)}
	ring.GaussianSampler{Sigma: sigma, Bound: gaussianBound(sigma)}.Read(e.Gen.NoiseStream, noise)

	b := ring.DotProduct(ct.Mask(), sk.Value) + pt + noise.Coeffs[0]
	ct.SetBody(b)
}

// EncryptLWECompressed samples a seeded LWE encryption: only the body
// and the seed the mask was drawn from are retained (§3, §4.6
// "_compressed variants").
func (e *Encryptor) EncryptLWECompressed(pt uint64, sk *SecretKey, sigma float64, seeder *sampling.Seeder) *SeededLWECiphertext {
	seed := e.Gen.ForkMaskStream(seeder)
	full := NewLWECiphertext(sk.Dimension())
	e.encryptLWEInto(full, pt, sk, sigma, e.Gen.MaskStream)
	return &SeededLWECiphertext{Body: full.Body(), CompressionSeed: seed, Dimension: sk.Dimension()}
}

// EncryptGLWE samples a fresh GLWE encryption of the plaintext
// polynomial pt (already encoded) under sk with noise standard
// deviation sigma.
func (e *Encryptor) EncryptGLWE(pt ring.Poly, sk *GLWESecretKey, sigma float64, r *ring.Ring) *GLWECiphertext {
	k := len(sk.Value)
	ct := NewGLWECiphertext(k, r.N)
	e.encryptGLWEInto(ct, pt, sk, sigma, r, e.Gen.MaskStream)
	return ct
}

func (e *Encryptor) encryptGLWEInto(ct *GLWECiphertext, pt ring.Poly, sk *GLWESecretKey, sigma float64, r *ring.Ring, maskSrc ring.ByteSource) {
	k := len(sk.Value)
	var modulus uint64
	if r.Custom {
		modulus = r.Modulus
	}

	for i := 0; i < k; i++ {
		ring.UniformSampler{Modulus: modulus}.Read(maskSrc, ct.Value[i])
	}

	noise := ring.Poly{Coeffs: make([]uint64, r.N)}
	ring.GaussianSampler{Modulus: modulus, Sigma: sigma, Bound: gaussianBound(sigma)}.Read(e.Gen.NoiseStream, noise)

	body := ring.Poly{Coeffs: make([]uint64, r.N)}
	copy(body.Coeffs, pt.Coeffs)
	r.Add(&body, &noise, &body)
	prod := ring.Poly{Coeffs: make([]uint64, r.N)}
	for i := 0; i < k; i++ {
		r.MulPoly(&ct.Value[i], &sk.Value[i], &prod)
		r.Add(&body, &prod, &body)
	}
	copy(ct.Body().Coeffs, body.Coeffs)
}

// EncryptGLWECompressed samples a seeded GLWE encryption.
func (e *Encryptor) EncryptGLWECompressed(pt ring.Poly, sk *GLWESecretKey, sigma float64, r *ring.Ring, seeder *sampling.Seeder) *SeededGLWECiphertext {
	seed := e.Gen.ForkMaskStream(seeder)
	k := len(sk.Value)
	full := NewGLWECiphertext(k, r.N)
	e.encryptGLWEInto(full, pt, sk, sigma, r, e.Gen.MaskStream)
	return &SeededGLWECiphertext{Body: full.Body().CopyNew(), CompressionSeed: seed, GLWEDimension: k, PolynomialSize: r.N}
}
