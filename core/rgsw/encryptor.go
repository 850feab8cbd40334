package rgsw

import (
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
)

// Encryptor produces GGSW encryptions of a plaintext polynomial,
// grounded on core/rgsw/encryptor.go's "encrypt zero, fold the message
// into the gadget-scaled slot" shape.
type Encryptor struct {
	rlweEnc *rlwe.Encryptor
}

// NewEncryptor builds a GGSW Encryptor sharing mask/noise streams with
// the given rlwe.Encryptor.
func NewEncryptor(rlweEnc *rlwe.Encryptor) *Encryptor {
	return &Encryptor{rlweEnc: rlweEnc}
}

// EncryptZero produces a GGSW encryption of the zero polynomial: every
// row is an independent fresh encryption of zero under sk.
func (e *Encryptor) EncryptZero(k, N int, sk *rlwe.GLWESecretKey, sigma float64, r *ring.Ring, gadget ring.Gadget) *Ciphertext {
	ct := NewCiphertext(k, N, gadget)
	zero := r.NewPoly()
	for c := range ct.Value {
		for l := range ct.Value[c] {
			fresh := e.rlweEnc.EncryptGLWE(zero, sk, sigma, r)
			ct.Value[c][l] = *fresh
		}
	}
	return ct
}

// Encrypt produces a GGSW encryption of the plaintext polynomial pt
// (§3 "GGSW ciphertext": "a list of ell*(k+1) GLWE rows encoding
// m * g^{-i}"). Each row (c, l) is a fresh GLWE encryption of zero with
// pt scaled by the gadget's l-th level folded into the c-th underlying
// polynomial (the mask component c for c<k, or the body for c==k).
func (e *Encryptor) Encrypt(pt ring.Poly, sk *rlwe.GLWESecretKey, sigma float64, r *ring.Ring, gadget ring.Gadget) *Ciphertext {
	k := len(sk.Value)
	ct := e.EncryptZero(k, r.N, sk, sigma, r, gadget)

	for c := range ct.Value {
		for l := 0; l < gadget.LevelCount; l++ {
			shift := uint(64 - gadget.BaseLog*(l+1))
			scaled := r.NewPoly()
			if shift < 64 {
				for i, coeff := range pt.Coeffs {
					scaled.Coeffs[i] = coeff << shift
				}
			}
			r.Add(&ct.Value[c][l].Value[c], &scaled, &ct.Value[c][l].Value[c])
		}
	}
	return ct
}
