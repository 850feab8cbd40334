package rlwe

import (
	"github.com/latticeforge/shortint/ring"
	"github.com/latticeforge/shortint/utils/sampling"
)

// KeyGenerator produces secret keys and key-switching keys from a
// secret generator (§4.2 role 1).
type KeyGenerator struct {
	secretGen *sampling.SecretGenerator
	encryptor *Encryptor
	params    Parameters
}

// NewKeyGenerator builds a KeyGenerator over params, drawing secret
// material from seeder.
func NewKeyGenerator(params Parameters, seeder *sampling.Seeder) *KeyGenerator {
	return &KeyGenerator{
		secretGen: sampling.NewSecretGenerator(seeder),
		encryptor: NewEncryptor(seeder),
		params:    params,
	}
}

// GenSecretKey samples a fresh binary LWE secret key of the engine's
// LWE dimension.
func (kg *KeyGenerator) GenSecretKey() *SecretKey {
	sk := NewSecretKey(kg.params.LWEDimension())
	buf := make([]byte, 1)
	for i := range sk.Value {
		_, _ = kg.secretGen.Read(buf)
		sk.Value[i] = uint64(buf[0] & 1)
	}
	return sk
}

// GenGLWESecretKey samples a fresh ternary GLWE secret key.
func (kg *KeyGenerator) GenGLWESecretKey() *GLWESecretKey {
	sk := NewGLWESecretKey(kg.params.GLWEDimension(), kg.params.PolynomialSize())
	sampler := ring.TernarySampler{Modulus: 0, P: 2.0 / 3.0}
	for i := range sk.Value {
		sampler.Read(kg.secretGen, sk.Value[i])
	}
	return sk
}

// GenKeySwitchingKey generates a decomposed re-encryption of skIn
// under skOut (§3 "Key-switching key"): for every input coordinate and
// every gadget level, an LWE encryption under skOut of that
// coordinate's gadget digit of skIn.
func (kg *KeyGenerator) GenKeySwitchingKey(skIn, skOut *SecretKey, gadget ring.Gadget, sigma float64) *KeySwitchingKey {
	ksk := NewKeySwitchingKey(skIn.Dimension(), skOut.Dimension(), gadget)

	for i := 0; i < skIn.Dimension(); i++ {
		for l := 0; l < gadget.LevelCount; l++ {
			// Encodes s_in[i] * B^{-(l+1)} (as a fraction of the full
			// torus range) into a fresh LWE encryption under skOut.
			shift := uint(64 - gadget.BaseLog*(l+1))
			var scaled uint64
			if shift < 64 {
				scaled = (skIn.Value[i] << shift)
			}
			ksk.Value[i][l] = *kg.encryptor.EncryptLWE(scaled, skOut, sigma)
		}
	}
	return ksk
}
