package shortint

import (
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/utils/sampling"
)

// ClientKey holds the secret material of §2's data flow:
// (small_lwe_sk, glwe_sk, large_lwe_sk), the last of which is glwe_sk
// reinterpreted as an LWE key of dimension k*N.
type ClientKey struct {
	Params            rlwe.Parameters
	LWESecretKey      *rlwe.SecretKey
	GLWESecretKey     *rlwe.GLWESecretKey
	LargeLWESecretKey *rlwe.SecretKey
}

// GenerateClientKey samples a fresh ClientKey under params, drawing
// secret material from seeder.
func GenerateClientKey(params rlwe.Parameters, seeder *sampling.Seeder) *ClientKey {
	kg := rlwe.NewKeyGenerator(params, seeder)
	glweSk := kg.GenGLWESecretKey()
	return &ClientKey{
		Params:            params,
		LWESecretKey:      kg.GenSecretKey(),
		GLWESecretKey:     glweSk,
		LargeLWESecretKey: glweSk.AsLargeLWESecretKey(),
	}
}

// secretKeyFor returns the secret key that decrypts a ciphertext of
// the given pbs_order (§3 "pbs_order"): KeyswitchBootstrap
// ciphertexts live under the large key, BootstrapKeyswitch ones under
// the small key.
func (ck *ClientKey) secretKeyFor(order PBSOrder) *rlwe.SecretKey {
	switch order {
	case KeyswitchBootstrap:
		return ck.LargeLWESecretKey
	case BootstrapKeyswitch:
		return ck.LWESecretKey
	default:
		panic("shortint: unknown pbs_order")
	}
}

// noiseStdDevFor returns the encryption noise standard deviation used
// for a fresh ciphertext of the given pbs_order (§4.6: "glwe-stddev
// for KeyswitchBootstrap, lwe-stddev for BootstrapKeyswitch").
func (ck *ClientKey) noiseStdDevFor(order PBSOrder) float64 {
	switch order {
	case KeyswitchBootstrap:
		return ck.Params.GLWEModularStdDev()
	case BootstrapKeyswitch:
		return ck.Params.LWEModularStdDev()
	default:
		panic("shortint: unknown pbs_order")
	}
}
