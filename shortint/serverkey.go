package shortint

import (
	"github.com/latticeforge/shortint/core/rgsw/blindrot"
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/utils/sampling"
)

// ServerKey is the publishable evaluation key of §2's data flow:
// ServerKey = (bootstrap_key, key_switching_key, message_modulus,
// carry_modulus, max_degree). It is read-only during operation and
// safe to share across threads (§5 "Server key: shared immutable").
type ServerKey struct {
	Params          rlwe.Parameters
	BootstrapKey    *blindrot.BootstrapKey
	KeySwitchingKey *rlwe.KeySwitchingKey
	MessageModulus  uint64
	CarryModulus    uint64
	MaxDegree       uint64
}

// GenerateServerKey derives a ServerKey from ck, drawing fresh key
// material from seeder. The bootstrap key always encrypts bits of the
// small LWE secret key under the GLWE secret key, and the
// key-switching key always maps the large LWE key down to the small
// one: both compositions in §4.5 ({KS,BR,SE} and {BR,SE,KS}) reuse
// these same two keys, only in different order (see Engine.PBS in
// engine.go).
func GenerateServerKey(ck *ClientKey, seeder *sampling.Seeder) *ServerKey {
	params := ck.Params
	ringQ := params.RingQ()
	enc := rlwe.NewEncryptor(seeder)
	kg := rlwe.NewKeyGenerator(params, seeder)

	bk := blindrot.GenBootstrapKey(ck.LWESecretKey, ck.GLWESecretKey, params.PBSGadget(), params.GLWEModularStdDev(), ringQ, enc)
	ksk := kg.GenKeySwitchingKey(ck.LargeLWESecretKey, ck.LWESecretKey, params.KSGadget(), params.LWEModularStdDev())

	return &ServerKey{
		Params:          params,
		BootstrapKey:    bk,
		KeySwitchingKey: ksk,
		MessageModulus:  params.MessageModulus(),
		CarryModulus:    params.CarryModulus(),
		MaxDegree:       params.MessageModulus()*params.CarryModulus() - 1,
	}
}
