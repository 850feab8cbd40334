package shortint

import (
	"math/big"

	"github.com/latticeforge/shortint/utils/sampling"
)

// deltaFromParams returns the standard (padded) encoding scale
// Delta = 2^63 / (message_modulus*carry_modulus), §3 "Plaintext
// encoding": the top bit above the message+carry bits is the padding
// bit PBS needs kept at zero.
func deltaFromParams(messageModulus, carryModulus uint64) uint64 {
	return (uint64(1) << 63) / (messageModulus * carryModulus)
}

// nativeCRTDelta returns the 2^64/message_modulus scale used by the
// native_crt encoding (§4.6), computed exactly via math/big since
// message_modulus need not divide a power of two evenly (CRT moduli
// are typically small coprime integers like 3, 5, 7), mirroring
// core/rgsw/blindrot/evaluator.go's ModSwitchTo2N big.Int rounding.
func nativeCRTDelta(messageModulus uint64) uint64 {
	num := new(big.Int).Lsh(big.NewInt(1), 64)
	den := new(big.Int).SetUint64(messageModulus)
	return new(big.Int).Div(num, den).Uint64()
}

// Encrypt encodes msg mod message_modulus as msg*Delta and samples a
// fresh LWE encryption under the key and noise parameter order
// selects (§4.6 "Encryption"). The result's degree is
// message_modulus-1.
func (e *Engine) Encrypt(ck *ClientKey, msg uint64, order PBSOrder) *Ciphertext {
	messageModulus := ck.Params.MessageModulus()
	carryModulus := ck.Params.CarryModulus()
	pt := (msg % messageModulus) * deltaFromParams(messageModulus, carryModulus)
	return e.encryptEncoded(ck, pt, messageModulus-1, order)
}

// UncheckedEncrypt behaves like Encrypt but lets degree fill the
// entire carry space (message_modulus*carry_modulus - 1): used only
// in tests that need to exercise a carry-full ciphertext directly
// (§4.6 "unchecked_encrypt").
func (e *Engine) UncheckedEncrypt(ck *ClientKey, msg uint64, order PBSOrder) *Ciphertext {
	messageModulus := ck.Params.MessageModulus()
	carryModulus := ck.Params.CarryModulus()
	pt := (msg % (messageModulus * carryModulus)) * deltaFromParams(messageModulus, carryModulus)
	return e.encryptEncoded(ck, pt, messageModulus*carryModulus-1, order)
}

// EncryptWithoutPadding doubles Delta, reclaiming the padding bit
// (§3, §4.6 "_without_padding variants"). The result still decodes
// correctly via DecryptWithoutPadding, but is not a valid PBS input
// (no padding bit is free).
func (e *Engine) EncryptWithoutPadding(ck *ClientKey, msg uint64, order PBSOrder) *Ciphertext {
	messageModulus := ck.Params.MessageModulus()
	carryModulus := ck.Params.CarryModulus()
	pt := (msg % messageModulus) * (2 * deltaFromParams(messageModulus, carryModulus))
	return e.encryptEncoded(ck, pt, messageModulus-1, order)
}

// EncryptNativeCRT scales msg by 2^64/message_modulus rather than the
// padded Delta, leaving no carry space (§4.6 "native_crt").
func (e *Engine) EncryptNativeCRT(ck *ClientKey, msg uint64, order PBSOrder) *Ciphertext {
	messageModulus := ck.Params.MessageModulus()
	pt := (msg % messageModulus) * nativeCRTDelta(messageModulus)
	return e.encryptEncoded(ck, pt, messageModulus-1, order)
}

func (e *Engine) encryptEncoded(ck *ClientKey, pt, degree uint64, order PBSOrder) *Ciphertext {
	sk := ck.secretKeyFor(order)
	sigma := ck.noiseStdDevFor(order)
	val := e.Enc.EncryptLWE(pt, sk, sigma)
	return &Ciphertext{
		Value:          val,
		MessageModulus: ck.Params.MessageModulus(),
		CarryModulus:   ck.Params.CarryModulus(),
		Degree:         degree,
		PBSOrder:       order,
	}
}

// EncryptCompressed samples a seeded (compressed) encryption of msg
// (§4.6 "_compressed variants"): only the body and a fresh mask seed
// are retained. seeder must be distinct from any seeder used
// concurrently by another thread (§4.2).
func (e *Engine) EncryptCompressed(ck *ClientKey, msg uint64, order PBSOrder, seeder *sampling.Seeder) *SeededCiphertext {
	messageModulus := ck.Params.MessageModulus()
	carryModulus := ck.Params.CarryModulus()
	pt := (msg % messageModulus) * deltaFromParams(messageModulus, carryModulus)

	sk := ck.secretKeyFor(order)
	sigma := ck.noiseStdDevFor(order)
	val := e.Enc.EncryptLWECompressed(pt, sk, sigma, seeder)
	return &SeededCiphertext{
		Value:          val,
		MessageModulus: messageModulus,
		CarryModulus:   carryModulus,
		Degree:         messageModulus - 1,
		PBSOrder:       order,
	}
}
