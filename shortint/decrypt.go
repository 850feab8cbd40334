package shortint

import "math/big"

// Decrypt decrypts ct under ck, selected by ct.PBSOrder (§4.6
// "Decryption"): adds the rounding bit Delta/2 to center on the
// nearest message slot, divides by Delta, and reduces modulo
// message_modulus.
func (e *Engine) Decrypt(ck *ClientKey, ct *Ciphertext) uint64 {
	sk := ck.secretKeyFor(ct.PBSOrder)
	raw := e.Dec.DecryptLWE(ct.Value, sk)
	d := deltaFromParams(ct.MessageModulus, ct.CarryModulus)
	return ((raw + d/2) / d) % ct.MessageModulus
}

// DecryptWithoutPadding decrypts a ciphertext produced by
// EncryptWithoutPadding, using the doubled Delta.
func (e *Engine) DecryptWithoutPadding(ck *ClientKey, ct *Ciphertext) uint64 {
	sk := ck.secretKeyFor(ct.PBSOrder)
	raw := e.Dec.DecryptLWE(ct.Value, sk)
	d := 2 * deltaFromParams(ct.MessageModulus, ct.CarryModulus)
	return ((raw + d/2) / d) % ct.MessageModulus
}

// DecryptNativeCRT decrypts a ciphertext produced by
// EncryptNativeCRT: scale the raw decryption by message_modulus and
// take the high 64 bits (i.e. divide by 2^64, rounding), then reduce
// modulo message_modulus (§4.6 "For native_crt, scale by basis then
// reduce mod basis").
func (e *Engine) DecryptNativeCRT(ck *ClientKey, ct *Ciphertext) uint64 {
	sk := ck.secretKeyFor(ct.PBSOrder)
	raw := e.Dec.DecryptLWE(ct.Value, sk)

	prod := new(big.Int).Mul(new(big.Int).SetUint64(raw), new(big.Int).SetUint64(ct.MessageModulus))
	twoTo64 := new(big.Int).Lsh(big.NewInt(1), 64)
	rounded := new(big.Int).Add(prod, new(big.Int).Rsh(twoTo64, 1))
	q := new(big.Int).Div(rounded, twoTo64)
	return new(big.Int).Mod(q, new(big.Int).SetUint64(ct.MessageModulus)).Uint64()
}

// DecryptCompressed expands sct and decrypts it under ck, without
// retaining the expanded ciphertext (a one-shot convenience used by
// the seeded-compression round-trip property, §8 property 2).
func (e *Engine) DecryptCompressed(ck *ClientKey, sct *SeededCiphertext) uint64 {
	return e.Decrypt(ck, sct.Expand())
}
