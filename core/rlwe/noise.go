package rlwe

// NoiseLWECiphertext returns the signed noise e = Decrypt(ct) - pt
// carried by a fresh LWE encryption of the known plaintext pt, as a
// float64 (the difference is always tiny relative to 2^64, so the
// native-modulus wraparound recovers the correct sign once cast
// through int64). Used by benchmark/test code that needs to report a
// noise budget as a value rather than log it, the way the teacher's
// own noise-reporting helpers do.
func NoiseLWECiphertext(ct *LWECiphertext, pt uint64, sk *SecretKey, dec *Decryptor) float64 {
	raw := dec.DecryptLWE(ct, sk)
	return float64(int64(raw - pt))
}
