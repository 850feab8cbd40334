package shortint

// RadixCiphertext is a minimal multi-block little-endian integer
// representation (§4.7.1): Blocks[0] is the least-significant block.
// The full radix/CRT integer layer described in §1 as out of scope for
// the core lives one level up (the Boolean gate and fixed-width
// integer layers §1 names as external collaborators); this type
// exists only to exercise FullPropagate end-to-end (§8 scenario 4).
type RadixCiphertext struct {
	Blocks []Ciphertext
}

// NewRadixCiphertext wraps blocks as a RadixCiphertext.
func NewRadixCiphertext(blocks []Ciphertext) *RadixCiphertext {
	return &RadixCiphertext{Blocks: blocks}
}

// EncryptRadix encrypts value as a little-endian base-message_modulus
// radix of the given block count.
func (e *Engine) EncryptRadix(ck *ClientKey, value uint64, blockCount int, order PBSOrder) *RadixCiphertext {
	messageModulus := ck.Params.MessageModulus()
	blocks := make([]Ciphertext, blockCount)
	for i := range blocks {
		digit := value % messageModulus
		value /= messageModulus
		blocks[i] = *e.Encrypt(ck, digit, order)
	}
	return &RadixCiphertext{Blocks: blocks}
}

// DecryptRadix reassembles the little-endian base-message_modulus
// value a RadixCiphertext encodes.
func (e *Engine) DecryptRadix(ck *ClientKey, rct *RadixCiphertext) uint64 {
	messageModulus := ck.Params.MessageModulus()
	var value, scale uint64 = 0, 1
	for i := range rct.Blocks {
		value += e.Decrypt(ck, &rct.Blocks[i]) * scale
		scale *= messageModulus
	}
	return value
}

// UncheckedAddRadix adds two RadixCiphertexts block-wise with no carry
// handling (§4.7.1 scenario 4's "unchecked-add them" step): the caller
// is expected to FullPropagate the result afterward.
func (e *Engine) UncheckedAddRadix(a, b *RadixCiphertext) *RadixCiphertext {
	if len(a.Blocks) != len(b.Blocks) {
		panic("shortint: mismatched radix block counts")
	}
	out := make([]Ciphertext, len(a.Blocks))
	for i := range out {
		out[i] = *e.unchecked(&a.Blocks[i], &b.Blocks[i])
	}
	return &RadixCiphertext{Blocks: out}
}
