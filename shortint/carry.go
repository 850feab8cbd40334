package shortint

import "github.com/latticeforge/shortint/internal/fjexec"

// IsFunctionalBivariatePBSPossible reports whether a bivariate PBS
// packing a and b into one ciphertext still fits the ring (§4.7's
// feasibility predicate): the largest value the packing
// a.Degree*message_modulus + b.Degree can take must stay below
// message_modulus*carry_modulus, since that packed value is exactly
// the PBS input index applyBivariateAccumulator builds via packLWE.
func IsFunctionalBivariatePBSPossible(a, b *Ciphertext) bool {
	mustSameModuli(a, b)
	total := a.MessageModulus * a.CarryModulus
	return a.Degree*a.MessageModulus+b.Degree < total
}

// ClearCarry runs ct through a PBS evaluating the identity modulo
// message_modulus, reducing its degree below message_modulus (§4.6's
// "carry-clearing fallback", used by smart_*/default operation modes
// to restore feasibility before a bivariate PBS).
func (e *Engine) ClearCarry(ct *Ciphertext, sk *ServerKey) *Ciphertext {
	acc := GenerateAccumulator(sk, func(x uint64) uint64 { return x % ct.MessageModulus })
	return e.applyAccumulator(ct, sk, acc)
}

// ExtractMessage returns a fresh ciphertext encoding ct's value modulo
// message_modulus, used by Propagate's message-extraction PBS
// (§4.7.1 step 2).
func (e *Engine) ExtractMessage(ct *Ciphertext, sk *ServerKey) *Ciphertext {
	return e.ClearCarry(ct, sk)
}

// ExtractCarry returns a fresh ciphertext encoding ct's value divided
// by message_modulus, i.e. the carry bits above the message slot
// (§4.7.1 step 2).
func (e *Engine) ExtractCarry(ct *Ciphertext, sk *ServerKey) *Ciphertext {
	acc := GenerateAccumulator(sk, func(x uint64) uint64 { return x / ct.MessageModulus })
	out := e.applyAccumulator(ct, sk, acc)
	return out
}

// Propagate clears the carry of block i (§4.7.1): if the block's
// carry is already empty this is a no-op; otherwise it extracts
// message and carry via two independent PBS calls, replaces block i
// with the message, and additively folds the carry into block i+1 (if
// one exists).
func (e *Engine) Propagate(rct *RadixCiphertext, i int, sk *ServerKey) {
	e.propagate(rct, i, sk, false)
}

// ParallelPropagate behaves like Propagate but launches the two PBS
// calls of step 2 concurrently (§4.7.1 "The parallel variant launches
// the two PBS calls concurrently").
func (e *Engine) ParallelPropagate(rct *RadixCiphertext, i int, sk *ServerKey) {
	e.propagate(rct, i, sk, true)
}

func (e *Engine) propagate(rct *RadixCiphertext, i int, sk *ServerKey, parallel bool) {
	block := &rct.Blocks[i]
	if block.CarryIsEmpty() {
		return
	}

	var message, carry *Ciphertext
	extractBoth := func() {
		message = e.ExtractMessage(block, sk)
		carry = e.ExtractCarry(block, sk)
	}
	if parallel {
		fjexec.ParallelPair(
			func() { message = e.ExtractMessage(block, sk) },
			func() { carry = e.ExtractCarry(block, sk) },
		)
	} else {
		extractBoth()
	}

	rct.Blocks[i] = *message
	if i+1 < len(rct.Blocks) {
		next := &rct.Blocks[i+1]
		summed := e.unchecked(next, carry)
		rct.Blocks[i+1] = *summed
	}
}

// FullPropagate clears carries from the least- to the
// most-significant block (§4.7.1 "full_propagate loops from least- to
// most-significant block"). Blocks are processed sequentially: only
// the two PBS calls within a single block's Propagate run in parallel
// (§9 open question, resolved in DESIGN.md as an intentional
// simplification rather than a parallel-prefix scheme).
func (e *Engine) FullPropagate(rct *RadixCiphertext, sk *ServerKey) {
	for i := range rct.Blocks {
		e.ParallelPropagate(rct, i, sk)
	}
}

// unchecked adds two single-block ciphertexts with no carry check,
// summing degrees (§4.7 unchecked_add, used internally by carry
// folding which by construction never overflows the ring: the carry
// block's degree is always < carry_modulus and the receiving block
// was just cleared to < message_modulus).
func (e *Engine) unchecked(a, b *Ciphertext) *Ciphertext {
	mustSameModuli(a, b)
	sum := a.Value.CopyNew()
	for i := range sum.Value {
		sum.Value[i] += b.Value.Value[i]
	}
	return &Ciphertext{
		Value:          sum,
		MessageModulus: a.MessageModulus,
		CarryModulus:   a.CarryModulus,
		Degree:         a.Degree + b.Degree,
		PBSOrder:       a.PBSOrder,
	}
}
