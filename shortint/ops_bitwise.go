package shortint

// UncheckedBitAnd evaluates f(x,y) = x & y via a bivariate PBS with no
// precondition check (§4.7 unchecked_*): the bivariate packing must
// already fit the ring or the result is garbage (a contract
// violation, §7, not checked here).
func (e *Engine) UncheckedBitAnd(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	acc := GenerateAccumulatorBivariate(sk, func(x, y uint64) uint64 { return x & y }, a.MessageModulus)
	return e.applyBivariateAccumulator(a, b, sk, acc, a.MessageModulus)
}

// UncheckedBitOr evaluates f(x,y) = x | y via a bivariate PBS.
func (e *Engine) UncheckedBitOr(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	acc := GenerateAccumulatorBivariate(sk, func(x, y uint64) uint64 { return x | y }, a.MessageModulus)
	return e.applyBivariateAccumulator(a, b, sk, acc, a.MessageModulus)
}

// UncheckedBitXor evaluates f(x,y) = x ^ y via a bivariate PBS.
func (e *Engine) UncheckedBitXor(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	acc := GenerateAccumulatorBivariate(sk, func(x, y uint64) uint64 { return x ^ y }, a.MessageModulus)
	return e.applyBivariateAccumulator(a, b, sk, acc, a.MessageModulus)
}

// CheckedBitAnd returns ErrCarryFull, leaving a and b unmodified, if
// the bivariate PBS packing a and b is infeasible (§4.7 checked_*);
// otherwise it behaves like UncheckedBitAnd.
func (e *Engine) CheckedBitAnd(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, error) {
	if !IsFunctionalBivariatePBSPossible(a, b) {
		return nil, ErrCarryFull
	}
	return e.UncheckedBitAnd(a, b, sk), nil
}

// CheckedBitOr is CheckedBitAnd's bitor counterpart.
func (e *Engine) CheckedBitOr(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, error) {
	if !IsFunctionalBivariatePBSPossible(a, b) {
		return nil, ErrCarryFull
	}
	return e.UncheckedBitOr(a, b, sk), nil
}

// CheckedBitXor is CheckedBitAnd's bitxor counterpart.
func (e *Engine) CheckedBitXor(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, error) {
	if !IsFunctionalBivariatePBSPossible(a, b) {
		return nil, ErrCarryFull
	}
	return e.UncheckedBitXor(a, b, sk), nil
}

// SmartBitAnd always succeeds (§4.7 smart_*): if the bivariate packing
// is infeasible it clears the carries of a and b in place first, then
// proceeds. Because it may mutate its arguments, repeated calls on the
// same pair are idempotent in plaintext result (§8 property 6).
func (e *Engine) SmartBitAnd(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	e.makeBivariateFeasible(a, b, sk)
	return e.UncheckedBitAnd(a, b, sk)
}

// SmartBitOr is SmartBitAnd's bitor counterpart.
func (e *Engine) SmartBitOr(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	e.makeBivariateFeasible(a, b, sk)
	return e.UncheckedBitOr(a, b, sk)
}

// SmartBitXor is SmartBitAnd's bitxor counterpart.
func (e *Engine) SmartBitXor(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	e.makeBivariateFeasible(a, b, sk)
	return e.UncheckedBitXor(a, b, sk)
}

// BitAnd is the default mode (§4.7): always succeeds, never mutates
// its original arguments (falls back to temporaries when infeasible),
// and its result's degree is always < message_modulus.
func (e *Engine) BitAnd(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	return e.UncheckedBitAnd(x, y, sk)
}

// BitOr is BitAnd's bitor counterpart.
func (e *Engine) BitOr(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	return e.UncheckedBitOr(x, y, sk)
}

// BitXor is BitAnd's bitxor counterpart.
func (e *Engine) BitXor(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	return e.UncheckedBitXor(x, y, sk)
}

// BitAndAssign mutates a in place to hold a & b, matching the
// "default" contract via a temporary on the infeasible path so that
// a's identity (not its value) is preserved across the call. This is
// the shape scenario 2 and 3 of §8 exercise (bitxor_assign,
// bitor_assign).
func (e *Engine) BitAndAssign(a, b *Ciphertext, sk *ServerKey) {
	*a = *e.BitAnd(a, b, sk)
}

// BitOrAssign is BitAndAssign's bitor counterpart.
func (e *Engine) BitOrAssign(a, b *Ciphertext, sk *ServerKey) {
	*a = *e.BitOr(a, b, sk)
}

// BitXorAssign is BitAndAssign's bitxor counterpart.
func (e *Engine) BitXorAssign(a, b *Ciphertext, sk *ServerKey) {
	*a = *e.BitXor(a, b, sk)
}

// makeBivariateFeasible clears a's and/or b's carry in place, stopping
// as soon as the bivariate feasibility predicate holds (§4.7 smart_*):
// it clears a first and rechecks, then clears b too if that alone
// wasn't enough. Clearing both always reaches feasibility, since two
// carry-cleared operands satisfy
// (message_modulus-1)*message_modulus + (message_modulus-1) <
// message_modulus*carry_modulus whenever carry_modulus >= message_modulus.
func (e *Engine) makeBivariateFeasible(a, b *Ciphertext, sk *ServerKey) {
	mustSameModuli(a, b)
	if IsFunctionalBivariatePBSPossible(a, b) {
		return
	}
	*a = *e.ClearCarry(a, sk)
	if IsFunctionalBivariatePBSPossible(a, b) {
		return
	}
	*b = *e.ClearCarry(b, sk)
}

// feasibleOperands returns operands guaranteed to satisfy the
// bivariate feasibility predicate, without mutating a or b: on the
// feasible path it returns a and b directly; otherwise it clears
// carries on cloned temporaries (§4.7 default mode: "Non-mutating on
// the original inputs: uses a temporary").
func (e *Engine) feasibleOperands(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, *Ciphertext) {
	mustSameModuli(a, b)
	if IsFunctionalBivariatePBSPossible(a, b) {
		return a, b
	}
	x := a.Clone()
	y := b.Clone()
	e.makeBivariateFeasible(x, y, sk)
	return x, y
}
