package shortint

// UncheckedGreater evaluates f(x,y) = 1 if x > y else 0 via a
// bivariate PBS (§4.7 "greater, less, equal... bivariate PBS with the
// boolean predicate").
func (e *Engine) UncheckedGreater(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	acc := GenerateAccumulatorBivariate(sk, func(x, y uint64) uint64 {
		if x > y {
			return 1
		}
		return 0
	}, a.MessageModulus)
	return e.applyBivariateAccumulator(a, b, sk, acc, a.MessageModulus)
}

// UncheckedLess evaluates f(x,y) = 1 if x < y else 0.
func (e *Engine) UncheckedLess(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	acc := GenerateAccumulatorBivariate(sk, func(x, y uint64) uint64 {
		if x < y {
			return 1
		}
		return 0
	}, a.MessageModulus)
	return e.applyBivariateAccumulator(a, b, sk, acc, a.MessageModulus)
}

// UncheckedEqual evaluates f(x,y) = 1 if x == y else 0.
func (e *Engine) UncheckedEqual(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	acc := GenerateAccumulatorBivariate(sk, func(x, y uint64) uint64 {
		if x == y {
			return 1
		}
		return 0
	}, a.MessageModulus)
	return e.applyBivariateAccumulator(a, b, sk, acc, a.MessageModulus)
}

// CheckedGreater returns ErrCarryFull, leaving a and b unmodified, if
// the bivariate packing is infeasible (§4.7 checked_*).
func (e *Engine) CheckedGreater(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, error) {
	if !IsFunctionalBivariatePBSPossible(a, b) {
		return nil, ErrCarryFull
	}
	return e.UncheckedGreater(a, b, sk), nil
}

// CheckedLess is CheckedGreater's less-than counterpart.
func (e *Engine) CheckedLess(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, error) {
	if !IsFunctionalBivariatePBSPossible(a, b) {
		return nil, ErrCarryFull
	}
	return e.UncheckedLess(a, b, sk), nil
}

// CheckedEqual is CheckedGreater's equality counterpart.
func (e *Engine) CheckedEqual(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, error) {
	if !IsFunctionalBivariatePBSPossible(a, b) {
		return nil, ErrCarryFull
	}
	return e.UncheckedEqual(a, b, sk), nil
}

// SmartGreater always succeeds (§4.7 smart_*), clearing carries on a
// and/or b in place first if needed.
func (e *Engine) SmartGreater(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	e.makeBivariateFeasible(a, b, sk)
	return e.UncheckedGreater(a, b, sk)
}

// SmartLess is SmartGreater's less-than counterpart.
func (e *Engine) SmartLess(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	e.makeBivariateFeasible(a, b, sk)
	return e.UncheckedLess(a, b, sk)
}

// SmartEqual is SmartGreater's equality counterpart.
func (e *Engine) SmartEqual(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	e.makeBivariateFeasible(a, b, sk)
	return e.UncheckedEqual(a, b, sk)
}

// Greater is the default-mode comparison: always succeeds, never
// mutates a or b.
func (e *Engine) Greater(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	return e.UncheckedGreater(x, y, sk)
}

// Less is Greater's less-than counterpart.
func (e *Engine) Less(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	return e.UncheckedLess(x, y, sk)
}

// Equal is Greater's equality counterpart.
func (e *Engine) Equal(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	return e.UncheckedEqual(x, y, sk)
}
