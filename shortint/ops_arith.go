package shortint

import "github.com/latticeforge/shortint/ring"

// UncheckedAdd adds a and b linearly with no carry check (§4.7
// "add/sub: linear"): the result's degree is the raw sum of the
// operands' degrees, which may exceed message_modulus*carry_modulus-1
// (a contract violation to feed onward without clearing, §7).
func (e *Engine) UncheckedAdd(a, b *Ciphertext) *Ciphertext {
	return e.unchecked(a, b)
}

// UncheckedNeg computes -ct, re-centred into a representable range
// (§4.7 "neg: opposite + shift to re-centre within the valid range"):
// z is the smallest multiple of message_modulus strictly greater than
// ct.Degree, and the result is z - ct encoded, with degree z-1.
func (e *Engine) UncheckedNeg(ct *Ciphertext) *Ciphertext {
	messageModulus := ct.MessageModulus
	modulusSup := ct.Degree + 1
	q := (modulusSup + messageModulus - 1) / messageModulus
	z := q * messageModulus

	d := deltaFromParams(ct.MessageModulus, ct.CarryModulus)
	out := ct.Value.CopyNew()
	for i := range out.Value {
		out.Value[i] = -out.Value[i]
	}
	out.SetBody(out.Body() + z*d)

	return &Ciphertext{
		Value:          out,
		MessageModulus: ct.MessageModulus,
		CarryModulus:   ct.CarryModulus,
		Degree:         z - 1,
		PBSOrder:       ct.PBSOrder,
	}
}

// UncheckedSub computes a - b as a + (-b) (§4.7 "add/sub: linear").
func (e *Engine) UncheckedSub(a, b *Ciphertext) *Ciphertext {
	mustSameModuli(a, b)
	return e.unchecked(a, e.UncheckedNeg(b))
}

// UncheckedScalarAdd adds a plaintext scalar to ct (§4.7
// "scalar_add/scalar_sub/scalar_mul: linear under the encoding").
func (e *Engine) UncheckedScalarAdd(ct *Ciphertext, scalar uint64) *Ciphertext {
	d := deltaFromParams(ct.MessageModulus, ct.CarryModulus)
	digit := scalar % ct.MessageModulus
	out := ct.Value.CopyNew()
	out.SetBody(out.Body() + digit*d)
	return &Ciphertext{
		Value:          out,
		MessageModulus: ct.MessageModulus,
		CarryModulus:   ct.CarryModulus,
		Degree:         ct.Degree + digit,
		PBSOrder:       ct.PBSOrder,
	}
}

// UncheckedScalarSub subtracts a plaintext scalar from ct.
func (e *Engine) UncheckedScalarSub(ct *Ciphertext, scalar uint64) *Ciphertext {
	digit := scalar % ct.MessageModulus
	return e.UncheckedScalarAdd(ct, (ct.MessageModulus-digit)%ct.MessageModulus)
}

// UncheckedScalarMul scales ct by a plaintext scalar: mask and body
// both scale linearly (§4.7 "scalar_mul").
func (e *Engine) UncheckedScalarMul(ct *Ciphertext, scalar uint64) *Ciphertext {
	out := ct.Value.CopyNew()
	ring.ScalarMulAssign(out.Value, scalar)
	return &Ciphertext{
		Value:          out,
		MessageModulus: ct.MessageModulus,
		CarryModulus:   ct.CarryModulus,
		Degree:         ct.Degree * scalar,
		PBSOrder:       ct.PBSOrder,
	}
}

// ScalarMul is the default-mode scalar multiplication (§4.7): it
// always succeeds, inserting a carry-clearing PBS when the raw scaled
// degree would overflow the ring.
func (e *Engine) ScalarMul(ct *Ciphertext, scalar uint64, sk *ServerKey) *Ciphertext {
	raw := e.UncheckedScalarMul(ct, scalar)
	if raw.Degree > sk.MaxDegree {
		return e.ClearCarry(raw, sk)
	}
	return raw
}

// Add is the default-mode addition (§4.7): always succeeds, inserting
// a carry-clearing PBS on a temporary when the combined degree would
// exceed message_modulus*carry_modulus-1, leaving a and b unmodified.
func (e *Engine) Add(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	x, y := a, b
	if x.Degree+y.Degree > sk.MaxDegree {
		x = e.ClearCarry(a, sk)
	}
	if x.Degree+y.Degree > sk.MaxDegree {
		y = e.ClearCarry(b, sk)
	}
	return e.unchecked(x, y)
}

// Sub is Add's subtraction counterpart.
func (e *Engine) Sub(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	return e.Add(a, e.UncheckedNeg(b), sk)
}

// CheckedAdd returns ErrCarryFull, leaving a and b unmodified, if
// their combined degree would exceed the ring (§4.7 checked_*).
func (e *Engine) CheckedAdd(a, b *Ciphertext, sk *ServerKey) (*Ciphertext, error) {
	mustSameModuli(a, b)
	if a.Degree+b.Degree > sk.MaxDegree {
		return nil, ErrCarryFull
	}
	return e.unchecked(a, b), nil
}

// SmartAdd always succeeds (§4.7 smart_*), clearing the carry of a
// and/or b in place before adding if their combined degree would
// overflow.
func (e *Engine) SmartAdd(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	mustSameModuli(a, b)
	if a.Degree+b.Degree > sk.MaxDegree {
		*a = *e.ClearCarry(a, sk)
	}
	if a.Degree+b.Degree > sk.MaxDegree {
		*b = *e.ClearCarry(b, sk)
	}
	return e.unchecked(a, b)
}

// MulLSB evaluates f(x,y) = (x*y) mod message_modulus via a bivariate
// PBS (§4.7 "mul_lsb/mul_msb: bivariate PBS with multiplication then
// either mod-M or /M").
func (e *Engine) MulLSB(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	acc := GenerateAccumulatorBivariate(sk, func(lhs, rhs uint64) uint64 { return (lhs * rhs) % x.MessageModulus }, x.MessageModulus)
	return e.applyBivariateAccumulator(x, y, sk, acc, x.MessageModulus)
}

// MulMSB evaluates f(x,y) = (x*y) / message_modulus via a bivariate
// PBS: the carry word of the product.
func (e *Engine) MulMSB(a, b *Ciphertext, sk *ServerKey) *Ciphertext {
	x, y := e.feasibleOperands(a, b, sk)
	acc := GenerateAccumulatorBivariate(sk, func(lhs, rhs uint64) uint64 { return (lhs * rhs) / x.MessageModulus }, x.MessageModulus)
	return e.applyBivariateAccumulator(x, y, sk, acc, x.MessageModulus)
}
