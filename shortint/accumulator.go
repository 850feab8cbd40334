package shortint

import (
	"github.com/latticeforge/shortint/core/rgsw/blindrot"
	"github.com/latticeforge/shortint/ring"
)

// Accumulator is a GLWE lookup table together with the tight degree
// bound it imposes on any ciphertext produced through it (§3 "Lookup
// table (accumulator)"): Degree = max_i f(i).
type Accumulator struct {
	LUT    ring.Poly
	Degree uint64
}

// delta returns the standard (padded) encoding scale Delta = 2^63 /
// (message_modulus*carry_modulus), §3 "Plaintext encoding".
func delta(sk *ServerKey) uint64 {
	return (uint64(1) << 63) / (sk.MessageModulus * sk.CarryModulus)
}

// GenerateAccumulator fills a GLWE accumulator for the univariate
// function f: [0, message_modulus*carry_modulus) -> u64 (§4.6
// "generate_accumulator"), wrapping blindrot.GenerateAccumulator with
// the shortint-level Delta and tracking f's maximum value as the
// resulting ciphertexts' degree.
func GenerateAccumulator(sk *ServerKey, f func(x uint64) uint64) *Accumulator {
	totalSlots := sk.MessageModulus * sk.CarryModulus
	d := delta(sk)

	var maxVal uint64
	for x := uint64(0); x < totalSlots; x++ {
		if v := f(x); v > maxVal {
			maxVal = v
		}
	}

	ringQ := sk.Params.RingQ()
	lut := blindrot.GenerateAccumulator(f, totalSlots, d, ringQ)
	return &Accumulator{LUT: lut, Degree: maxVal}
}

// GenerateAccumulatorBivariate packs a two-argument function by
// concatenating its operands into one integer input = lhs*scaling +
// rhs and invoking GenerateAccumulator on the univariate function this
// induces (§4.6 "generate_accumulator_bivariate").
func GenerateAccumulatorBivariate(sk *ServerKey, f func(lhs, rhs uint64) uint64, scaling uint64) *Accumulator {
	messageModulus := sk.MessageModulus
	g := func(input uint64) uint64 {
		lhs := (input / scaling) % messageModulus
		rhs := (input % scaling) % messageModulus
		return f(lhs, rhs)
	}
	return GenerateAccumulator(sk, g)
}
