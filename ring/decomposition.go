package ring

// Gadget describes the decomposition basis used by the bootstrap key
// and key-switching key: base 2^BaseLog, with LevelCount digits (§4.4,
// §3 "Bootstrap key" / "Key-switching key").
type Gadget struct {
	BaseLog    int
	LevelCount int
}

// Modulus returns 2^BaseLog.
func (g Gadget) Modulus() uint64 {
	return uint64(1) << uint(g.BaseLog)
}

// HalfModulus returns 2^(BaseLog-1), the threshold for balanced rounding.
func (g Gadget) HalfModulus() uint64 {
	return uint64(1) << uint(g.BaseLog-1)
}

// SignedDecompose decomposes x into g.LevelCount signed balanced
// digits in (-2^(BaseLog-1), 2^(BaseLog-1)], most-significant digit
// first, per §4.4's "Signed decomposition". x is interpreted modulo
// 2^64 (the native torus); rounding error below the least-significant
// retained digit is the decomposition's own noise contribution, which
// is why only LevelCount (not all bits) are retained.
//
// The returned digits are themselves elements of the native ring
// (i.e. stored as uint64, but their value should be interpreted as a
// signed integer in the balanced range).
func SignedDecompose(x uint64, g Gadget) []uint64 {
	digits := make([]uint64, g.LevelCount)

	base := g.Modulus()
	half := g.HalfModulus()
	mask := base - 1

	// Round x to the precision retained by LevelCount*BaseLog bits,
	// carrying the rounding into the kept digits (round-to-nearest).
	shift := uint(64 - g.BaseLog*g.LevelCount)
	var rounded uint64
	if shift > 0 && shift < 64 {
		roundingBit := uint64(1) << (shift - 1)
		rounded = (x + roundingBit) >> shift
	} else {
		rounded = x
	}

	carry := uint64(0)
	for i := g.LevelCount - 1; i >= 0; i-- {
		digit := (rounded & mask) + carry
		rounded >>= uint(g.BaseLog)
		carry = 0
		if digit > half {
			digit -= base
			carry = 1
		}
		digits[i] = digit
	}
	return digits
}

// SignedDecomposePoly decomposes every coefficient of p into
// g.LevelCount signed-digit polynomials, returned most-significant
// level first.
func SignedDecomposePoly(p Poly, g Gadget) []Poly {
	levels := make([]Poly, g.LevelCount)
	for l := range levels {
		levels[l] = Poly{Coeffs: make([]uint64, p.N())}
	}
	for i, c := range p.Coeffs {
		digits := SignedDecompose(c, g)
		for l, d := range digits {
			levels[l].Coeffs[i] = d
		}
	}
	return levels
}
