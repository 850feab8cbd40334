package ring

// MulXk computes p * X^k mod (X^N+1) for an arbitrary (possibly
// negative) integer exponent k, the negacyclic monomial rotation used
// by blind-rotate for its initial rotation by X^{-b} and its
// per-coordinate rotation by X^{a_i} (§4.5 step 2). The map i -> (i+k) mod 2N is a bijection on coefficient
// positions; coefficients that wrap past N pick up a sign flip, which
// is exactly the X^N = -1 reduction rule.
func (r *Ring) MulXk(p Poly, k int) Poly {
	n := r.N
	out := r.NewPoly()

	kk := k % (2 * n)
	if kk < 0 {
		kk += 2 * n
	}

	for i, c := range p.Coeffs {
		j := i + kk
		j %= 2 * n
		negate := j >= n
		if negate {
			j -= n
		}
		if negate {
			out.Coeffs[j] = r.negateScalar(c)
		} else {
			out.Coeffs[j] = c
		}
	}
	return out
}

func (r *Ring) negateScalar(c uint64) uint64 {
	return r.OpposeScaled(c)
}

// OpposeScaled negates a single already-encoded scalar under r's
// modulus discipline (native 2^64 wraparound, or reduction mod
// r.Modulus for a custom-modulus ring).
func (r *Ring) OpposeScaled(c uint64) uint64 {
	if r.Custom {
		if c == 0 {
			return 0
		}
		return r.Modulus - c%r.Modulus
	}
	return -c
}
