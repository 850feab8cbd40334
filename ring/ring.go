package ring

import "fmt"

// Ring describes the ring Z/qZ[X]/(X^N+1) a polynomial lives in: its
// degree N (a power of two) and its ciphertext modulus. A Ring either
// uses the native modulus 2^64 (Custom == false, in which case Modulus
// is ignored) or a custom modulus q < 2^64 (Custom == true), per §3.
//
// Mixing a custom-modulus Ring with a native-modulus one in a single
// operation must be rejected at construction time, never discovered
// later inside an operation (§9).
type Ring struct {
	N       int
	Custom  bool
	Modulus uint64
}

// NewNativeRing returns a Ring of degree N using native 2^64 wraparound.
func NewNativeRing(N int) *Ring {
	mustPowerOfTwo(N)
	return &Ring{N: N, Custom: false}
}

// NewCustomModulusRing returns a Ring of degree N reducing modulo the
// given modulus after every elementary operation. modulus must be
// nonzero and strictly less than 2^64.
func NewCustomModulusRing(N int, modulus uint64) *Ring {
	mustPowerOfTwo(N)
	if modulus == 0 {
		panic("ring: custom modulus must be nonzero")
	}
	return &Ring{N: N, Custom: true, Modulus: modulus}
}

// Compatible reports whether r and other may appear as operands of the
// same operation: same degree, and either both native or both custom
// with the same modulus.
func (r *Ring) Compatible(other *Ring) bool {
	if r.N != other.N || r.Custom != other.Custom {
		return false
	}
	return !r.Custom || r.Modulus == other.Modulus
}

// MustCompatible panics if r and other cannot be combined in a single
// operation. This is a contract violation (§9), checked eagerly at
// construction time by callers, not lazily inside hot loops.
func (r *Ring) MustCompatible(other *Ring) {
	if !r.Compatible(other) {
		panic(fmt.Sprintf("ring: incompatible rings (N=%d custom=%v mod=%d) vs (N=%d custom=%v mod=%d)",
			r.N, r.Custom, r.Modulus, other.N, other.Custom, other.Modulus))
	}
}

// Add computes p3 = p1 + p2, respecting r's modulus discipline.
func (r *Ring) Add(p1, p2, p3 *Poly) {
	if r.Custom {
		AddVecMod(p1.Coeffs, p2.Coeffs, p3.Coeffs, r.Modulus)
	} else {
		AddVec(p1.Coeffs, p2.Coeffs, p3.Coeffs)
	}
}

// Sub computes p3 = p1 - p2, respecting r's modulus discipline.
func (r *Ring) Sub(p1, p2, p3 *Poly) {
	if r.Custom {
		SubVecMod(p1.Coeffs, p2.Coeffs, p3.Coeffs, r.Modulus)
	} else {
		SubVec(p1.Coeffs, p2.Coeffs, p3.Coeffs)
	}
}

// Neg computes p2 = -p1, respecting r's modulus discipline.
func (r *Ring) Neg(p1, p2 *Poly) {
	if r.Custom {
		NegVecMod(p1.Coeffs, p2.Coeffs, r.Modulus)
	} else {
		NegVec(p1.Coeffs, p2.Coeffs)
	}
}

// MulPoly computes p3 = p1 * p2 mod (X^N+1), respecting r's modulus
// discipline. This is a direct schoolbook negacyclic convolution,
// used for the small, infrequent mask*secret accumulation during
// encryption; the hot external-product path instead uses the NTT
// transform (core/rgsw), which amortizes the transform cost across a
// whole gadget decomposition.
func (r *Ring) MulPoly(p1, p2, p3 *Poly) {
	n := r.N
	out := make([]uint64, n)
	modulus := r.Modulus

	for i, a := range p1.Coeffs {
		if r.Custom {
			a %= modulus
		}
		if a == 0 {
			continue
		}
		for j, b := range p2.Coeffs {
			idx := i + j
			negate := idx >= n
			if negate {
				idx -= n
			}
			if r.Custom {
				prod := (a * (b % modulus)) % modulus
				if negate {
					out[idx] = (out[idx] + modulus - prod) % modulus
				} else {
					out[idx] = (out[idx] + prod) % modulus
				}
			} else {
				prod := a * b
				if negate {
					prod = -prod
				}
				out[idx] += prod
			}
		}
	}
	copy(p3.Coeffs, out)
}

func mustPowerOfTwo(n int) {
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("ring: degree must be a power of two, got %d", n))
	}
}
