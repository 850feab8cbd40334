// Package ring implements the wrapping modular arithmetic, polynomial
// representation, and negacyclic transform that back the LWE/GLWE/GGSW
// entities of the shortint engine.
package ring

import "golang.org/x/exp/constraints"

// Scalar is the set of integer widths the numeric kernel operates on.
// 128-bit torus elements are not wired through this kernel: Go has no
// native wrapping 128-bit unsigned type, see DESIGN.md.
type Scalar interface {
	constraints.Unsigned
}

// AddVec computes p3[i] = p1[i] + p2[i] under native (2^w) wraparound.
// Panics if the slices have mismatched lengths: a length mismatch is a
// programming error, never a recoverable one.
func AddVec[T Scalar](p1, p2, p3 []T) {
	mustEqualLen(p1, p2, p3)
	for i := range p1 {
		p3[i] = p1[i] + p2[i]
	}
}

// AddVecMod computes p3[i] = (p1[i] + p2[i]) mod modulus.
func AddVecMod[T Scalar](p1, p2, p3 []T, modulus T) {
	mustEqualLen(p1, p2, p3)
	for i := range p1 {
		p3[i] = (p1[i] + p2[i]) % modulus
	}
}

// SubVec computes p3[i] = p1[i] - p2[i] under native wraparound.
func SubVec[T Scalar](p1, p2, p3 []T) {
	mustEqualLen(p1, p2, p3)
	for i := range p1 {
		p3[i] = p1[i] - p2[i]
	}
}

// SubVecMod computes p3[i] = (p1[i] - p2[i]) mod modulus.
func SubVecMod[T Scalar](p1, p2, p3 []T, modulus T) {
	mustEqualLen(p1, p2, p3)
	for i := range p1 {
		p3[i] = ((p1[i] - p2[i]) % modulus + modulus) % modulus
	}
}

// NegVec computes p2[i] = -p1[i] under native wraparound.
func NegVec[T Scalar](p1, p2 []T) {
	mustEqualLen(p1, p2)
	for i := range p1 {
		p2[i] = -p1[i]
	}
}

// NegVecMod computes p2[i] = (modulus - p1[i]) mod modulus: the modular negation.
func NegVecMod[T Scalar](p1, p2 []T, modulus T) {
	mustEqualLen(p1, p2)
	for i := range p1 {
		if p1[i] == 0 {
			p2[i] = 0
		} else {
			p2[i] = modulus - p1[i]%modulus
		}
	}
}

// DotProduct returns sum_i p1[i]*p2[i] under native wraparound.
func DotProduct[T Scalar](p1, p2 []T) (acc T) {
	mustEqualLen(p1, p2)
	for i := range p1 {
		acc += p1[i] * p2[i]
	}
	return
}

// DotProductMod returns (sum_i p1[i]*p2[i]) mod modulus.
func DotProductMod[T Scalar](p1, p2 []T, modulus T) (acc T) {
	mustEqualLen(p1, p2)
	for i := range p1 {
		acc = (acc + (p1[i]%modulus)*(p2[i]%modulus)%modulus) % modulus
	}
	return
}

// AddScalarMulAssign computes a[i] += b[i]*c under native wraparound.
func AddScalarMulAssign[T Scalar](a, b []T, c T) {
	mustEqualLen(a, b)
	for i := range a {
		a[i] += b[i] * c
	}
}

// AddScalarMulAssignMod computes a[i] = (a[i] + b[i]*c) mod modulus.
func AddScalarMulAssignMod[T Scalar](a, b []T, c, modulus T) {
	mustEqualLen(a, b)
	for i := range a {
		a[i] = (a[i] + (b[i]%modulus)*(c%modulus)%modulus) % modulus
	}
}

// SubScalarMulAssign computes a[i] -= b[i]*c under native wraparound.
func SubScalarMulAssign[T Scalar](a, b []T, c T) {
	mustEqualLen(a, b)
	for i := range a {
		a[i] -= b[i] * c
	}
}

// SubScalarMulAssignMod computes a[i] = (a[i] - b[i]*c) mod modulus.
func SubScalarMulAssignMod[T Scalar](a, b []T, c, modulus T) {
	mustEqualLen(a, b)
	for i := range a {
		v := (a[i] % modulus)
		s := (b[i] % modulus) * (c % modulus) % modulus
		a[i] = ((v-s)%modulus + modulus) % modulus
	}
}

// ScalarMulAssign computes a[i] *= c under native wraparound.
func ScalarMulAssign[T Scalar](a []T, c T) {
	for i := range a {
		a[i] *= c
	}
}

// ScalarMulAssignMod computes a[i] = (a[i]*c) mod modulus.
func ScalarMulAssignMod[T Scalar](a []T, c, modulus T) {
	for i := range a {
		a[i] = (a[i] % modulus) * (c % modulus) % modulus
	}
}

// RemAssign reduces every element of a modulo modulus in place.
func RemAssign[T Scalar](a []T, modulus T) {
	for i := range a {
		a[i] %= modulus
	}
}

// OppositeAssign is the in-place modular negation: a[i] = (modulus - a[i]) mod modulus.
func OppositeAssign[T Scalar](a []T, modulus T) {
	for i := range a {
		if a[i]%modulus == 0 {
			a[i] = 0
		} else {
			a[i] = modulus - a[i]%modulus
		}
	}
}

func mustEqualLen[T Scalar](slices ...[]T) {
	if len(slices) == 0 {
		return
	}
	n := len(slices[0])
	for _, s := range slices[1:] {
		if len(s) != n {
			panic("ring: mismatched slice lengths")
		}
	}
}
