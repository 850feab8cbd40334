// Package utils collects small generic helpers shared across the
// module, grounded on the teacher's utils package surface
// (Min/Max/Pointy-style helpers used pervasively in core/rlwe).
package utils

import "golang.org/x/exp/constraints"

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Pointy returns a pointer to a copy of v, useful for populating
// optional-pointer struct fields (e.g. EvaluationKeyParameters-style
// configs) from a literal.
func Pointy[T any](v T) *T {
	return &v
}

// Reverse reverses s in place and returns it.
func Reverse[T any](s []T) []T {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}
