package ring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// reference recomputes p1*p2 mod (X^N+1) over big-ish uint64 arithmetic
// using the textbook negacyclic convolution, independently of
// Ring.MulPoly, as a cross-check oracle.
func reference(r *Ring, p1, p2 []uint64) []uint64 {
	n := r.N
	out := make([]uint64, n)
	for i, a := range p1 {
		for j, b := range p2 {
			idx := i + j
			prod := a * b
			neg := idx >= n
			if neg {
				idx -= n
			}
			if r.Custom {
				p := prod % r.Modulus
				if neg {
					p = (r.Modulus - p) % r.Modulus
				}
				out[idx] = (out[idx] + p) % r.Modulus
			} else {
				if neg {
					prod = -prod
				}
				out[idx] += prod
			}
		}
	}
	if r.Custom {
		for i := range out {
			out[i] %= r.Modulus
		}
	}
	return out
}

func TestRingAddSubNegNativeRoundTrip(t *testing.T) {
	r := NewNativeRing(8)
	p1 := FromContainer([]uint64{1, 2, 3, 4, 5, 6, 7, 8})
	p2 := FromContainer([]uint64{8, 7, 6, 5, 4, 3, 2, 1})

	sum := r.NewPoly()
	r.Add(&p1, &p2, &sum)

	diff := r.NewPoly()
	r.Sub(&sum, &p2, &diff)

	if d := cmp.Diff(p1.Coeffs, diff.Coeffs); d != "" {
		t.Fatalf("Sub(Add(p1,p2),p2) != p1 (-want +got):\n%s", d)
	}

	negP1 := r.NewPoly()
	r.Neg(&p1, &negP1)
	back := r.NewPoly()
	r.Neg(&negP1, &back)
	require.True(t, cmp.Equal(p1.Coeffs, back.Coeffs), "Neg(Neg(p1)) must recover p1")
}

func TestRingAddSubCustomModulusWraps(t *testing.T) {
	r := NewCustomModulusRing(4, 7)
	p1 := FromContainer([]uint64{5, 6, 0, 3})
	p2 := FromContainer([]uint64{4, 4, 4, 4})

	sum := r.NewPoly()
	r.Add(&p1, &p2, &sum)
	want := []uint64{2, 3, 4, 0}
	require.Empty(t, cmp.Diff(want, sum.Coeffs), "custom-modulus Add must reduce mod 7")
}

func TestRingMulPolyNativeMatchesReference(t *testing.T) {
	r := NewNativeRing(8)
	p1 := FromContainer([]uint64{1, 0, 2, 0, 0, 3, 0, 0})
	p2 := FromContainer([]uint64{0, 1, 0, 0, 4, 0, 0, 0})
	p3 := r.NewPoly()
	r.MulPoly(&p1, &p2, &p3)

	want := reference(r, p1.Coeffs, p2.Coeffs)
	require.Empty(t, cmp.Diff(want, p3.Coeffs), "MulPoly must match the reference negacyclic convolution")
}

func TestRingMulPolyCustomModulusMatchesReference(t *testing.T) {
	r := NewCustomModulusRing(8, 97)
	p1 := FromContainer([]uint64{3, 5, 0, 1, 2, 0, 0, 6})
	p2 := FromContainer([]uint64{1, 1, 1, 1, 1, 1, 1, 1})
	p3 := r.NewPoly()
	r.MulPoly(&p1, &p2, &p3)

	want := reference(r, p1.Coeffs, p2.Coeffs)
	require.Empty(t, cmp.Diff(want, p3.Coeffs), "custom-modulus MulPoly must match the reference")
}

func TestRingMulPolyIdentityElement(t *testing.T) {
	r := NewNativeRing(8)
	p1 := FromContainer([]uint64{9, 4, 7, 2, 1, 0, 5, 3})
	one := r.NewPoly()
	one.Coeffs[0] = 1
	p3 := r.NewPoly()
	r.MulPoly(&p1, &one, &p3)

	require.Empty(t, cmp.Diff(p1.Coeffs, p3.Coeffs), "multiplying by the constant 1 polynomial must be a no-op")
}

func TestMustCompatiblePanicsOnModulusMismatch(t *testing.T) {
	a := NewCustomModulusRing(8, 7)
	b := NewCustomModulusRing(8, 11)
	require.False(t, a.Compatible(b))
	require.Panics(t, func() { a.MustCompatible(b) })
}

func TestMustCompatiblePanicsOnNativeVsCustom(t *testing.T) {
	a := NewNativeRing(8)
	b := NewCustomModulusRing(8, 7)
	require.False(t, a.Compatible(b))
	require.Panics(t, func() { a.MustCompatible(b) })
}

func TestPolyCopyNewIsIndependent(t *testing.T) {
	p := FromContainer([]uint64{1, 2, 3, 4})
	c := p.CopyNew()
	c.Coeffs[0] = 99
	require.Equal(t, uint64(1), p.Coeffs[0], "CopyNew must not alias the original backing buffer")
	require.NotEmpty(t, cmp.Diff(p.Coeffs, c.Coeffs))
}

func TestPolyZero(t *testing.T) {
	p := FromContainer([]uint64{1, 2, 3, 4})
	p.Zero()
	require.Empty(t, cmp.Diff([]uint64{0, 0, 0, 0}, p.Coeffs))
}

// TestSignedDecomposeRecomposes checks that summing digit_i * base^i
// (most-significant first, so index 0 carries weight base^(LevelCount-1))
// recovers x up to the rounding error below the retained precision,
// matching §4.4's round-to-nearest contract.
func TestSignedDecomposeRecomposes(t *testing.T) {
	g := Gadget{BaseLog: 4, LevelCount: 4}
	values := []uint64{0, 1, 1 << 60, 1 << 63, ^uint64(0), 12345}

	for _, x := range values {
		digits := SignedDecompose(x, g)
		require.Len(t, digits, g.LevelCount)

		var recomposed uint64
		shift := uint(64 - g.BaseLog*g.LevelCount)
		for i, d := range digits {
			levelShift := shift + uint(g.BaseLog*(g.LevelCount-1-i))
			recomposed += d << levelShift
		}

		roundingBit := uint64(1) << (shift - 1)
		rounded := (x + roundingBit) &^ (uint64(1)<<shift - 1)
		require.Equal(t, rounded, recomposed, "recomposed digits must equal x rounded to the retained precision")
	}
}

func TestSignedDecomposeDigitsAreBalanced(t *testing.T) {
	g := Gadget{BaseLog: 4, LevelCount: 4}
	half := int64(g.HalfModulus())
	base := int64(g.Modulus())

	for x := uint64(0); x < 1<<16; x += 37 {
		for _, d := range SignedDecompose(x<<48, g) {
			signed := int64(d)
			if signed > half {
				signed -= base
			}
			require.GreaterOrEqual(t, signed, -half)
			require.LessOrEqual(t, signed, half)
		}
	}
}

func TestSignedDecomposePolyMatchesPerCoefficient(t *testing.T) {
	g := Gadget{BaseLog: 4, LevelCount: 3}
	p := FromContainer([]uint64{1 << 60, 1 << 40, 0, 42})
	levels := SignedDecomposePoly(p, g)
	require.Len(t, levels, g.LevelCount)

	for i, c := range p.Coeffs {
		want := SignedDecompose(c, g)
		for l := range levels {
			require.Equal(t, want[l], levels[l].Coeffs[i])
		}
	}
}
