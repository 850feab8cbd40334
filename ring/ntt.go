package ring

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NTT is a negacyclic transform over C for polynomials of degree N in
// R = Z/qZ[X]/(X^N+1), evaluated in the torus-friendly representation
// described in §4.4: coefficients are twisted by the primitive 2N-th
// root of unity so that a subsequent standard length-N DFT realizes
// the negacyclic convolution, and external products accumulate in
// this evaluation basis before the inverse transform brings the
// result back to coefficient form.
//
// The precision-sensitive twiddle-factor table is built once at
// construction using arbitrary-precision trigonometry
// (github.com/ALTree/bigfloat), then rounded to complex128 for the
// per-call hot loop — the same tradeoff the teacher's hand-rolled
// big.Float Cos/Complex implementation in ring/complex128.go makes,
// but built on a maintained arbitrary-precision math library instead
// of reimplementing Cos from scratch.
type NTT struct {
	N        int
	twiddle  []complex128 // w^0 .. w^(N-1), w = exp(i*pi/N)
	twiddleI []complex128 // conjugates, for the inverse-twist step
	rootsFwd []complex128 // standard DFT roots, forward
	rootsInv []complex128 // standard DFT roots, inverse
}

// NewNTT builds the negacyclic transform tables for degree N (a power
// of two), using prec bits of precision for the twiddle-factor table.
func NewNTT(N int, prec uint) *NTT {
	mustPowerOfTwo(N)

	t := &NTT{
		N:        N,
		twiddle:  make([]complex128, N),
		twiddleI: make([]complex128, N),
		rootsFwd: make([]complex128, N),
		rootsInv: make([]complex128, N),
	}

	pi := bigfloat.Pi(prec)
	for k := 0; k < N; k++ {
		// w^k = exp(i*pi*k/N), the primitive 2N-th root of unity raised to k.
		theta := new(big.Float).SetPrec(prec).Mul(pi, new(big.Float).SetPrec(prec).Quo(big.NewFloat(float64(k)), big.NewFloat(float64(N))))
		c, s := cosSin(theta, prec)
		t.twiddle[k] = complex(c, s)
		t.twiddleI[k] = complex(c, -s)

		thetaN := new(big.Float).SetPrec(prec).Mul(pi, new(big.Float).SetPrec(prec).Quo(big.NewFloat(2*float64(k)), big.NewFloat(float64(N))))
		c2, s2 := cosSin(thetaN, prec)
		t.rootsFwd[k] = complex(c2, -s2)
		t.rootsInv[k] = complex(c2, s2)
	}

	return t
}

func cosSin(theta *big.Float, prec uint) (float64, float64) {
	c := bigfloat.Cos(theta)
	// sin(theta) = cos(theta - pi/2); reuse Cos to stay within one
	// arbitrary-precision primitive, mirroring the teacher's own
	// Cos-only approach in ring/complex128.go.
	halfPi := new(big.Float).SetPrec(prec).Quo(bigfloat.Pi(prec), big.NewFloat(2))
	s := bigfloat.Cos(new(big.Float).SetPrec(prec).Sub(theta, halfPi))
	cf, _ := c.Float64()
	sf, _ := s.Float64()
	return cf, sf
}

// Forward maps a coefficient-domain polynomial to its negacyclic
// evaluation-domain representation.
func (t *NTT) Forward(p Poly) []complex128 {
	buf := make([]complex128, t.N)
	for i, c := range p.Coeffs {
		buf[i] = complex(signedFloat(c), 0) * t.twiddle[i]
	}
	dft(buf, t.rootsFwd, false)
	return buf
}

// Backward maps a negacyclic evaluation-domain representation back to
// coefficients, rounding to the nearest integer and reducing modulo
// r's modulus discipline.
func (t *NTT) Backward(buf []complex128, r *Ring) Poly {
	out := make([]complex128, len(buf))
	copy(out, buf)
	dft(out, t.rootsInv, true)

	p := Poly{Coeffs: make([]uint64, t.N)}
	for i := range out {
		v := out[i] * t.twiddleI[i] / complex(float64(t.N), 0)
		// Reduce into the signed range of the modulus before converting,
		// so coefficients beyond 2^63 in magnitude do not overflow int64.
		x := math.Round(real(v))
		period := 18446744073709551616.0
		if r.Custom {
			period = float64(r.Modulus)
		}
		x -= period * math.Floor(x/period+0.5)
		p.Coeffs[i] = wrapSigned(int64(x), r)
	}
	return p
}

// MulNegacyclic computes p3 = p1 * p2 mod (X^N+1) via the negacyclic
// transform.
func (t *NTT) MulNegacyclic(p1, p2 Poly, r *Ring) Poly {
	a := t.Forward(p1)
	b := t.Forward(p2)
	for i := range a {
		a[i] *= b[i]
	}
	return t.Backward(a, r)
}

// dft computes an in-place radix-2 DFT (or its inverse, conjugating
// the roots beforehand is the caller's responsibility via rootsFwd vs
// rootsInv) using the classic iterative Cooley-Tukey butterfly.
func dft(a []complex128, roots []complex128, inverse bool) {
	n := len(a)
	bitReverse(a)
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := n / size
		for start := 0; start < n; start += size {
			for i := 0; i < half; i++ {
				w := roots[i*step]
				u := a[start+i]
				v := a[start+i+half] * w
				a[start+i] = u + v
				a[start+i+half] = u - v
			}
		}
	}
}

func bitReverse(a []complex128) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func signedFloat(c uint64) float64 {
	if c > (^uint64(0))/2 {
		return -float64(^c + 1)
	}
	return float64(c)
}

func wrapSigned(v int64, r *Ring) uint64 {
	if r.Custom {
		m := int64(r.Modulus)
		v %= m
		if v < 0 {
			v += m
		}
		return uint64(v)
	}
	return uint64(v)
}
