package rlwe

import (
	"github.com/latticeforge/shortint/ring"
	"github.com/latticeforge/shortint/utils/sampling"
)

// LWECiphertext is the pair (a_1..a_n, b) of §3, flat as n+1 scalars:
// Value[:n] is the mask, Value[n] is the body.
type LWECiphertext struct {
	Value []uint64
}

// NewLWECiphertext allocates a zeroed LWE ciphertext for a key of the
// given dimension.
func NewLWECiphertext(dimension int) *LWECiphertext {
	return &LWECiphertext{Value: make([]uint64, dimension+1)}
}

// FromContainer wraps an existing n+1-scalar buffer as an
// LWECiphertext view (§4.3: from_container).
func LWECiphertextFromContainer(buf []uint64) *LWECiphertext {
	return &LWECiphertext{Value: buf}
}

// IntoContainer returns the backing buffer (§4.3: into_container).
func (ct *LWECiphertext) IntoContainer() []uint64 { return ct.Value }

// Dimension returns n.
func (ct *LWECiphertext) Dimension() int { return len(ct.Value) - 1 }

// Mask returns the a_1..a_n view.
func (ct *LWECiphertext) Mask() []uint64 { return ct.Value[:len(ct.Value)-1] }

// Body returns b.
func (ct *LWECiphertext) Body() uint64 { return ct.Value[len(ct.Value)-1] }

// SetBody sets b.
func (ct *LWECiphertext) SetBody(b uint64) { ct.Value[len(ct.Value)-1] = b }

// CopyNew returns an owning deep copy.
func (ct *LWECiphertext) CopyNew() *LWECiphertext {
	v := make([]uint64, len(ct.Value))
	copy(v, ct.Value)
	return &LWECiphertext{Value: v}
}

// SeededLWECiphertext stores only the body and the seed the mask
// stream was forked from (§3 "Seeded variants").
type SeededLWECiphertext struct {
	Body            uint64
	CompressionSeed sampling.Seed
	Dimension       int
}

// DecompressInto regenerates the mask from CompressionSeed and writes
// the full LWE ciphertext into out (which must have the right
// dimension).
func (sct *SeededLWECiphertext) DecompressInto(out *LWECiphertext) {
	if out.Dimension() != sct.Dimension {
		panic("rlwe: dimension mismatch in LWE decompression")
	}
	stream := sampling.MaskStreamFromSeed(sct.CompressionSeed)
	sampler := ring.UniformSampler{Modulus: 0}
	maskPoly := ring.Poly{Coeffs: out.Mask()}
	sampler.Read(stream, maskPoly)
	out.SetBody(sct.Body)
}

// GLWECiphertext is the tuple (A_1..A_k, B) of k+1 polynomials (§3
// "GLWE ciphertext"): Value[:k] is the mask, Value[k] is the body.
type GLWECiphertext struct {
	Value []ring.Poly
}

// NewGLWECiphertext allocates a zeroed GLWE ciphertext of glwe size
// k+1 and polynomial degree N.
func NewGLWECiphertext(k, N int) *GLWECiphertext {
	v := make([]ring.Poly, k+1)
	for i := range v {
		v[i] = ring.Poly{Coeffs: make([]uint64, N)}
	}
	return &GLWECiphertext{Value: v}
}

// GLWESize returns k+1.
func (ct *GLWECiphertext) GLWESize() int { return len(ct.Value) }

// PolynomialSize returns N.
func (ct *GLWECiphertext) PolynomialSize() int {
	if len(ct.Value) == 0 {
		return 0
	}
	return ct.Value[0].N()
}

// Mask returns the A_1..A_k polynomials.
func (ct *GLWECiphertext) Mask() []ring.Poly { return ct.Value[:len(ct.Value)-1] }

// Body returns B.
func (ct *GLWECiphertext) Body() ring.Poly { return ct.Value[len(ct.Value)-1] }

// CopyNew returns an owning deep copy.
func (ct *GLWECiphertext) CopyNew() *GLWECiphertext {
	v := make([]ring.Poly, len(ct.Value))
	for i, p := range ct.Value {
		v[i] = p.CopyNew()
	}
	return &GLWECiphertext{Value: v}
}

// SeededGLWECiphertext stores only the body polynomial and the seed
// the mask streams were forked from.
type SeededGLWECiphertext struct {
	Body            ring.Poly
	CompressionSeed sampling.Seed
	GLWEDimension   int // k
	PolynomialSize  int // N
}

// DecompressInto regenerates the k mask polynomials from
// CompressionSeed and writes the full GLWE ciphertext into out.
func (sct *SeededGLWECiphertext) DecompressInto(out *GLWECiphertext) {
	if out.GLWESize() != sct.GLWEDimension+1 || out.PolynomialSize() != sct.PolynomialSize {
		panic("rlwe: geometry mismatch in GLWE decompression")
	}
	stream := sampling.MaskStreamFromSeed(sct.CompressionSeed)
	sampler := ring.UniformSampler{Modulus: 0}
	for i := 0; i < sct.GLWEDimension; i++ {
		sampler.Read(stream, out.Value[i])
	}
	copy(out.Value[sct.GLWEDimension].Coeffs, sct.Body.Coeffs)
}
