package ring

// Poly is a thin view over a contiguous buffer of N scalars: the flat
// representation required by §4.3's entity layer. It supports both
// ownership modes described there: Owning when the buffer was
// allocated by NewPoly/FromContainer on a fresh slice, Viewing when
// the buffer is borrowed from a larger backing allocation (e.g. a
// GLWE's k+1 polynomials, or a GGSW's count*level*(k+1) rows).
type Poly struct {
	Coeffs []uint64
}

// NewPoly allocates an owning, zeroed polynomial of degree N.
func (r *Ring) NewPoly() Poly {
	return Poly{Coeffs: make([]uint64, r.N)}
}

// FromContainer wraps an existing buffer as a Poly view. The caller
// retains ownership of buf; mutations through the returned Poly write
// back into buf.
func FromContainer(buf []uint64) Poly {
	return Poly{Coeffs: buf}
}

// IntoContainer returns the backing buffer, relinquishing the Poly's
// view over it.
func (p Poly) IntoContainer() []uint64 {
	return p.Coeffs
}

// AsView returns an immutable view sharing the same backing buffer.
func (p Poly) AsView() Poly {
	return Poly{Coeffs: p.Coeffs}
}

// AsMutView returns a mutable view sharing the same backing buffer.
func (p Poly) AsMutView() Poly {
	return Poly{Coeffs: p.Coeffs}
}

// CopyNew returns an owning deep copy of p.
func (p Poly) CopyNew() Poly {
	c := make([]uint64, len(p.Coeffs))
	copy(c, p.Coeffs)
	return Poly{Coeffs: c}
}

// Zero clears p's coefficients in place.
func (p Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// N returns the degree of the polynomial.
func (p Poly) N() int {
	return len(p.Coeffs)
}
