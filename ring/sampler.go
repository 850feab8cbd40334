package ring

import "math"

// DistributionType enumerates the distributions a Sampler can draw
// from, grounded on core/rlwe/distribution.go's Distribution interface.
type DistributionType uint8

const (
	Uniform DistributionType = iota + 1
	Ternary
	Gaussian
)

// ByteSource is the minimal interface a Sampler needs from a PRNG: a
// stream of uniform random bytes. utils/sampling's generators satisfy
// this, decoupling the ring package from any concrete CSPRNG choice.
type ByteSource interface {
	Read(p []byte) (n int, err error)
}

// Sampler draws polynomials from a fixed distribution using a given
// byte source.
type Sampler interface {
	Read(src ByteSource, pol Poly)
}

// UniformSampler draws coefficients uniformly over [0, modulus).
type UniformSampler struct {
	Modulus uint64
}

func (s UniformSampler) Read(src ByteSource, pol Poly) {
	buf := make([]byte, 8)
	for i := range pol.Coeffs {
		pol.Coeffs[i] = uniformUint64(src, buf, s.Modulus)
	}
}

func uniformUint64(src ByteSource, buf []byte, modulus uint64) uint64 {
	if modulus == 0 {
		_, _ = src.Read(buf)
		return le64(buf)
	}
	// Rejection sampling to avoid modulo bias.
	max := (^uint64(0) / modulus) * modulus
	for {
		_, _ = src.Read(buf)
		v := le64(buf)
		if v < max {
			return v % modulus
		}
	}
}

func le64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// TernarySampler draws coefficients in {-1, 0, 1} mod modulus with a
// target Hamming weight H (number of nonzero coefficients). If H <= 0
// every coefficient is drawn independently with probability P of
// being nonzero (split evenly between +1 and -1), matching
// core/rlwe/distribution.go's two Ternary flavours.
type TernarySampler struct {
	Modulus uint64
	H       int
	P       float64
}

func (s TernarySampler) Read(src ByteSource, pol Poly) {
	buf := make([]byte, 1)
	if s.H > 0 {
		s.readFixedWeight(src, pol, buf)
		return
	}
	p := s.P
	if p == 0 {
		p = 1.0 / 3.0
	}
	for i := range pol.Coeffs {
		_, _ = src.Read(buf)
		r := float64(buf[0]) / 256.0
		switch {
		case r < p/2:
			pol.Coeffs[i] = negOne(s.Modulus)
		case r < p:
			pol.Coeffs[i] = 1
		default:
			pol.Coeffs[i] = 0
		}
	}
}

func (s TernarySampler) readFixedWeight(src ByteSource, pol Poly, buf []byte) {
	n := pol.N()
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
	placed := 0
	for placed < s.H && placed < n {
		_, _ = src.Read(buf)
		idx := int(buf[0]) % n
		if pol.Coeffs[idx] != 0 {
			continue
		}
		_, _ = src.Read(buf)
		if buf[0]&1 == 0 {
			pol.Coeffs[idx] = 1
		} else {
			pol.Coeffs[idx] = negOne(s.Modulus)
		}
		placed++
	}
}

func negOne(modulus uint64) uint64 {
	if modulus == 0 {
		return ^uint64(0) // -1 mod 2^64
	}
	return modulus - 1
}

// GaussianSampler draws discrete Gaussian noise of standard deviation
// Sigma, bounded to |e| <= Bound, reduced into [0, modulus) (or native
// 2^64 if modulus == 0). Grounded on ring/gaussianSampler.go.
type GaussianSampler struct {
	Modulus uint64
	Sigma   float64
	Bound   uint64
}

func (s GaussianSampler) Read(src ByteSource, pol Poly) {
	buf := make([]byte, 8)
	for i := range pol.Coeffs {
		var magnitude uint64
		var negative bool
		for {
			v, neg := s.drawBounded(src, buf)
			if v <= s.Bound || s.Bound == 0 {
				magnitude, negative = v, neg
				break
			}
		}
		pol.Coeffs[i] = s.encode(magnitude, negative)
	}
}

func (s GaussianSampler) drawBounded(src ByteSource, buf []byte) (uint64, bool) {
	_, _ = src.Read(buf)
	u1 := (float64(le64(buf)>>11) + 0.5) / (1 << 53)
	_, _ = src.Read(buf)
	u2 := (float64(le64(buf)>>11) + 0.5) / (1 << 53)
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	val := z * s.Sigma
	neg := val < 0
	if neg {
		val = -val
	}
	return uint64(val + 0.5), neg
}

func (s GaussianSampler) encode(magnitude uint64, negative bool) uint64 {
	if !negative || magnitude == 0 {
		if s.Modulus != 0 {
			return magnitude % s.Modulus
		}
		return magnitude
	}
	if s.Modulus != 0 {
		return (s.Modulus - magnitude%s.Modulus) % s.Modulus
	}
	return -magnitude
}
