// Package rlwe implements the LWE/GLWE entity layer, secret-key
// generation, encryption/decryption primitives, and key-switching
// machinery described in spec §3 and §4.3.
package rlwe

import (
	"fmt"

	"github.com/latticeforge/shortint/ring"
)

// ParametersLiteral is the unchecked, user-facing configuration record
// of §6.3: the sole configuration surface of the engine (no env vars,
// no CLI), grounded on core/rlwe/params.go's ParametersLiteral.
type ParametersLiteral struct {
	LWEDimension      int
	GLWEDimension     int
	PolynomialSize    int
	LWEModularStdDev  float64
	GLWEModularStdDev float64
	PBSBaseLog        int
	PBSLevel          int
	KSBaseLog         int
	KSLevel           int
	MessageModulus    uint64
	CarryModulus      uint64

	// CustomCiphertextModulus, when nonzero, selects a custom modulus
	// q < 2^64 rather than the native 2^64 torus (§3).
	CustomCiphertextModulus uint64
}

// Parameters is the checked, immutable form of ParametersLiteral.
type Parameters struct {
	lit ParametersLiteral
}

// NewParametersFromLiteral validates lit and returns checked
// Parameters. Mismatched or nonsensical literal values are contract
// violations (§7) and panic rather than returning an error: these are
// programming errors in caller-supplied configuration, not recoverable
// runtime conditions.
func NewParametersFromLiteral(lit ParametersLiteral) Parameters {
	if lit.LWEDimension <= 0 {
		panic("rlwe: LWEDimension must be positive")
	}
	if lit.PolynomialSize <= 0 || lit.PolynomialSize&(lit.PolynomialSize-1) != 0 {
		panic("rlwe: PolynomialSize must be a power of two")
	}
	if lit.GLWEDimension <= 0 {
		panic("rlwe: GLWEDimension must be positive")
	}
	if lit.MessageModulus == 0 || lit.CarryModulus == 0 {
		panic("rlwe: MessageModulus and CarryModulus must be positive")
	}
	if lit.PBSLevel <= 0 || lit.PBSBaseLog <= 0 {
		panic("rlwe: PBSLevel and PBSBaseLog must be positive")
	}
	if lit.KSLevel <= 0 || lit.KSBaseLog <= 0 {
		panic("rlwe: KSLevel and KSBaseLog must be positive")
	}
	return Parameters{lit: lit}
}

func (p Parameters) LWEDimension() int        { return p.lit.LWEDimension }
func (p Parameters) GLWEDimension() int       { return p.lit.GLWEDimension }
func (p Parameters) PolynomialSize() int      { return p.lit.PolynomialSize }
func (p Parameters) LWEModularStdDev() float64  { return p.lit.LWEModularStdDev }
func (p Parameters) GLWEModularStdDev() float64 { return p.lit.GLWEModularStdDev }
func (p Parameters) MessageModulus() uint64   { return p.lit.MessageModulus }
func (p Parameters) CarryModulus() uint64     { return p.lit.CarryModulus }

// PBSGadget returns the gadget decomposition parameters of the
// bootstrap key.
func (p Parameters) PBSGadget() ring.Gadget {
	return ring.Gadget{BaseLog: p.lit.PBSBaseLog, LevelCount: p.lit.PBSLevel}
}

// KSGadget returns the gadget decomposition parameters of the
// key-switching key.
func (p Parameters) KSGadget() ring.Gadget {
	return ring.Gadget{BaseLog: p.lit.KSBaseLog, LevelCount: p.lit.KSLevel}
}

// LargeLWEDimension returns k*N, the dimension of the GLWE secret key
// reinterpreted as an LWE key (§2's "large_lwe_sk").
func (p Parameters) LargeLWEDimension() int {
	return p.lit.GLWEDimension * p.lit.PolynomialSize
}

// RingQ returns the polynomial ring GLWE/GGSW ciphertexts live in.
func (p Parameters) RingQ() *ring.Ring {
	if p.lit.CustomCiphertextModulus != 0 {
		return ring.NewCustomModulusRing(p.lit.PolynomialSize, p.lit.CustomCiphertextModulus)
	}
	return ring.NewNativeRing(p.lit.PolynomialSize)
}

// Literal returns the checked Parameters' underlying literal.
func (p Parameters) Literal() ParametersLiteral { return p.lit }

// Equal reports whether p and other describe the same configuration.
func (p Parameters) Equal(other Parameters) bool {
	return p.lit == other.lit
}

func (p Parameters) String() string {
	return fmt.Sprintf("Parameters{n=%d, k=%d, N=%d, M=%d, C=%d}",
		p.lit.LWEDimension, p.lit.GLWEDimension, p.lit.PolynomialSize, p.lit.MessageModulus, p.lit.CarryModulus)
}
