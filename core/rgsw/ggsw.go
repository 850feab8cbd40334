// Package rgsw implements GGSW ciphertexts and the external product
// GLWE x GGSW -> GLWE described in spec §4.4, grounded on the
// tuneinsight-lattigo core/rgsw package's RGSW/external-product shape,
// simplified to a single scalar ring (no RNS/CRT basis: the spec's
// data model is a single modulus of width w, not a multi-limb one).
package rgsw

import (
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
)

// Ciphertext is a GGSW ciphertext: ell*(k+1) GLWE rows encoding
// m * g^{-i} under the gadget g, one row per (component, level) pair
// (§3 "GGSW ciphertext"). Rows are indexed Value[component][level],
// component ranging over the k+1 extended secret-key slots (the k mask
// components followed by the implicit "1" body component) and level
// ranging over the gadget's LevelCount.
type Ciphertext struct {
	Value  [][]rlwe.GLWECiphertext
	Gadget ring.Gadget
}

// NewCiphertext allocates a zeroed GGSW ciphertext of GLWE dimension k,
// polynomial degree N, decomposed under gadget.
func NewCiphertext(k, N int, gadget ring.Gadget) *Ciphertext {
	rows := make([][]rlwe.GLWECiphertext, k+1)
	for c := range rows {
		levels := make([]rlwe.GLWECiphertext, gadget.LevelCount)
		for l := range levels {
			levels[l] = *rlwe.NewGLWECiphertext(k, N)
		}
		rows[c] = levels
	}
	return &Ciphertext{Value: rows, Gadget: gadget}
}

// GLWEDimension returns k.
func (ct *Ciphertext) GLWEDimension() int { return len(ct.Value) - 1 }

// PolynomialSize returns N.
func (ct *Ciphertext) PolynomialSize() int {
	if len(ct.Value) == 0 || len(ct.Value[0]) == 0 {
		return 0
	}
	return ct.Value[0][0].PolynomialSize()
}
