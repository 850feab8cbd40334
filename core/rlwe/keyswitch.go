package rlwe

import "github.com/latticeforge/shortint/ring"

// KeySwitchingKey is a decomposed encryption of the input LWE key
// under the output LWE key (§3 "Key-switching key"): Value[i][l] is
// the LWE encryption, under the output key, of the l-th gadget digit
// of the i-th coordinate of the input key.
type KeySwitchingKey struct {
	Value       [][]LWECiphertext
	InputDim    int
	OutputDim   int
	Gadget      ring.Gadget
}

// NewKeySwitchingKey allocates a zeroed KeySwitchingKey.
func NewKeySwitchingKey(inputDim, outputDim int, gadget ring.Gadget) *KeySwitchingKey {
	v := make([][]LWECiphertext, inputDim)
	for i := range v {
		row := make([]LWECiphertext, gadget.LevelCount)
		for l := range row {
			row[l] = *NewLWECiphertext(outputDim)
		}
		v[i] = row
	}
	return &KeySwitchingKey{Value: v, InputDim: inputDim, OutputDim: outputDim, Gadget: gadget}
}

// KeySwitch re-encrypts ctIn (an LWE ciphertext under the key the
// KeySwitchingKey was generated from as input) into an LWE ciphertext
// under the key it was generated from as output (§4.5 step 4).
//
// Algorithm: opOut starts as (0,...,0, ctIn.Body()); for every input
// coordinate, ctIn.Mask()[i] is gadget-decomposed and the
// corresponding rows of ksk are subtracted in, each scaled by its
// signed digit — the standard LWE-to-LWE key-switch.
func (ksk *KeySwitchingKey) KeySwitch(ctIn *LWECiphertext) *LWECiphertext {
	if ctIn.Dimension() != ksk.InputDim {
		panic("rlwe: key-switch input dimension mismatch")
	}
	out := NewLWECiphertext(ksk.OutputDim)
	out.SetBody(ctIn.Body())

	for i, a := range ctIn.Mask() {
		digits := ring.SignedDecompose(a, ksk.Gadget)
		for l, digit := range digits {
			if digit == 0 {
				continue
			}
			row := &ksk.Value[i][l]
			subScaledLWE(out, row, digit)
		}
	}
	return out
}

// subScaledLWE computes out -= digit*row (native 2^64 wraparound,
// interpreting digit as a signed value already folded into uint64).
func subScaledLWE(out *LWECiphertext, row *LWECiphertext, digit uint64) {
	ring.SubScalarMulAssign(out.Value, row.Value, digit)
}
