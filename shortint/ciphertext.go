package shortint

import "github.com/latticeforge/shortint/core/rlwe"

// PBSOrder selects which LWE dimension a ciphertext externally lives
// in and hence the shape of the PBS pipeline a homomorphic operation
// on it runs (§3 "pbs_order", §4.5).
type PBSOrder uint8

const (
	// KeyswitchBootstrap performs {KeySwitch, BlindRotate,
	// SampleExtract} in that order: the externally visible ciphertext
	// lives under the large (GLWE-derived) LWE key, and PBS first
	// key-switches it down to the small key before bootstrapping.
	KeyswitchBootstrap PBSOrder = iota
	// BootstrapKeyswitch performs {BlindRotate, SampleExtract,
	// KeySwitch} in that order: the externally visible ciphertext
	// lives under the small LWE key, and PBS bootstraps first
	// (producing a large-key ciphertext) then key-switches back down.
	BootstrapKeyswitch
)

// Ciphertext is a shortint-level LWE ciphertext together with its
// encoding metadata (§3 "Ciphertext metadata (shortint level)").
type Ciphertext struct {
	Value          *rlwe.LWECiphertext
	MessageModulus uint64
	CarryModulus   uint64
	// Degree is a tight upper bound on the integer currently encoded,
	// in [0, MessageModulus*CarryModulus).
	Degree   uint64
	PBSOrder PBSOrder
}

// CarryIsEmpty reports whether ct's carry space holds no value, i.e.
// Degree < MessageModulus (§3).
func (ct *Ciphertext) CarryIsEmpty() bool {
	return ct.Degree < ct.MessageModulus
}

// Clone returns an owning deep copy of ct.
func (ct *Ciphertext) Clone() *Ciphertext {
	return &Ciphertext{
		Value:          ct.Value.CopyNew(),
		MessageModulus: ct.MessageModulus,
		CarryModulus:   ct.CarryModulus,
		Degree:         ct.Degree,
		PBSOrder:       ct.PBSOrder,
	}
}

// SeededCiphertext is the compressed form of a Ciphertext (§3 "Seeded
// variants"): only the body and the seed the mask was drawn from are
// retained.
type SeededCiphertext struct {
	Value          *rlwe.SeededLWECiphertext
	MessageModulus uint64
	CarryModulus   uint64
	Degree         uint64
	PBSOrder       PBSOrder
}

// Expand decompresses sct into a full Ciphertext, regenerating its
// mask from the stored compression seed.
func (sct *SeededCiphertext) Expand() *Ciphertext {
	full := rlwe.NewLWECiphertext(sct.Value.Dimension)
	sct.Value.DecompressInto(full)
	return &Ciphertext{
		Value:          full,
		MessageModulus: sct.MessageModulus,
		CarryModulus:   sct.CarryModulus,
		Degree:         sct.Degree,
		PBSOrder:       sct.PBSOrder,
	}
}
