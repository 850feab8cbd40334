// Package shortint implements the stateful per-thread cryptographic
// worker of spec §4.6: encryption, decryption, the server-key
// homomorphic operation families of §4.7, and the carry-propagation
// machinery of §4.7.1, built on top of core/rlwe, core/rgsw and
// core/rgsw/blindrot.
package shortint

import "errors"

// ErrCarryFull is the one user-visible operational failure class
// (§7): checked_* operations return it when the bivariate-PBS
// feasibility predicate of §4.7 evaluates false, leaving their inputs
// unmodified. Every other failure mode (mismatched ciphertext moduli,
// dimension mismatches, unchecked_* degree-budget violations) is a
// contract violation and panics instead.
var ErrCarryFull = errors.New("shortint: carry full, bivariate PBS infeasible")

// mustSameModuli panics if a and b do not share a message/carry
// modulus pair: every binary operation requires its operands to agree
// on encoding (§3 "All ciphertext modulus arithmetic is consistent
// across operands of a single operation").
func mustSameModuli(a, b *Ciphertext) {
	if a.MessageModulus != b.MessageModulus || a.CarryModulus != b.CarryModulus {
		panic("shortint: mismatched message/carry modulus across operands")
	}
	if a.PBSOrder != b.PBSOrder {
		panic("shortint: mismatched pbs_order across operands")
	}
}
