package sampling

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// streamFromSeed builds a keyed, seekable CSPRNG stream from a 128-bit
// seed. chacha20 requires a 32-byte key; the seed is expanded into one
// via a fixed-label domain separation so that distinct roles (secret
// generator vs mask stream vs noise stream) never collide even when
// seeded from related seeds.
func streamFromSeed(seed Seed, label byte) *chacha20.Cipher {
	var key [chacha20.KeySize]byte
	copy(key[:16], seed[:])
	key[16] = label
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key/nonce are fixed-size local arrays; this cannot fail.
		panic(fmt.Sprintf("sampling: chacha20.NewUnauthenticatedCipher: %v", err))
	}
	return c
}

const (
	labelSecret = 0x01
	labelMask   = 0x02
	labelNoise  = 0x03
)

// stream is a keyed CSPRNG satisfying ring.ByteSource, driven by a
// chacha20 keystream and re-derivable byte-for-byte from the same
// seed on any platform (§4.2's determinism contract).
type stream struct {
	cipher *chacha20.Cipher
	zeros  []byte
}

func newStream(seed Seed, label byte) *stream {
	return &stream{cipher: streamFromSeed(seed, label)}
}

func (s *stream) Read(p []byte) (int, error) {
	if len(s.zeros) < len(p) {
		s.zeros = make([]byte, len(p))
	}
	s.cipher.XORKeyStream(p, s.zeros[:len(p)])
	return len(p), nil
}

// SecretGenerator is the deterministic stream of uniform bits that
// drives binary/ternary secret-key sampling (§4.2, role 1).
type SecretGenerator struct {
	*stream
	seed Seed
}

// NewSecretGenerator derives a SecretGenerator from the next seed
// drawn out of seeder.
func NewSecretGenerator(seeder *Seeder) *SecretGenerator {
	seed := seeder.NextSeed()
	return &SecretGenerator{stream: newStream(seed, labelSecret), seed: seed}
}

// Seed returns the seed this generator was derived from.
func (g *SecretGenerator) Seed() Seed { return g.seed }

// EncryptionGenerator holds the two independent CSPRNG substreams used
// by encryption (§4.2, role 2): a mask stream producing the public `a`
// components, and a noise stream producing the private error `e`.
//
// For a seeded (compressed) encryption, only MaskSeed is retained
// alongside the ciphertext body; decompression reconstructs the mask
// stream from it and never touches the noise stream (§3 "Seeded
// variants").
type EncryptionGenerator struct {
	MaskStream  *stream
	NoiseStream *stream
	MaskSeed    Seed
	noiseSeed   Seed
}

// NewEncryptionGenerator derives a fresh EncryptionGenerator, forking
// both substreams from freshly drawn seeds.
func NewEncryptionGenerator(seeder *Seeder) *EncryptionGenerator {
	maskSeed := seeder.NextSeed()
	noiseSeed := seeder.NextSeed()
	return &EncryptionGenerator{
		MaskStream:  newStream(maskSeed, labelMask),
		NoiseStream: newStream(noiseSeed, labelNoise),
		MaskSeed:    maskSeed,
		noiseSeed:   noiseSeed,
	}
}

// ForkMaskStream draws a fresh seed for the mask stream only, keeping
// the existing noise stream, and returns the seed so callers producing
// a seeded ciphertext can store it alongside the body (§4.2: "the
// mask_stream is forked from a newly drawn seed which is then stored
// alongside the body").
func (g *EncryptionGenerator) ForkMaskStream(seeder *Seeder) Seed {
	seed := seeder.NextSeed()
	g.MaskStream = newStream(seed, labelMask)
	g.MaskSeed = seed
	return seed
}

// MaskStreamFromSeed rebuilds a mask-only generator from a stored
// compression seed, for decompressing a seeded ciphertext.
func MaskStreamFromSeed(seed Seed) *stream {
	return newStream(seed, labelMask)
}

// osEntropy16 draws 16 bytes directly from the OS entropy pool. Not
// used on the reproducible path; kept for callers that need a single
// non-deterministic value outside of any Seeder (e.g. picking a fresh
// top-level root seed, see NewSeeder).
func osEntropy16() (Seed, error) {
	var s Seed
	_, err := rand.Read(s[:])
	return s, err
}
