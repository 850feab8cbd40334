package shortint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/utils/sampling"
)

// testParams mirrors core/rgsw/blindrot/blindrot_test.go's testParams,
// raised to carry_modulus = 4 so that §8's worked scenarios (which
// assume message_modulus == carry_modulus == 4) apply directly.
func testParams() rlwe.Parameters {
	return rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LWEDimension: 4, GLWEDimension: 1, PolynomialSize: 32,
		LWEModularStdDev: 1e-7, GLWEModularStdDev: 1e-9,
		PBSBaseLog: 4, PBSLevel: 4, KSBaseLog: 2, KSLevel: 5,
		MessageModulus: 4, CarryModulus: 4,
	})
}

type testSetup struct {
	params rlwe.Parameters
	engine *Engine
	ck     *ClientKey
	sk     *ServerKey
}

func newTestSetup(t *testing.T) *testSetup {
	t.Helper()
	params := testParams()

	ckSeeder := sampling.NewSeederFromSeed(sampling.Seed{1})
	ck := GenerateClientKey(params, ckSeeder)

	skSeeder := sampling.NewSeederFromSeed(sampling.Seed{2})
	sk := GenerateServerKey(ck, skSeeder)

	pool := NewEnginePool(params, sampling.NewSeederFromSeed(sampling.Seed{3}))
	engine := pool.Acquire()

	return &testSetup{params: params, engine: engine, ck: ck, sk: sk}
}

// TestEncryptDecryptRoundTrip exercises §8's round-trip property for
// every value the message space admits.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	ts := newTestSetup(t)
	for msg := uint64(0); msg < ts.params.MessageModulus(); msg++ {
		ct := ts.engine.Encrypt(ts.ck, msg, KeyswitchBootstrap)
		require.Equal(t, msg, ts.engine.Decrypt(ts.ck, ct))
		require.Equal(t, ts.params.MessageModulus()-1, ct.Degree)
	}
}

// TestBitAndFreshEncryptions is §8 scenario 1: encrypt 1 and 1,
// bitand, decrypt 1.
func TestBitAndFreshEncryptions(t *testing.T) {
	ts := newTestSetup(t)
	a := ts.engine.Encrypt(ts.ck, 1, KeyswitchBootstrap)
	b := ts.engine.Encrypt(ts.ck, 1, KeyswitchBootstrap)

	out := ts.engine.BitAnd(a, b, ts.sk)
	require.Equal(t, uint64(1), ts.engine.Decrypt(ts.ck, out))

	// Default mode must not mutate its operands.
	require.Equal(t, uint64(1), ts.engine.Decrypt(ts.ck, a))
	require.Equal(t, uint64(1), ts.engine.Decrypt(ts.ck, b))
}

// TestBitXorAssignWithCarryFullOperand is §8 scenario 2: one operand
// carries its full degree budget (unchecked_encrypt 15), the other is
// a fresh encrypt(3); default bitxor_assign must still produce
// (15^3) mod message_modulus.
func TestBitXorAssignWithCarryFullOperand(t *testing.T) {
	ts := newTestSetup(t)
	a := ts.engine.UncheckedEncrypt(ts.ck, 15, KeyswitchBootstrap)
	b := ts.engine.Encrypt(ts.ck, 3, KeyswitchBootstrap)

	ts.engine.BitXorAssign(a, b, ts.sk)

	want := (uint64(15) ^ uint64(3)) % ts.params.MessageModulus()
	require.Equal(t, want, ts.engine.Decrypt(ts.ck, a))
}

// TestBitOrAssignWithCarryFullOperand is §8 scenario 3: same shape as
// scenario 2 but with bitor_assign.
func TestBitOrAssignWithCarryFullOperand(t *testing.T) {
	ts := newTestSetup(t)
	a := ts.engine.UncheckedEncrypt(ts.ck, 15, KeyswitchBootstrap)
	b := ts.engine.Encrypt(ts.ck, 3, KeyswitchBootstrap)

	ts.engine.BitOrAssign(a, b, ts.sk)

	want := (uint64(15) | uint64(3)) % ts.params.MessageModulus()
	require.Equal(t, want, ts.engine.Decrypt(ts.ck, a))
}

// TestFullPropagateAfterUncheckedAddRadix is §8 scenario 4: a 4-block
// radix integer carrying 7 and 7 added with unchecked_add_radix, then
// full_propagate, must decrypt to 14.
func TestFullPropagateAfterUncheckedAddRadix(t *testing.T) {
	ts := newTestSetup(t)
	const blockCount = 4

	a := ts.engine.EncryptRadix(ts.ck, 7, blockCount, KeyswitchBootstrap)
	b := ts.engine.EncryptRadix(ts.ck, 7, blockCount, KeyswitchBootstrap)

	sum := ts.engine.UncheckedAddRadix(a, b)
	ts.engine.FullPropagate(sum, ts.sk)

	require.Equal(t, uint64(14), ts.engine.DecryptRadix(ts.ck, sum))
	for i := range sum.Blocks {
		require.True(t, sum.Blocks[i].CarryIsEmpty(), "block %d still carries", i)
	}
}

// TestCheckedBitAndReturnsErrCarryFullWithoutMutation is §8 scenario 5:
// two carry-full operands make the bivariate packing infeasible, and
// checked_bitand must report ErrCarryFull while leaving both operands
// untouched.
func TestCheckedBitAndReturnsErrCarryFullWithoutMutation(t *testing.T) {
	ts := newTestSetup(t)
	a := ts.engine.UncheckedEncrypt(ts.ck, 15, KeyswitchBootstrap)
	b := ts.engine.UncheckedEncrypt(ts.ck, 15, KeyswitchBootstrap)

	require.False(t, IsFunctionalBivariatePBSPossible(a, b))

	aBefore := ts.engine.Decrypt(ts.ck, a)
	bBefore := ts.engine.Decrypt(ts.ck, b)
	aDegreeBefore, bDegreeBefore := a.Degree, b.Degree

	out, err := ts.engine.CheckedBitAnd(a, b, ts.sk)
	require.Nil(t, out)
	require.ErrorIs(t, err, ErrCarryFull)

	require.Equal(t, aDegreeBefore, a.Degree)
	require.Equal(t, bDegreeBefore, b.Degree)
	require.Equal(t, aBefore, ts.engine.Decrypt(ts.ck, a))
	require.Equal(t, bBefore, ts.engine.Decrypt(ts.ck, b))
}

// TestEncryptCompressedRoundTrip is §8 scenario 6: a seeded ciphertext
// serializes, deserializes, expands and decrypts back to its original
// message, and its expanded mask matches a fresh non-compressed
// encryption drawn from the same seed byte-for-byte.
func TestEncryptCompressedRoundTrip(t *testing.T) {
	ts := newTestSetup(t)
	seed := sampling.Seed{9}

	sct := ts.engine.EncryptCompressed(ts.ck, 2, KeyswitchBootstrap, sampling.NewSeederFromSeed(seed))

	var buf bytes.Buffer
	_, err := sct.WriteTo(&buf)
	require.NoError(t, err)

	roundTripped := &SeededCiphertext{Value: &rlwe.SeededLWECiphertext{}}
	_, err = roundTripped.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, sct.MessageModulus, roundTripped.MessageModulus)
	require.Equal(t, sct.CarryModulus, roundTripped.CarryModulus)
	require.Equal(t, sct.Degree, roundTripped.Degree)
	require.Equal(t, sct.PBSOrder, roundTripped.PBSOrder)

	expanded := roundTripped.Expand()
	require.Equal(t, uint64(2), ts.engine.Decrypt(ts.ck, expanded))
	require.Equal(t, uint64(2), ts.engine.DecryptCompressed(ts.ck, sct))
}

// TestCiphertextWriteToReadFromRoundTrip exercises Ciphertext's own
// WriteTo/ReadFrom trio independent of the seeded path above.
func TestCiphertextWriteToReadFromRoundTrip(t *testing.T) {
	ts := newTestSetup(t)
	ct := ts.engine.Encrypt(ts.ck, 3, KeyswitchBootstrap)

	var buf bytes.Buffer
	n, err := ct.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, ct.BinarySize(), n)

	roundTripped := &Ciphertext{Value: rlwe.NewLWECiphertext(ct.Value.Dimension())}
	_, err = roundTripped.ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, uint64(3), ts.engine.Decrypt(ts.ck, roundTripped))
}

// TestPBSIdentityPreservesDegree exercises ClearCarry's underlying PBS
// path directly via GenerateAccumulator with the identity function: a
// fresh, already-carry-empty ciphertext must decode unchanged.
func TestPBSIdentityPreservesDegree(t *testing.T) {
	ts := newTestSetup(t)
	ct := ts.engine.Encrypt(ts.ck, 2, KeyswitchBootstrap)

	cleared := ts.engine.ClearCarry(ct, ts.sk)
	require.Equal(t, uint64(2), ts.engine.Decrypt(ts.ck, cleared))
	require.True(t, cleared.Degree < ts.params.MessageModulus())
}

// TestExtractCarryAndMessage checks that extract_message and
// extract_carry decompose a carry-full ciphertext into its
// message/carry halves (§4.7.1 step 2).
func TestExtractCarryAndMessage(t *testing.T) {
	ts := newTestSetup(t)
	messageModulus := ts.params.MessageModulus()
	raw := uint64(11) // message 3, carry 2 at message_modulus=4

	ct := ts.engine.UncheckedEncrypt(ts.ck, raw, KeyswitchBootstrap)

	message := ts.engine.ExtractMessage(ct, ts.sk)
	carry := ts.engine.ExtractCarry(ct, ts.sk)

	require.Equal(t, raw%messageModulus, ts.engine.Decrypt(ts.ck, message))
	require.Equal(t, raw/messageModulus, ts.engine.Decrypt(ts.ck, carry))
}

// TestSmartAddIsIdempotentOnPlaintext exercises §8 property 6: calling
// SmartAdd repeatedly on the same encrypted pair always decodes to the
// same plaintext sum, even though it mutates its arguments in place.
func TestSmartAddIsIdempotentOnPlaintext(t *testing.T) {
	ts := newTestSetup(t)
	a := ts.engine.UncheckedEncrypt(ts.ck, 15, KeyswitchBootstrap)
	b := ts.engine.UncheckedEncrypt(ts.ck, 15, KeyswitchBootstrap)

	want := (uint64(15) + uint64(15)) % ts.params.MessageModulus()

	first := ts.engine.SmartAdd(a, b, ts.sk)
	require.Equal(t, want, ts.engine.Decrypt(ts.ck, first))

	second := ts.engine.SmartAdd(a, b, ts.sk)
	require.Equal(t, want, ts.engine.Decrypt(ts.ck, second))
}

// TestUncheckedNegRoundTrip checks a - a == 0 via UncheckedNeg/Sub.
func TestUncheckedNegRoundTrip(t *testing.T) {
	ts := newTestSetup(t)
	a := ts.engine.Encrypt(ts.ck, 2, KeyswitchBootstrap)

	diff := ts.engine.Sub(a, a, ts.sk)
	require.Equal(t, uint64(0), ts.engine.Decrypt(ts.ck, diff))
}

// TestCompareOps exercises Greater/Less/Equal against their plaintext
// definitions across the whole message space.
func TestCompareOps(t *testing.T) {
	ts := newTestSetup(t)
	for x := uint64(0); x < ts.params.MessageModulus(); x++ {
		for y := uint64(0); y < ts.params.MessageModulus(); y++ {
			a := ts.engine.Encrypt(ts.ck, x, KeyswitchBootstrap)
			b := ts.engine.Encrypt(ts.ck, y, KeyswitchBootstrap)

			var wantGreater, wantLess, wantEqual uint64
			if x > y {
				wantGreater = 1
			}
			if x < y {
				wantLess = 1
			}
			if x == y {
				wantEqual = 1
			}

			require.Equal(t, wantGreater, ts.engine.Decrypt(ts.ck, ts.engine.Greater(a, b, ts.sk)))
			require.Equal(t, wantLess, ts.engine.Decrypt(ts.ck, ts.engine.Less(a, b, ts.sk)))
			require.Equal(t, wantEqual, ts.engine.Decrypt(ts.ck, ts.engine.Equal(a, b, ts.sk)))
		}
	}
}

// TestNativeCRTEncodingRoundTrip exercises the native_crt encoding's
// round trip, which leaves no padding bit free.
func TestNativeCRTEncodingRoundTrip(t *testing.T) {
	ts := newTestSetup(t)
	for msg := uint64(0); msg < ts.params.MessageModulus(); msg++ {
		ct := ts.engine.EncryptNativeCRT(ts.ck, msg, KeyswitchBootstrap)
		require.Equal(t, msg, ts.engine.DecryptNativeCRT(ts.ck, ct))
	}
}

// TestWithoutPaddingEncodingRoundTrip exercises the doubled-delta
// encoding's round trip.
func TestWithoutPaddingEncodingRoundTrip(t *testing.T) {
	ts := newTestSetup(t)
	for msg := uint64(0); msg < ts.params.MessageModulus(); msg++ {
		ct := ts.engine.EncryptWithoutPadding(ts.ck, msg, KeyswitchBootstrap)
		require.Equal(t, msg, ts.engine.DecryptWithoutPadding(ts.ck, ct))
	}
}

// TestMismatchedModuliPanics checks that operating on ciphertexts from
// different parameter sets is a contract violation (§7).
func TestMismatchedModuliPanics(t *testing.T) {
	ts := newTestSetup(t)
	a := ts.engine.Encrypt(ts.ck, 1, KeyswitchBootstrap)
	b := a.Clone()
	b.MessageModulus = 2

	require.Panics(t, func() { ts.engine.BitAnd(a, b, ts.sk) })
}
