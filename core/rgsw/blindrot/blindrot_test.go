package blindrot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
	"github.com/latticeforge/shortint/utils/sampling"
)

func testParams() rlwe.Parameters {
	return rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LWEDimension: 4, GLWEDimension: 1, PolynomialSize: 32,
		LWEModularStdDev: 1e-7, GLWEModularStdDev: 1e-9,
		PBSBaseLog: 4, PBSLevel: 4, KSBaseLog: 2, KSLevel: 5,
		MessageModulus: 4, CarryModulus: 1,
	})
}

func TestModSwitchTo2NRoundTrip(t *testing.T) {
	r := ring.NewNativeRing(32)
	twoN := 64

	got := ModSwitchTo2N(uint64(1)<<63, twoN, r)
	require.Equal(t, twoN/2, got)

	got = ModSwitchTo2N(0, twoN, r)
	require.Equal(t, 0, got)
}

func TestGenerateAccumulatorIdentityAtZero(t *testing.T) {
	r := ring.NewNativeRing(32)
	delta := uint64(1) << 60

	lut := GenerateAccumulator(func(x uint64) uint64 { return x }, 4, delta, r)
	require.Equal(t, 32, lut.N())
	require.Equal(t, uint64(0), lut.Coeffs[0])
}

func TestBootstrapPreservesMessageUnderIdentityLUT(t *testing.T) {
	params := testParams()
	seeder := sampling.NewSeederFromSeed(sampling.Seed{20})
	kg := rlwe.NewKeyGenerator(params, seeder)
	enc := rlwe.NewEncryptor(seeder)
	dec := rlwe.NewDecryptor()
	r := params.RingQ()

	lweSk := kg.GenSecretKey()
	glweSk := kg.GenGLWESecretKey()
	largeSk := glweSk.AsLargeLWESecretKey()

	bk := GenBootstrapKey(lweSk, glweSk, params.PBSGadget(), params.GLWEModularStdDev(), r, enc)

	totalSlots := params.MessageModulus() * params.CarryModulus()
	delta := (uint64(1) << 63) / totalSlots
	lut := GenerateAccumulator(func(x uint64) uint64 { return x }, totalSlots, delta, r)

	m := uint64(2)
	ctIn := enc.EncryptLWE(m*delta, lweSk, params.LWEModularStdDev())

	eval := NewEvaluator(r)
	acc := eval.BlindRotate(ctIn, bk, lut, params.GLWEDimension())
	out := SampleExtract(acc, r)

	got := dec.DecryptLWE(out, largeSk)
	require.InDelta(t, float64(m*delta), float64(got), float64(delta)/2)
}
