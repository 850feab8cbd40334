package rgsw

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
	"github.com/latticeforge/shortint/utils/sampling"
)

func testRing() *ring.Ring { return ring.NewNativeRing(16) }

func testGadget() ring.Gadget { return ring.Gadget{BaseLog: 4, LevelCount: 4} }

func TestGGSWEncryptZeroDecryptsToZero(t *testing.T) {
	r := testRing()
	seeder := sampling.NewSeederFromSeed(sampling.Seed{10})
	rlweEnc := rlwe.NewEncryptor(seeder)
	glweKg := rlwe.NewKeyGenerator(rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LWEDimension: 8, GLWEDimension: 1, PolynomialSize: 16,
		LWEModularStdDev: 1e-6, GLWEModularStdDev: 1e-8,
		PBSBaseLog: 4, PBSLevel: 3, KSBaseLog: 2, KSLevel: 5,
		MessageModulus: 4, CarryModulus: 4,
	}), seeder)
	sk := glweKg.GenGLWESecretKey()

	enc := NewEncryptor(rlweEnc)
	ct := enc.EncryptZero(1, r.N, sk, 1e-8, r, testGadget())

	dec := rlwe.NewDecryptor()
	for c := range ct.Value {
		for l := range ct.Value[c] {
			pt := dec.DecryptGLWE(&ct.Value[c][l], sk, r)
			for _, coeff := range pt.Coeffs {
				require.InDelta(t, 0, float64(int64(coeff)), float64(uint64(1)<<40))
			}
		}
	}
}

func TestExternalProductOfOneIsIdentity(t *testing.T) {
	r := testRing()
	seeder := sampling.NewSeederFromSeed(sampling.Seed{11})
	rlweEnc := rlwe.NewEncryptor(seeder)
	params := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LWEDimension: 8, GLWEDimension: 1, PolynomialSize: 16,
		LWEModularStdDev: 1e-6, GLWEModularStdDev: 1e-8,
		PBSBaseLog: 4, PBSLevel: 4, KSBaseLog: 2, KSLevel: 5,
		MessageModulus: 4, CarryModulus: 4,
	})
	kg := rlwe.NewKeyGenerator(params, seeder)
	sk := kg.GenGLWESecretKey()
	dec := rlwe.NewDecryptor()

	delta := uint64(1) << 58

	one := r.NewPoly()
	one.Coeffs[0] = 1
	ggswEnc := NewEncryptor(rlweEnc)
	ggswOne := ggswEnc.Encrypt(one, sk, 1e-9, r, testGadget())

	pt := r.NewPoly()
	pt.Coeffs[0] = delta
	ctIn := rlweEnc.EncryptGLWE(pt, sk, params.GLWEModularStdDev(), r)

	ctOut := rlwe.NewGLWECiphertext(1, r.N)
	eval := NewEvaluator(r)
	eval.ExternalProduct(ctIn, ggswOne, ctOut)

	got := dec.DecryptGLWE(ctOut, sk, r)
	require.InDelta(t, float64(delta), float64(got.Coeffs[0]), float64(uint64(1)<<50))
}

func TestCMuxSelectsOperandByControlBit(t *testing.T) {
	r := testRing()
	seeder := sampling.NewSeederFromSeed(sampling.Seed{12})
	rlweEnc := rlwe.NewEncryptor(seeder)
	params := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
		LWEDimension: 8, GLWEDimension: 1, PolynomialSize: 16,
		LWEModularStdDev: 1e-6, GLWEModularStdDev: 1e-8,
		PBSBaseLog: 4, PBSLevel: 4, KSBaseLog: 2, KSLevel: 5,
		MessageModulus: 4, CarryModulus: 4,
	})
	kg := rlwe.NewKeyGenerator(params, seeder)
	sk := kg.GenGLWESecretKey()
	dec := rlwe.NewDecryptor()
	ggswEnc := NewEncryptor(rlweEnc)

	pt0 := r.NewPoly()
	pt0.Coeffs[0] = uint64(1) << 58
	pt1 := r.NewPoly()
	pt1.Coeffs[0] = uint64(2) << 58

	ct0 := rlweEnc.EncryptGLWE(pt0, sk, params.GLWEModularStdDev(), r)
	ct1 := rlweEnc.EncryptGLWE(pt1, sk, params.GLWEModularStdDev(), r)

	zero := r.NewPoly()
	selZero := ggswEnc.Encrypt(zero, sk, 1e-9, r, testGadget())

	out := rlwe.NewGLWECiphertext(1, r.N)
	eval := NewEvaluator(r)
	eval.CMux(ct0, ct1, selZero, out)

	got := dec.DecryptGLWE(out, sk, r)
	require.InDelta(t, float64(pt0.Coeffs[0]), float64(got.Coeffs[0]), float64(uint64(1)<<50))
}
