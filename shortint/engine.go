package shortint

import (
	"sync"

	"github.com/latticeforge/shortint/core/rgsw/blindrot"
	"github.com/latticeforge/shortint/core/rlwe"
	"github.com/latticeforge/shortint/ring"
	"github.com/latticeforge/shortint/utils/sampling"
)

// Engine is the thread-local cryptographic worker of §4.6: it holds
// the three RNGs (via its rlwe.Encryptor's EncryptionGenerator and its
// own Seeder), the blind-rotate/external-product evaluator (which owns
// the negacyclic NTT's twiddle-factor table, built once in
// blindrot.NewEvaluator and reused by every PBS call an Engine
// performs, §4.6's "generic computation buffer for the FFT
// temporaries"), and a small growable scratch buffer reused across
// bivariate-PBS calls (§4.6's "byte arena... re-used for... the two
// intermediate LWE buffers needed by PBS"). This mirrors the teacher's
// buffer-pool idiom in core/rlwe/pool.go/ring/pool.go generalized from
// "pool of buffers" to "pool of whole per-worker engines" (EnginePool,
// below).
//
// An Engine must never cross threads: §5 requires each thread to own
// exactly one instance, lazily constructed on first use.
type Engine struct {
	Params rlwe.Parameters
	RingQ  *ring.Ring
	Seeder *sampling.Seeder
	Enc    *rlwe.Encryptor
	Dec    *rlwe.Decryptor

	blindRot *blindrot.Evaluator
	packBuf  []uint64
}

func newEngine(params rlwe.Parameters, seeder *sampling.Seeder) *Engine {
	ringQ := params.RingQ()
	return &Engine{
		Params:   params,
		RingQ:    ringQ,
		Seeder:   seeder,
		Enc:      rlwe.NewEncryptor(seeder),
		Dec:      rlwe.NewDecryptor(),
		blindRot: blindrot.NewEvaluator(ringQ),
	}
}

// takePackBuf returns a zeroed scratch slice of length n, growing the
// engine's backing array if necessary but never shrinking it (§4.6).
func (e *Engine) takePackBuf(n int) []uint64 {
	if cap(e.packBuf) < n {
		e.packBuf = make([]uint64, n)
	}
	s := e.packBuf[:n]
	for i := range s {
		s[i] = 0
	}
	return s
}

// EnginePool hands out per-thread Engines over the same Parameters,
// lazily constructing them on first Acquire and recycling them on
// Release (§5 "Thread-local engine lifecycle"). It is the Go idiom for
// "thread-local, lazily constructed, never crosses threads": a
// sync.Pool whose Get never fabricates more live instances than there
// are concurrent goroutines actually asking for one.
type EnginePool struct {
	pool sync.Pool
	mu   sync.Mutex
	root *sampling.Seeder
}

// NewEnginePool builds an EnginePool that constructs Engines under
// params, each seeded from a distinct child seed drawn from root so
// that concurrent Acquire calls never share a Seeder instance (§4.2,
// §5: "if two threads seed in parallel, each must use a distinct
// seeder instance").
func NewEnginePool(params rlwe.Parameters, root *sampling.Seeder) *EnginePool {
	ep := &EnginePool{root: root}
	ep.pool.New = func() any {
		ep.mu.Lock()
		childSeed := ep.root.NextSeed()
		ep.mu.Unlock()
		return newEngine(params, sampling.NewSeederFromSeed(childSeed))
	}
	return ep
}

// Acquire returns an Engine for exclusive use by the calling thread.
// The caller must Release it when done.
func (ep *EnginePool) Acquire() *Engine {
	return ep.pool.Get().(*Engine)
}

// Release returns e to the pool for reuse by a later Acquire. e must
// not be used again by the caller after this call.
func (ep *EnginePool) Release(e *Engine) {
	ep.pool.Put(e)
}

// PBS runs the full programmable-bootstrap pipeline of §4.5 on ctIn,
// composing blind-rotate/sample-extract with the key-switch according
// to order (the pbs_order dispatch noted in DESIGN.md as belonging at
// the shortint level, not inside core/rgsw/blindrot): KeyswitchBootstrap
// performs {KS,BR,SE}, BootstrapKeyswitch performs {BR,SE,KS}. The
// result's externally visible LWE dimension matches order, regardless
// of ctIn's own dimension.
func (e *Engine) PBS(ctIn *rlwe.LWECiphertext, sk *ServerKey, order PBSOrder, lut ring.Poly) *rlwe.LWECiphertext {
	k := e.Params.GLWEDimension()
	switch order {
	case KeyswitchBootstrap:
		small := sk.KeySwitchingKey.KeySwitch(ctIn)
		return e.blindRot.Bootstrap(small, sk.BootstrapKey, lut, k)
	case BootstrapKeyswitch:
		large := e.blindRot.Bootstrap(ctIn, sk.BootstrapKey, lut, k)
		return sk.KeySwitchingKey.KeySwitch(large)
	default:
		panic("shortint: unknown pbs_order")
	}
}

// applyAccumulator runs ct's value through acc's PBS and returns the
// resulting Ciphertext, stamping acc's tracked degree on the output
// (§4.5 "degree of the output equals the accumulator's stored
// max_value").
func (e *Engine) applyAccumulator(ct *Ciphertext, sk *ServerKey, acc *Accumulator) *Ciphertext {
	out := e.PBS(ct.Value, sk, ct.PBSOrder, acc.LUT)
	return &Ciphertext{
		Value:          out,
		MessageModulus: ct.MessageModulus,
		CarryModulus:   ct.CarryModulus,
		Degree:         acc.Degree,
		PBSOrder:       ct.PBSOrder,
	}
}

// applyBivariateAccumulator packs a and b (§4.6 "input = lhs*scaling +
// rhs") and runs the packed ciphertext through acc's PBS. The packed
// intermediate is built on the engine's reusable scratch buffer: PBS
// reads it synchronously (KeySwitch/Bootstrap never retain their
// input past the call) and returns a freshly allocated result, so
// packed never needs to outlive this call.
func (e *Engine) applyBivariateAccumulator(a, b *Ciphertext, sk *ServerKey, acc *Accumulator, scaling uint64) *Ciphertext {
	packed := e.packLWE(a.Value, b.Value, scaling)
	out := e.PBS(packed, sk, a.PBSOrder, acc.LUT)
	return &Ciphertext{
		Value:          out,
		MessageModulus: a.MessageModulus,
		CarryModulus:   a.CarryModulus,
		Degree:         acc.Degree,
		PBSOrder:       a.PBSOrder,
	}
}

// packLWE computes out = a*scaling + b, coordinate-wise under native
// wraparound: the homomorphic-packing step bivariate PBS relies on
// (§4.6). out is backed by the engine's scratch buffer and must not be
// retained past its immediate consumer.
func (e *Engine) packLWE(a, b *rlwe.LWECiphertext, scaling uint64) *rlwe.LWECiphertext {
	buf := e.takePackBuf(len(a.Value))
	copy(buf, a.Value)
	out := rlwe.LWECiphertextFromContainer(buf)
	ring.ScalarMulAssign(out.Value, scaling)
	ring.AddVec(out.Value, b.Value, out.Value)
	return out
}
