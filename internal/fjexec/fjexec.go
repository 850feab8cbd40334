// Package fjexec implements the small fork-join, data-parallel
// executor described in spec §5: parallelism inside a single
// operation, never across operations. Its one caller is carry
// propagation (ParallelPair); external product and FFT passes run
// sequentially.
package fjexec

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Workers returns the number of logical cores to fan out across,
// probed via cpuid instead of a bare runtime.NumCPU() so the executor
// sizes itself the way the pack's performance-sensitive code gates
// parallel/SIMD paths on detected CPU topology.
func Workers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return 1
}

// Parallel calls fn(i) for every i in [0, n), fanning out across at
// most Workers() goroutines, and blocks until all calls complete. It
// is the barrier primitive for data-parallel inner loops (no package
// calls it at present); it never crosses a single homomorphic operation's boundary (§5:
// "Suspension points: none").
func Parallel(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := Workers()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	next := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}

// ParallelPair runs two independent thunks concurrently and waits for
// both, the exact shape spec §4.7.1 describes for the message/carry
// extraction pair inside a single Propagate call.
func ParallelPair(a, b func()) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a()
	}()
	go func() {
		defer wg.Done()
		b()
	}()
	wg.Wait()
}
