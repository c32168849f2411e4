package decimate

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// ErrFraction is returned by Simplify for a reduction fraction outside
// [0, 1).
var ErrFraction = errors.New("decimate: fraction must be in [0.0, 1.0)")

// Options configures a simplification pass. The zero value asks for a
// single worker, a time-based seed, the default failure budget, and no
// progress output.
type Options struct {
	// Workers is the number of concurrent collapse workers. Values < 1
	// mean 1; values above the vertex count are clamped.
	Workers int

	// Seed is the base seed for the per-worker random generators. 0 means
	// seed from the wall clock. Worker i uses Seed+i, so runs are not
	// reproducible across worker counts even with a fixed seed.
	Seed int64

	// FailureBudget bounds the consecutive failed attempts a worker
	// tolerates before giving up on its block, which keeps the driver from
	// livelocking when every remaining candidate is dead. 0 means a
	// default derived from the block length.
	FailureBudget int

	// Progress receives per-phase progress lines. nil discards them.
	Progress io.Writer
}

// Result reports what a simplification pass did.
type Result struct {
	// Collapsed is the number of successful edge collapses; it equals the
	// decrease in the live vertex count.
	Collapsed int

	// Failures counts attempts that did not collapse anything: candidates
	// already removed or faceless, claim conflicts, and declined
	// collapses.
	Failures int
}

// Simplify removes approximately fraction*N vertices from m by iterative
// minimum-cost edge collapse.
//
// The vertex array is split into one contiguous block per worker. Each
// worker repeatedly samples a random candidate vertex in its block, claims
// the candidate and its neighbors in a shared active-neighborhood set, and
// — if no claimed vertex was already held by another worker — collapses
// the candidate's cheapest incident edge. The claim is released on the
// worker's next claim attempt. Because every connectivity change of a
// collapse stays inside the claimed region, workers mutate the graph
// without further locking; only the cost refresh on the region's rim can
// interleave with another worker (see collapseEdge).
//
// Workers stop once the global collapse count reaches the target; the
// count may overshoot by at most Workers-1 because the check is not
// serialized against increments.
func Simplify(m *Mesh, fraction float64, opts Options) (Result, error) {
	if fraction < 0 || fraction >= 1 {
		return Result{}, fmt.Errorf("%w: %g", ErrFraction, fraction)
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	fmt.Fprintf(progress, "Calculating quadrics... ")
	accumulateQuadrics(m)
	fmt.Fprintln(progress, "Done")

	fmt.Fprintf(progress, "Calculating edge costs... ")
	initEdgeCosts(m)
	fmt.Fprintln(progress, "Done")

	target := int(fraction * float64(len(m.vertices)))
	fmt.Fprintf(progress, "Simplifying [target = %d vertex(s)]... ", target)
	res := simplifyParallel(m, target, opts)
	fmt.Fprintf(progress, "Done [%d failure(s)]\n", res.Failures)

	return res, nil
}

func simplifyParallel(m *Mesh, target int, opts Options) Result {
	if target <= 0 {
		return Result{}
	}

	verts := m.vertices
	n := len(verts)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		collapsed atomic.Int64
		failures  atomic.Int64

		mu     sync.Mutex
		active = make(map[int]struct{})
	)

	blockSize := n / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * blockSize
		length := blockSize
		if i == workers-1 {
			length = n - start
		}

		budget := opts.FailureBudget
		if budget <= 0 {
			budget = defaultFailureBudget(length)
		}

		wg.Add(1)
		go func(worker, start, length, budget int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed + int64(worker)))
			var claim []int
			held := false
			remaining := budget

			release := func() {
				mu.Lock()
				for _, id := range claim {
					delete(active, id)
				}
				mu.Unlock()
				held = false
			}

			for collapsed.Load() < int64(target) {
				v := verts[start+rng.Intn(length)]

				// Dead candidates cost an attempt but nothing else.
				if v.removed || !v.HasFaces() {
					failures.Add(1)
					remaining--
					if remaining <= 0 {
						break
					}
					continue
				}

				mu.Lock()
				if held {
					for _, id := range claim {
						delete(active, id)
					}
				}
				// A candidate that is itself claimed is an immediate
				// conflict; its incidence maps may be mutating right now,
				// so they must not even be read.
				_, conflict := active[v.ID]
				if !conflict {
					claim = claim[:0]
					claim = append(claim, v.ID)
					for id := range v.Neighbors {
						claim = append(claim, id)
					}
					for _, id := range claim {
						if _, busy := active[id]; busy {
							conflict = true
							break
						}
					}
				}
				if !conflict {
					for _, id := range claim {
						active[id] = struct{}{}
					}
				}
				held = !conflict
				mu.Unlock()

				ok := false
				if !conflict {
					// Contract the claimed candidate into one of its
					// neighbors: every rewired edge and retargeted face
					// then stays inside the claimed one-ring.
					if e := v.MinCostEdge(); e != nil {
						ok = collapseEdgeInto(e, v)
					}
				}

				if ok {
					collapsed.Add(1)
					remaining = budget
				} else {
					failures.Add(1)
					remaining--
					if remaining <= 0 {
						break
					}
				}
			}

			if held {
				release()
			}
		}(i, start, length, budget)
	}
	wg.Wait()

	return Result{
		Collapsed: int(collapsed.Load()),
		Failures:  int(failures.Load()),
	}
}

func defaultFailureBudget(blockLength int) int {
	const floor = 1024
	budget := 64 * blockLength
	if budget < floor {
		return floor
	}
	return budget
}
