package diff

import (
	"context"
	"sync"
	"time"

	"github.com/evm-assure/evmcore/core"
)

// Outcome is one candidate's result from a pooled run: exactly one of
// Divergence, Timeout, or neither (agreement) is meaningful.
type Outcome struct {
	Candidate  Candidate
	Divergence *Divergence
	Timeout    bool
}

// RunPool fans candidates out across a bounded pool of goroutines, per
// spec §5's concurrency model: every candidate runs against its own,
// independent world state, so candidates never share mutable state and
// are trivially parallelizable, the same way the teacher's driver
// distributes test-case generation and execution across worker
// goroutines. perCandidate bounds the wall-clock time given to any one
// candidate; a candidate that exceeds it is reported as a Timeout rather
// than folded into the divergence count.
func RunPool(candidates []Candidate, forkA, forkB core.Revision, workers int, perCandidate time.Duration) []Outcome {
	if workers < 1 {
		workers = 1
	}

	results := make([]Outcome, len(candidates))

	work := make(chan int, len(candidates))
	for i := range candidates {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = runWithTimeout(candidates[i], forkA, forkB, perCandidate)
			}
		}()
	}
	wg.Wait()

	return results
}

// runWithTimeout runs one candidate on its own goroutine and reports a
// Timeout outcome if it does not finish within limit. The candidate's
// goroutine is intentionally left running past the deadline rather than
// killed — Go has no mechanism to preempt a goroutine mid-instruction —
// but since each candidate owns its own disposable world state, an
// abandoned goroutine cannot corrupt any other candidate's run.
func runWithTimeout(c Candidate, forkA, forkB core.Revision, limit time.Duration) Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), limit)
	defer cancel()

	done := make(chan *Divergence, 1)
	go func() {
		done <- Execute(c, forkA, forkB)
	}()

	select {
	case d := <-done:
		return Outcome{Candidate: c, Divergence: d}
	case <-ctx.Done():
		return Outcome{Candidate: c, Timeout: true}
	}
}
