package diff

import "github.com/evm-assure/evmcore/core"

// Minimize implements the delta-debugging minimizer described in spec
// §4.9: given a Candidate whose code reproduces a Divergence, find a
// smaller candidate that still reproduces a divergence of the same
// Category between the same pair of forks. It follows the standard
// ddmin bisection recurrence: partition the code into n chunks, try
// removing each chunk (and each chunk's complement) in turn, and on any
// successful reduction restart from n=2; if no chunk or complement
// removal reduces the code at the current granularity, double n, up to
// the point where n exceeds the code length, at which point minimization
// has converged.
func Minimize(candidate Candidate, forkA, forkB core.Revision, category Category) Candidate {
	current := candidate
	n := 2

	for len(current.Code) >= 2 {
		chunkSize := (len(current.Code) + n - 1) / n
		if chunkSize == 0 {
			break
		}

		reduced, ok := tryReduce(current, forkA, forkB, category, chunkSize)
		if ok {
			current = reduced
			n = 2
			continue
		}

		if n >= len(current.Code) {
			break
		}
		n *= 2
	}

	return current
}

// tryReduce attempts one round of chunk/complement removal at the given
// chunk size, returning the first smaller candidate that still reproduces
// the same category of divergence.
func tryReduce(c Candidate, forkA, forkB core.Revision, category Category, chunkSize int) (Candidate, bool) {
	code := c.Code
	for start := 0; start < len(code); start += chunkSize {
		end := start + chunkSize
		if end > len(code) {
			end = len(code)
		}

		// Try removing the chunk itself.
		without := append(append([]byte{}, code[:start]...), code[end:]...)
		if reproduces(withCode(c, without), forkA, forkB, category) {
			return withCode(c, without), true
		}

		// Try keeping only the chunk (removing its complement).
		onlyChunk := append([]byte{}, code[start:end]...)
		if reproduces(withCode(c, onlyChunk), forkA, forkB, category) {
			return withCode(c, onlyChunk), true
		}
	}
	return c, false
}

func withCode(c Candidate, code []byte) Candidate {
	c.Code = code
	return c
}

// reproduces reports whether running c under forkA/forkB yields a
// divergence in exactly category. A timeout or a different category of
// divergence both count as "does not reproduce", per spec §4.9's
// exact-category-equality termination predicate.
func reproduces(c Candidate, forkA, forkB core.Revision, category Category) bool {
	d := Execute(c, forkA, forkB)
	return d != nil && d.Category == category
}
