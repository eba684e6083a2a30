package interpreter

import "github.com/evm-assure/evmcore/core"

// stack is the bounded U256 stack described in spec §3/§4.3. Entries are
// stored with the top of stack at the highest index, matching the
// teacher's lfvm stack layout.
type stack struct {
	data []core.U256
}

func newStack() *stack {
	return &stack{data: make([]core.U256, 0, 16)}
}

func (s *stack) len() int { return len(s.data) }

func (s *stack) push(v core.U256) error {
	if len(s.data) >= core.MaxStackDepth {
		return errStackOverflow
	}
	s.data = append(s.data, v)
	return nil
}

func (s *stack) pop() (core.U256, error) {
	n := len(s.data)
	if n == 0 {
		return core.Zero, errStackUnderflow
	}
	v := s.data[n-1]
	s.data = s.data[:n-1]
	return v, nil
}

// peek returns the n-th entry from the top (0-indexed) without removing it.
func (s *stack) peek(n int) (core.U256, error) {
	idx := len(s.data) - 1 - n
	if idx < 0 {
		return core.Zero, errStackUnderflow
	}
	return s.data[idx], nil
}

// dup duplicates the n-th entry from the top (1..=16) onto the top.
func (s *stack) dup(n int) error {
	idx := len(s.data) - n
	if idx < 0 {
		return errStackUnderflow
	}
	return s.push(s.data[idx])
}

// swap exchanges the top entry with the (n+1)-th entry from the top
// (n in 1..=16).
func (s *stack) swap(n int) error {
	top := len(s.data) - 1
	other := top - n
	if other < 0 {
		return errStackUnderflow
	}
	s.data[top], s.data[other] = s.data[other], s.data[top]
	return nil
}

// set overwrites the n-th entry from the top (0-indexed); used by call
// orchestration helpers after checking bounds via peek.
func (s *stack) set(n int, v core.U256) {
	idx := len(s.data) - 1 - n
	s.data[idx] = v
}
