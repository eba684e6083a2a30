package interpreter

import (
	"testing"

	"github.com/evm-assure/evmcore/core"
)

func TestStack_PushPop(t *testing.T) {
	s := newStack()
	if err := s.push(core.NewU256(1)); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := s.push(core.NewU256(2)); err != nil {
		t.Fatalf("push: %v", err)
	}

	v, err := s.pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if !v.Eq(core.NewU256(2)) {
		t.Errorf("pop returned %s, want 2 (LIFO order)", v)
	}
}

func TestStack_UnderflowOnEmptyPop(t *testing.T) {
	s := newStack()
	if _, err := s.pop(); err != errStackUnderflow {
		t.Errorf("pop on empty stack = %v, want errStackUnderflow", err)
	}
}

func TestStack_OverflowAtMaxDepth(t *testing.T) {
	s := newStack()
	for i := 0; i < core.MaxStackDepth; i++ {
		if err := s.push(core.NewU256(uint64(i))); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := s.push(core.NewU256(9999)); err != errStackOverflow {
		t.Errorf("push past MaxStackDepth = %v, want errStackOverflow", err)
	}
}

func TestStack_DupAndSwap(t *testing.T) {
	s := newStack()
	_ = s.push(core.NewU256(1))
	_ = s.push(core.NewU256(2))
	_ = s.push(core.NewU256(3))

	if err := s.dup(2); err != nil {
		t.Fatalf("dup: %v", err)
	}
	top, _ := s.peek(0)
	if !top.Eq(core.NewU256(2)) {
		t.Errorf("DUP2 put %s on top, want 2", top)
	}

	s2 := newStack()
	_ = s2.push(core.NewU256(1))
	_ = s2.push(core.NewU256(2))
	if err := s2.swap(1); err != nil {
		t.Fatalf("swap: %v", err)
	}
	top, _ = s2.peek(0)
	bottom, _ := s2.peek(1)
	if !top.Eq(core.NewU256(1)) || !bottom.Eq(core.NewU256(2)) {
		t.Errorf("SWAP1 left stack %s/%s, want 1 on top, 2 below", top, bottom)
	}
}
