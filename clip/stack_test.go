package clip

import (
	"errors"
	"testing"
)

func TestNewStack(t *testing.T) {
	s := NewStack()
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", s.Depth())
	}
	if s.Current() != 0 || s.Parent() != 0 {
		t.Errorf("Current() = %d, Parent() = %d, want root", s.Current(), s.Parent())
	}
	if s.ClipDepth() != 0 {
		t.Errorf("ClipDepth() = %v, want 0", s.ClipDepth())
	}
}

func TestStack_PushPop(t *testing.T) {
	s := NewStack()

	k1, err := s.Push()
	if err != nil {
		t.Fatal(err)
	}
	k2, err := s.Push()
	if err != nil {
		t.Fatal(err)
	}
	if k2 <= k1 {
		t.Errorf("keys not increasing: %d then %d", k1, k2)
	}
	if s.Parent() != k1 || s.Current() != k2 || s.Depth() != 2 {
		t.Errorf("after two pushes: current %d parent %d depth %d", s.Current(), s.Parent(), s.Depth())
	}

	s.Pop()
	if s.Current() != k1 || s.Parent() != 0 {
		t.Errorf("after pop: current %d parent %d, want %d and root", s.Current(), s.Parent(), k1)
	}

	// A sibling gets a fresh key, never a reused one.
	k3, _ := s.Push()
	if k3 <= k2 {
		t.Errorf("sibling key %d not above %d", k3, k2)
	}
	if s.Parent() != k1 {
		t.Errorf("sibling parent = %d, want %d", s.Parent(), k1)
	}

	s.Pop()
	s.Pop()
	s.Pop() // no-op on empty stack
	if s.Current() != 0 || s.Depth() != 0 {
		t.Errorf("after popping everything: current %d depth %d", s.Current(), s.Depth())
	}
}

func TestStack_Reset(t *testing.T) {
	s := NewStack()
	_, _ = s.Push()
	_, _ = s.Push()
	s.Reset()
	if s.Depth() != 0 || s.Current() != 0 {
		t.Errorf("Reset() left depth %d current %d", s.Depth(), s.Current())
	}
	if k, _ := s.Push(); k != 1 {
		t.Errorf("first key after Reset() = %d, want 1", k)
	}
}

func TestStack_Exhausted(t *testing.T) {
	s := NewStack()
	s.last = MaxKey - 1
	if _, err := s.Push(); err != nil {
		t.Fatalf("Push() at MaxKey-1: %v", err)
	}
	if _, err := s.Push(); !errors.Is(err, ErrKeysExhausted) {
		t.Errorf("Push() past MaxKey error = %v, want %v", err, ErrKeysExhausted)
	}
}

func TestDepthOf(t *testing.T) {
	if DepthOf(0) != 0 {
		t.Errorf("DepthOf(0) = %v, want 0", DepthOf(0))
	}
	if DepthOf(MaxKey) != 1 {
		t.Errorf("DepthOf(MaxKey) = %v, want 1", DepthOf(MaxKey))
	}
	for _, k := range []Key{1, 1000, MaxKey / 2, MaxKey - 1} {
		if !(DepthOf(k) < DepthOf(k+1)) {
			t.Errorf("DepthOf(%d) = %v not below DepthOf(%d) = %v", k, DepthOf(k), k+1, DepthOf(k+1))
		}
	}
}
