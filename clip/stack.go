// Package clip assigns clip keys to nested clip regions and owns the
// per-pixel clip depth comparison.
//
// Every draw carries a clip depth. Content draws pass where their depth is
// at least as near as the depth recorded for the pixel, that is where
// depth <= recorded. A clip-only draw for key k with parent p records k
// where p <= recorded, so a child region is always the intersection of its
// shape with the parent region. Keys grow monotonically, which keeps
// regions that were popped from matching later siblings.
package clip

import "errors"

// Key identifies a clip region. The zero Key is the root: no clip.
type Key uint32

// MaxKey is the largest key a Stack hands out before it must be reset.
// Depths of distinct keys stay distinct at 24-bit depth precision.
const MaxKey Key = 1<<24 - 1

// ErrKeysExhausted is returned by Push once MaxKey has been used.
var ErrKeysExhausted = errors.New("clip: keys exhausted, reset the stack and depth buffer")

// DepthOf maps a key to its clip depth in [0, 1]. The root maps to 0.
func DepthOf(k Key) float32 {
	return float32(k) / float32(MaxKey)
}

// Stack manages hierarchical clip regions with push/pop operations.
type Stack struct {
	entries []entry
	current Key
	last    Key
}

// entry represents a single pushed clip region.
type entry struct {
	key    Key
	parent Key
}

// NewStack creates an empty clip stack positioned at the root.
func NewStack() *Stack {
	return &Stack{
		entries: make([]entry, 0, 8),
	}
}

// Push opens a new clip region nested in the current one and makes it
// current. The caller draws the region's shape with a clip-only paint at
// DepthOf(key), then draws its content at the same depth.
func (s *Stack) Push() (Key, error) {
	if s.last >= MaxKey {
		return 0, ErrKeysExhausted
	}
	s.last++
	s.entries = append(s.entries, entry{key: s.last, parent: s.current})
	s.current = s.last
	return s.current, nil
}

// Pop closes the current region and restores its parent.
// If the stack is empty, this is a no-op.
func (s *Stack) Pop() {
	if len(s.entries) == 0 {
		return
	}
	lastIdx := len(s.entries) - 1
	s.current = s.entries[lastIdx].parent
	s.entries = s.entries[:lastIdx]
}

// Current returns the key content draws use.
func (s *Stack) Current() Key {
	return s.current
}

// Parent returns the parent of the current region, or the root.
func (s *Stack) Parent() Key {
	if len(s.entries) == 0 {
		return 0
	}
	return s.entries[len(s.entries)-1].parent
}

// ClipDepth returns the depth content draws use.
func (s *Stack) ClipDepth() float32 {
	return DepthOf(s.current)
}

// Depth returns the number of open regions.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Reset closes every region and restarts key assignment.
// The depth buffer must be cleared at the same time.
func (s *Stack) Reset() {
	s.entries = s.entries[:0]
	s.current = 0
	s.last = 0
}
