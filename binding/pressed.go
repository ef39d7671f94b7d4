package binding

import (
	"sync"

	"golang.org/x/exp/slices"
)

// PressedKeys is the set of key codes held down through passthrough. It may be
// touched from more than one goroutine.
type PressedKeys struct {
	mu   sync.Mutex
	keys map[int]struct{}
}

func NewPressedKeys() *PressedKeys {
	return &PressedKeys{keys: map[int]struct{}{}}
}

func (p *PressedKeys) Press(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys[code] = struct{}{}
}

// Release forgets code and reports whether it was held. Releasing a key that is
// not held is a no-op.
func (p *PressedKeys) Release(code int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.keys[code]
	delete(p.keys, code)
	return ok
}

func (p *PressedKeys) IsHeld(code int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.keys[code]
	return ok
}

// Held returns a sorted snapshot.
func (p *PressedKeys) Held() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, 0, len(p.keys))
	for code := range p.keys {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

func (p *PressedKeys) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

func (p *PressedKeys) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.keys)
}
