package service

import "sync"

// Guard tracks in-flight mutations so a double-submitted form cannot fire the
// same request twice before the first resolves.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard builds an empty guard.
func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Begin marks the key as in flight. It reports false when the same mutation
// is already running.
func (g *Guard) Begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.active[key]; exists {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// End releases the key.
func (g *Guard) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
