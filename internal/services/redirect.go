package services

import "sync"

// RedirectState enumerates the redirect guard's states.
type RedirectState int

const (
	// RedirectIdle means no login redirect is pending.
	RedirectIdle RedirectState = iota
	// Redirecting means a 401 has already claimed the one shared redirect.
	Redirecting
)

// RedirectGuard serializes the single shared "send the user to login" side
// effect. The first 401 arms the guard and fires the callback; every later
// 401, and every call made while armed, is suppressed. Reset on the next
// full client start (or explicitly after a successful login).
type RedirectGuard struct {
	mu         sync.Mutex
	state      RedirectState
	onRedirect func()
}

// NewRedirectGuard creates a guard in the idle state. onRedirect may be nil;
// when set it runs exactly once per arming, while the guard's lock is not held.
func NewRedirectGuard(onRedirect func()) *RedirectGuard {
	return &RedirectGuard{onRedirect: onRedirect}
}

// State returns the guard's current state.
func (g *RedirectGuard) State() RedirectState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Begin attempts to claim the redirect. Returns true for the single caller
// that wins; that caller's callback has been invoked by the time Begin returns.
func (g *RedirectGuard) Begin() bool {
	g.mu.Lock()
	if g.state == Redirecting {
		g.mu.Unlock()
		return false
	}
	g.state = Redirecting
	cb := g.onRedirect
	g.mu.Unlock()

	if cb != nil {
		cb()
	}
	return true
}

// Reset returns the guard to idle.
func (g *RedirectGuard) Reset() {
	g.mu.Lock()
	g.state = RedirectIdle
	g.mu.Unlock()
}
