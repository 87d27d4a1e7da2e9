package guard

import (
	"sync"

	"hotelcluster/internal/auth"
)

// Navigator debounces redirect side effects. Re-evaluating the guard in an
// unchanged state must not re-fire a redirect already in flight, so
// redirects are keyed on state transitions. Every decision is observed,
// redirecting or not, so a round trip through another state re-arms the
// redirect for that route.
type Navigator struct {
	mu   sync.Mutex
	last map[auth.Principal]map[string]State
}

// NewNavigator creates a navigator.
func NewNavigator() *Navigator {
	return &Navigator{last: make(map[auth.Principal]map[string]State)}
}

// Observe records the decision taken for the principal on the given path and
// reports whether its redirect should fire. Only a decision that carries a
// redirect and differs from the previously observed state for that path
// navigates.
func (n *Navigator) Observe(principal auth.Principal, path string, d Decision) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	paths, ok := n.last[principal]
	if !ok {
		paths = make(map[string]State)
		n.last[principal] = paths
	}
	prev, seen := paths[path]
	paths[path] = d.State

	if d.Redirect == "" {
		return false
	}
	return !seen || prev != d.State
}

// Reset forgets everything observed for the principal, so its next decision
// fires regardless of the last observed state. Called on logout.
func (n *Navigator) Reset(principal auth.Principal) {
	n.mu.Lock()
	delete(n.last, principal)
	n.mu.Unlock()
}
