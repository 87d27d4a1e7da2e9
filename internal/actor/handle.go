package actor

import (
	"context"
	"sync"
	"time"

	"hotelcluster/internal/auth"
)

// bindTimeout bounds a single background bind attempt.
const bindTimeout = 10 * time.Second

// Handle is the lazily-bound connection to the backend. Actor() stays nil
// while binding is in flight or after it failed; callers must treat nil as
// "not ready" and suppress requests.
type Handle struct {
	mu       sync.RWMutex
	actor    Actor
	fetching bool
	err      error
}

// Actor returns the bound actor, or nil when not ready.
func (h *Handle) Actor() Actor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.actor
}

// IsFetching reports whether a bind is in flight.
func (h *Handle) IsFetching() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fetching
}

// Err returns the last bind error, if any.
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

func (h *Handle) complete(a Actor, err error) {
	h.mu.Lock()
	h.actor = a
	h.err = err
	h.fetching = false
	h.mu.Unlock()
}

// beginRetry marks a failed handle as fetching again. Reports false when the
// handle is already bound or a bind is in flight.
func (h *Handle) beginRetry() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.actor != nil || h.fetching || h.err == nil {
		return false
	}
	h.fetching = true
	h.err = nil
	return true
}

// Registry hands out one handle per principal and runs binds in the
// background. Anonymous principals get a permanently-unbound handle.
type Registry struct {
	mu      sync.Mutex
	binder  Binder
	handles map[auth.Principal]*Handle
}

// NewRegistry creates a handle registry over the binder.
func NewRegistry(binder Binder) *Registry {
	return &Registry{
		binder:  binder,
		handles: make(map[auth.Principal]*Handle),
	}
}

// HandleFor returns the handle for the principal, starting a background
// bind on first use. A handle whose last bind failed retries on the next
// use, so a transient store failure does not wedge the principal until
// logout.
func (r *Registry) HandleFor(principal auth.Principal) *Handle {
	if principal.IsAnonymous() {
		return &Handle{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[principal]; ok {
		if h.beginRetry() {
			go r.bind(h, principal)
		}
		return h
	}

	h := &Handle{fetching: true}
	r.handles[principal] = h
	go r.bind(h, principal)

	return h
}

func (r *Registry) bind(h *Handle, principal auth.Principal) {
	ctx, cancel := context.WithTimeout(context.Background(), bindTimeout)
	defer cancel()
	a, err := r.binder.Bind(ctx, principal)
	h.complete(a, err)
}

// Drop discards the principal's handle, forcing a rebind on next use. Called
// on logout so a cleared session cannot keep a live actor.
func (r *Registry) Drop(principal auth.Principal) {
	r.mu.Lock()
	delete(r.handles, principal)
	r.mu.Unlock()
}
