// Package resolver layers the two cached caller lookups, profile and admin
// status, on top of the connection handle. Authorization failures are
// degraded to benign defaults here, never surfaced as errors: an
// unauthorized profile read means "not onboarded", an unauthorized admin
// check means "not admin".
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelcluster/internal/actor"
	"hotelcluster/internal/auth"
	"hotelcluster/internal/cache"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
)

// retryDelay is the fixed pause before the single retry of a failed read.
const retryDelay = 500 * time.Millisecond

// Outcome tags the result of a profile lookup.
type Outcome int

const (
	// OutcomeAuthorized means the caller has a profile.
	OutcomeAuthorized Outcome = iota
	// OutcomeNotOnboarded means the caller is authenticated but has no
	// profile yet (including the degraded unauthorized case).
	OutcomeNotOnboarded
	// OutcomeError means the lookup failed in an unexpected way.
	OutcomeError
)

// ProfileResult is the tagged outcome of a caller profile lookup. Fetched is
// false while the connection handle is not ready; a stale-but-cached value
// still counts as fetched.
type ProfileResult struct {
	Outcome Outcome
	Profile *model.UserProfile
	Err     error
	Fetched bool
}

// AdminResult is the outcome of a caller admin check. It never carries an
// error: every failure resolves to not-admin.
type AdminResult struct {
	IsAdmin bool
	Fetched bool
}

// Resolver caches the two caller lookups with a short freshness window.
type Resolver struct {
	cache *cache.QueryCache
}

// New creates a resolver over the query cache.
func New(qc *cache.QueryCache) *Resolver {
	return &Resolver{cache: qc}
}

type cachedProfile struct {
	Profile *model.UserProfile `json:"profile"`
}

// CallerProfile resolves the caller's profile through the actor. A nil
// actor yields an unfetched result; consumers render a spinner, not an
// error.
func (r *Resolver) CallerProfile(ctx context.Context, a actor.Actor) ProfileResult {
	if a == nil {
		return ProfileResult{}
	}

	var entry cachedProfile
	err := r.cache.GetOrFetch(ctx, profileKey(a.Caller()), &entry, func(ctx context.Context) (interface{}, error) {
		profile, err := fetchProfileWithRetry(ctx, a)
		if err != nil {
			return nil, err
		}
		return cachedProfile{Profile: profile}, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// Authorization failures degrade to not-yet-onboarded.
			return ProfileResult{Outcome: OutcomeNotOnboarded, Fetched: true}
		}
		return ProfileResult{Outcome: OutcomeError, Err: err, Fetched: true}
	}

	if entry.Profile == nil {
		return ProfileResult{Outcome: OutcomeNotOnboarded, Fetched: true}
	}
	return ProfileResult{Outcome: OutcomeAuthorized, Profile: entry.Profile, Fetched: true}
}

type cachedAdmin struct {
	IsAdmin bool `json:"is_admin"`
}

// CallerIsAdmin resolves the caller's admin status. Every failure, expected
// or not, resolves to false.
func (r *Resolver) CallerIsAdmin(ctx context.Context, a actor.Actor) AdminResult {
	if a == nil {
		return AdminResult{}
	}

	var entry cachedAdmin
	err := r.cache.GetOrFetch(ctx, adminKey(a.Caller()), &entry, func(ctx context.Context) (interface{}, error) {
		isAdmin, err := a.IsCallerAdmin(ctx)
		if err != nil {
			return cachedAdmin{IsAdmin: false}, nil
		}
		return cachedAdmin{IsAdmin: isAdmin}, nil
	})
	if err != nil {
		return AdminResult{IsAdmin: false, Fetched: true}
	}
	return AdminResult{IsAdmin: entry.IsAdmin, Fetched: true}
}

// Invalidate drops the caller's cached lookups. Called after profile
// create/update so a freshly-created admin immediately sees admin-gated
// navigation.
func (r *Resolver) Invalidate(ctx context.Context, principal auth.Principal) error {
	return r.cache.Invalidate(ctx, profileKey(principal), adminKey(principal))
}

// fetchProfileWithRetry performs the profile read with a single fixed-delay
// retry. Unauthorized is not retried; it is an expected condition.
func fetchProfileWithRetry(ctx context.Context, a actor.Actor) (*model.UserProfile, error) {
	profile, err := a.GetCallerUserProfile(ctx)
	if err == nil || errors.Is(err, apperrors.ErrUnauthorized) {
		return profile, err
	}

	select {
	case <-time.After(retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return a.GetCallerUserProfile(ctx)
}

func profileKey(principal auth.Principal) string {
	return fmt.Sprintf("resolver:profile:%s", principal)
}

func adminKey(principal auth.Principal) string {
	return fmt.Sprintf("resolver:admin:%s", principal)
}
