package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"hotelcluster/internal/actor"
	"hotelcluster/internal/auth"
	"hotelcluster/internal/cache"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
	"hotelcluster/internal/resolver"
)

// fakeSessions accepts any "tok-<principal>" bearer token.
type fakeSessions struct{}

func (fakeSessions) Login(ctx context.Context, principal auth.Principal) (string, error) {
	return "", nil
}

func (fakeSessions) LoginWithRecovery(ctx context.Context, principal auth.Principal) (string, error) {
	return "", nil
}

func (fakeSessions) Clear(ctx context.Context, principal auth.Principal) error { return nil }

func (fakeSessions) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	if !strings.HasPrefix(token, "tok-") {
		return nil, apperrors.ErrInvalidSession
	}
	return &auth.Claims{Principal: strings.TrimPrefix(token, "tok-")}, nil
}

func (fakeSessions) Initializing() bool                  { return false }
func (fakeSessions) Bootstrap(ctx context.Context) error { return nil }

// switchActor lets a test flip the caller between onboarded and not.
type switchActor struct {
	actor.Actor
	caller auth.Principal

	mu      sync.Mutex
	profile *model.UserProfile
	err     error
}

func (a *switchActor) Caller() auth.Principal { return a.caller }

func (a *switchActor) GetCallerUserProfile(ctx context.Context) (*model.UserProfile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile, a.err
}

func (a *switchActor) IsCallerAdmin(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile != nil && a.profile.Role == model.RoleAdmin && a.profile.IsActive, nil
}

func (a *switchActor) set(profile *model.UserProfile, err error) {
	a.mu.Lock()
	a.profile = profile
	a.err = err
	a.mu.Unlock()
}

type fixedBinder struct{ a actor.Actor }

func (b *fixedBinder) Bind(ctx context.Context, principal auth.Principal) (actor.Actor, error) {
	return b.a, nil
}

// passStore never caches, so every request re-reads through the actor.
type passStore struct{}

func (passStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }
func (passStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (passStore) Delete(ctx context.Context, keys ...string) error { return nil }

func newGuardedServer(t *testing.T, a *switchActor) (*echo.Echo, Deps) {
	t.Helper()

	deps := Deps{
		Sessions:  fakeSessions{},
		Registry:  actor.NewRegistry(&fixedBinder{a: a}),
		Resolver:  resolver.New(cache.NewQueryCache(passStore{}, time.Minute)),
		Routes:    testRoutes,
		Navigator: NewNavigator(),
	}

	e := echo.New()
	e.GET("/api/hotel", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Middleware(deps, ""))

	// Prime the background bind so requests see a ready handle.
	h := deps.Registry.HandleFor(a.caller)
	assert.Eventually(t, func() bool { return h.Actor() != nil }, time.Second, 10*time.Millisecond)

	return e, deps
}

func doGuarded(e *echo.Echo, token string) (int, StatePayload) {
	req := httptest.NewRequest(http.MethodGet, "/api/hotel", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload StatePayload
	_ = json.Unmarshal(rec.Body.Bytes(), &payload)
	return rec.Code, payload
}

func TestMiddleware_RepeatedStateSuppressesRedirect(t *testing.T) {
	a := &switchActor{caller: auth.Principal("alice"), err: apperrors.ErrUnauthorized}
	e, _ := newGuardedServer(t, a)

	code, payload := doGuarded(e, "tok-alice")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "/api/profile", payload.Redirect)

	code, payload = doGuarded(e, "tok-alice")
	assert.Equal(t, http.StatusConflict, code)
	assert.Empty(t, payload.Redirect)
}

// An admission between two profile-missing evaluations is a real state
// transition, so the second evaluation must redirect again.
func TestMiddleware_AdmissionReArmsRedirect(t *testing.T) {
	a := &switchActor{caller: auth.Principal("alice"), err: apperrors.ErrUnauthorized}
	e, _ := newGuardedServer(t, a)

	code, payload := doGuarded(e, "tok-alice")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "/api/profile", payload.Redirect)

	a.set(&model.UserProfile{Principal: "alice", Role: model.RoleUser, IsActive: true}, nil)
	code, _ = doGuarded(e, "tok-alice")
	assert.Equal(t, http.StatusOK, code)

	a.set(nil, apperrors.ErrUnauthorized)
	code, payload = doGuarded(e, "tok-alice")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "/api/profile", payload.Redirect)
}

// Unauthenticated callers share no session state, so every one of them gets
// the login redirect.
func TestMiddleware_AnonymousAlwaysRedirectsToLogin(t *testing.T) {
	a := &switchActor{caller: auth.Principal("alice")}
	e, _ := newGuardedServer(t, a)

	for i := 0; i < 3; i++ {
		code, payload := doGuarded(e, "")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "/api/auth/login", payload.Redirect)
	}
}

// Reset on logout clears every observed path, so a fresh session sees its
// redirects again.
func TestMiddleware_ResetReArmsAfterLogout(t *testing.T) {
	a := &switchActor{caller: auth.Principal("alice"), err: apperrors.ErrUnauthorized}
	e, deps := newGuardedServer(t, a)

	_, payload := doGuarded(e, "tok-alice")
	assert.Equal(t, "/api/profile", payload.Redirect)
	_, payload = doGuarded(e, "tok-alice")
	assert.Empty(t, payload.Redirect)

	deps.Navigator.Reset(auth.Principal("alice"))

	_, payload = doGuarded(e, "tok-alice")
	assert.Equal(t, "/api/profile", payload.Redirect)
}
