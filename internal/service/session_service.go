package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
)

// loginRetryDelay is the pause between clearing a stale session and the
// single retry of a conflicted login.
const loginRetryDelay = 500 * time.Millisecond

// SessionService handles identity session bootstrap and teardown.
type SessionService interface {
	// Login issues a session token for the principal. Fails with
	// ErrAlreadyAuthenticated when a still-valid session exists.
	Login(ctx context.Context, principal auth.Principal) (token string, err error)
	// LoginWithRecovery runs the full client bootstrap: on a session
	// conflict it clears the stale session, waits briefly, and retries
	// once. The whole attempt is time-boxed.
	LoginWithRecovery(ctx context.Context, principal auth.Principal) (token string, err error)
	// Clear terminates the principal's session.
	Clear(ctx context.Context, principal auth.Principal) error
	// Validate checks a session token against the active session record.
	Validate(ctx context.Context, token string) (*auth.Claims, error)
	// Initializing reports whether the provider bootstrap is still running.
	Initializing() bool
	// Bootstrap verifies store connectivity and marks the service initialized.
	Bootstrap(ctx context.Context) error
}

type sessionService struct {
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
	loginTimeout time.Duration
	initialized  atomic.Bool
}

// NewSessionService creates a new session service. Bootstrap must be called
// before the service reports itself initialized.
func NewSessionService(jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface, loginTimeout time.Duration) SessionService {
	return &sessionService{
		jwtService:   jwtService,
		sessionStore: sessionStore,
		loginTimeout: loginTimeout,
	}
}

// Bootstrap verifies store connectivity and marks the service initialized.
// Until it completes, the route guard holds every request in its
// initializing state.
func (s *sessionService) Bootstrap(ctx context.Context) error {
	if err := s.sessionStore.Ping(ctx); err != nil {
		return fmt.Errorf("session store ping: %w", err)
	}
	s.initialized.Store(true)
	return nil
}

func (s *sessionService) Initializing() bool {
	return !s.initialized.Load()
}

func (s *sessionService) Login(ctx context.Context, principal auth.Principal) (string, error) {
	if principal.IsAnonymous() {
		return "", apperrors.ErrUnauthorized
	}

	existingID, expiresAt, err := s.sessionStore.GetSession(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("check existing session: %w", err)
	}
	if existingID != "" && time.Now().Before(expiresAt) {
		return "", apperrors.ErrAlreadyAuthenticated
	}

	sessionID, token, err := s.jwtService.GenerateSessionToken(principal)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	if err := s.sessionStore.StoreSession(ctx, principal, sessionID, time.Now().Add(auth.SessionExpiry)); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (s *sessionService) LoginWithRecovery(ctx context.Context, principal auth.Principal) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	token, err := s.Login(ctx, principal)
	if errors.Is(err, apperrors.ErrAlreadyAuthenticated) {
		// A stale session is a recoverable condition: clear it, wait
		// briefly, retry once. A failure of the retry is surfaced.
		if clearErr := s.Clear(ctx, principal); clearErr != nil {
			return "", clearErr
		}
		select {
		case <-time.After(loginRetryDelay):
		case <-ctx.Done():
			return "", apperrors.ErrLoginTimeout
		}
		token, err = s.Login(ctx, principal)
	}

	if err != nil {
		if ctx.Err() != nil {
			return "", apperrors.ErrLoginTimeout
		}
		return "", err
	}
	return token, nil
}

func (s *sessionService) Clear(ctx context.Context, principal auth.Principal) error {
	return s.sessionStore.DeleteSession(ctx, principal)
}

func (s *sessionService) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidSession
	}

	principal := auth.Principal(claims.Principal)
	sessionID, expiresAt, err := s.sessionStore.GetSession(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sessionID == "" || sessionID != claims.ID || time.Now().After(expiresAt) {
		return nil, apperrors.ErrInvalidSession
	}

	return claims, nil
}
