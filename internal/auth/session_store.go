package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelcluster/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for session record storage.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, principal Principal, sessionID string, expiresAt time.Time) error
	GetSession(ctx context.Context, principal Principal) (sessionID string, expiresAt time.Time, err error)
	DeleteSession(ctx context.Context, principal Principal) error
	Ping(ctx context.Context) error
}

// SessionStore keeps the active session record per principal in Redis. At
// most one session exists per principal; a second login over a live record
// is a session conflict.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

type sessionRecord struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StoreSession stores the active session record with a TTL matching its expiry.
func (s *SessionStore) StoreSession(ctx context.Context, principal Principal, sessionID string, expiresAt time.Time) error {
	payload, err := json.Marshal(sessionRecord{SessionID: sessionID, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	key := sessionKeyPrefix + principal.String()
	return s.cache.Set(ctx, key, payload, time.Until(expiresAt))
}

// GetSession retrieves the active session record. A missing record is
// returned as an empty session ID, not an error.
func (s *SessionStore) GetSession(ctx context.Context, principal Principal) (string, time.Time, error) {
	key := sessionKeyPrefix + principal.String()
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return "", time.Time{}, nil
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", time.Time{}, fmt.Errorf("unmarshal session record: %w", err)
	}
	return record.SessionID, record.ExpiresAt, nil
}

// DeleteSession removes the active session record.
func (s *SessionStore) DeleteSession(ctx context.Context, principal Principal) error {
	key := sessionKeyPrefix + principal.String()
	return s.cache.Delete(ctx, key)
}

// Ping reports store connectivity.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
