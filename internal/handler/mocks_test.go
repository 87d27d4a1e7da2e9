package handler

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"hotelcluster/internal/actor"
	"hotelcluster/internal/auth"
	"hotelcluster/internal/model"
	"hotelcluster/internal/service"
)

type testValidator struct {
	validator *validator.Validate
}

func newTestValidator() *testValidator {
	return &testValidator{validator: validator.New()}
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// memStore is an in-memory cache.Store.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

// stubSessions issues a fixed token.
type stubSessions struct {
	token string
	err   error
}

func (s stubSessions) Login(ctx context.Context, principal auth.Principal) (string, error) {
	return s.token, s.err
}

func (s stubSessions) LoginWithRecovery(ctx context.Context, principal auth.Principal) (string, error) {
	return s.token, s.err
}

func (s stubSessions) Clear(ctx context.Context, principal auth.Principal) error { return nil }

func (s stubSessions) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	return &auth.Claims{}, nil
}

func (s stubSessions) Initializing() bool                  { return false }
func (s stubSessions) Bootstrap(ctx context.Context) error { return nil }

// stubUsers answers the role lookup with a fixed caller role.
type stubUsers struct {
	role model.CallerRole
	err  error
}

func (s stubUsers) GetCallerProfile(ctx context.Context, caller auth.Principal) (*model.UserProfile, error) {
	return nil, nil
}

func (s stubUsers) SaveCallerProfile(ctx context.Context, caller auth.Principal, input service.ProfileInput, adminToken string) (*model.UserProfile, error) {
	return nil, nil
}

func (s stubUsers) IsCallerAdmin(ctx context.Context, caller auth.Principal) (bool, error) {
	return s.role == model.CallerRoleAdmin, nil
}

func (s stubUsers) CallerRole(ctx context.Context, caller auth.Principal) (model.CallerRole, error) {
	return s.role, s.err
}

func (s stubUsers) GetUserProfile(ctx context.Context, caller auth.Principal, principal string) (*model.UserProfile, error) {
	return nil, nil
}

func (s stubUsers) GetAllUsersProfiles(ctx context.Context, caller auth.Principal) ([]model.PrincipalProfile, error) {
	return nil, nil
}

func (s stubUsers) CreateUser(ctx context.Context, caller auth.Principal, input service.UserInput) error {
	return nil
}

func (s stubUsers) UpdateUser(ctx context.Context, caller auth.Principal, input service.UserInput) error {
	return nil
}

func (s stubUsers) DeleteUser(ctx context.Context, caller auth.Principal, principal string) error {
	return nil
}

// fakeActor overrides only the methods a test exercises; everything else
// panics through the embedded nil interface.
type fakeActor struct {
	actor.Actor
	caller auth.Principal

	profile      *model.UserProfile
	profileCalls int

	created []service.UserInput
	updated []service.UserInput
	deleted []string
}

func (a *fakeActor) Caller() auth.Principal { return a.caller }

func (a *fakeActor) GetCallerUserProfile(ctx context.Context) (*model.UserProfile, error) {
	a.profileCalls++
	return a.profile, nil
}

func (a *fakeActor) IsCallerAdmin(ctx context.Context) (bool, error) {
	return a.profile != nil && a.profile.Role == model.RoleAdmin, nil
}

func (a *fakeActor) CreateUser(ctx context.Context, input service.UserInput) error {
	a.created = append(a.created, input)
	return nil
}

func (a *fakeActor) UpdateUser(ctx context.Context, input service.UserInput) error {
	a.updated = append(a.updated, input)
	return nil
}

func (a *fakeActor) DeleteUser(ctx context.Context, principal string) error {
	a.deleted = append(a.deleted, principal)
	return nil
}
