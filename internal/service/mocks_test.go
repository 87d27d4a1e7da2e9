package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hotelcluster/internal/auth"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, profile *model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, principal string) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *MockUserRepository) FindByPrincipal(ctx context.Context, principal string) (*model.UserProfile, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProfile), args.Error(1)
}

func (m *MockUserRepository) ListPrincipalsByHotels(ctx context.Context, hotelIDs []int64) ([]string, error) {
	args := m.Called(ctx, hotelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) CountByHotel(ctx context.Context, hotelID int64) (int64, error) {
	args := m.Called(ctx, hotelID)
	return args.Get(0).(int64), args.Error(1)
}

// MockHotelRepository is a mock implementation of HotelRepository.
type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *MockHotelRepository) Update(ctx context.Context, hotel *model.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *MockHotelRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHotelRepository) FindByID(ctx context.Context, id int64) (*model.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hotel), args.Error(1)
}

func (m *MockHotelRepository) List(ctx context.Context) ([]model.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hotel), args.Error(1)
}

func (m *MockHotelRepository) MaxID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// WithTransaction runs fn against the mock itself, so transactional paths
// are observable through the same expectations.
func (m *MockHotelRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.HotelRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByAssignee(ctx context.Context, principal string) ([]model.Task, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) AddAssignments(ctx context.Context, taskID string, principals []string) error {
	args := m.Called(ctx, taskID, principals)
	return args.Error(0)
}

func (m *MockTaskRepository) AddComment(ctx context.Context, comment *model.TaskComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockTaskRepository) ListComments(ctx context.Context, taskID string) ([]model.TaskComment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskComment), args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *model.DailyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) List(ctx context.Context) ([]model.DailyReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyReport), args.Error(1)
}

func (m *MockReportRepository) ListByReporter(ctx context.Context, principal string) ([]model.DailyReport, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyReport), args.Error(1)
}

func (m *MockReportRepository) ListByHotel(ctx context.Context, hotelID int64) ([]model.DailyReport, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyReport), args.Error(1)
}

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) StoreSession(ctx context.Context, principal auth.Principal, sessionID string, expiresAt time.Time) error {
	args := m.Called(ctx, principal, sessionID, expiresAt)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, principal auth.Principal) (string, time.Time, error) {
	args := m.Called(ctx, principal)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, principal auth.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *MockSessionStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// noopAudit discards audit entries; the services under test treat audit as
// best-effort anyway.
type noopAudit struct{}

func (noopAudit) Record(context.Context, auth.Principal, string, *int64, string) {}

func adminProfile(principal string) *model.UserProfile {
	return &model.UserProfile{
		Principal: principal,
		Name:      "Admin",
		Username:  "admin-" + principal,
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
}

func userProfile(principal string, hotelID *int64) *model.UserProfile {
	return &model.UserProfile{
		Principal: principal,
		Name:      "User",
		Username:  "user-" + principal,
		Role:      model.RoleUser,
		HotelID:   hotelID,
		IsActive:  true,
	}
}
