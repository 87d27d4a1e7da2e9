package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
)

func TestUserService_SaveCallerProfile(t *testing.T) {
	tests := []struct {
		name           string
		caller         auth.Principal
		adminToken     string
		bootstrapToken string
		setupMock      func(*MockUserRepository)
		expectedRole   model.Role
		expectedError  error
	}{
		{
			name:   "first save defaults to user role",
			caller: auth.Principal("alice-principal"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPrincipal", mock.Anything, "alice-principal").Return(nil, gorm.ErrRecordNotFound)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.UserProfile")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:           "matching bootstrap token grants admin",
			caller:         auth.Principal("alice-principal"),
			adminToken:     "launch-secret",
			bootstrapToken: "launch-secret",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPrincipal", mock.Anything, "alice-principal").Return(nil, gorm.ErrRecordNotFound)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.UserProfile")).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:           "wrong token does not grant admin",
			caller:         auth.Principal("alice-principal"),
			adminToken:     "guess",
			bootstrapToken: "launch-secret",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPrincipal", mock.Anything, "alice-principal").Return(nil, gorm.ErrRecordNotFound)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.UserProfile")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:   "overwrite keeps the existing role",
			caller: auth.Principal("alice-principal"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPrincipal", mock.Anything, "alice-principal").Return(adminProfile("alice-principal"), nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.UserProfile")).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:   "username held by another principal",
			caller: auth.Principal("alice-principal"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(userProfile("bob-principal", nil), nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:          "anonymous caller rejected",
			caller:        auth.AnonymousPrincipal,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockHotels := new(MockHotelRepository)
			tt.setupMock(mockUsers)

			service := NewUserService(mockUsers, mockHotels, noopAudit{}, tt.bootstrapToken)
			profile, err := service.SaveCallerProfile(context.Background(), tt.caller, ProfileInput{
				Name:     "Alice",
				Username: "alice",
				Password: "password123",
			}, tt.adminToken)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, profile)
				assert.Equal(t, tt.expectedRole, profile.Role)
				assert.Equal(t, "alice", profile.Username)
				assert.NotEmpty(t, profile.PasswordHash)
				assert.NotEqual(t, "password123", profile.PasswordHash)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}

func TestUserService_GetCallerProfile_NotOnboarded(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByPrincipal", mock.Anything, "alice-principal").Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockUsers, new(MockHotelRepository), noopAudit{}, "")
	profile, err := service.GetCallerProfile(context.Background(), auth.Principal("alice-principal"))

	assert.NoError(t, err)
	assert.Nil(t, profile)
	mockUsers.AssertExpectations(t)
}

func TestUserService_CallerRole(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockUserRepository)
		expected  model.CallerRole
	}{
		{
			name: "admin profile",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPrincipal", mock.Anything, "p").Return(adminProfile("p"), nil)
			},
			expected: model.CallerRoleAdmin,
		},
		{
			name: "user profile",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPrincipal", mock.Anything, "p").Return(userProfile("p", nil), nil)
			},
			expected: model.CallerRoleUser,
		},
		{
			name: "authenticated without profile is guest",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPrincipal", mock.Anything, "p").Return(nil, gorm.ErrRecordNotFound)
			},
			expected: model.CallerRoleGuest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			service := NewUserService(mockUsers, new(MockHotelRepository), noopAudit{}, "")
			role, err := service.CallerRole(context.Background(), auth.Principal("p"))

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, role)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestUserService_IsCallerAdmin_InactiveAdmin(t *testing.T) {
	inactive := adminProfile("p")
	inactive.IsActive = false

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByPrincipal", mock.Anything, "p").Return(inactive, nil)

	service := NewUserService(mockUsers, new(MockHotelRepository), noopAudit{}, "")
	isAdmin, err := service.IsCallerAdmin(context.Background(), auth.Principal("p"))

	assert.NoError(t, err)
	assert.False(t, isAdmin)
	mockUsers.AssertExpectations(t)
}

func TestUserService_CreateUser(t *testing.T) {
	caller := auth.Principal("admin-1")
	hotelID := int64(2)

	tests := []struct {
		name          string
		input         UserInput
		setupMock     func(*MockUserRepository, *MockHotelRepository)
		expectedError error
	}{
		{
			name: "user created under an existing hotel",
			input: UserInput{
				Principal: "bob-principal",
				Name:      "Bob",
				Username:  "bob",
				HotelID:   &hotelID,
				Password:  "password123",
				Role:      model.RoleUser,
			},
			setupMock: func(mUser *MockUserRepository, mHotel *MockHotelRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mUser.On("FindByPrincipal", mock.Anything, "bob-principal").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				mHotel.On("FindByID", mock.Anything, hotelID).Return(&model.Hotel{ID: hotelID}, nil)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.UserProfile")).Return(nil)
			},
		},
		{
			name: "duplicate principal rejected",
			input: UserInput{
				Principal: "bob-principal",
				Username:  "bob",
				Password:  "password123",
				Role:      model.RoleUser,
			},
			setupMock: func(mUser *MockUserRepository, mHotel *MockHotelRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mUser.On("FindByPrincipal", mock.Anything, "bob-principal").Return(userProfile("bob-principal", nil), nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name: "unknown hotel rejected",
			input: UserInput{
				Principal: "bob-principal",
				Username:  "bob",
				HotelID:   &hotelID,
				Password:  "password123",
				Role:      model.RoleUser,
			},
			setupMock: func(mUser *MockUserRepository, mHotel *MockHotelRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mUser.On("FindByPrincipal", mock.Anything, "bob-principal").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				mHotel.On("FindByID", mock.Anything, hotelID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrHotelNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockHotels := new(MockHotelRepository)
			tt.setupMock(mockUsers, mockHotels)

			service := NewUserService(mockUsers, mockHotels, noopAudit{}, "")
			err := service.CreateUser(context.Background(), caller, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockUsers.AssertExpectations(t)
			mockHotels.AssertExpectations(t)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:   "admin deletes another user",
			target: "bob-principal",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				m.On("FindByPrincipal", mock.Anything, "bob-principal").Return(userProfile("bob-principal", nil), nil)
				m.On("Delete", mock.Anything, "bob-principal").Return(nil)
			},
		},
		{
			name:   "self delete rejected",
			target: "admin-1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
			},
			expectedError: apperrors.ErrSelfDelete,
		},
		{
			name:   "missing target",
			target: "ghost-principal",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				m.On("FindByPrincipal", mock.Anything, "ghost-principal").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			service := NewUserService(mockUsers, new(MockHotelRepository), noopAudit{}, "")
			err := service.DeleteUser(context.Background(), auth.Principal("admin-1"), tt.target)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}
