package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
)

func TestTaskService_CreateTask(t *testing.T) {
	caller := auth.Principal("admin-1")
	input := CreateTaskInput{
		Title:    "Fire drill",
		DueDate:  time.Now().Add(24 * time.Hour),
		Priority: "high",
		HotelIDs: []int64{1, 2},
	}

	tests := []struct {
		name          string
		setupMock     func(*MockTaskRepository, *MockHotelRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "task created and fanned out to hotel users",
			setupMock: func(mTask *MockTaskRepository, mHotel *MockHotelRepository, mUser *MockUserRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mHotel.On("FindByID", mock.Anything, int64(1)).Return(&model.Hotel{ID: 1}, nil)
				mHotel.On("FindByID", mock.Anything, int64(2)).Return(&model.Hotel{ID: 2}, nil)
				mTask.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
					return task.Title == "Fire drill" && len(task.Hotels) == 2
				})).Return(nil)
				mUser.On("ListPrincipalsByHotels", mock.Anything, []int64{1, 2}).Return([]string{"bob-principal", "carol-principal"}, nil)
				mTask.On("AddAssignments", mock.Anything, mock.AnythingOfType("string"), []string{"bob-principal", "carol-principal"}).Return(nil)
			},
		},
		{
			name: "no assignments when the hotels have no users",
			setupMock: func(mTask *MockTaskRepository, mHotel *MockHotelRepository, mUser *MockUserRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mHotel.On("FindByID", mock.Anything, int64(1)).Return(&model.Hotel{ID: 1}, nil)
				mHotel.On("FindByID", mock.Anything, int64(2)).Return(&model.Hotel{ID: 2}, nil)
				mTask.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
				mUser.On("ListPrincipalsByHotels", mock.Anything, []int64{1, 2}).Return([]string{}, nil)
			},
		},
		{
			name: "unknown hotel rejected before creation",
			setupMock: func(mTask *MockTaskRepository, mHotel *MockHotelRepository, mUser *MockUserRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mHotel.On("FindByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrHotelNotFound,
		},
		{
			name: "non-admin rejected",
			setupMock: func(mTask *MockTaskRepository, mHotel *MockHotelRepository, mUser *MockUserRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(userProfile("admin-1", nil), nil)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTasks := new(MockTaskRepository)
			mockHotels := new(MockHotelRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockTasks, mockHotels, mockUsers)

			service := NewTaskService(mockTasks, mockHotels, mockUsers, noopAudit{})
			id, err := service.CreateTask(context.Background(), caller, input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, id)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}

			mockTasks.AssertExpectations(t)
			mockHotels.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestTaskService_AssignUserToTask(t *testing.T) {
	caller := auth.Principal("admin-1")

	tests := []struct {
		name          string
		setupMock     func(*MockTaskRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "user assigned",
			setupMock: func(mTask *MockTaskRepository, mUser *MockUserRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mTask.On("FindByID", mock.Anything, "task-1").Return(&model.Task{ID: "task-1"}, nil)
				mUser.On("FindByPrincipal", mock.Anything, "bob-principal").Return(userProfile("bob-principal", nil), nil)
				mTask.On("AddAssignments", mock.Anything, "task-1", []string{"bob-principal"}).Return(nil)
			},
		},
		{
			name: "missing task",
			setupMock: func(mTask *MockTaskRepository, mUser *MockUserRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mTask.On("FindByID", mock.Anything, "task-1").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
		{
			name: "missing assignee",
			setupMock: func(mTask *MockTaskRepository, mUser *MockUserRepository) {
				mUser.On("FindByPrincipal", mock.Anything, "admin-1").Return(adminProfile("admin-1"), nil)
				mTask.On("FindByID", mock.Anything, "task-1").Return(&model.Task{ID: "task-1"}, nil)
				mUser.On("FindByPrincipal", mock.Anything, "bob-principal").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTasks := new(MockTaskRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockTasks, mockUsers)

			service := NewTaskService(mockTasks, new(MockHotelRepository), mockUsers, noopAudit{})
			err := service.AssignUserToTask(context.Background(), caller, "task-1", "bob-principal")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockTasks.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestTaskService_AddComment(t *testing.T) {
	caller := auth.Principal("bob-principal")

	mockTasks := new(MockTaskRepository)
	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByPrincipal", mock.Anything, "bob-principal").Return(userProfile("bob-principal", nil), nil)
	mockTasks.On("FindByID", mock.Anything, "task-1").Return(&model.Task{ID: "task-1"}, nil)
	mockTasks.On("AddComment", mock.Anything, mock.MatchedBy(func(c *model.TaskComment) bool {
		return c.TaskID == "task-1" && c.Author == "bob-principal" && c.Comment == "done"
	})).Return(nil)

	service := NewTaskService(mockTasks, new(MockHotelRepository), mockUsers, noopAudit{})
	err := service.AddComment(context.Background(), caller, "task-1", "done")

	assert.NoError(t, err)
	mockTasks.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestTaskService_GetMyTasks_ScopedToCaller(t *testing.T) {
	caller := auth.Principal("bob-principal")

	mockTasks := new(MockTaskRepository)
	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByPrincipal", mock.Anything, "bob-principal").Return(userProfile("bob-principal", nil), nil)
	mockTasks.On("ListByAssignee", mock.Anything, "bob-principal").Return([]model.Task{{ID: "task-1"}}, nil)

	service := NewTaskService(mockTasks, new(MockHotelRepository), mockUsers, noopAudit{})
	tasks, err := service.GetMyTasks(context.Background(), caller)

	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	mockTasks.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}
