package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

// CreateTaskInput is the payload for task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
	HotelIDs    []int64
}

// TaskService handles operational task management.
type TaskService interface {
	// CreateTask creates a task against one or more hotels and returns its
	// id. Assignment is then expanded to all current users of those hotels;
	// a read between creation and expansion sees an empty assignee list.
	CreateTask(ctx context.Context, caller auth.Principal, input CreateTaskInput) (string, error)
	GetAllTasks(ctx context.Context, caller auth.Principal) ([]model.Task, error)
	GetMyTasks(ctx context.Context, caller auth.Principal) ([]model.Task, error)
	GetTask(ctx context.Context, caller auth.Principal, taskID string) (*model.Task, error)
	AssignUserToTask(ctx context.Context, caller auth.Principal, taskID, principal string) error
	AssignTaskToAllUsersOfHotel(ctx context.Context, caller auth.Principal, taskID string, hotelID int64) error
	AssignTaskToAllUsersOfHotels(ctx context.Context, caller auth.Principal, taskID string, hotelIDs []int64) error
	AddComment(ctx context.Context, caller auth.Principal, taskID, comment string) error
	GetTaskComments(ctx context.Context, caller auth.Principal, taskID string) ([]model.TaskComment, error)
}

type taskService struct {
	taskRepo  repository.TaskRepository
	hotelRepo repository.HotelRepository
	userRepo  repository.UserRepository
	audit     AuditRecorder
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repository.TaskRepository, hotelRepo repository.HotelRepository, userRepo repository.UserRepository, audit AuditRecorder) TaskService {
	return &taskService{
		taskRepo:  taskRepo,
		hotelRepo: hotelRepo,
		userRepo:  userRepo,
		audit:     audit,
	}
}

func (s *taskService) CreateTask(ctx context.Context, caller auth.Principal, input CreateTaskInput) (string, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return "", err
	}

	for _, hotelID := range input.HotelIDs {
		if _, err := s.hotelRepo.FindByID(ctx, hotelID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return "", apperrors.ErrHotelNotFound
			}
			return "", fmt.Errorf("check hotel: %w", err)
		}
	}

	task := &model.Task{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Status:      model.TaskStatusPending,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Creator:     caller.String(),
	}
	for _, hotelID := range input.HotelIDs {
		task.Hotels = append(task.Hotels, model.TaskHotel{TaskID: task.ID, HotelID: hotelID})
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	s.audit.Record(ctx, caller, AuditTaskCreated, nil, fmt.Sprintf("created task %q", input.Title))

	// Expansion happens after the task exists, matching the write-then-fan-out
	// behavior readers observe: the assignee list is empty until it completes.
	if err := s.AssignTaskToAllUsersOfHotels(ctx, caller, task.ID, input.HotelIDs); err != nil {
		return "", err
	}

	return task.ID, nil
}

func (s *taskService) GetAllTasks(ctx context.Context, caller auth.Principal) ([]model.Task, error) {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.taskRepo.List(ctx)
}

func (s *taskService) GetMyTasks(ctx context.Context, caller auth.Principal) ([]model.Task, error) {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByAssignee(ctx, caller.String())
}

func (s *taskService) GetTask(ctx context.Context, caller auth.Principal, taskID string) (*model.Task, error) {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *taskService) AssignUserToTask(ctx context.Context, caller auth.Principal, taskID, principal string) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}
	if _, err := s.userRepo.FindByPrincipal(ctx, principal); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.taskRepo.AddAssignments(ctx, taskID, []string{principal}); err != nil {
		return fmt.Errorf("assign user: %w", err)
	}
	s.audit.Record(ctx, caller, AuditTaskAssigned, nil, fmt.Sprintf("assigned %s to task %s", principal, taskID))
	return nil
}

func (s *taskService) AssignTaskToAllUsersOfHotel(ctx context.Context, caller auth.Principal, taskID string, hotelID int64) error {
	return s.AssignTaskToAllUsersOfHotels(ctx, caller, taskID, []int64{hotelID})
}

func (s *taskService) AssignTaskToAllUsersOfHotels(ctx context.Context, caller auth.Principal, taskID string, hotelIDs []int64) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}

	principals, err := s.userRepo.ListPrincipalsByHotels(ctx, hotelIDs)
	if err != nil {
		return fmt.Errorf("list hotel users: %w", err)
	}
	if len(principals) == 0 {
		return nil
	}

	if err := s.taskRepo.AddAssignments(ctx, taskID, principals); err != nil {
		return fmt.Errorf("expand assignments: %w", err)
	}
	s.audit.Record(ctx, caller, AuditTaskAssigned, nil, fmt.Sprintf("assigned task %s to %d users", taskID, len(principals)))
	return nil
}

func (s *taskService) AddComment(ctx context.Context, caller auth.Principal, taskID, comment string) error {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return err
	}
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}

	entry := &model.TaskComment{
		TaskID:  taskID,
		Author:  caller.String(),
		Comment: comment,
	}
	if err := s.taskRepo.AddComment(ctx, entry); err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	s.audit.Record(ctx, caller, AuditCommentAdded, nil, fmt.Sprintf("commented on task %s", taskID))
	return nil
}

func (s *taskService) GetTaskComments(ctx context.Context, caller auth.Principal, taskID string) ([]model.TaskComment, error) {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.taskRepo.ListComments(ctx, taskID)
}
