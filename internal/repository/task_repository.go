package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelcluster/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	ListByAssignee(ctx context.Context, principal string) ([]model.Task, error)
	AddAssignments(ctx context.Context, taskID string, principals []string) error
	AddComment(ctx context.Context, comment *model.TaskComment) error
	ListComments(ctx context.Context, taskID string) ([]model.TaskComment, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a task together with its hotel links.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by id with its relations flattened.
func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Hotels").
		Preload("Assignees").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	flatten(&task)
	return &task, nil
}

// List lists all tasks with relations flattened.
func (r *taskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Hotels").
		Preload("Assignees").
		Order("due_date").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		flatten(&tasks[i])
	}
	return tasks, nil
}

// ListByAssignee lists tasks assigned to the given principal.
func (r *taskRepository) ListByAssignee(ctx context.Context, principal string) ([]model.Task, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.TaskAssignment{}).
		Where("principal = ?", principal).
		Pluck("task_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var tasks []model.Task
	err = r.db.WithContext(ctx).
		Preload("Hotels").
		Preload("Assignees").
		Where("id IN ?", ids).
		Order("due_date").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		flatten(&tasks[i])
	}
	return tasks, nil
}

// AddAssignments links principals to a task, skipping duplicates.
func (r *taskRepository) AddAssignments(ctx context.Context, taskID string, principals []string) error {
	if len(principals) == 0 {
		return nil
	}
	assignments := make([]model.TaskAssignment, 0, len(principals))
	for _, p := range principals {
		assignments = append(assignments, model.TaskAssignment{TaskID: taskID, Principal: p})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}

// AddComment appends a comment to a task.
func (r *taskRepository) AddComment(ctx context.Context, comment *model.TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListComments lists comments on a task in insertion order.
func (r *taskRepository) ListComments(ctx context.Context, taskID string) ([]model.TaskComment, error) {
	var comments []model.TaskComment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func flatten(task *model.Task) {
	task.HotelIDs = make([]int64, 0, len(task.Hotels))
	for _, h := range task.Hotels {
		task.HotelIDs = append(task.HotelIDs, h.HotelID)
	}
	task.AssignedUsers = make([]string, 0, len(task.Assignees))
	for _, a := range task.Assignees {
		task.AssignedUsers = append(task.AssignedUsers, a.Principal)
	}
}
