package model

import "time"

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task is an operational task created by an admin against one or more
// hotels. Assignment is expanded server-side to all current users of the
// targeted hotels.
type Task struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:50;default:'pending';index"`
	Priority    string    `json:"priority" gorm:"size:50;index"`
	DueDate     time.Time `json:"due_date"`
	Creator     string    `json:"creator" gorm:"size:128;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Hotels    []TaskHotel      `json:"-" gorm:"foreignKey:TaskID"`
	Assignees []TaskAssignment `json:"-" gorm:"foreignKey:TaskID"`

	// Flattened views populated by the repository, not persisted.
	HotelIDs      []int64  `json:"hotel_ids" gorm:"-"`
	AssignedUsers []string `json:"assigned_users" gorm:"-"`
}

// TaskHotel links a task to a targeted hotel.
type TaskHotel struct {
	TaskID  string `json:"task_id" gorm:"type:char(36);primaryKey"`
	HotelID int64  `json:"hotel_id" gorm:"primaryKey;autoIncrement:false"`
}

// TaskAssignment links a task to an assigned user principal.
type TaskAssignment struct {
	TaskID    string `json:"task_id" gorm:"type:char(36);primaryKey"`
	Principal string `json:"principal" gorm:"size:128;primaryKey"`
}

// TaskComment is an append-only comment on a task.
type TaskComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    string    `json:"task_id" gorm:"type:char(36);index;not null"`
	Author    string    `json:"author" gorm:"size:128;not null"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime"`
}
