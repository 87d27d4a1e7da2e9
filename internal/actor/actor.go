// Package actor exposes the backend operation surface through a connection
// handle bound to the current identity. Consumers never reach the services
// directly: they obtain an Actor from a Handle, which is nil until binding
// completes, and treat a nil actor as "not ready".
package actor

import (
	"context"
	"io"

	"hotelcluster/internal/auth"
	"hotelcluster/internal/model"
	"hotelcluster/internal/service"
)

// Actor is the backend operation surface, bound to a fixed caller.
type Actor interface {
	// Caller returns the principal the actor is bound to.
	Caller() auth.Principal

	// Profile and role.
	GetCallerUserProfile(ctx context.Context) (*model.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, input service.ProfileInput, adminToken string) (*model.UserProfile, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	GetCallerUserRole(ctx context.Context) (model.CallerRole, error)

	// User directory (admin).
	GetUserProfile(ctx context.Context, principal string) (*model.UserProfile, error)
	GetAllUsersProfiles(ctx context.Context) ([]model.PrincipalProfile, error)
	CreateUser(ctx context.Context, input service.UserInput) error
	UpdateUser(ctx context.Context, input service.UserInput) error
	DeleteUser(ctx context.Context, principal string) error

	// Hotels.
	GetAllHotels(ctx context.Context) ([]model.Hotel, error)
	CreateHotel(ctx context.Context, name string, isActive bool) (int64, error)
	CreateManualHotel(ctx context.Context, id int64, name string, isActive bool) error
	UpdateHotel(ctx context.Context, id int64, name string, isActive bool) error
	DeleteHotel(ctx context.Context, id int64) error

	// Tasks.
	CreateTask(ctx context.Context, input service.CreateTaskInput) (string, error)
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	GetMyTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, taskID string) (*model.Task, error)
	AssignUserToTask(ctx context.Context, taskID, principal string) error
	AssignTaskToAllUsersOfHotel(ctx context.Context, taskID string, hotelID int64) error
	AssignTaskToAllUsersOfHotels(ctx context.Context, taskID string, hotelIDs []int64) error
	AddComment(ctx context.Context, taskID, comment string) error
	GetTaskComments(ctx context.Context, taskID string) ([]model.TaskComment, error)

	// Audit.
	GetAuditLogs(ctx context.Context) ([]model.AuditLog, error)
	ExportAuditLogsCSV(ctx context.Context, w io.Writer) error

	// Daily reports.
	SaveDailyReport(ctx context.Context, input service.DailyReportInput) (*model.DailyReport, error)
	GetMyDailyReports(ctx context.Context) ([]model.DailyReport, error)
	GetAllDailyReports(ctx context.Context) ([]model.DailyReport, error)

	// Emergencies.
	SubmitEmergency(ctx context.Context, input service.EmergencyInput) (*model.Emergency, error)
	GetAllEmergencies(ctx context.Context) ([]model.Emergency, error)
	AddEmergencyRecipient(ctx context.Context, contact string) error
	RemoveEmergencyRecipient(ctx context.Context, contact string) error
	ListEmergencyRecipients(ctx context.Context) ([]model.EmergencyRecipient, error)
}

// Binder constructs an actor bound to a principal.
type Binder interface {
	Bind(ctx context.Context, principal auth.Principal) (Actor, error)
}
