package actor

import (
	"context"
	"io"
	"time"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
	"hotelcluster/internal/service"
)

// Services bundles the backend services an actor dispatches to.
type Services struct {
	Users       service.UserService
	Hotels      service.HotelService
	Tasks       service.TaskService
	Audit       service.AuditService
	Reports     service.ReportService
	Emergencies service.EmergencyService
}

// BackendBinder binds actors against the in-process backend services.
type BackendBinder struct {
	services Services
	sessions auth.SessionStoreInterface
}

// NewBackendBinder creates a binder over the backend services.
func NewBackendBinder(services Services, sessions auth.SessionStoreInterface) *BackendBinder {
	return &BackendBinder{services: services, sessions: sessions}
}

// Bind verifies the principal still holds an active session and returns an
// actor bound to it. Anonymous principals never bind.
func (b *BackendBinder) Bind(ctx context.Context, principal auth.Principal) (Actor, error) {
	if principal.IsAnonymous() {
		return nil, apperrors.ErrUnauthorized
	}
	sessionID, expiresAt, err := b.sessions.GetSession(ctx, principal)
	if err != nil {
		return nil, err
	}
	if sessionID == "" || time.Now().After(expiresAt) {
		return nil, apperrors.ErrInvalidSession
	}
	return &boundActor{caller: principal, services: b.services}, nil
}

// boundActor dispatches every operation to the backend services with its
// caller fixed.
type boundActor struct {
	caller   auth.Principal
	services Services
}

var _ Actor = (*boundActor)(nil)

func (a *boundActor) Caller() auth.Principal { return a.caller }

func (a *boundActor) GetCallerUserProfile(ctx context.Context) (*model.UserProfile, error) {
	return a.services.Users.GetCallerProfile(ctx, a.caller)
}

func (a *boundActor) SaveCallerUserProfile(ctx context.Context, input service.ProfileInput, adminToken string) (*model.UserProfile, error) {
	return a.services.Users.SaveCallerProfile(ctx, a.caller, input, adminToken)
}

func (a *boundActor) IsCallerAdmin(ctx context.Context) (bool, error) {
	return a.services.Users.IsCallerAdmin(ctx, a.caller)
}

func (a *boundActor) GetCallerUserRole(ctx context.Context) (model.CallerRole, error) {
	return a.services.Users.CallerRole(ctx, a.caller)
}

func (a *boundActor) GetUserProfile(ctx context.Context, principal string) (*model.UserProfile, error) {
	return a.services.Users.GetUserProfile(ctx, a.caller, principal)
}

func (a *boundActor) GetAllUsersProfiles(ctx context.Context) ([]model.PrincipalProfile, error) {
	return a.services.Users.GetAllUsersProfiles(ctx, a.caller)
}

func (a *boundActor) CreateUser(ctx context.Context, input service.UserInput) error {
	return a.services.Users.CreateUser(ctx, a.caller, input)
}

func (a *boundActor) UpdateUser(ctx context.Context, input service.UserInput) error {
	return a.services.Users.UpdateUser(ctx, a.caller, input)
}

func (a *boundActor) DeleteUser(ctx context.Context, principal string) error {
	return a.services.Users.DeleteUser(ctx, a.caller, principal)
}

func (a *boundActor) GetAllHotels(ctx context.Context) ([]model.Hotel, error) {
	return a.services.Hotels.GetAllHotels(ctx, a.caller)
}

func (a *boundActor) CreateHotel(ctx context.Context, name string, isActive bool) (int64, error) {
	return a.services.Hotels.CreateHotel(ctx, a.caller, name, isActive)
}

func (a *boundActor) CreateManualHotel(ctx context.Context, id int64, name string, isActive bool) error {
	return a.services.Hotels.CreateManualHotel(ctx, a.caller, id, name, isActive)
}

func (a *boundActor) UpdateHotel(ctx context.Context, id int64, name string, isActive bool) error {
	return a.services.Hotels.UpdateHotel(ctx, a.caller, id, name, isActive)
}

func (a *boundActor) DeleteHotel(ctx context.Context, id int64) error {
	return a.services.Hotels.DeleteHotel(ctx, a.caller, id)
}

func (a *boundActor) CreateTask(ctx context.Context, input service.CreateTaskInput) (string, error) {
	return a.services.Tasks.CreateTask(ctx, a.caller, input)
}

func (a *boundActor) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	return a.services.Tasks.GetAllTasks(ctx, a.caller)
}

func (a *boundActor) GetMyTasks(ctx context.Context) ([]model.Task, error) {
	return a.services.Tasks.GetMyTasks(ctx, a.caller)
}

func (a *boundActor) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	return a.services.Tasks.GetTask(ctx, a.caller, taskID)
}

func (a *boundActor) AssignUserToTask(ctx context.Context, taskID, principal string) error {
	return a.services.Tasks.AssignUserToTask(ctx, a.caller, taskID, principal)
}

func (a *boundActor) AssignTaskToAllUsersOfHotel(ctx context.Context, taskID string, hotelID int64) error {
	return a.services.Tasks.AssignTaskToAllUsersOfHotel(ctx, a.caller, taskID, hotelID)
}

func (a *boundActor) AssignTaskToAllUsersOfHotels(ctx context.Context, taskID string, hotelIDs []int64) error {
	return a.services.Tasks.AssignTaskToAllUsersOfHotels(ctx, a.caller, taskID, hotelIDs)
}

func (a *boundActor) AddComment(ctx context.Context, taskID, comment string) error {
	return a.services.Tasks.AddComment(ctx, a.caller, taskID, comment)
}

func (a *boundActor) GetTaskComments(ctx context.Context, taskID string) ([]model.TaskComment, error) {
	return a.services.Tasks.GetTaskComments(ctx, a.caller, taskID)
}

func (a *boundActor) GetAuditLogs(ctx context.Context) ([]model.AuditLog, error) {
	return a.services.Audit.GetAuditLogs(ctx, a.caller)
}

func (a *boundActor) ExportAuditLogsCSV(ctx context.Context, w io.Writer) error {
	return a.services.Audit.WriteCSV(ctx, a.caller, w)
}

func (a *boundActor) SaveDailyReport(ctx context.Context, input service.DailyReportInput) (*model.DailyReport, error) {
	return a.services.Reports.SaveDailyReport(ctx, a.caller, input)
}

func (a *boundActor) GetMyDailyReports(ctx context.Context) ([]model.DailyReport, error) {
	return a.services.Reports.GetMyDailyReports(ctx, a.caller)
}

func (a *boundActor) GetAllDailyReports(ctx context.Context) ([]model.DailyReport, error) {
	return a.services.Reports.GetAllDailyReports(ctx, a.caller)
}

func (a *boundActor) SubmitEmergency(ctx context.Context, input service.EmergencyInput) (*model.Emergency, error) {
	return a.services.Emergencies.SubmitEmergency(ctx, a.caller, input)
}

func (a *boundActor) GetAllEmergencies(ctx context.Context) ([]model.Emergency, error) {
	return a.services.Emergencies.GetAllEmergencies(ctx, a.caller)
}

func (a *boundActor) AddEmergencyRecipient(ctx context.Context, contact string) error {
	return a.services.Emergencies.AddRecipient(ctx, a.caller, contact)
}

func (a *boundActor) RemoveEmergencyRecipient(ctx context.Context, contact string) error {
	return a.services.Emergencies.RemoveRecipient(ctx, a.caller, contact)
}

func (a *boundActor) ListEmergencyRecipients(ctx context.Context) ([]model.EmergencyRecipient, error) {
	return a.services.Emergencies.ListRecipients(ctx, a.caller)
}
