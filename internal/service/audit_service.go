package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"hotelcluster/internal/auth"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

// Audit actions recorded by the mutation paths.
const (
	AuditProfileSaved       = "PROFILE_SAVED"
	AuditUserCreated        = "USER_CREATED"
	AuditUserUpdated        = "USER_UPDATED"
	AuditUserDeleted        = "USER_DELETED"
	AuditHotelCreated       = "HOTEL_CREATED"
	AuditHotelUpdated       = "HOTEL_UPDATED"
	AuditHotelDeleted       = "HOTEL_DELETED"
	AuditTaskCreated        = "TASK_CREATED"
	AuditTaskAssigned       = "TASK_ASSIGNED"
	AuditCommentAdded       = "COMMENT_ADDED"
	AuditReportSubmitted    = "REPORT_SUBMITTED"
	AuditEmergencyRaised    = "EMERGENCY_RAISED"
	AuditRecipientAdded     = "RECIPIENT_ADDED"
	AuditRecipientRemoved   = "RECIPIENT_REMOVED"
	AuditLogsExported       = "LOGS_EXPORTED"
)

// AuditRecorder appends entries to the audit log. It is best-effort: a
// failed append never fails the mutation that triggered it.
type AuditRecorder interface {
	Record(ctx context.Context, actor auth.Principal, action string, hotelID *int64, details string)
}

// AuditService exposes the read side of the audit log to admins.
type AuditService interface {
	AuditRecorder
	GetAuditLogs(ctx context.Context, caller auth.Principal) ([]model.AuditLog, error)
	WriteCSV(ctx context.Context, caller auth.Principal, w io.Writer) error
}

type auditService struct {
	auditRepo repository.AuditRepository
	userRepo  repository.UserRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo repository.AuditRepository, userRepo repository.UserRepository) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		userRepo:  userRepo,
	}
}

// Record appends an audit log entry. Failures are logged and swallowed.
func (s *auditService) Record(ctx context.Context, actor auth.Principal, action string, hotelID *int64, details string) {
	entry := &model.AuditLog{
		ID:             uuid.New().String(),
		Action:         action,
		HotelID:        hotelID,
		Timestamp:      time.Now(),
		Details:        details,
		ActorPrincipal: actor.String(),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("audit append failed for %s: %v", action, err)
	}
}

// GetAuditLogs returns all audit entries. Admin only.
func (s *auditService) GetAuditLogs(ctx context.Context, caller auth.Principal) ([]model.AuditLog, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.auditRepo.List(ctx)
}

// WriteCSV streams all audit entries as CSV. Admin only; the export itself
// is audited.
func (s *auditService) WriteCSV(ctx context.Context, caller auth.Principal, w io.Writer) error {
	entries, err := s.GetAuditLogs(ctx, caller)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ID", "Action", "HotelID", "Timestamp", "Details", "ActorPrincipal"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		hotelID := ""
		if e.HotelID != nil {
			hotelID = strconv.FormatInt(*e.HotelID, 10)
		}
		row := []string{e.ID, e.Action, hotelID, e.Timestamp.Format(time.RFC3339), e.Details, e.ActorPrincipal}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	s.Record(ctx, caller, AuditLogsExported, nil, fmt.Sprintf("exported %d audit entries", len(entries)))
	return nil
}
