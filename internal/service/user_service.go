package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

const bcryptCost = 10

// ProfileInput is the self-service payload used during profile setup.
type ProfileInput struct {
	Name     string
	Username string
	Password string
}

// UserInput is the admin payload for creating or updating a user.
type UserInput struct {
	Principal       string
	Name            string
	Username        string
	HotelID         *int64
	SecurityManager *string
	ContactNumber   *string
	Password        string
	Role            model.Role
	IsActive        bool
}

// UserService handles profile and user directory operations.
type UserService interface {
	// GetCallerProfile returns the caller's profile, or nil when the caller
	// is authenticated but has no profile yet.
	GetCallerProfile(ctx context.Context, caller auth.Principal) (*model.UserProfile, error)
	// SaveCallerProfile creates or overwrites the caller's own profile. The
	// role is assigned server-side: admin when adminToken matches the
	// configured bootstrap token, the existing role on overwrite, user
	// otherwise.
	SaveCallerProfile(ctx context.Context, caller auth.Principal, input ProfileInput, adminToken string) (*model.UserProfile, error)
	// IsCallerAdmin reports whether the caller holds an active admin profile.
	IsCallerAdmin(ctx context.Context, caller auth.Principal) (bool, error)
	// CallerRole reports the three-valued caller role; guest means
	// authenticated without a profile.
	CallerRole(ctx context.Context, caller auth.Principal) (model.CallerRole, error)
	GetUserProfile(ctx context.Context, caller auth.Principal, principal string) (*model.UserProfile, error)
	GetAllUsersProfiles(ctx context.Context, caller auth.Principal) ([]model.PrincipalProfile, error)
	CreateUser(ctx context.Context, caller auth.Principal, input UserInput) error
	UpdateUser(ctx context.Context, caller auth.Principal, input UserInput) error
	DeleteUser(ctx context.Context, caller auth.Principal, principal string) error
}

type userService struct {
	userRepo       repository.UserRepository
	hotelRepo      repository.HotelRepository
	audit          AuditRecorder
	bootstrapToken string
}

// NewUserService creates a new user service. bootstrapToken may be empty,
// in which case no save can ever claim the admin role through the token.
func NewUserService(userRepo repository.UserRepository, hotelRepo repository.HotelRepository, audit AuditRecorder, bootstrapToken string) UserService {
	return &userService{
		userRepo:       userRepo,
		hotelRepo:      hotelRepo,
		audit:          audit,
		bootstrapToken: bootstrapToken,
	}
}

func (s *userService) GetCallerProfile(ctx context.Context, caller auth.Principal) (*model.UserProfile, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrUnauthorized
	}
	profile, err := s.userRepo.FindByPrincipal(ctx, caller.String())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Authenticated but not onboarded: nil, not an error.
			return nil, nil
		}
		return nil, fmt.Errorf("find caller profile: %w", err)
	}
	return profile, nil
}

func (s *userService) SaveCallerProfile(ctx context.Context, caller auth.Principal, input ProfileInput, adminToken string) (*model.UserProfile, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrUnauthorized
	}

	if taken, err := s.usernameTaken(ctx, input.Username, caller.String()); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.ErrUserAlreadyExists
	}

	existing, err := s.GetCallerProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	role := model.RoleUser
	isActive := true
	var hotelID *int64
	passwordHash := ""
	if existing != nil {
		role = existing.Role
		isActive = existing.IsActive
		hotelID = existing.HotelID
		passwordHash = existing.PasswordHash
	}
	if s.bootstrapToken != "" && adminToken == s.bootstrapToken {
		role = model.RoleAdmin
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = string(hashed)
	}

	profile := &model.UserProfile{
		Principal:    caller.String(),
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: passwordHash,
		Role:         role,
		HotelID:      hotelID,
		IsActive:     isActive,
	}
	if existing != nil {
		profile.SecurityManager = existing.SecurityManager
		profile.ContactNumber = existing.ContactNumber
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.userRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save caller profile: %w", err)
	}

	s.audit.Record(ctx, caller, AuditProfileSaved, nil, fmt.Sprintf("profile saved for %q", input.Username))
	return profile, nil
}

func (s *userService) IsCallerAdmin(ctx context.Context, caller auth.Principal) (bool, error) {
	profile, err := s.GetCallerProfile(ctx, caller)
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, nil
	}
	return profile.Role == model.RoleAdmin && profile.IsActive, nil
}

func (s *userService) CallerRole(ctx context.Context, caller auth.Principal) (model.CallerRole, error) {
	profile, err := s.GetCallerProfile(ctx, caller)
	if err != nil {
		return "", err
	}
	switch {
	case profile == nil:
		return model.CallerRoleGuest, nil
	case profile.Role == model.RoleAdmin:
		return model.CallerRoleAdmin, nil
	default:
		return model.CallerRoleUser, nil
	}
}

func (s *userService) GetUserProfile(ctx context.Context, caller auth.Principal, principal string) (*model.UserProfile, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	profile, err := s.userRepo.FindByPrincipal(ctx, principal)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find user profile: %w", err)
	}
	return profile, nil
}

func (s *userService) GetAllUsersProfiles(ctx context.Context, caller auth.Principal) ([]model.PrincipalProfile, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	profiles, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	result := make([]model.PrincipalProfile, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, model.PrincipalProfile{Principal: p.Principal, Profile: p})
	}
	return result, nil
}

func (s *userService) CreateUser(ctx context.Context, caller auth.Principal, input UserInput) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}
	if !input.Role.Valid() {
		input.Role = model.RoleUser
	}

	if _, err := s.userRepo.FindByPrincipal(ctx, input.Principal); err == nil {
		return apperrors.ErrUserAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check principal existence: %w", err)
	}
	if taken, err := s.usernameTaken(ctx, input.Username, input.Principal); err != nil {
		return err
	} else if taken {
		return apperrors.ErrUserAlreadyExists
	}
	if err := s.checkHotel(ctx, input.HotelID); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	profile := &model.UserProfile{
		Principal:       input.Principal,
		Name:            input.Name,
		Username:        input.Username,
		PasswordHash:    string(hashed),
		Role:            input.Role,
		HotelID:         input.HotelID,
		IsActive:        true,
		SecurityManager: input.SecurityManager,
		ContactNumber:   input.ContactNumber,
	}
	if err := s.userRepo.Create(ctx, profile); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	s.audit.Record(ctx, caller, AuditUserCreated, input.HotelID, fmt.Sprintf("created user %q", input.Username))
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, caller auth.Principal, input UserInput) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}

	existing, err := s.userRepo.FindByPrincipal(ctx, input.Principal)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if taken, err := s.usernameTaken(ctx, input.Username, input.Principal); err != nil {
		return err
	} else if taken {
		return apperrors.ErrUserAlreadyExists
	}
	if err := s.checkHotel(ctx, input.HotelID); err != nil {
		return err
	}

	existing.Name = input.Name
	existing.Username = input.Username
	existing.HotelID = input.HotelID
	existing.SecurityManager = input.SecurityManager
	existing.ContactNumber = input.ContactNumber
	existing.IsActive = input.IsActive
	if input.Role.Valid() {
		existing.Role = input.Role
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		existing.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Save(ctx, existing); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.audit.Record(ctx, caller, AuditUserUpdated, input.HotelID, fmt.Sprintf("updated user %q", input.Username))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, caller auth.Principal, principal string) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}
	if caller.String() == principal {
		return apperrors.ErrSelfDelete
	}

	target, err := s.userRepo.FindByPrincipal(ctx, principal)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.Delete(ctx, principal); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.audit.Record(ctx, caller, AuditUserDeleted, target.HotelID, fmt.Sprintf("deleted user %q", target.Username))
	return nil
}

// usernameTaken reports whether another principal already holds the username.
func (s *userService) usernameTaken(ctx context.Context, username, principal string) (bool, error) {
	found, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, fmt.Errorf("check username: %w", err)
	}
	return found.Principal != principal, nil
}

func (s *userService) checkHotel(ctx context.Context, hotelID *int64) error {
	if hotelID == nil {
		return nil
	}
	if _, err := s.hotelRepo.FindByID(ctx, *hotelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrHotelNotFound
		}
		return fmt.Errorf("check hotel: %w", err)
	}
	return nil
}
