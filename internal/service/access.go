package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

// requireAdmin resolves the caller's profile and verifies it is an active
// admin. Any failure to qualify is surfaced as ErrUnauthorized, never as a
// distinct shape, so callers upstream can degrade it uniformly.
func requireAdmin(ctx context.Context, users repository.UserRepository, caller auth.Principal) (*model.UserProfile, error) {
	profile, err := requireActiveProfile(ctx, users, caller)
	if err != nil {
		return nil, err
	}
	if profile.Role != model.RoleAdmin {
		return nil, apperrors.ErrUnauthorized
	}
	return profile, nil
}

// requireActiveProfile resolves the caller's profile and verifies it exists
// and is active. A deactivated profile blocks access to role-gated
// operations.
func requireActiveProfile(ctx context.Context, users repository.UserRepository, caller auth.Principal) (*model.UserProfile, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrUnauthorized
	}
	profile, err := users.FindByPrincipal(ctx, caller.String())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("load caller profile: %w", err)
	}
	if !profile.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return profile, nil
}
