package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

// AuthService maps identity-provider subjects onto internal user rows.
// The provider owns credentials and sessions; this side owns the role.
type AuthService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate returns the user for externalID, creating one with role
// NONE on first sight.
func (s *AuthService) Authenticate(ctx context.Context, externalID, fullName, email string) (*models.User, error) {
	existing, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	u := &models.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		FullName:   fullName,
		Email:      email,
		Role:       models.RoleNone,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SelectRole sets the user's role. Only STUDENT and LANDLORD are
// selectable; NONE is the pre-onboarding state, not a choice.
func (s *AuthService) SelectRole(ctx context.Context, userID uuid.UUID, role models.RoleType) (*models.User, error) {
	if role != models.RoleStudent && role != models.RoleLandlord {
		return nil, utils.ErrInvalidRole
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.ErrNotFound
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}

// GetByExternalID resolves an identity-provider subject to the internal
// user row. Unknown subjects (no session yet) come back as not_found.
func (s *AuthService) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	u, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

func (s *AuthService) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

// requireRole loads the caller and checks their stored role. The role on
// the users row is authoritative; token claims are never consulted.
func requireRole(ctx context.Context, userRepo repositories.UserRepository, userID uuid.UUID, role models.RoleType) (*models.User, error) {
	u, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.ErrNotFound
	}
	if u.Role != role {
		return nil, utils.ErrWrongRole
	}
	return u, nil
}
