package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

// SavedPropertyService flips the student↔property saved relationship.
type SavedPropertyService struct {
	savedRepo repositories.SavedPropertyRepository
	propRepo  repositories.PropertyRepository
	userRepo  repositories.UserRepository
}

func NewSavedPropertyService(
	savedRepo repositories.SavedPropertyRepository,
	propRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
) *SavedPropertyService {
	return &SavedPropertyService{
		savedRepo: savedRepo,
		propRepo:  propRepo,
		userRepo:  userRepo,
	}
}

// Toggle saves the property when unsaved and unsaves it when saved,
// returning the new state. The existence check and the mutation operate
// on the same (student, property) key; a concurrent double-toggle race
// is benign and left unsynchronized.
func (s *SavedPropertyService) Toggle(ctx context.Context, studentID, propertyID uuid.UUID) (bool, error) {
	if _, err := requireRole(ctx, s.userRepo, studentID, models.RoleStudent); err != nil {
		return false, err
	}

	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return false, err
	}
	if prop == nil {
		return false, utils.ErrNotFound
	}

	existing, err := s.savedRepo.Find(ctx, studentID, propertyID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := s.savedRepo.Delete(ctx, studentID, propertyID); err != nil {
			return false, err
		}
		return false, nil
	}

	sp := &models.SavedProperty{
		ID:         uuid.New(),
		StudentID:  studentID,
		PropertyID: propertyID,
	}
	if _, err := s.savedRepo.Insert(ctx, sp); err != nil {
		return false, err
	}
	return true, nil
}

// ListSaved returns the student's saved properties, most recently saved
// first, each annotated with savedAt.
func (s *SavedPropertyService) ListSaved(ctx context.Context, studentID uuid.UUID) ([]*models.SavedListing, error) {
	return s.savedRepo.ListSaved(ctx, studentID)
}
