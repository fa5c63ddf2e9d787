package services

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

var validate = validator.New()

// ListingService owns property CRUD, the status lifecycle and
// landlord-scoped queries.
type ListingService struct {
	propRepo repositories.PropertyRepository
	userRepo repositories.UserRepository

	// browseActiveOnly restricts the browse feed to ACTIVE listings.
	// Snapshot of the browse_active_only flag; default on.
	browseActiveOnly bool
}

func NewListingService(
	propRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	browseActiveOnly bool,
) *ListingService {
	return &ListingService{
		propRepo:         propRepo,
		userRepo:         userRepo,
		browseActiveOnly: browseActiveOnly,
	}
}

// ListByLandlord returns the landlord's own properties, newest first.
func (s *ListingService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return s.propRepo.ListByLandlord(ctx, landlordID)
}

// ListBrowse returns the student-facing feed, newest first.
func (s *ListingService) ListBrowse(ctx context.Context) ([]*models.Property, error) {
	if s.browseActiveOnly {
		return s.propRepo.ListByStatus(ctx, models.PropertyStatusActive)
	}
	return s.propRepo.ListAll(ctx)
}

func (s *ListingService) GetByID(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

// GetForLandlord fails with the same not_found whether the property is
// missing or owned by someone else.
func (s *ListingService) GetForLandlord(ctx context.Context, propertyID, landlordID uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByIDForLandlord(ctx, propertyID, landlordID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

// Upsert creates a property when req.PropertyID is absent, otherwise
// updates that row in place preserving id, landlord_id and created_at.
// The write is a single atomic statement (no read-check-write).
func (s *ListingService) Upsert(ctx context.Context, landlordID uuid.UUID, req dtos.PropertyUpsertRequest) (*models.Property, error) {
	if _, err := requireRole(ctx, s.userRepo, landlordID, models.RoleLandlord); err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Invalid property values",
			Err:        err,
		}
	}

	id := uuid.New()
	if req.PropertyID != nil && *req.PropertyID != uuid.Nil {
		id = *req.PropertyID
	}

	p := &models.Property{
		ID:               id,
		LandlordID:       landlordID,
		Title:            req.Title,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		Price:            req.Price,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		Location:         req.Location,
		DistanceToCampus: req.DistanceToCampus,
		Amenities:        req.Amenities,
		AvailableFrom:    req.AvailableFrom,
		Status:           models.PropertyStatusType(req.Status),
	}

	written, err := s.propRepo.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	if !written {
		// id exists but is owned by another landlord
		return nil, utils.ErrNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes the property only when owned by landlordID. Child
// inquiries/viewings/saved rows cascade in the datastore.
func (s *ListingService) Delete(ctx context.Context, propertyID, landlordID uuid.UUID) error {
	err := s.propRepo.DeleteOwned(ctx, propertyID, landlordID)
	if err != nil {
		if isNotFound(err) {
			return utils.ErrNotFound
		}
		return err
	}
	return nil
}
