package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

// SeedTestData provisions a demo landlord, a demo student and a handful
// of listings. Idempotent: existing rows are left alone.
func SeedTestData(
	ctx context.Context,
	userRepo repositories.UserRepository,
	propRepo repositories.PropertyRepository,
) error {
	landlord, err := seedUser(ctx, userRepo, "seed-landlord-1", "Dana Osei", "dana.osei@example.com", models.RoleLandlord)
	if err != nil {
		return err
	}
	if _, err := seedUser(ctx, userRepo, "seed-student-1", "Femi Adeyemi", "femi.adeyemi@example.com", models.RoleStudent); err != nil {
		return err
	}

	availableFrom := time.Now().AddDate(0, 1, 0)
	walk := "10 min walk"
	listings := []*models.Property{
		{
			ID:               uuid.MustParse("6f1f4f5e-0000-4000-8000-000000000001"),
			LandlordID:       landlord.ID,
			Title:            "Sunny studio near the engineering faculty",
			Description:      "Compact furnished studio with dedicated desk space and fast fiber internet.",
			ImageURL:         "https://images.example.com/seed/studio.jpg",
			Price:            450,
			Bedrooms:         1,
			Bathrooms:        1,
			Location:         "12 College Lane",
			DistanceToCampus: &walk,
			Amenities:        []string{"wifi", "furnished", "laundry"},
			AvailableFrom:    &availableFrom,
			Status:           models.PropertyStatusActive,
		},
		{
			ID:               uuid.MustParse("6f1f4f5e-0000-4000-8000-000000000002"),
			LandlordID:       landlord.ID,
			Title:            "Shared 3-bed house with garden",
			Description:      "Three large bedrooms, shared kitchen and living room, quiet residential street.",
			ImageURL:         "https://images.example.com/seed/house.jpg",
			Price:            320,
			Bedrooms:         3,
			Bathrooms:        2,
			Location:         "48 Mill Road",
			Amenities:        []string{"garden", "parking", "washing machine"},
			Status:           models.PropertyStatusActive,
		},
		{
			ID:          uuid.MustParse("6f1f4f5e-0000-4000-8000-000000000003"),
			LandlordID:  landlord.ID,
			Title:       "Draft loft listing pending photos",
			Description: "Top-floor loft conversion, photos and final pricing still to be confirmed.",
			ImageURL:    "https://images.example.com/seed/loft.jpg",
			Price:       510,
			Bedrooms:    2,
			Bathrooms:   1,
			Location:    "3 Station Approach",
			Amenities:   []string{"wifi"},
			Status:      models.PropertyStatusDraft,
		},
	}

	for _, p := range listings {
		if _, err := propRepo.Upsert(ctx, p); err != nil {
			return err
		}
	}

	utils.Logger.Infof("Seeded %d demo listings for landlord %s", len(listings), landlord.Email)
	return nil
}

func seedUser(
	ctx context.Context,
	userRepo repositories.UserRepository,
	externalID, fullName, email string,
	role models.RoleType,
) (*models.User, error) {
	existing, err := userRepo.GetByExternalID(ctx, externalID)
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
		Role:       role,
	}
	if err := userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
