package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

func validUpsertRequest() dtos.PropertyUpsertRequest {
	return dtos.PropertyUpsertRequest{
		Title:       "Bright double room",
		Description: "Large double room in a shared house five minutes from campus.",
		ImageURL:    "https://images.example.com/room.jpg",
		Price:       400,
		Bedrooms:    1,
		Bathrooms:   1,
		Location:    "22 Park Street",
		Amenities:   []string{"wifi"},
		Status:      "ACTIVE",
	}
}

func TestUpsertCreatesProperty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	landlord := f.users.addUser(models.RoleLandlord, "lana")

	p, err := f.listingSvc.Upsert(ctx, landlord.ID, validUpsertRequest())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, p.ID)
	require.Equal(t, landlord.ID, p.LandlordID)
	require.Equal(t, models.PropertyStatusActive, p.Status)
	require.EqualValues(t, 1, p.RowVersion)
}

func TestUpsertRequiresLandlordRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	student := f.users.addUser(models.RoleStudent, "sam")

	_, err := f.listingSvc.Upsert(ctx, student.ID, validUpsertRequest())
	require.ErrorIs(t, err, utils.ErrWrongRole)
}

func TestUpsertValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	landlord := f.users.addUser(models.RoleLandlord, "lana")

	for name, mutate := range map[string]func(*dtos.PropertyUpsertRequest){
		"short title":       func(r *dtos.PropertyUpsertRequest) { r.Title = "Hi" },
		"short description": func(r *dtos.PropertyUpsertRequest) { r.Description = "too short" },
		"zero price":        func(r *dtos.PropertyUpsertRequest) { r.Price = 0 },
		"negative price":    func(r *dtos.PropertyUpsertRequest) { r.Price = -10 },
		"no bedrooms":       func(r *dtos.PropertyUpsertRequest) { r.Bedrooms = 0 },
		"no amenities":      func(r *dtos.PropertyUpsertRequest) { r.Amenities = nil },
		"bad status":        func(r *dtos.PropertyUpsertRequest) { r.Status = "SOLD" },
	} {
		req := validUpsertRequest()
		mutate(&req)
		_, err := f.listingSvc.Upsert(ctx, landlord.ID, req)
		require.Error(t, err, name)

		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr, name)
		require.Equal(t, utils.ErrCodeValidation, appErr.Code, name)
	}
}

func TestUpsertUpdatePreservesOwnershipAndCreatedAt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	landlord := f.users.addUser(models.RoleLandlord, "lana")

	created, err := f.listingSvc.Upsert(ctx, landlord.ID, validUpsertRequest())
	require.NoError(t, err)

	req := validUpsertRequest()
	req.PropertyID = &created.ID
	req.Title = "Renovated double room"
	req.Status = "RENTED"

	updated, err := f.listingSvc.Upsert(ctx, landlord.ID, req)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.LandlordID, updated.LandlordID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Equal(t, "Renovated double room", updated.Title)
	require.Equal(t, models.PropertyStatusRented, updated.Status)
	require.EqualValues(t, 2, updated.RowVersion)
}

func TestUpsertCannotHijackAnotherLandlordsProperty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.users.addUser(models.RoleLandlord, "owner")
	other := f.users.addUser(models.RoleLandlord, "other")

	created, err := f.listingSvc.Upsert(ctx, owner.ID, validUpsertRequest())
	require.NoError(t, err)

	req := validUpsertRequest()
	req.PropertyID = &created.ID
	req.Title = "Hijacked listing title"

	_, err = f.listingSvc.Upsert(ctx, other.ID, req)
	require.ErrorIs(t, err, utils.ErrNotFound)

	// untouched
	stored, err := f.listingSvc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, stored.Title)
	require.Equal(t, owner.ID, stored.LandlordID)
}

func TestBrowseReturnsActiveOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	landlord := f.users.addUser(models.RoleLandlord, "lana")

	active, err := f.listingSvc.Upsert(ctx, landlord.ID, validUpsertRequest())
	require.NoError(t, err)

	draft := validUpsertRequest()
	draft.Status = "DRAFT"
	_, err = f.listingSvc.Upsert(ctx, landlord.ID, draft)
	require.NoError(t, err)

	feed, err := f.listingSvc.ListBrowse(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, active.ID, feed[0].ID)
}

func TestBrowseUnfilteredWhenFlagOff(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	landlord := f.users.addUser(models.RoleLandlord, "lana")
	svc := NewListingService(f.props, f.users, false)

	_, err := f.listingSvc.Upsert(ctx, landlord.ID, validUpsertRequest())
	require.NoError(t, err)
	draft := validUpsertRequest()
	draft.Status = "DRAFT"
	_, err = f.listingSvc.Upsert(ctx, landlord.ID, draft)
	require.NoError(t, err)

	feed, err := svc.ListBrowse(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
}

func TestDeleteScopedToOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.users.addUser(models.RoleLandlord, "owner")
	other := f.users.addUser(models.RoleLandlord, "other")

	p, err := f.listingSvc.Upsert(ctx, owner.ID, validUpsertRequest())
	require.NoError(t, err)

	err = f.listingSvc.Delete(ctx, p.ID, other.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, f.listingSvc.Delete(ctx, p.ID, owner.ID))

	_, err = f.listingSvc.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestGetForLandlordHidesForeignProperties(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.users.addUser(models.RoleLandlord, "owner")
	other := f.users.addUser(models.RoleLandlord, "other")

	p, err := f.listingSvc.Upsert(ctx, owner.ID, validUpsertRequest())
	require.NoError(t, err)

	_, err = f.listingSvc.GetForLandlord(ctx, p.ID, other.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	got, err := f.listingSvc.GetForLandlord(ctx, p.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
}
