package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

func TestAuthenticateCreatesUserWithRoleNone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.authSvc.Authenticate(ctx, "ext-abc", "Ada Obi", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleNone, u.Role)
	require.Equal(t, "ext-abc", u.ExternalID)

	// same subject comes back as the same row
	again, err := f.authSvc.Authenticate(ctx, "ext-abc", "Ada Obi", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)
}

func TestSelectRoleRejectsNone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.authSvc.Authenticate(ctx, "ext-abc", "Ada Obi", "ada@example.com")
	require.NoError(t, err)

	_, err = f.authSvc.SelectRole(ctx, u.ID, models.RoleNone)
	require.ErrorIs(t, err, utils.ErrInvalidRole)

	_, err = f.authSvc.SelectRole(ctx, u.ID, models.RoleType("ADMIN"))
	require.ErrorIs(t, err, utils.ErrInvalidRole)
}

func TestSelectRolePersists(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.authSvc.Authenticate(ctx, "ext-abc", "Ada Obi", "ada@example.com")
	require.NoError(t, err)

	updated, err := f.authSvc.SelectRole(ctx, u.ID, models.RoleLandlord)
	require.NoError(t, err)
	require.Equal(t, models.RoleLandlord, updated.Role)

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleLandlord, stored.Role)
}
