package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type SavedPropertyRepository interface {
	// Find returns nil, nil when no row exists for the pair.
	Find(ctx context.Context, studentID, propertyID uuid.UUID) (*models.SavedProperty, error)

	// Insert is a no-op when a row for the pair already exists (unique
	// constraint + ON CONFLICT DO NOTHING). Returns true when a row was
	// actually written.
	Insert(ctx context.Context, sp *models.SavedProperty) (bool, error)

	Delete(ctx context.Context, studentID, propertyID uuid.UUID) error

	ListSaved(ctx context.Context, studentID uuid.UUID) ([]*models.SavedListing, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type savedPropertyRepo struct {
	db DB
}

func NewSavedPropertyRepository(db DB) SavedPropertyRepository {
	return &savedPropertyRepo{db: db}
}

func (r *savedPropertyRepo) Find(ctx context.Context, studentID, propertyID uuid.UUID) (*models.SavedProperty, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, student_id, property_id, created_at
        FROM saved_properties
        WHERE student_id=$1 AND property_id=$2
    `, studentID, propertyID)

	var sp models.SavedProperty
	err := row.Scan(&sp.ID, &sp.StudentID, &sp.PropertyID, &sp.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (r *savedPropertyRepo) Insert(ctx context.Context, sp *models.SavedProperty) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO saved_properties (id, student_id, property_id, created_at)
        VALUES ($1,$2,$3, NOW())
        ON CONFLICT (student_id, property_id) DO NOTHING
    `, sp.ID, sp.StudentID, sp.PropertyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *savedPropertyRepo) Delete(ctx context.Context, studentID, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        DELETE FROM saved_properties WHERE student_id=$1 AND property_id=$2
    `, studentID, propertyID)
	return err
}

func (r *savedPropertyRepo) ListSaved(ctx context.Context, studentID uuid.UUID) ([]*models.SavedListing, error) {
	rows, err := r.db.Query(ctx, `
        SELECT p.id, p.landlord_id, p.title, p.description, p.image_url, p.price,
            p.bedrooms, p.bathrooms, p.location, p.distance_to_campus, p.amenities,
            p.available_from, p.status,
            p.created_at, p.updated_at, p.row_version,
            sp.created_at
        FROM saved_properties sp
        JOIN properties p ON p.id = sp.property_id
        WHERE sp.student_id = $1
        ORDER BY sp.created_at DESC
    `, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SavedListing
	for rows.Next() {
		var sl models.SavedListing
		err := rows.Scan(
			&sl.ID,
			&sl.LandlordID,
			&sl.Title,
			&sl.Description,
			&sl.ImageURL,
			&sl.Price,
			&sl.Bedrooms,
			&sl.Bathrooms,
			&sl.Location,
			&sl.DistanceToCampus,
			&sl.Amenities,
			&sl.AvailableFrom,
			&sl.Status,
			&sl.CreatedAt,
			&sl.UpdatedAt,
			&sl.RowVersion,
			&sl.SavedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &sl)
	}
	return out, rows.Err()
}
