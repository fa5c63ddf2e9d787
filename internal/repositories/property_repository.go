package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/studentnest/studentnest-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	// Upsert is a single atomic statement: insert a new row, or update an
	// existing one in place. landlord_id and created_at are preserved on
	// the update path, and the update only applies when the existing row
	// is owned by p.LandlordID. Returns false when no row was written
	// (id exists but belongs to another landlord).
	Upsert(ctx context.Context, p *models.Property) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetByIDForLandlord(ctx context.Context, id, landlordID uuid.UUID) (*models.Property, error)

	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	ListByStatus(ctx context.Context, status models.PropertyStatusType) ([]*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)
	ListByInquiringStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Property, error)

	// DeleteOwned removes the property only when owned by landlordID.
	// Child inquiries/viewings/saved rows are removed by the datastore's
	// ON DELETE CASCADE policy. Returns pgx.ErrNoRows when nothing matched.
	DeleteOwned(ctx context.Context, id, landlordID uuid.UUID) error

	CountByLandlordGroupedByStatus(ctx context.Context, landlordID uuid.UUID) (map[models.PropertyStatusType]int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Upsert(ctx context.Context, p *models.Property) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, landlord_id, title, description, image_url, price,
            bedrooms, bathrooms, location, distance_to_campus, amenities,
            available_from, status,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, NOW(), NOW(), 1)
        ON CONFLICT (id) DO UPDATE SET
            title=EXCLUDED.title,
            description=EXCLUDED.description,
            image_url=EXCLUDED.image_url,
            price=EXCLUDED.price,
            bedrooms=EXCLUDED.bedrooms,
            bathrooms=EXCLUDED.bathrooms,
            location=EXCLUDED.location,
            distance_to_campus=EXCLUDED.distance_to_campus,
            amenities=EXCLUDED.amenities,
            available_from=EXCLUDED.available_from,
            status=EXCLUDED.status,
            updated_at=NOW(),
            row_version=properties.row_version+1
        WHERE properties.landlord_id = EXCLUDED.landlord_id
    `,
		p.ID,
		p.LandlordID,
		p.Title,
		p.Description,
		p.ImageURL,
		p.Price,
		p.Bedrooms,
		p.Bathrooms,
		p.Location,
		p.DistanceToCampus,
		p.Amenities,
		p.AvailableFrom,
		p.Status,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) GetByIDForLandlord(ctx context.Context, id, landlordID uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1 AND landlord_id=$2", id, landlordID)
	return scanProperty(row)
}

func (r *propertyRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return r.list(ctx, baseSelectProperty()+" WHERE landlord_id=$1 ORDER BY created_at DESC", landlordID)
}

func (r *propertyRepo) ListByStatus(ctx context.Context, status models.PropertyStatusType) ([]*models.Property, error) {
	return r.list(ctx, baseSelectProperty()+" WHERE status=$1 ORDER BY created_at DESC", status)
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	return r.list(ctx, baseSelectProperty()+" ORDER BY created_at DESC")
}

func (r *propertyRepo) ListByInquiringStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Property, error) {
	return r.list(ctx, `
        SELECT DISTINCT p.id, p.landlord_id, p.title, p.description, p.image_url,
            p.price, p.bedrooms, p.bathrooms, p.location, p.distance_to_campus,
            p.amenities, p.available_from, p.status,
            p.created_at, p.updated_at, p.row_version
        FROM properties p
        JOIN inquiries i ON i.property_id = p.id
        WHERE i.student_id = $1
        ORDER BY p.created_at DESC
    `, studentID)
}

func (r *propertyRepo) DeleteOwned(ctx context.Context, id, landlordID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1 AND landlord_id=$2`, id, landlordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) CountByLandlordGroupedByStatus(ctx context.Context, landlordID uuid.UUID) (map[models.PropertyStatusType]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT status, COUNT(*) FROM properties
        WHERE landlord_id=$1
        GROUP BY status
    `, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.PropertyStatusType]int)
	for rows.Next() {
		var status models.PropertyStatusType
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (r *propertyRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func baseSelectProperty() string {
	return `
        SELECT
            id, landlord_id, title, description, image_url, price,
            bedrooms, bathrooms, location, distance_to_campus, amenities,
            available_from, status,
            created_at, updated_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.LandlordID,
		&p.Title,
		&p.Description,
		&p.ImageURL,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Location,
		&p.DistanceToCampus,
		&p.Amenities,
		&p.AvailableFrom,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
