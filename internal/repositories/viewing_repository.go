package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/studentnest/studentnest-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ViewingRepository interface {
	Create(ctx context.Context, v *models.Viewing) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Viewing, error)
	ListByPropertyWithStudent(ctx context.Context, propertyID uuid.UUID) ([]*models.ViewingWithStudent, error)

	UpdateIfVersion(ctx context.Context, v *models.Viewing, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Viewing) error) error

	CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int, error)
	CountUpcomingByLandlord(ctx context.Context, landlordID uuid.UUID, now time.Time) (int, error)
	ListUpcomingByLandlord(ctx context.Context, landlordID uuid.UUID, now time.Time, limit int) ([]*models.UpcomingViewing, error)
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error)

	// CompletePastConfirmed marks CONFIRMED viewings whose scheduled_at has
	// passed as COMPLETED, in one statement. Returns rows affected.
	CompletePastConfirmed(ctx context.Context, now time.Time) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type viewingRepo struct {
	*BaseVersionedRepo[*models.Viewing]
	db DB
}

func NewViewingRepository(db DB) ViewingRepository {
	r := &viewingRepo{db: db}
	selectStmt := baseSelectViewing() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanViewing)
	return r
}

func (r *viewingRepo) Create(ctx context.Context, v *models.Viewing) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO viewings (
            id, property_id, student_id, scheduled_at, notes, status,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
    `,
		v.ID,
		v.PropertyID,
		v.StudentID,
		v.ScheduledAt,
		v.Notes,
		v.Status,
	)
	return err
}

func (r *viewingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Viewing, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *viewingRepo) ListByPropertyWithStudent(ctx context.Context, propertyID uuid.UUID) ([]*models.ViewingWithStudent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT v.id, v.property_id, v.student_id, v.scheduled_at, v.notes, v.status,
            v.created_at, v.updated_at, v.row_version,
            u.id, u.full_name, u.email
        FROM viewings v
        JOIN users u ON u.id = v.student_id
        WHERE v.property_id = $1
        ORDER BY v.scheduled_at ASC
    `, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ViewingWithStudent
	for rows.Next() {
		var vw models.ViewingWithStudent
		err := rows.Scan(
			&vw.ID,
			&vw.PropertyID,
			&vw.StudentID,
			&vw.ScheduledAt,
			&vw.Notes,
			&vw.Status,
			&vw.CreatedAt,
			&vw.UpdatedAt,
			&vw.RowVersion,
			&vw.Student.ID,
			&vw.Student.FullName,
			&vw.Student.Email,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &vw)
	}
	return out, rows.Err()
}

func (r *viewingRepo) UpdateIfVersion(ctx context.Context, v *models.Viewing, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE viewings SET
            status=$2, updated_at=NOW(),
            row_version=row_version+1
        WHERE id=$1 AND row_version=$3
    `, v.ID, v.Status, expected)
}

func (r *viewingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Viewing) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *viewingRepo) CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int, error) {
	return r.count(ctx, `
        SELECT COUNT(*) FROM viewings v
        JOIN properties p ON p.id = v.property_id
        WHERE p.landlord_id = $1
    `, landlordID)
}

func (r *viewingRepo) CountUpcomingByLandlord(ctx context.Context, landlordID uuid.UUID, now time.Time) (int, error) {
	return r.count(ctx, `
        SELECT COUNT(*) FROM viewings v
        JOIN properties p ON p.id = v.property_id
        WHERE p.landlord_id = $1
          AND v.scheduled_at >= $2
          AND v.status IN ('REQUESTED','CONFIRMED')
    `, landlordID, now)
}

func (r *viewingRepo) ListUpcomingByLandlord(ctx context.Context, landlordID uuid.UUID, now time.Time, limit int) ([]*models.UpcomingViewing, error) {
	rows, err := r.db.Query(ctx, `
        SELECT v.id, v.property_id, v.student_id, v.scheduled_at, v.notes, v.status,
            v.created_at, v.updated_at, v.row_version,
            p.title, p.image_url, u.full_name
        FROM viewings v
        JOIN properties p ON p.id = v.property_id
        JOIN users u ON u.id = v.student_id
        WHERE p.landlord_id = $1
          AND v.scheduled_at >= $2
          AND v.status IN ('REQUESTED','CONFIRMED')
        ORDER BY v.scheduled_at ASC
        LIMIT $3
    `, landlordID, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UpcomingViewing
	for rows.Next() {
		var uv models.UpcomingViewing
		err := rows.Scan(
			&uv.ID,
			&uv.PropertyID,
			&uv.StudentID,
			&uv.ScheduledAt,
			&uv.Notes,
			&uv.Status,
			&uv.CreatedAt,
			&uv.UpdatedAt,
			&uv.RowVersion,
			&uv.PropertyTitle,
			&uv.PropertyImageURL,
			&uv.StudentName,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &uv)
	}
	return out, rows.Err()
}

func (r *viewingRepo) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM viewings WHERE property_id=$1`, propertyID)
}

func (r *viewingRepo) CompletePastConfirmed(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE viewings SET
            status='COMPLETED', updated_at=NOW(),
            row_version=row_version+1
        WHERE status='CONFIRMED' AND scheduled_at < $1
    `, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *viewingRepo) count(ctx context.Context, sql string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func baseSelectViewing() string {
	return `
        SELECT
            id, property_id, student_id, scheduled_at, notes, status,
            created_at, updated_at, row_version
        FROM viewings
    `
}

func scanViewing(row pgx.Row) (*models.Viewing, error) {
	var v models.Viewing
	err := row.Scan(
		&v.ID,
		&v.PropertyID,
		&v.StudentID,
		&v.ScheduledAt,
		&v.Notes,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
