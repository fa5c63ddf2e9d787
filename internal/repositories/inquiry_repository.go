package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/studentnest/studentnest-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type InquiryRepository interface {
	Create(ctx context.Context, i *models.Inquiry) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error)
	ListByPropertyWithStudent(ctx context.Context, propertyID uuid.UUID) ([]*models.InquiryWithStudent, error)
	ListByPropertyAndStudent(ctx context.Context, propertyID, studentID uuid.UUID) ([]*models.Inquiry, error)

	UpdateIfVersion(ctx context.Context, i *models.Inquiry, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Inquiry) error) error

	CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int, error)
	CountPendingByLandlord(ctx context.Context, landlordID uuid.UUID) (int, error)
	CountPendingByProperty(ctx context.Context, propertyID uuid.UUID) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type inquiryRepo struct {
	*BaseVersionedRepo[*models.Inquiry]
	db DB
}

func NewInquiryRepository(db DB) InquiryRepository {
	r := &inquiryRepo{db: db}
	selectStmt := baseSelectInquiry() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanInquiry)
	return r
}

func (r *inquiryRepo) Create(ctx context.Context, i *models.Inquiry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO inquiries (
            id, property_id, student_id, message, status, response,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
    `,
		i.ID,
		i.PropertyID,
		i.StudentID,
		i.Message,
		i.Status,
		i.Response,
	)
	return err
}

func (r *inquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *inquiryRepo) ListByPropertyWithStudent(ctx context.Context, propertyID uuid.UUID) ([]*models.InquiryWithStudent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT i.id, i.property_id, i.student_id, i.message, i.status, i.response,
            i.created_at, i.updated_at, i.row_version,
            u.id, u.full_name, u.email
        FROM inquiries i
        JOIN users u ON u.id = i.student_id
        WHERE i.property_id = $1
        ORDER BY i.created_at DESC
    `, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.InquiryWithStudent
	for rows.Next() {
		var iq models.InquiryWithStudent
		err := rows.Scan(
			&iq.ID,
			&iq.PropertyID,
			&iq.StudentID,
			&iq.Message,
			&iq.Status,
			&iq.Response,
			&iq.CreatedAt,
			&iq.UpdatedAt,
			&iq.RowVersion,
			&iq.Student.ID,
			&iq.Student.FullName,
			&iq.Student.Email,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &iq)
	}
	return out, rows.Err()
}

func (r *inquiryRepo) ListByPropertyAndStudent(ctx context.Context, propertyID, studentID uuid.UUID) ([]*models.Inquiry, error) {
	rows, err := r.db.Query(ctx,
		baseSelectInquiry()+" WHERE property_id=$1 AND student_id=$2 ORDER BY created_at DESC",
		propertyID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Inquiry
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *inquiryRepo) UpdateIfVersion(ctx context.Context, i *models.Inquiry, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE inquiries SET
            status=$2, response=$3, updated_at=NOW(),
            row_version=row_version+1
        WHERE id=$1 AND row_version=$4
    `, i.ID, i.Status, i.Response, expected)
}

func (r *inquiryRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Inquiry) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *inquiryRepo) CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int, error) {
	return r.count(ctx, `
        SELECT COUNT(*) FROM inquiries i
        JOIN properties p ON p.id = i.property_id
        WHERE p.landlord_id = $1
    `, landlordID)
}

func (r *inquiryRepo) CountPendingByLandlord(ctx context.Context, landlordID uuid.UUID) (int, error) {
	return r.count(ctx, `
        SELECT COUNT(*) FROM inquiries i
        JOIN properties p ON p.id = i.property_id
        WHERE p.landlord_id = $1 AND i.status = 'PENDING'
    `, landlordID)
}

func (r *inquiryRepo) CountPendingByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	return r.count(ctx, `
        SELECT COUNT(*) FROM inquiries
        WHERE property_id = $1 AND status = 'PENDING'
    `, propertyID)
}

func (r *inquiryRepo) count(ctx context.Context, sql string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func baseSelectInquiry() string {
	return `
        SELECT
            id, property_id, student_id, message, status, response,
            created_at, updated_at, row_version
        FROM inquiries
    `
}

func scanInquiry(row pgx.Row) (*models.Inquiry, error) {
	var i models.Inquiry
	err := row.Scan(
		&i.ID,
		&i.PropertyID,
		&i.StudentID,
		&i.Message,
		&i.Status,
		&i.Response,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}
