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

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error

	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.NotificationWithProperty, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)

	MarkRead(ctx context.Context, id uuid.UUID) error
	// MarkAllRead flips every unread row for the user in one statement.
	// Zero affected rows is a successful no-op.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO notifications (id, user_id, property_id, message, is_read, created_at)
        VALUES ($1,$2,$3,$4,FALSE, NOW())
    `, n.ID, n.UserID, n.PropertyID, n.Message)
	return err
}

func (r *notificationRepo) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.NotificationWithProperty, error) {
	rows, err := r.db.Query(ctx, `
        SELECT n.id, n.user_id, n.property_id, n.message, n.is_read, n.created_at,
            p.title
        FROM notifications n
        LEFT JOIN properties p ON p.id = n.property_id
        WHERE n.user_id = $1
        ORDER BY n.created_at DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.NotificationWithProperty
	for rows.Next() {
		var n models.NotificationWithProperty
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.PropertyID,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
			&n.PropertyTitle,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND is_read=FALSE
    `, userID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE notifications SET is_read=TRUE WHERE id=$1
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE notifications SET is_read=TRUE WHERE user_id=$1 AND is_read=FALSE
    `, userID)
	return err
}
