package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"digiplot/internal/domain"
)

// PostgresNotificationsRepo implements NotificationsRepository on the notifications table.
type PostgresNotificationsRepo struct {
	db *sql.DB
}

func NewPostgresNotificationsRepo(db *sql.DB) *PostgresNotificationsRepo {
	return &PostgresNotificationsRepo{db: db}
}

var _ NotificationsRepository = (*PostgresNotificationsRepo)(nil)

const notificationColumns = `id, recipient_id, recipient_type, message, created_at, read_at`

func scanNotification(s rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var readAt sql.NullTime
	if err := s.Scan(&n.ID, &n.RecipientID, &n.RecipientType, &n.Message, &n.CreatedAt, &readAt); err != nil {
		return nil, err
	}
	n.ReadAt = timePtr(readAt)
	return &n, nil
}

func (r *PostgresNotificationsRepo) ListNotifications(ctx context.Context, recipientType domain.RecipientType, recipientID int64) ([]*domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE recipient_type = $1 AND recipient_id = $2
		 ORDER BY id`, recipientType, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	out := []*domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresNotificationsRepo) GetNotification(ctx context.Context, id int64) (*domain.Notification, error) {
	n, err := scanNotification(r.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "get notification")
	}
	return n, nil
}

func (r *PostgresNotificationsRepo) CreateNotification(ctx context.Context, n *domain.Notification) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO notifications (recipient_id, recipient_type, message, created_at, read_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		n.RecipientID, n.RecipientType, n.Message, n.CreatedAt, nullTimeOf(n.ReadAt),
	).Scan(&n.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create notification: %w", err)
	}
	return n.ID, nil
}

func (r *PostgresNotificationsRepo) MarkRead(ctx context.Context, id int64, at time.Time) error {
	return execOne(ctx, r.db, "mark notification read",
		`UPDATE notifications SET read_at = COALESCE(read_at, $2) WHERE id = $1`, id, at)
}
