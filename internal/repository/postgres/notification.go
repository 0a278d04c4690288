package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/repository"
)

type NotificationRepositoryImpl struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepositoryImpl {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return fmt.Errorf("failed to encode notification attributes: %w", err)
	}

	query := `
		INSERT INTO notifications (user_id, subject, body, attributes, is_read)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_on`

	err = r.db.QueryRowContext(ctx, query, n.UserID, n.Subject, n.Body, attrs, n.IsRead).
		Scan(&n.ID, &n.CreatedOn)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var total int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, subject, body, attributes, is_read, created_on
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_on DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Subject, &n.Body, &attrs, &n.IsRead, &n.CreatedOn); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, fmt.Errorf("failed to decode notification attributes: %w", err)
			}
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, id, userID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
