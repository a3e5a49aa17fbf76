package repository

import (
	"database/sql"
	"time"

	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/model"
)

type NotificationRepositoryInterface interface {
	ListByUser(userID int) ([]*model.Notification, error)
	Create(n *model.Notification) error
	DeleteByUser(userID int) error
	WithTx(tx *sql.Tx) NotificationRepositoryInterface
}

// NotificationRepository is append-only: notifications are created as a
// side effect of admin review actions and never updated.
type NotificationRepository struct {
	DB db.DBTX
}

func (r *NotificationRepository) WithTx(tx *sql.Tx) NotificationRepositoryInterface {
	if tx == nil {
		return r
	}
	return &NotificationRepository{DB: tx}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	query := `
        INSERT INTO notifications (user_id, message, created_at)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.DB.QueryRow(query, n.UserID, n.Message, n.CreatedAt).Scan(&n.ID)
}

func (r *NotificationRepository) ListByUser(userID int) ([]*model.Notification, error) {
	query := `
        SELECT id, user_id, message, created_at
        FROM notifications
        WHERE user_id=$1
        ORDER BY created_at DESC
    `
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*model.Notification{}
	for rows.Next() {
		n := &model.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) DeleteByUser(userID int) error {
	_, err := r.DB.Exec(`DELETE FROM notifications WHERE user_id=$1`, userID)
	return err
}

var _ NotificationRepositoryInterface = (*NotificationRepository)(nil)
