package repository

import (
	"context"
	"time"

	models "github.com/gardaracing/charter-api/internal"
)

type NotificationRepository struct {
	db DBConn
}

func NewNotificationRepository(db DBConn) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n models.Notification) error {
	query := `
        INSERT INTO notifications (type, title, message, recipient_id, recipient_email,
            channel, status, booking_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, query,
		n.Type, n.Title, n.Message, n.RecipientID, n.RecipientEmail,
		n.Channel, n.Status, n.BookingID, time.Now().UTC())
	return err
}
