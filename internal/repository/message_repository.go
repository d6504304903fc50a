package repository

import (
	"context"
	"time"

	models "github.com/gardaracing/charter-api/internal"
)

type MessageRepository struct {
	db DBConn
}

func NewMessageRepository(db DBConn) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Insert(ctx context.Context, msg models.ChatMessage) error {
	query := `
        INSERT INTO messages (session_id, sender, text, created_at)
        VALUES ($1, $2, $3, $4)
    `
	created := msg.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, query, msg.SessionID, msg.Sender, msg.Text, created)
	return err
}
