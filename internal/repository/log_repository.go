package repository

import (
	"context"

	models "github.com/gardaracing/charter-api/internal"
)

// LogRepository writes the webhook audit trail: one sync_logs row per receipt
// and one error_logs row per failure.
type LogRepository struct {
	db DBConn
}

func NewLogRepository(db DBConn) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) InsertSync(ctx context.Context, entry models.SyncLog) error {
	query := `
        INSERT INTO sync_logs (table_name, operation, record_id, sync_status, synced_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query,
		entry.TableName, entry.Operation, entry.RecordID, entry.SyncStatus, entry.SyncedAt)
	return err
}

func (r *LogRepository) InsertError(ctx context.Context, entry models.ErrorLog) error {
	query := `
        INSERT INTO error_logs (action, error_message, context, timestamp)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.db.Exec(ctx, query,
		entry.Action, entry.ErrorMessage, entry.Context, entry.Timestamp)
	return err
}
