package repository

import (
	"context"
	"errors"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type YachtRepository struct {
	db DBConn
}

func NewYachtRepository(db DBConn) *YachtRepository {
	return &YachtRepository{db: db}
}

// FindFirstAvailable returns any single yacht in 'available' status, or
// (nil, nil) when the fleet is fully booked. Assignment is best effort, so
// no ordering is imposed.
func (r *YachtRepository) FindFirstAvailable(ctx context.Context) (*models.Yacht, error) {
	query := `
        SELECT id, name, status, skipper, location, next_booking, maintenance_due,
            usage_hours, last_service
        FROM yachts
        WHERE status = $1
        LIMIT 1
    `
	var y models.Yacht
	err := r.db.QueryRow(ctx, query, models.YachtAvailable).Scan(
		&y.ID, &y.Name, &y.Status, &y.Skipper, &y.Location, &y.NextBooking,
		&y.MaintenanceDue, &y.UsageHours, &y.LastService,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &y, nil
}

func (r *YachtRepository) MarkBooked(ctx context.Context, id uuid.UUID, nextBooking time.Time) error {
	query := `
        UPDATE yachts
        SET status = $2, next_booking = $3, updated_at = $4
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id, models.YachtBooked, nextBooking, time.Now().UTC())
	return err
}

func (r *YachtRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE yachts
        SET status = $2, next_booking = NULL, updated_at = $3
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id, models.YachtAvailable, time.Now().UTC())
	return err
}
