package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const clientColumns = `id, name, email, phone, language, segment, total_bookings, total_spent,
            last_booking, source, location, created_at, updated_at`

type ClientRepository struct {
	db DBConn
}

func NewClientRepository(db DBConn) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetByEmail returns (nil, nil) when no client exists for the address, so
// callers can tell absence apart from a query failure.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE email = $1
    `
	client, err := r.scanClient(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return client, err
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE id = $1
    `
	return r.scanClient(r.db.QueryRow(ctx, query, id))
}

func (r *ClientRepository) Insert(ctx context.Context, client *models.Client) (*models.Client, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	query := `
        INSERT INTO clients (id, name, email, phone, language, segment, total_bookings,
            total_spent, source, location, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err := r.db.Exec(ctx, query,
		client.ID, client.Name, client.Email, client.Phone, client.Language, client.Segment,
		client.TotalBookings, client.TotalSpent, client.Source, client.Location,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateContact writes only the fields present in the update.
func (r *ClientRepository) UpdateContact(ctx context.Context, id uuid.UUID, update models.ContactUpdate) (*models.Client, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	var args []interface{}

	if update.Name != nil {
		args = append(args, *update.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Phone != nil {
		args = append(args, *update.Phone)
		sets = append(sets, fmt.Sprintf("phone = $%d", len(args)))
	}
	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE clients
        SET %s
        WHERE id = $%d
        RETURNING `+clientColumns,
		strings.Join(sets, ", "), len(args))

	return r.scanClient(r.db.QueryRow(ctx, query, args...))
}

func (r *ClientRepository) UpdateStats(ctx context.Context, id uuid.UUID, totalBookings int,
	totalSpent float64, lastBooking time.Time, segment models.ClientSegment) error {
	query := `
        UPDATE clients
        SET total_bookings = $2, total_spent = $3, last_booking = $4, segment = $5, updated_at = $6
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id, totalBookings, totalSpent, lastBooking, segment, time.Now().UTC())
	return err
}

func (r *ClientRepository) scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Language, &c.Segment,
		&c.TotalBookings, &c.TotalSpent, &c.LastBooking, &c.Source, &c.Location,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
