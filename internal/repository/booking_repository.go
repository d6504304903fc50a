package repository

import (
	"context"
	"errors"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Insert(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query := `
        INSERT INTO bookings (id, booking_reference, client_id, yacht_id, session_date,
            session_time, amount, status, payment_status, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.Reference, booking.ClientID, booking.YachtID,
		booking.SessionDate, booking.SessionTime, booking.Amount,
		booking.Status, booking.PaymentStatus, booking.Notes,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetEnrichedByID fetches the booking together with its client and yacht.
// Both joins are LEFT: either reference may be null.
func (r *BookingRepository) GetEnrichedByID(ctx context.Context, id uuid.UUID) (*models.EnrichedBooking, error) {
	query := `
        SELECT
            B.id, B.booking_reference, B.client_id, B.yacht_id, B.session_date,
            B.session_time, B.amount, B.status, B.payment_status, B.notes,
            B.created_at, B.updated_at,
            C.id, C.name, C.email, C.phone, C.language, C.segment,
            Y.id, Y.name, Y.status
        FROM bookings B
        LEFT JOIN clients C ON C.id = B.client_id
        LEFT JOIN yachts Y ON Y.id = B.yacht_id
        WHERE B.id = $1
    `
	var eb models.EnrichedBooking
	var (
		clientID       *uuid.UUID
		clientName     *string
		clientEmail    *string
		clientPhone    *string
		clientLanguage *string
		clientSegment  *models.ClientSegment
		yachtID        *uuid.UUID
		yachtName      *string
		yachtStatus    *models.YachtStatus
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&eb.ID, &eb.Reference, &eb.ClientID, &eb.YachtID, &eb.SessionDate,
		&eb.SessionTime, &eb.Amount, &eb.Status, &eb.PaymentStatus, &eb.Notes,
		&eb.CreatedAt, &eb.UpdatedAt,
		&clientID, &clientName, &clientEmail, &clientPhone, &clientLanguage, &clientSegment,
		&yachtID, &yachtName, &yachtStatus,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if clientID != nil {
		eb.Client = &models.Client{
			ID:       *clientID,
			Name:     deref(clientName),
			Email:    deref(clientEmail),
			Phone:    deref(clientPhone),
			Language: deref(clientLanguage),
		}
		if clientSegment != nil {
			eb.Client.Segment = *clientSegment
		}
	}
	if yachtID != nil {
		eb.Yacht = &models.Yacht{ID: *yachtID, Name: deref(yachtName)}
		if yachtStatus != nil {
			eb.Yacht.Status = *yachtStatus
		}
	}
	return &eb, nil
}

// UpdateStatus overwrites the status unconditionally; no transition rules are
// enforced here.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	query := `
        UPDATE bookings
        SET status = $2, updated_at = $3
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
