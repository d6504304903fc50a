package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/gardaracing/charter-api/internal/validator"
	"github.com/google/uuid"
)

type bookingService struct {
	clients  ports.ClientRepository
	yachts   ports.YachtRepository
	bookings ports.BookingRepository
	forms    *validator.FormValidator
	logger   *slog.Logger

	unitPrice       float64
	defaultLanguage string
}

func NewBookingService(clients ports.ClientRepository, yachts ports.YachtRepository,
	bookings ports.BookingRepository, forms *validator.FormValidator, logger *slog.Logger,
	unitPrice float64, defaultLanguage string) *bookingService {
	return &bookingService{
		clients:         clients,
		yachts:          yachts,
		bookings:        bookings,
		forms:           forms,
		logger:          logger,
		unitPrice:       unitPrice,
		defaultLanguage: defaultLanguage,
	}
}

// BookRaceDay runs the whole funnel: validate, resolve the client, pick a
// yacht, write the booking, then the best-effort tail (statistics, yacht
// status, confirmation). Validation failures return before any store call.
// The four writes are separate operations with no shared transaction; once
// the booking row exists the booking has succeeded regardless of what the
// tail does.
func (s *bookingService) BookRaceDay(ctx context.Context, form models.BookingForm) (*models.BookingConfirmation, error) {
	if msgs := s.forms.Validate(form); len(msgs) > 0 {
		return nil, &models.ValidationError{Messages: msgs}
	}

	client, err := s.ResolveClient(ctx, form.FirstName, form.LastName, form.Email, form.Phone)
	if err != nil {
		s.logger.Error("client resolution failed", "email", form.Email, "error", err)
		return nil, models.ErrClientResolution
	}

	sessionDate, err := time.Parse("2006-01-02", form.BookingDate)
	if err != nil {
		return nil, &models.ValidationError{Messages: []string{"Please enter a valid booking date"}}
	}

	yacht := s.FindAvailableYacht(ctx, sessionDate)
	var yachtID *uuid.UUID
	if yacht != nil {
		yachtID = &yacht.ID
	}

	amount := float64(form.Participants) * s.unitPrice

	booking, err := s.CreateBooking(ctx, client.ID, yachtID, sessionDate, form.TimeSlot, amount, form.SpecialRequests)
	if err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	s.ApplyBookingEffects(ctx, client.ID, yachtID, amount, sessionDate)

	if booking.Client == nil {
		booking.Client = client
	}
	if booking.Yacht == nil {
		booking.Yacht = yacht
	}

	msg := s.ComposeConfirmation(booking, client)

	return &models.BookingConfirmation{Booking: booking, Message: msg}, nil
}

// ResolveClient finds or creates the client for an email address and
// reconciles name/phone changes. A lookup failure falls through to creation;
// a failed reconciliation update falls back to the stored row. Only a failed
// creation is an error.
func (s *bookingService) ResolveClient(ctx context.Context, firstName, lastName, email, phone string) (*models.Client, error) {
	fullName := strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName)

	existing, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("client lookup failed, treating as new", "email", email, "error", err)
		existing = nil
	}

	if existing != nil {
		var update models.ContactUpdate
		if existing.Name != fullName {
			update.Name = &fullName
		}
		if existing.Phone != phone {
			update.Phone = &phone
		}
		if update.IsEmpty() {
			return existing, nil
		}

		updated, err := s.clients.UpdateContact(ctx, existing.ID, update)
		if err != nil {
			s.logger.Warn("client contact update failed, keeping stored record",
				"client_id", existing.ID, "error", err)
			return existing, nil
		}
		return updated, nil
	}

	created, err := s.clients.Insert(ctx, &models.Client{
		Name:     fullName,
		Email:    email,
		Phone:    phone,
		Language: s.defaultLanguage,
		Segment:  models.SegmentNew,
		Source:   "website",
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return created, nil
}

// FindAvailableYacht returns any available yacht or nil; absence and query
// failure are both normal outcomes because the assignment is optional.
// The date is accepted but not used as a filter yet.
func (s *bookingService) FindAvailableYacht(ctx context.Context, date time.Time) *models.Yacht {
	yacht, err := s.yachts.FindFirstAvailable(ctx)
	if err != nil {
		s.logger.Warn("yacht availability lookup failed", "date", date.Format("2006-01-02"), "error", err)
		return nil
	}
	return yacht
}

// CreateBooking inserts the reservation row and then re-fetches it joined
// with its client and yacht. Only the insert can fail the operation; a failed
// read-back degrades to the bare row.
func (s *bookingService) CreateBooking(ctx context.Context, clientID uuid.UUID, yachtID *uuid.UUID,
	date time.Time, timeSlot string, amount float64, notes string) (*models.EnrichedBooking, error) {
	booking := &models.Booking{
		ID:            uuid.New(),
		Reference:     newBookingReference(),
		ClientID:      &clientID,
		YachtID:       yachtID,
		SessionDate:   date,
		SessionTime:   timeSlot,
		Amount:        amount,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		Notes:         notes,
	}

	saved, err := s.bookings.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}

	enriched, err := s.bookings.GetEnrichedByID(ctx, saved.ID)
	if err != nil {
		s.logger.Warn("booking read-back failed, returning bare row", "booking_id", saved.ID, "error", err)
		return &models.EnrichedBooking{Booking: *saved}, nil
	}
	return enriched, nil
}

// ApplyBookingEffects runs the two reconciliation writes. They are
// independent: each failure is logged and swallowed so neither can undo or
// block the committed booking.
func (s *bookingService) ApplyBookingEffects(ctx context.Context, clientID uuid.UUID,
	yachtID *uuid.UUID, amount float64, sessionDate time.Time) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		s.logger.Error("stats update skipped: client fetch failed", "client_id", clientID, "error", err)
	} else {
		// promotion threshold is checked against the count before this
		// booking is added
		segment := client.Segment
		if client.TotalBookings >= 3 {
			segment = models.SegmentVIP
		} else if segment == models.SegmentNew {
			segment = models.SegmentActive
		}

		err = s.clients.UpdateStats(ctx, clientID,
			client.TotalBookings+1, client.TotalSpent+amount, time.Now().UTC(), segment)
		if err != nil {
			s.logger.Error("client stats update failed", "client_id", clientID, "error", err)
		}
	}

	if yachtID != nil {
		if err := s.yachts.MarkBooked(ctx, *yachtID, sessionDate); err != nil {
			s.logger.Error("yacht status update failed", "yacht_id", *yachtID, "error", err)
		}
	}
}

// ComposeConfirmation builds the confirmation message for the client. It is
// only recorded in the log; transmission belongs to an external system.
func (s *bookingService) ComposeConfirmation(booking *models.EnrichedBooking, client *models.Client) models.ConfirmationMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", client.Name)
	b.WriteString("Your yacht racing experience has been booked!\n\n")
	fmt.Fprintf(&b, "Reference: %s\n", booking.Reference)
	fmt.Fprintf(&b, "Date: %s\n", booking.SessionDate.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Time: %s\n", booking.SessionTime)
	fmt.Fprintf(&b, "Total Amount: EUR %s\n", strconv.FormatFloat(booking.Amount, 'f', -1, 64))
	if booking.Yacht != nil {
		fmt.Fprintf(&b, "Yacht: %s\n", booking.Yacht.Name)
	}
	b.WriteString("\nWe look forward to seeing you on Lake Garda!\nGarda Racing Yacht Club")

	msg := models.ConfirmationMessage{
		To:      client.Email,
		Subject: "Booking Confirmation - " + booking.Reference,
		Body:    b.String(),
	}

	s.logger.Info("confirmation composed",
		"to", msg.To, "reference", booking.Reference, "amount", booking.Amount)
	return msg
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.EnrichedBooking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, models.ErrInvalidUUID
	}
	return s.bookings.GetEnrichedByID(ctx, bookingID)
}

// SetBookingStatus overwrites the status with no transition checks; any
// status may replace any other.
func (s *bookingService) SetBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return models.ErrInvalidUUID
	}
	return s.bookings.UpdateStatus(ctx, bookingID, status)
}

func newBookingReference() string {
	return "GRD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
