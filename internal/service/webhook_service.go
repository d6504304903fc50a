package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/google/uuid"
)

// webhookService reacts to database change events, application events and
// file-storage events. Every receipt is audited in sync_logs; processing
// failures land in error_logs. Fan-out work inside a handler is best effort,
// mirroring the booking workflow's reconciliation contract.
type webhookService struct {
	booking       ports.BookingService
	clients       ports.ClientRepository
	yachts        ports.YachtRepository
	notifications ports.NotificationRepository
	logs          ports.LogRepository
	logger        *slog.Logger
}

func NewWebhookService(booking ports.BookingService, clients ports.ClientRepository,
	yachts ports.YachtRepository, notifications ports.NotificationRepository,
	logs ports.LogRepository, logger *slog.Logger) *webhookService {
	return &webhookService{
		booking:       booking,
		clients:       clients,
		yachts:        yachts,
		notifications: notifications,
		logs:          logs,
		logger:        logger,
	}
}

const welcomeMessage = "Thank you for joining Garda Racing Yacht Club. " +
	"We look forward to providing you with unforgettable sailing experiences."

func (s *webhookService) ProcessChange(ctx context.Context, ev models.ChangeEvent) error {
	if err := s.processChange(ctx, ev); err != nil {
		s.recordFailure(ctx, "process_realtime_webhook", err)
		return err
	}
	return nil
}

func (s *webhookService) ProcessAppEvent(ctx context.Context, ev models.AppEvent) error {
	if ev.Event == "" || len(ev.Payload) == 0 {
		return models.ErrInvalidWebhook
	}
	if err := s.processAppEvent(ctx, ev); err != nil {
		s.recordFailure(ctx, "process_webhook", err)
		return err
	}
	return nil
}

func (s *webhookService) ProcessStorage(ctx context.Context, ev models.StorageEvent) error {
	if err := s.processStorage(ctx, ev); err != nil {
		s.recordFailure(ctx, "process_storage_webhook", err)
		return err
	}
	return nil
}

func (s *webhookService) processChange(ctx context.Context, ev models.ChangeEvent) error {
	table := ev.Table
	if table == "" {
		table = "unknown"
	}
	if err := s.audit(ctx, table, ev.Type, recordID(ev.Record)); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}

	switch ev.Table {
	case "bookings":
		switch ev.Type {
		case "INSERT":
			return s.handleNewBooking(ctx, ev.Record)
		case "UPDATE":
			return s.handleBookingUpdate(ctx, ev.Record, ev.OldRecord)
		}
	case "clients":
		if ev.Type == "INSERT" {
			return s.handleNewClient(ctx, ev.Record)
		}
	}
	return nil
}

// handleNewBooking applies the post-booking effects for rows inserted
// elsewhere. Client and yacht branches are independent, as in the booking
// workflow itself.
func (s *webhookService) handleNewBooking(ctx context.Context, raw json.RawMessage) error {
	var rec models.BookingRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decoding booking record: %w", err)
	}

	sessionDate := parseSessionDate(rec.SessionDate)

	if rec.ClientID != nil {
		s.booking.ApplyBookingEffects(ctx, *rec.ClientID, rec.YachtID, rec.Amount, sessionDate)
	} else if rec.YachtID != nil {
		if err := s.yachts.MarkBooked(ctx, *rec.YachtID, sessionDate); err != nil {
			s.logger.Error("yacht status update failed", "yacht_id", *rec.YachtID, "error", err)
		}
	}
	return nil
}

func (s *webhookService) handleBookingUpdate(ctx context.Context, raw, oldRaw json.RawMessage) error {
	var rec, old models.BookingRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decoding booking record: %w", err)
	}
	if err := json.Unmarshal(oldRaw, &old); err != nil {
		return fmt.Errorf("decoding old booking record: %w", err)
	}
	if rec.Status == old.Status {
		return nil
	}

	// a cancelled booking frees its yacht again
	if rec.Status == models.StatusCancelled && rec.YachtID != nil {
		if err := s.yachts.Release(ctx, *rec.YachtID); err != nil {
			s.logger.Error("yacht release failed", "yacht_id", *rec.YachtID, "error", err)
		}
	}

	if rec.Status == models.StatusConfirmed && rec.ClientID != nil {
		client, err := s.clients.GetByID(ctx, *rec.ClientID)
		if err != nil {
			s.logger.Error("confirmation notification skipped: client fetch failed",
				"client_id", *rec.ClientID, "error", err)
			return nil
		}
		n := models.Notification{
			Type:  "booking_confirmed",
			Title: "Booking Confirmed",
			Message: fmt.Sprintf("Your booking for %s at %s has been confirmed.",
				rec.SessionDate, rec.SessionTime),
			RecipientID:    rec.ClientID,
			RecipientEmail: client.Email,
			Channel:        "email",
			Status:         "pending",
			BookingID:      &rec.ID,
		}
		if err := s.notifications.Insert(ctx, n); err != nil {
			s.logger.Error("confirmation notification insert failed", "booking_id", rec.ID, "error", err)
		}
	}
	return nil
}

func (s *webhookService) handleNewClient(ctx context.Context, raw json.RawMessage) error {
	var rec models.ClientRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decoding client record: %w", err)
	}
	s.welcome(ctx, rec.ID, rec.Email)
	return nil
}

func (s *webhookService) processAppEvent(ctx context.Context, ev models.AppEvent) error {
	if err := s.audit(ctx, "external", "webhook_received", recordID(ev.Payload)); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}

	switch ev.Event {
	case "booking_created":
		var rec models.BookingRecord
		if err := json.Unmarshal(ev.Payload, &rec); err != nil {
			return fmt.Errorf("decoding booking payload: %w", err)
		}
		if rec.ClientID == nil {
			return nil
		}
		client, err := s.clients.GetByID(ctx, *rec.ClientID)
		if err != nil {
			s.logger.Error("booking notification skipped: client fetch failed",
				"client_id", *rec.ClientID, "error", err)
			return nil
		}
		n := models.Notification{
			Type:           "booking_created",
			Title:          "New Booking Created",
			Message:        fmt.Sprintf("A new booking has been created for %s", client.Name),
			RecipientID:    rec.ClientID,
			RecipientEmail: client.Email,
			Channel:        "email",
			Status:         "pending",
			BookingID:      &rec.ID,
		}
		if err := s.notifications.Insert(ctx, n); err != nil {
			s.logger.Error("booking notification insert failed", "booking_id", rec.ID, "error", err)
		}

	case "booking_updated":
		var payload struct {
			Record    models.BookingRecord `json:"record"`
			OldRecord models.BookingRecord `json:"old_record"`
		}
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return fmt.Errorf("decoding booking update payload: %w", err)
		}
		rec, old := payload.Record, payload.OldRecord
		if rec.Status == old.Status || rec.ClientID == nil {
			return nil
		}
		client, err := s.clients.GetByID(ctx, *rec.ClientID)
		if err != nil {
			s.logger.Error("status notification skipped: client fetch failed",
				"client_id", *rec.ClientID, "error", err)
			return nil
		}
		n := models.Notification{
			Type:  "booking_status_changed",
			Title: "Booking " + titleCase(string(rec.Status)),
			Message: fmt.Sprintf("Your booking for %s has been %s.",
				rec.SessionDate, rec.Status),
			RecipientID:    rec.ClientID,
			RecipientEmail: client.Email,
			Channel:        "email",
			Status:         "pending",
			BookingID:      &rec.ID,
		}
		if err := s.notifications.Insert(ctx, n); err != nil {
			s.logger.Error("status notification insert failed", "booking_id", rec.ID, "error", err)
		}

	case "client_created":
		var rec models.ClientRecord
		if err := json.Unmarshal(ev.Payload, &rec); err != nil {
			return fmt.Errorf("decoding client payload: %w", err)
		}
		s.welcome(ctx, rec.ID, rec.Email)

	default:
		s.logger.Info("no handler for event type", "event", ev.Event)
	}
	return nil
}

func (s *webhookService) processStorage(ctx context.Context, ev models.StorageEvent) error {
	if err := s.audit(ctx, "storage", ev.Type, ev.Record.ID); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}

	switch ev.Type {
	case "INSERT":
		if ev.Record.BucketID != "booking-documents" {
			return nil
		}
		n := models.Notification{
			Type:  "file_uploaded",
			Title: "New Document Uploaded",
			Message: fmt.Sprintf("A new document %q has been uploaded to the booking-documents bucket.",
				ev.Record.Name),
			Channel: "internal",
			Status:  "pending",
		}
		if err := s.notifications.Insert(ctx, n); err != nil {
			s.logger.Error("file upload notification insert failed", "file", ev.Record.Name, "error", err)
		}
	case "UPDATE":
		if err := s.audit(ctx, "storage", "file_updated", ev.Record.ID); err != nil {
			s.logger.Error("file update audit failed", "file", ev.Record.ID, "error", err)
		}
	case "DELETE":
		if err := s.audit(ctx, "storage", "file_deleted", ev.Record.ID); err != nil {
			s.logger.Error("file delete audit failed", "file", ev.Record.ID, "error", err)
		}
	default:
		s.logger.Info("no handler for storage event type", "type", ev.Type)
	}
	return nil
}

func (s *webhookService) welcome(ctx context.Context, clientID uuid.UUID, email string) {
	n := models.Notification{
		Type:           "welcome",
		Title:          "Welcome to Garda Racing Yacht Club",
		Message:        welcomeMessage,
		RecipientEmail: email,
		Channel:        "email",
		Status:         "pending",
	}
	if clientID != uuid.Nil {
		n.RecipientID = &clientID
	}
	if err := s.notifications.Insert(ctx, n); err != nil {
		s.logger.Error("welcome notification insert failed", "client_id", clientID, "error", err)
	}
}

func (s *webhookService) audit(ctx context.Context, table, operation, recordID string) error {
	return s.logs.InsertSync(ctx, models.SyncLog{
		TableName:  table,
		Operation:  operation,
		RecordID:   recordID,
		SyncStatus: "success",
		SyncedAt:   time.Now().UTC(),
	})
}

func (s *webhookService) recordFailure(ctx context.Context, action string, cause error) {
	err := s.logs.InsertError(ctx, models.ErrorLog{
		Action:       action,
		ErrorMessage: cause.Error(),
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("error log insert failed", "action", action, "error", err)
	}
}

func recordID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &probe) != nil {
		return ""
	}
	return probe.ID
}

// parseSessionDate tolerates both bare dates and full timestamps.
func parseSessionDate(v string) time.Time {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	return time.Time{}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
