package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/mocks"
	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/gardaracing/charter-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	booking       *mocks.MockBookingService
	clients       *mocks.MockClientRepository
	yachts        *mocks.MockYachtRepository
	notifications *mocks.MockNotificationRepository
	logs          *mocks.MockLogRepository
	svc           ports.WebhookService
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		booking:       new(mocks.MockBookingService),
		clients:       new(mocks.MockClientRepository),
		yachts:        new(mocks.MockYachtRepository),
		notifications: new(mocks.MockNotificationRepository),
		logs:          new(mocks.MockLogRepository),
	}
	f.svc = service.NewWebhookService(f.booking, f.clients, f.yachts,
		f.notifications, f.logs, discardLogger())
	return f
}

func (f *webhookFixture) expectAudit() {
	f.logs.On("InsertSync", mock.Anything, mock.AnythingOfType("models.SyncLog")).Return(nil)
}

func TestProcessChange(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	yachtID := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	bookingID := uuid.MustParse("00000000-0000-0000-0000-000000000003")

	t.Run("booking insert replays the post-booking effects", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		record := fmt.Sprintf(`{"id":%q,"client_id":%q,"yacht_id":%q,"session_date":"2026-09-01","amount":398}`,
			bookingID, clientID, yachtID)
		sessionDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		f.booking.On("ApplyBookingEffects", ctx, clientID, &yachtID, 398.0, sessionDate).Return()

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "INSERT", Table: "bookings", Schema: "public",
			Record: json.RawMessage(record),
		})
		require.NoError(t, err)
		f.booking.AssertExpectations(t)
	})

	t.Run("booking insert without a client still books the yacht", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		record := fmt.Sprintf(`{"id":%q,"yacht_id":%q,"session_date":"2026-09-01","amount":199}`,
			bookingID, yachtID)
		f.yachts.On("MarkBooked", ctx, yachtID, mock.AnythingOfType("time.Time")).Return(nil)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "INSERT", Table: "bookings", Record: json.RawMessage(record),
		})
		require.NoError(t, err)
		f.yachts.AssertExpectations(t)
		f.booking.AssertNotCalled(t, "ApplyBookingEffects",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancellation releases the yacht", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		record := fmt.Sprintf(`{"id":%q,"yacht_id":%q,"status":"cancelled"}`, bookingID, yachtID)
		old := fmt.Sprintf(`{"id":%q,"yacht_id":%q,"status":"confirmed"}`, bookingID, yachtID)
		f.yachts.On("Release", ctx, yachtID).Return(nil)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "UPDATE", Table: "bookings",
			Record: json.RawMessage(record), OldRecord: json.RawMessage(old),
		})
		require.NoError(t, err)
		f.yachts.AssertExpectations(t)
	})

	t.Run("confirmation notifies the client", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		record := fmt.Sprintf(`{"id":%q,"client_id":%q,"session_date":"2026-09-01","session_time":"09:00","status":"confirmed"}`,
			bookingID, clientID)
		old := fmt.Sprintf(`{"id":%q,"client_id":%q,"status":"pending"}`, bookingID, clientID)

		f.clients.On("GetByID", ctx, clientID).
			Return(&models.Client{ID: clientID, Email: "jane@example.com"}, nil)
		f.notifications.On("Insert", ctx, mock.MatchedBy(func(n models.Notification) bool {
			return n.Type == "booking_confirmed" && n.RecipientEmail == "jane@example.com" &&
				n.BookingID != nil && *n.BookingID == bookingID
		})).Return(nil)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "UPDATE", Table: "bookings",
			Record: json.RawMessage(record), OldRecord: json.RawMessage(old),
		})
		require.NoError(t, err)
		f.notifications.AssertExpectations(t)
	})

	t.Run("an unchanged status is a no-op", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		record := fmt.Sprintf(`{"id":%q,"client_id":%q,"status":"confirmed"}`, bookingID, clientID)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "UPDATE", Table: "bookings",
			Record: json.RawMessage(record), OldRecord: json.RawMessage(record),
		})
		require.NoError(t, err)
		f.notifications.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("new client gets a welcome notification", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		record := fmt.Sprintf(`{"id":%q,"email":"jane@example.com"}`, clientID)
		f.notifications.On("Insert", ctx, mock.MatchedBy(func(n models.Notification) bool {
			return n.Type == "welcome" && n.RecipientEmail == "jane@example.com" &&
				n.RecipientID != nil && *n.RecipientID == clientID
		})).Return(nil)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "INSERT", Table: "clients", Record: json.RawMessage(record),
		})
		require.NoError(t, err)
		f.notifications.AssertExpectations(t)
	})

	t.Run("unhandled tables are audited and ignored", func(t *testing.T) {
		f := newWebhookFixture()
		f.logs.On("InsertSync", ctx, mock.MatchedBy(func(entry models.SyncLog) bool {
			return entry.TableName == "payments" && entry.Operation == "DELETE"
		})).Return(nil)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "DELETE", Table: "payments", Record: json.RawMessage(`{"id":"p1"}`),
		})
		require.NoError(t, err)
		f.logs.AssertExpectations(t)
	})

	t.Run("audit failure fails the webhook and is error-logged", func(t *testing.T) {
		f := newWebhookFixture()
		f.logs.On("InsertSync", ctx, mock.Anything).Return(assert.AnError)
		f.logs.On("InsertError", ctx, mock.MatchedBy(func(entry models.ErrorLog) bool {
			return entry.Action == "process_realtime_webhook"
		})).Return(nil)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "INSERT", Table: "bookings", Record: json.RawMessage(`{}`),
		})
		assert.Error(t, err)
		f.logs.AssertExpectations(t)
	})

	t.Run("a malformed record fails and is error-logged", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()
		f.logs.On("InsertError", ctx, mock.AnythingOfType("models.ErrorLog")).Return(nil)

		err := f.svc.ProcessChange(ctx, models.ChangeEvent{
			Type: "INSERT", Table: "bookings", Record: json.RawMessage(`"not an object"`),
		})
		assert.Error(t, err)
		f.logs.AssertExpectations(t)
	})
}

func TestProcessAppEvent(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	bookingID := uuid.MustParse("00000000-0000-0000-0000-000000000003")

	t.Run("rejects an empty envelope before any store call", func(t *testing.T) {
		f := newWebhookFixture()

		err := f.svc.ProcessAppEvent(ctx, models.AppEvent{})
		assert.ErrorIs(t, err, models.ErrInvalidWebhook)

		err = f.svc.ProcessAppEvent(ctx, models.AppEvent{Event: "booking_created"})
		assert.ErrorIs(t, err, models.ErrInvalidWebhook)

		f.logs.AssertNotCalled(t, "InsertSync", mock.Anything, mock.Anything)
		f.logs.AssertNotCalled(t, "InsertError", mock.Anything, mock.Anything)
	})

	t.Run("booking_created notifies the client", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		payload := fmt.Sprintf(`{"id":%q,"client_id":%q}`, bookingID, clientID)
		f.clients.On("GetByID", ctx, clientID).
			Return(&models.Client{ID: clientID, Name: "Jane Doe", Email: "jane@example.com"}, nil)
		f.notifications.On("Insert", ctx, mock.MatchedBy(func(n models.Notification) bool {
			return n.Type == "booking_created" && n.RecipientEmail == "jane@example.com"
		})).Return(nil)

		err := f.svc.ProcessAppEvent(ctx, models.AppEvent{
			Event: "booking_created", Payload: json.RawMessage(payload),
		})
		require.NoError(t, err)
		f.notifications.AssertExpectations(t)
	})

	t.Run("booking_updated announces the new status", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		payload := fmt.Sprintf(`{"record":{"id":%q,"client_id":%q,"status":"cancelled"},"old_record":{"id":%q,"status":"confirmed"}}`,
			bookingID, clientID, bookingID)
		f.clients.On("GetByID", ctx, clientID).
			Return(&models.Client{ID: clientID, Email: "jane@example.com"}, nil)
		f.notifications.On("Insert", ctx, mock.MatchedBy(func(n models.Notification) bool {
			return n.Type == "booking_status_changed" && n.Title == "Booking Cancelled"
		})).Return(nil)

		err := f.svc.ProcessAppEvent(ctx, models.AppEvent{
			Event: "booking_updated", Payload: json.RawMessage(payload),
		})
		require.NoError(t, err)
		f.notifications.AssertExpectations(t)
	})

	t.Run("client_created sends the welcome", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		payload := fmt.Sprintf(`{"id":%q,"email":"jane@example.com"}`, clientID)
		f.notifications.On("Insert", ctx, mock.MatchedBy(func(n models.Notification) bool {
			return n.Type == "welcome"
		})).Return(nil)

		err := f.svc.ProcessAppEvent(ctx, models.AppEvent{
			Event: "client_created", Payload: json.RawMessage(payload),
		})
		require.NoError(t, err)
		f.notifications.AssertExpectations(t)
	})

	t.Run("unknown events are audited and accepted", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		err := f.svc.ProcessAppEvent(ctx, models.AppEvent{
			Event: "payment_settled", Payload: json.RawMessage(`{"id":"x"}`),
		})
		require.NoError(t, err)
		f.notifications.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("a notification failure does not fail the event", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		payload := fmt.Sprintf(`{"id":%q,"client_id":%q}`, bookingID, clientID)
		f.clients.On("GetByID", ctx, clientID).
			Return(&models.Client{ID: clientID, Email: "jane@example.com"}, nil)
		f.notifications.On("Insert", ctx, mock.Anything).Return(assert.AnError)

		err := f.svc.ProcessAppEvent(ctx, models.AppEvent{
			Event: "booking_created", Payload: json.RawMessage(payload),
		})
		assert.NoError(t, err)
	})
}

func TestProcessStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("booking document upload raises an internal notification", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		f.notifications.On("Insert", ctx, mock.MatchedBy(func(n models.Notification) bool {
			return n.Type == "file_uploaded" && n.Channel == "internal"
		})).Return(nil)

		err := f.svc.ProcessStorage(ctx, models.StorageEvent{
			Type: "INSERT",
			Record: models.StorageRecord{
				ID: "f1", BucketID: "booking-documents", Name: "contract.pdf",
			},
		})
		require.NoError(t, err)
		f.notifications.AssertExpectations(t)
	})

	t.Run("uploads to other buckets are only audited", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectAudit()

		err := f.svc.ProcessStorage(ctx, models.StorageEvent{
			Type:   "INSERT",
			Record: models.StorageRecord{ID: "f2", BucketID: "avatars", Name: "me.png"},
		})
		require.NoError(t, err)
		f.notifications.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("deletes get a second audit entry", func(t *testing.T) {
		f := newWebhookFixture()
		f.logs.On("InsertSync", ctx, mock.MatchedBy(func(entry models.SyncLog) bool {
			return entry.TableName == "storage" && entry.Operation == "DELETE"
		})).Return(nil).Once()
		f.logs.On("InsertSync", ctx, mock.MatchedBy(func(entry models.SyncLog) bool {
			return entry.Operation == "file_deleted" && entry.RecordID == "f3"
		})).Return(nil).Once()

		err := f.svc.ProcessStorage(ctx, models.StorageEvent{
			Type:   "DELETE",
			Record: models.StorageRecord{ID: "f3", BucketID: "booking-documents"},
		})
		require.NoError(t, err)
		f.logs.AssertExpectations(t)
	})
}
