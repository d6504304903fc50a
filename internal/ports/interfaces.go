package ports

import (
	"context"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/google/uuid"
)

type ClientRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Insert(ctx context.Context, client *models.Client) (*models.Client, error)
	UpdateContact(ctx context.Context, id uuid.UUID, update models.ContactUpdate) (*models.Client, error)
	UpdateStats(ctx context.Context, id uuid.UUID, totalBookings int, totalSpent float64,
		lastBooking time.Time, segment models.ClientSegment) error
}

type YachtRepository interface {
	FindFirstAvailable(ctx context.Context) (*models.Yacht, error)
	MarkBooked(ctx context.Context, id uuid.UUID, nextBooking time.Time) error
	Release(ctx context.Context, id uuid.UUID) error
}

type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetEnrichedByID(ctx context.Context, id uuid.UUID) (*models.EnrichedBooking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error
}

type LogRepository interface {
	InsertSync(ctx context.Context, entry models.SyncLog) error
	InsertError(ctx context.Context, entry models.ErrorLog) error
}

type NotificationRepository interface {
	Insert(ctx context.Context, n models.Notification) error
}

type ContentRepository interface {
	GetPublished(ctx context.Context, slug, language string) (*models.ContentPage, error)
	GetPublishedAny(ctx context.Context, slug string) (*models.ContentPage, error)
}

type MessageRepository interface {
	Insert(ctx context.Context, msg models.ChatMessage) error
}

type BookingService interface {
	BookRaceDay(ctx context.Context, form models.BookingForm) (*models.BookingConfirmation, error)
	ResolveClient(ctx context.Context, firstName, lastName, email, phone string) (*models.Client, error)
	FindAvailableYacht(ctx context.Context, date time.Time) *models.Yacht
	CreateBooking(ctx context.Context, clientID uuid.UUID, yachtID *uuid.UUID, date time.Time,
		timeSlot string, amount float64, notes string) (*models.EnrichedBooking, error)
	ApplyBookingEffects(ctx context.Context, clientID uuid.UUID, yachtID *uuid.UUID,
		amount float64, sessionDate time.Time)
	ComposeConfirmation(booking *models.EnrichedBooking, client *models.Client) models.ConfirmationMessage
	GetBooking(ctx context.Context, id string) (*models.EnrichedBooking, error)
	SetBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
}

type ChatService interface {
	Reply(ctx context.Context, sessionID, text string) models.ChatReply
	QuickReplies() []string
	NewSessionID() string
}

type ContentService interface {
	GetPage(ctx context.Context, slug, language string) (*models.ContentPage, error)
}

type WebhookService interface {
	ProcessChange(ctx context.Context, ev models.ChangeEvent) error
	ProcessAppEvent(ctx context.Context, ev models.AppEvent) error
	ProcessStorage(ctx context.Context, ev models.StorageEvent) error
}
