package mocks

import (
	"context"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) Insert(ctx context.Context, client *models.Client) (*models.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateContact(ctx context.Context, id uuid.UUID, update models.ContactUpdate) (*models.Client, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateStats(ctx context.Context, id uuid.UUID, totalBookings int,
	totalSpent float64, lastBooking time.Time, segment models.ClientSegment) error {
	args := m.Called(ctx, id, totalBookings, totalSpent, lastBooking, segment)
	return args.Error(0)
}

type MockYachtRepository struct {
	mock.Mock
}

func (m *MockYachtRepository) FindFirstAvailable(ctx context.Context) (*models.Yacht, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Yacht), args.Error(1)
}

func (m *MockYachtRepository) MarkBooked(ctx context.Context, id uuid.UUID, nextBooking time.Time) error {
	args := m.Called(ctx, id, nextBooking)
	return args.Error(0)
}

func (m *MockYachtRepository) Release(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Insert(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetEnrichedByID(ctx context.Context, id uuid.UUID) (*models.EnrichedBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichedBooking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) InsertSync(ctx context.Context, entry models.SyncLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) InsertError(ctx context.Context, entry models.ErrorLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Insert(ctx context.Context, n models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetPublished(ctx context.Context, slug, language string) (*models.ContentPage, error) {
	args := m.Called(ctx, slug, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentPage), args.Error(1)
}

func (m *MockContentRepository) GetPublishedAny(ctx context.Context, slug string) (*models.ContentPage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentPage), args.Error(1)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Insert(ctx context.Context, msg models.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
