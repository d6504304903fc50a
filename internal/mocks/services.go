package mocks

import (
	"context"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) BookRaceDay(ctx context.Context, form models.BookingForm) (*models.BookingConfirmation, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingConfirmation), args.Error(1)
}

func (m *MockBookingService) ResolveClient(ctx context.Context, firstName, lastName, email, phone string) (*models.Client, error) {
	args := m.Called(ctx, firstName, lastName, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockBookingService) FindAvailableYacht(ctx context.Context, date time.Time) *models.Yacht {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Yacht)
}

func (m *MockBookingService) CreateBooking(ctx context.Context, clientID uuid.UUID, yachtID *uuid.UUID,
	date time.Time, timeSlot string, amount float64, notes string) (*models.EnrichedBooking, error) {
	args := m.Called(ctx, clientID, yachtID, date, timeSlot, amount, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichedBooking), args.Error(1)
}

func (m *MockBookingService) ApplyBookingEffects(ctx context.Context, clientID uuid.UUID,
	yachtID *uuid.UUID, amount float64, sessionDate time.Time) {
	m.Called(ctx, clientID, yachtID, amount, sessionDate)
}

func (m *MockBookingService) ComposeConfirmation(booking *models.EnrichedBooking, client *models.Client) models.ConfirmationMessage {
	args := m.Called(booking, client)
	return args.Get(0).(models.ConfirmationMessage)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*models.EnrichedBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichedBooking), args.Error(1)
}

func (m *MockBookingService) SetBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Reply(ctx context.Context, sessionID, text string) models.ChatReply {
	args := m.Called(ctx, sessionID, text)
	return args.Get(0).(models.ChatReply)
}

func (m *MockChatService) QuickReplies() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockChatService) NewSessionID() string {
	args := m.Called()
	return args.String(0)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) GetPage(ctx context.Context, slug, language string) (*models.ContentPage, error) {
	args := m.Called(ctx, slug, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentPage), args.Error(1)
}

type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) ProcessChange(ctx context.Context, ev models.ChangeEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockWebhookService) ProcessAppEvent(ctx context.Context, ev models.AppEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockWebhookService) ProcessStorage(ctx context.Context, ev models.StorageEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
