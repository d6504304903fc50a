package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ClientSegment string

const (
	SegmentNew       ClientSegment = "new"
	SegmentActive    ClientSegment = "active"
	SegmentVIP       ClientSegment = "vip"
	SegmentCorporate ClientSegment = "corporate"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type YachtStatus string

const (
	YachtActive      YachtStatus = "active"
	YachtAvailable   YachtStatus = "available"
	YachtBooked      YachtStatus = "booked"
	YachtMaintenance YachtStatus = "maintenance"
)

var (
	ErrInvalidUUID      = errors.New("invalid uuid")
	ErrClientResolution = errors.New("could not resolve client record")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPageNotFound     = errors.New("content page not found")
	ErrInvalidWebhook   = errors.New("invalid webhook format")
)

// Client is a customer record keyed by email: at most one live row per address.
type Client struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Language      string        `json:"language"`
	Segment       ClientSegment `json:"segment"`
	TotalBookings int           `json:"total_bookings"`
	TotalSpent    float64       `json:"total_spent"`
	LastBooking   *time.Time    `json:"last_booking,omitempty"`
	Source        string        `json:"source"`
	Location      string        `json:"location,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Yacht struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Status         YachtStatus `json:"status"`
	Skipper        string      `json:"skipper,omitempty"`
	Location       string      `json:"location,omitempty"`
	NextBooking    *time.Time  `json:"next_booking,omitempty"`
	MaintenanceDue *time.Time  `json:"maintenance_due,omitempty"`
	UsageHours     float64     `json:"usage_hours"`
	LastService    *time.Time  `json:"last_service,omitempty"`
}

// Booking references its client and yacht by id only; both links are nullable
// and neither deletion cascades through this workflow.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	Reference     string        `json:"booking_reference"`
	ClientID      *uuid.UUID    `json:"client_id,omitempty"`
	YachtID       *uuid.UUID    `json:"yacht_id,omitempty"`
	SessionDate   time.Time     `json:"session_date"`
	SessionTime   string        `json:"session_time"`
	Amount        float64       `json:"amount"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// EnrichedBooking carries the joined client and yacht rows when the read-back
// succeeded; either may be nil.
type EnrichedBooking struct {
	Booking
	Client *Client `json:"client,omitempty"`
	Yacht  *Yacht  `json:"yacht,omitempty"`
}

type BookingForm struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BookingDate     string `json:"booking_date"`
	TimeSlot        string `json:"time_slot"`
	Participants    int    `json:"participants"`
	SpecialRequests string `json:"special_requests,omitempty"`
	AgreeTerms      bool   `json:"agree_terms"`
	AgreeMarketing  bool   `json:"agree_marketing"`
}

type ConfirmationMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type BookingConfirmation struct {
	Booking *EnrichedBooking    `json:"booking"`
	Message ConfirmationMessage `json:"confirmation"`
}

// ValidationError reports every violated form rule; messages are human
// readable and keep the order the rules are declared in.
type ValidationError struct {
	Messages []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ContactUpdate is a partial update: nil fields are left untouched.
type ContactUpdate struct {
	Name  *string
	Phone *string
}

func (u ContactUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil
}

// ChangeEvent is the database-change payload delivered to the realtime
// webhook: {record, schema, table, type}. Record shapes vary per table, so
// they stay raw until the table is known.
type ChangeEvent struct {
	Type      string          `json:"type"`
	Table     string          `json:"table"`
	Schema    string          `json:"schema"`
	Record    json.RawMessage `json:"record"`
	OldRecord json.RawMessage `json:"old_record"`
}

// AppEvent is the generic application-event payload: {event, payload}.
type AppEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type StorageEvent struct {
	Type   string        `json:"type"`
	Record StorageRecord `json:"record"`
}

type StorageRecord struct {
	ID       string `json:"id"`
	BucketID string `json:"bucket_id"`
	Name     string `json:"name"`
}

// BookingRecord is the bookings-row shape carried inside webhook payloads.
type BookingRecord struct {
	ID          uuid.UUID     `json:"id"`
	ClientID    *uuid.UUID    `json:"client_id"`
	YachtID     *uuid.UUID    `json:"yacht_id"`
	SessionDate string        `json:"session_date"`
	SessionTime string        `json:"session_time"`
	Amount      float64       `json:"amount"`
	Status      BookingStatus `json:"status"`
}

type ClientRecord struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type Notification struct {
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	RecipientID    *uuid.UUID `json:"recipient_id,omitempty"`
	RecipientEmail string     `json:"recipient_email,omitempty"`
	Channel        string     `json:"channel"`
	Status         string     `json:"status"`
	BookingID      *uuid.UUID `json:"booking_id,omitempty"`
}

type SyncLog struct {
	TableName  string
	Operation  string
	RecordID   string
	SyncStatus string
	SyncedAt   time.Time
}

type ErrorLog struct {
	Action       string
	ErrorMessage string
	Context      string
	Timestamp    time.Time
}

type ContentPage struct {
	ID              uuid.UUID `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	MetaDescription string    `json:"meta_description,omitempty"`
	Language        string    `json:"language"`
	Published       bool      `json:"published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ChatMessage struct {
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatReply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}
