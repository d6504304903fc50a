package validator

import (
	"regexp"
	"strings"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/go-playground/validator/v10"
)

const (
	MinParticipants = 1
	MaxParticipants = 8
)

// phonePattern is the loose international shape: optional +, no leading zero,
// up to 16 digits once spaces are stripped.
var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)

type FormValidator struct {
	validate    *validator.Validate
	strictPhone bool
}

// NewFormValidator builds the booking-form validator. Phone format checking
// is optional; when strictPhone is false only presence is required.
func NewFormValidator(strictPhone bool) *FormValidator {
	return &FormValidator{
		validate:    validator.New(),
		strictPhone: strictPhone,
	}
}

// Validate checks every rule independently and returns one message per
// violation, in rule order. An empty slice means the form is valid. The
// function performs no I/O.
func (fv *FormValidator) Validate(form models.BookingForm) []string {
	var errs []string

	if strings.TrimSpace(form.FirstName) == "" {
		errs = append(errs, "First name is required")
	}
	if strings.TrimSpace(form.LastName) == "" {
		errs = append(errs, "Last name is required")
	}
	if strings.TrimSpace(form.Email) == "" {
		errs = append(errs, "Email is required")
	}
	if strings.TrimSpace(form.Phone) == "" {
		errs = append(errs, "Phone number is required")
	}
	if form.BookingDate == "" {
		errs = append(errs, "Booking date is required")
	}
	if form.TimeSlot == "" {
		errs = append(errs, "Time slot is required")
	}
	if form.Participants < MinParticipants || form.Participants > MaxParticipants {
		errs = append(errs, "Participants must be between 1 and 8")
	}
	if !form.AgreeTerms {
		errs = append(errs, "You must agree to the terms and conditions")
	}

	if form.Email != "" && fv.validate.Var(form.Email, "email") != nil {
		errs = append(errs, "Please enter a valid email address")
	}

	if fv.strictPhone && form.Phone != "" {
		compact := strings.ReplaceAll(form.Phone, " ", "")
		if !phonePattern.MatchString(compact) {
			errs = append(errs, "Please enter a valid phone number")
		}
	}

	if form.BookingDate != "" {
		selected, err := time.Parse("2006-01-02", form.BookingDate)
		if err != nil {
			errs = append(errs, "Please enter a valid booking date")
		} else if selected.Before(todayStart()) {
			errs = append(errs, "Booking date must be in the future")
		}
	}

	return errs
}

// todayStart zeroes the time of day before the date comparison, so a booking
// for the current calendar day is still accepted.
func todayStart() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
