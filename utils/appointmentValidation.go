package utils

import (
	"SolidarityHospital/models"
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	slotLayout     = DateLayout + " " + TimeLayout
	maxReasonChars = 1000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrSlotNotInFuture is reported for appointment slots at or before the current time.
var ErrSlotNotInFuture = errors.New("appointment date and time must be in the future")

// ParseSlot parses an appointment date (YYYY-MM-DD) and time (HH:MM) in loc.
func ParseSlot(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(slotLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
}

// ValidateSlot checks that date and time form a slot strictly later than now.
func ValidateSlot(date, clock string, now time.Time, loc *time.Location) error {
	slot, err := ParseSlot(date, clock, loc)
	if err != nil {
		return validation.Errors{"appointmentDate": validation.NewError("validation_slot_format", "must be a valid date and time")}
	}
	if !slot.After(now) {
		return validation.Errors{"appointmentDate": validation.NewError("validation_slot_future", ErrSlotNotInFuture.Error())}
	}
	return nil
}

// ValidateBookingRequest checks the appointment form. Every field is required after
// trimming, the email must look like an address and the slot must be in the future.
func ValidateBookingRequest(req models.BookingRequest, now time.Time, loc *time.Location) error {
	trimBookingRequest(&req)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.PatientName, validation.Required),
		validation.Field(&req.PatientEmail, validation.Required, validation.Match(emailPattern).Error("must be a valid email address")),
		validation.Field(&req.PatientPhone, validation.Required),
		validation.Field(&req.DoctorType, validation.Required),
		validation.Field(&req.AppointmentDate, validation.Required),
		validation.Field(&req.AppointmentTime, validation.Required),
		validation.Field(&req.Reason, validation.Required, validation.Length(0, maxReasonChars)),
	)
	if err != nil {
		return err
	}
	return ValidateSlot(req.AppointmentDate, req.AppointmentTime, now, loc)
}

func trimBookingRequest(req *models.BookingRequest) {
	req.PatientID = strings.TrimSpace(req.PatientID)
	req.PatientName = strings.TrimSpace(req.PatientName)
	req.PatientEmail = strings.TrimSpace(req.PatientEmail)
	req.PatientPhone = strings.TrimSpace(req.PatientPhone)
	req.DoctorType = strings.TrimSpace(req.DoctorType)
	req.AppointmentDate = strings.TrimSpace(req.AppointmentDate)
	req.AppointmentTime = strings.TrimSpace(req.AppointmentTime)
	req.Reason = strings.TrimSpace(req.Reason)
}

// NormalizeBookingRequest returns req with surrounding whitespace removed from every field.
func NormalizeBookingRequest(req models.BookingRequest) models.BookingRequest {
	trimBookingRequest(&req)
	return req
}
