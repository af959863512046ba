package models

import (
	"time"
)

// Appointment statuses
const (
	AppointmentPending     = "pending"
	AppointmentConfirmed   = "confirmed"
	AppointmentDeclined    = "declined"
	AppointmentRescheduled = "rescheduled"
)

// Appointment model. Patient contact fields are denormalized copies of the booking form.
type Appointment struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patientId,omitempty"`
	PatientName     string          `json:"patientName"`
	PatientEmail    string          `json:"patientEmail"`
	PatientPhone    string          `json:"patientPhone"`
	DoctorType      string          `json:"doctorType"`
	AppointmentDate string          `json:"appointmentDate"`
	AppointmentTime string          `json:"appointmentTime"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	DoctorID        string          `json:"doctorId,omitempty"`
	DoctorName      string          `json:"doctorName,omitempty"`
	DeclineReason   string          `json:"declineReason,omitempty"`
	Payment         *PaymentSummary `json:"payment,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// PaymentSummary is what a booked appointment keeps of its payment. Card numbers are
// reduced to their last four digits and the CVV is never stored.
type PaymentSummary struct {
	Method      string    `json:"paymentMethod"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	PaymentDate time.Time `json:"paymentDate"`
	Reference   string    `json:"reference"`
	CardLast4   string    `json:"cardLast4,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
}

// BookingRequest is the appointment form submission.
type BookingRequest struct {
	PatientID       string `json:"patientId"`
	PatientName     string `json:"patientName"`
	PatientEmail    string `json:"patientEmail"`
	PatientPhone    string `json:"patientPhone"`
	DoctorType      string `json:"doctorType"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Reason          string `json:"reason"`
}

// Booking is the outcome of a completed booking-and-payment wizard.
type Booking struct {
	Appointment   Appointment   `json:"appointment"`
	Invoice       Invoice       `json:"invoice"`
	Payment       Payment       `json:"payment"`
	Authorization Authorization `json:"authorization"`
	Receipt       Receipt       `json:"receipt"`
}
