package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	DateOfBirth      string    `json:"dateOfBirth"`
	Gender           string    `json:"gender"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergencyContact"`
	EmergencyPhone   string    `json:"emergencyPhone"`
	MedicalHistory   string    `json:"medicalHistory"`
	CreatedAt        time.Time `json:"createdAt"`
}

// FullName returns "First Last".
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Doctor model
type Doctor struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Specialization string    `json:"specialization"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	LicenseNumber  string    `json:"licenseNumber"`
	Experience     int       `json:"experience"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (d Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// Specializations offered on the booking form.
var Specializations = []string{
	"Cardiologist",
	"Dermatologist",
	"Pediatrician",
	"General Practitioner",
	"Orthopedic Surgeon",
	"Ophthalmologist",
}
