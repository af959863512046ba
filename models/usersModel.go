package models

import (
	"time"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
	RoleUser   = "user"
)

// Navigation targets returned after login, registration and logout.
const (
	PageIndex           = "index.html"
	PageLogin           = "login.html"
	PageDoctorDashboard = "doctor-dashboard.html"
	PagePatients        = "patients.html"
)

// User represents a stored credential. Users are keyed by username in the users mapping.
type User struct {
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Users maps username to credential.
type Users map[string]User

// Session is the currentUser record.
type Session struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}

// BootstrapAccount is a default credential seeded into an empty users mapping.
type BootstrapAccount struct {
	Username string
	Password string
	Role     string
}

// BootstrapAccounts are seeded when no users exist.
var BootstrapAccounts = []BootstrapAccount{
	{Username: "admin@solidarityhospital.com", Password: "admin123", Role: RoleAdmin},
	{Username: "user@solidarityhospital.com", Password: "user123", Role: RoleUser},
}

// LoginRequest is the login form submission.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegistrationRequest is the registration form submission. Doctor fields are required
// only when Role is doctor.
type RegistrationRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Specialization  string `json:"specialization"`
	Phone           string `json:"phone"`
	LicenseNumber   string `json:"licenseNumber"`
	Experience      *int   `json:"experience"`
}

// AuthResult is returned by login and registration.
type AuthResult struct {
	Session     Session `json:"session"`
	AccessToken string  `json:"accessToken"`
	Redirect    string  `json:"redirect"`
}
