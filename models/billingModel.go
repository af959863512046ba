package models

import (
	"time"
)

// Invoice statuses
const (
	InvoiceUnpaid = "unpaid"
	InvoicePaid   = "paid"
)

// Currencies
const (
	CurrencyUSD = "USD"
	CurrencyXAF = "XAF"
)

// Payment methods
const (
	MethodCreditCard = "Credit Card"
	MethodMTN        = "MTN"
	MethodOrange     = "Orange"
	MethodCash       = "Cash"
	// MethodOnline is recorded when an invoice is marked paid from the ledger.
	MethodOnline = "Online"
)

// Report periods
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// Invoice model
type Invoice struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	ServiceType string     `json:"serviceType"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	DueDate     string     `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// InvoiceRequest is the invoice form submission.
type InvoiceRequest struct {
	PatientID   string `json:"patientId"`
	ServiceType string `json:"serviceType"`
	Amount      string `json:"amount"`
	DueDate     string `json:"dueDate"`
}

// InvoiceView is an invoice with its patient name resolved.
type InvoiceView struct {
	Invoice
	PatientName string `json:"patientName"`
}

// Payment model. Payments are append-only and have no identity of their own.
type Payment struct {
	InvoiceID     string    `json:"invoiceId"`
	AppointmentID string    `json:"appointmentId,omitempty"`
	PatientID     string    `json:"patientId"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentDate   time.Time `json:"paymentDate"`
	PaymentMethod string    `json:"paymentMethod"`
}

// PaymentView is a payment with its patient name resolved.
type PaymentView struct {
	Payment
	PatientName string `json:"patientName"`
}

// PaymentDetails is the payment form submission.
type PaymentDetails struct {
	Method      string `json:"paymentMethod"`
	Amount      string `json:"amount"`
	CardNumber  string `json:"cardNumber,omitempty"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
	CVV         string `json:"cvv,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	// Confirmed acknowledges the simulated mobile money debit prompt.
	Confirmed bool `json:"confirmed"`
}

// Authorization is the resolved outcome of a payment authorization task.
type Authorization struct {
	Approved     bool      `json:"approved"`
	Method       string    `json:"paymentMethod"`
	Reference    string    `json:"reference"`
	AuthorizedAt time.Time `json:"authorizedAt"`
	Message      string    `json:"message"`
}

// Report aggregates the ledger over a period.
type Report struct {
	Period              string    `json:"period"`
	Since               time.Time `json:"since"`
	TotalRevenue        string    `json:"totalRevenue"`
	OutstandingPayments string    `json:"outstandingPayments"`
	PaidInvoices        int       `json:"paidInvoices"`
	UnpaidInvoices      int       `json:"unpaidInvoices"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// ReportExport is the downloadable financial report artifact.
type ReportExport struct {
	TotalRevenue        string    `json:"totalRevenue"`
	OutstandingPayments string    `json:"outstandingPayments"`
	PaidInvoices        int       `json:"paidInvoices"`
	UnpaidInvoices      int       `json:"unpaidInvoices"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// Receipt is the printable view of a confirmed booking and its payment.
type Receipt struct {
	Hospital          string `json:"hospital"`
	AppointmentID     string `json:"appointmentId"`
	PatientName       string `json:"patientName"`
	PatientEmail      string `json:"patientEmail"`
	PatientPhone      string `json:"patientPhone"`
	DoctorType        string `json:"doctorType"`
	DoctorName        string `json:"doctorName"`
	AppointmentDate   string `json:"appointmentDate"`
	AppointmentTime   string `json:"appointmentTime"`
	Reason            string `json:"reason"`
	AmountPaid        string `json:"amountPaid"`
	PaymentDate       string `json:"paymentDate"`
	PaymentMethod     string `json:"paymentMethod"`
	PaymentIdentifier string `json:"paymentIdentifier"`
	Reference         string `json:"reference"`
	Status            string `json:"status"`
}
