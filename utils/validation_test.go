package utils

import (
	"SolidarityHospital/models"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func validBooking() models.BookingRequest {
	return models.BookingRequest{
		PatientName:     "Jane Doe",
		PatientEmail:    "jane@example.com",
		PatientPhone:    "612345678",
		DoctorType:      "Cardiologist",
		AppointmentDate: "2025-06-20",
		AppointmentTime: "09:30",
		Reason:          "Chest pain",
	}
}

func TestValidateBookingRequest_Valid(t *testing.T) {
	assert.NoError(t, ValidateBookingRequest(validBooking(), testNow, time.UTC))
}

func TestValidateBookingRequest_RequiredFields(t *testing.T) {
	blankers := map[string]func(*models.BookingRequest){
		"patientName":     func(r *models.BookingRequest) { r.PatientName = "" },
		"patientEmail":    func(r *models.BookingRequest) { r.PatientEmail = "   " },
		"patientPhone":    func(r *models.BookingRequest) { r.PatientPhone = "" },
		"doctorType":      func(r *models.BookingRequest) { r.DoctorType = "" },
		"appointmentDate": func(r *models.BookingRequest) { r.AppointmentDate = "" },
		"appointmentTime": func(r *models.BookingRequest) { r.AppointmentTime = "" },
		"reason":          func(r *models.BookingRequest) { r.Reason = " " },
	}
	for field, blank := range blankers {
		t.Run(field, func(t *testing.T) {
			req := validBooking()
			blank(&req)
			err := ValidateBookingRequest(req, testNow, time.UTC)
			require.Error(t, err)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, field)
		})
	}
}

func TestValidateBookingRequest_Email(t *testing.T) {
	req := validBooking()
	req.PatientEmail = "jane@example"
	assert.Error(t, ValidateBookingRequest(req, testNow, time.UTC))

	req.PatientEmail = "jane doe@example.com"
	assert.Error(t, ValidateBookingRequest(req, testNow, time.UTC))
}

func TestValidateBookingRequest_SlotMustBeFuture(t *testing.T) {
	req := validBooking()
	req.AppointmentDate = "2025-06-15"
	req.AppointmentTime = "10:00"
	assert.Error(t, ValidateBookingRequest(req, testNow, time.UTC), "slot equal to now")

	req.AppointmentTime = "09:59"
	assert.Error(t, ValidateBookingRequest(req, testNow, time.UTC), "slot before now")

	req.AppointmentTime = "10:01"
	assert.NoError(t, ValidateBookingRequest(req, testNow, time.UTC))
}

func TestValidateBookingRequest_BadSlotFormat(t *testing.T) {
	req := validBooking()
	req.AppointmentDate = "20/06/2025"
	assert.Error(t, ValidateBookingRequest(req, testNow, time.UTC))
}

func TestValidatePaymentDetails_MobileMoney(t *testing.T) {
	for _, method := range []string{models.MethodMTN, models.MethodOrange} {
		assert.NoError(t, ValidatePaymentDetails(models.PaymentDetails{Method: method, PhoneNumber: "612345678"}))
		assert.NoError(t, ValidatePaymentDetails(models.PaymentDetails{Method: method, PhoneNumber: "+237 612 345 678"}))
		assert.Error(t, ValidatePaymentDetails(models.PaymentDetails{Method: method, PhoneNumber: "512345678"}))
		assert.Error(t, ValidatePaymentDetails(models.PaymentDetails{Method: method, PhoneNumber: "61234567"}))
		assert.Error(t, ValidatePaymentDetails(models.PaymentDetails{Method: method}))
	}
}

func TestValidatePaymentDetails_Card(t *testing.T) {
	valid := models.PaymentDetails{
		Method:     models.MethodCreditCard,
		CardNumber: "1234567890123456",
		ExpiryDate: "12/25",
		CVV:        "123",
	}
	assert.NoError(t, ValidatePaymentDetails(valid))

	spaced := valid
	spaced.CardNumber = "1234 5678 9012 3456"
	assert.NoError(t, ValidatePaymentDetails(spaced))

	shortCVV := valid
	shortCVV.CVV = "12"
	assert.Error(t, ValidatePaymentDetails(shortCVV))

	badMonth := valid
	badMonth.ExpiryDate = "13/25"
	assert.Error(t, ValidatePaymentDetails(badMonth))

	shortCard := valid
	shortCard.CardNumber = "123456789012345"
	assert.Error(t, ValidatePaymentDetails(shortCard))
}

func TestValidatePaymentDetails_CashAndUnknown(t *testing.T) {
	assert.NoError(t, ValidatePaymentDetails(models.PaymentDetails{Method: models.MethodCash}))
	assert.Error(t, ValidatePaymentDetails(models.PaymentDetails{}))
	assert.Error(t, ValidatePaymentDetails(models.PaymentDetails{Method: "Bitcoin"}))
}

func TestDefaultAmount(t *testing.T) {
	amount, currency := DefaultAmount(models.MethodMTN)
	assert.Equal(t, "2000", amount)
	assert.Equal(t, models.CurrencyXAF, currency)

	amount, currency = DefaultAmount(models.MethodCreditCard)
	assert.Equal(t, "100.00", amount)
	assert.Equal(t, models.CurrencyUSD, currency)
}

func TestCardMasking(t *testing.T) {
	assert.Equal(t, "3456", CardLast4("1234 5678 9012 3456"))
	assert.Equal(t, "**** **** **** 3456", MaskCard("3456"))
}

func TestParseCents(t *testing.T) {
	cases := map[string]int64{"50": 5000, "50.5": 5050, "30.00": 3000, "0.99": 99}
	for in, want := range cases {
		got, err := ParseCents(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "abc", "-5", "1.234", "1.", ".5", "1.-5"} {
		_, err := ParseCents(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$80.00", FormatDollars(8000))
	assert.Equal(t, "$100.00", FormatAmount("100", models.CurrencyUSD))
	assert.Equal(t, "2000 FCFA", FormatAmount("2000", models.CurrencyXAF))
}

func TestValidateInvoiceRequest(t *testing.T) {
	req := models.InvoiceRequest{PatientID: "p1", ServiceType: "Consultation", Amount: "50.00", DueDate: "2025-07-01"}
	assert.NoError(t, ValidateInvoiceRequest(req))

	req.Amount = "0"
	assert.Error(t, ValidateInvoiceRequest(req))

	req.Amount = "fifty"
	assert.Error(t, ValidateInvoiceRequest(req))
}

func TestValidateRegistration(t *testing.T) {
	req := models.RegistrationRequest{
		Username: "nurse@example.com", Password: "secret1", ConfirmPassword: "secret1", Role: models.RoleUser,
	}
	assert.NoError(t, ValidateRegistration(req))

	mismatch := req
	mismatch.ConfirmPassword = "other"
	assert.ErrorIs(t, ValidateRegistration(mismatch), ErrPasswordMismatch)

	doctor := req
	doctor.Role = models.RoleDoctor
	assert.Error(t, ValidateRegistration(doctor), "doctor fields missing")

	years := 4
	doctor.FirstName, doctor.LastName = "Ada", "Nkem"
	doctor.Specialization = "Cardiologist"
	doctor.Phone = "612345678"
	doctor.LicenseNumber = "LIC-1"
	doctor.Experience = &years
	assert.NoError(t, ValidateRegistration(doctor))
}

func TestPeriodCutoff(t *testing.T) {
	assert.Equal(t, time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC), PeriodCutoff(models.PeriodMonthly, testNow))
	assert.Equal(t, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), PeriodCutoff(models.PeriodQuarterly, testNow))
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), PeriodCutoff(models.PeriodYearly, testNow))
	assert.Error(t, ValidateReportPeriod("weekly"))
}
