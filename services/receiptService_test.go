package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidAppointment() (models.Appointment, models.PaymentSummary) {
	payment := models.PaymentSummary{
		Method:      models.MethodCreditCard,
		Amount:      "100.00",
		Currency:    models.CurrencyUSD,
		PaymentDate: fixedNow,
		Reference:   "ref-1",
		CardLast4:   "3456",
	}
	appt := models.Appointment{
		ID:              "a1",
		PatientName:     "Jane <Doe>",
		PatientEmail:    "jane@example.com",
		PatientPhone:    "612345678",
		DoctorType:      "Cardiologist",
		DoctorName:      "Ada Mbarga",
		AppointmentDate: "2025-06-20",
		AppointmentTime: "09:30",
		Reason:          "Chest pain",
		Payment:         &payment,
	}
	return appt, payment
}

func TestGenerate_IsIdempotent(t *testing.T) {
	s := NewReceiptService(nil)
	appt, payment := paidAppointment()

	first := s.Generate(appt, payment)
	second := s.Generate(appt, payment)
	assert.Equal(t, first, second)
	assert.Equal(t, HospitalName, first.Hospital)
	assert.Equal(t, "$100.00", first.AmountPaid)
	assert.Equal(t, "2025-06-15", first.PaymentDate)
	assert.Equal(t, "**** **** **** 3456", first.PaymentIdentifier)
	assert.Equal(t, "SUCCESSFUL", first.Status)
}

func TestGenerate_Identifiers(t *testing.T) {
	s := NewReceiptService(nil)
	appt, payment := paidAppointment()

	payment.Method = models.MethodMTN
	payment.PhoneNumber = "612345678"
	assert.Equal(t, "612345678", s.Generate(appt, payment).PaymentIdentifier)

	payment.Method = models.MethodCash
	assert.Equal(t, "Cash", s.Generate(appt, payment).PaymentIdentifier)
}

func TestRenderHTML_EscapesFields(t *testing.T) {
	s := NewReceiptService(nil)
	appt, payment := paidAppointment()

	html, err := s.RenderHTML(s.Generate(appt, payment))
	require.NoError(t, err)
	assert.Contains(t, html, "Jane &lt;Doe&gt;")
	assert.Contains(t, html, "Payment Status: SUCCESSFUL")
	assert.Contains(t, html, "**** **** **** 3456")
}

func TestSend(t *testing.T) {
	appt, payment := paidAppointment()

	disabled := NewReceiptService(&mockMailer{})
	assert.ErrorIs(t, disabled.Send(context.Background(), disabled.Generate(appt, payment)), utils.ErrMailerDisabled)

	var to, subject string
	mailer := &mockMailer{enabled: true, SendHTMLFn: func(rcpt, subj, text, html string) error {
		to, subject = rcpt, subj
		return nil
	}}
	s := NewReceiptService(mailer)
	require.NoError(t, s.Send(context.Background(), s.Generate(appt, payment)))
	assert.Equal(t, "jane@example.com", to)
	assert.Contains(t, subject, HospitalName)
}
