package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/utils"
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// HospitalName is printed on every receipt.
const HospitalName = "SOLIDARITY Hospital"

const receiptStatus = "SUCCESSFUL"

// ReceiptMailer delivers rendered receipts.
type ReceiptMailer interface {
	Enabled() bool
	SendHTML(to, subject, text, html string) error
}

type ReceiptService struct {
	mailer ReceiptMailer
}

func NewReceiptService(mailer ReceiptMailer) *ReceiptService {
	return &ReceiptService{mailer: mailer}
}

// Generate builds the receipt of a paid appointment. It has no side effects.
func (s *ReceiptService) Generate(appointment models.Appointment, payment models.PaymentSummary) models.Receipt {
	return models.Receipt{
		Hospital:          HospitalName,
		AppointmentID:     appointment.ID,
		PatientName:       appointment.PatientName,
		PatientEmail:      appointment.PatientEmail,
		PatientPhone:      appointment.PatientPhone,
		DoctorType:        appointment.DoctorType,
		DoctorName:        appointment.DoctorName,
		AppointmentDate:   appointment.AppointmentDate,
		AppointmentTime:   appointment.AppointmentTime,
		Reason:            appointment.Reason,
		AmountPaid:        utils.FormatAmount(payment.Amount, payment.Currency),
		PaymentDate:       payment.PaymentDate.Format(utils.DateLayout),
		PaymentMethod:     payment.Method,
		PaymentIdentifier: paymentIdentifier(payment),
		Reference:         payment.Reference,
		Status:            receiptStatus,
	}
}

func paymentIdentifier(payment models.PaymentSummary) string {
	switch {
	case payment.Method == models.MethodCreditCard:
		return utils.MaskCard(payment.CardLast4)
	case utils.IsMobileMoney(payment.Method):
		return payment.PhoneNumber
	default:
		return payment.Method
	}
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Appointment Receipt - {{.Hospital}}</title>
	<style>
		body { font-family: Arial, sans-serif; margin: 20px; }
		.receipt-header { text-align: center; margin-bottom: 30px; }
		.receipt-details { border: 1px solid #ddd; padding: 20px; margin: 20px 0; }
		.success-message { color: green; font-weight: bold; }
	</style>
</head>
<body onload="window.print()">
	<div class="receipt-header">
		<h3>{{.Hospital}}</h3>
		<p>Appointment Receipt</p>
	</div>
	<div class="receipt-details">
		<h4>Appointment Details:</h4>
		<p><strong>Appointment ID:</strong> {{.AppointmentID}}</p>
		<p><strong>Patient Name:</strong> {{.PatientName}}</p>
		<p><strong>Email:</strong> {{.PatientEmail}}</p>
		<p><strong>Phone:</strong> {{.PatientPhone}}</p>
		<p><strong>Doctor Type:</strong> {{.DoctorType}}</p>
		{{if .DoctorName}}<p><strong>Doctor:</strong> {{.DoctorName}}</p>{{end}}
		<p><strong>Appointment Date:</strong> {{.AppointmentDate}}</p>
		<p><strong>Appointment Time:</strong> {{.AppointmentTime}}</p>
		<p><strong>Reason:</strong> {{.Reason}}</p>

		<h4>Payment Details:</h4>
		<p><strong>Amount Paid:</strong> {{.AmountPaid}}</p>
		<p><strong>Payment Date:</strong> {{.PaymentDate}}</p>
		<p><strong>Payment Method:</strong> {{.PaymentMethod}}</p>
		<p><strong>Payment Identifier:</strong> {{.PaymentIdentifier}}</p>
		{{if .Reference}}<p><strong>Reference:</strong> {{.Reference}}</p>{{end}}
		<p class="success-message">Payment Status: {{.Status}}</p>
	</div>
	<div class="receipt-header">
		<p>Thank you for choosing {{.Hospital}}!</p>
		<p>We will contact you soon to confirm your appointment.</p>
	</div>
</body>
</html>`))

// RenderHTML renders a standalone printable page. Field values are HTML-escaped.
func (s *ReceiptService) RenderHTML(receipt models.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, receipt); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}

// Send emails the receipt to the patient. It returns utils.ErrMailerDisabled when no
// SMTP relay is configured.
func (s *ReceiptService) Send(ctx context.Context, receipt models.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.mailer == nil || !s.mailer.Enabled() {
		return utils.ErrMailerDisabled
	}
	html, err := s.RenderHTML(receipt)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("%s appointment receipt %s: %s on %s at %s, %s paid by %s.",
		receipt.Hospital, receipt.AppointmentID, receipt.DoctorType,
		receipt.AppointmentDate, receipt.AppointmentTime, receipt.AmountPaid, receipt.PaymentMethod)
	return s.mailer.SendHTML(receipt.PatientEmail, "Appointment Receipt - "+receipt.Hospital, text, html)
}
