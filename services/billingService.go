package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/repositories"
	"SolidarityHospital/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UnknownPatient is shown for records whose patient id matches no patient.
const UnknownPatient = "Unknown"

// ReportFileName is the download name of an exported report.
const ReportFileName = "financial_report.json"

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrUnknownPeriod   = errors.New("report period must be monthly, quarterly or yearly")
)

type BillingService struct {
	invoices *repositories.InvoiceRepository
	payments *repositories.PaymentRepository
	patients *repositories.PatientRepository
	now      func() time.Time
}

func NewBillingService(invoices *repositories.InvoiceRepository, payments *repositories.PaymentRepository, patients *repositories.PatientRepository) *BillingService {
	return &BillingService{invoices: invoices, payments: payments, patients: patients, now: time.Now}
}

// CreateInvoice records an unpaid invoice in the ledger currency.
func (s *BillingService) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error) {
	if err := utils.ValidateInvoiceRequest(req); err != nil {
		return nil, err
	}
	invoice := &models.Invoice{
		ID:          uuid.NewString(),
		PatientID:   req.PatientID,
		ServiceType: req.ServiceType,
		Amount:      req.Amount,
		Currency:    models.CurrencyUSD,
		Status:      models.InvoiceUnpaid,
		DueDate:     req.DueDate,
		CreatedAt:   s.now(),
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ToggleStatus flips an invoice between paid and unpaid. Becoming paid appends one
// Online payment; becoming unpaid leaves earlier payments untouched.
func (s *BillingService) ToggleStatus(ctx context.Context, id string) (*models.Invoice, error) {
	now := s.now()
	becamePaid := false
	invoice, err := s.invoices.Modify(ctx, id, func(inv *models.Invoice) error {
		if inv.Status == models.InvoicePaid {
			inv.Status = models.InvoiceUnpaid
		} else {
			inv.Status = models.InvoicePaid
			becamePaid = true
		}
		inv.UpdatedAt = &now
		return nil
	})
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}

	if becamePaid {
		payment := &models.Payment{
			InvoiceID:     invoice.ID,
			PatientID:     invoice.PatientID,
			Amount:        invoice.Amount,
			Currency:      invoice.Currency,
			PaymentDate:   now,
			PaymentMethod: models.MethodOnline,
		}
		if err := s.payments.Append(ctx, payment); err != nil {
			log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("Invoice marked paid but payment was not recorded")
			return nil, err
		}
	}
	return invoice, nil
}

// RecordBookingPayment stores the paid invoice and the payment of an approved booking.
func (s *BillingService) RecordBookingPayment(ctx context.Context, appointment *models.Appointment, auth models.Authorization, details models.PaymentDetails) (*models.Invoice, *models.Payment, error) {
	amount, currency := utils.DefaultAmount(details.Method)
	paidAt := auth.AuthorizedAt
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	invoice := &models.Invoice{
		ID:          uuid.NewString(),
		PatientID:   appointment.PatientID,
		ServiceType: "Appointment - " + appointment.DoctorType,
		Amount:      amount,
		Currency:    currency,
		Status:      models.InvoicePaid,
		DueDate:     appointment.AppointmentDate,
		CreatedAt:   paidAt,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, nil, err
	}

	payment := &models.Payment{
		InvoiceID:     invoice.ID,
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		Amount:        amount,
		Currency:      currency,
		PaymentDate:   paidAt,
		PaymentMethod: details.Method,
	}
	if err := s.payments.Append(ctx, payment); err != nil {
		return nil, nil, err
	}
	return invoice, payment, nil
}

// DeleteInvoice removes an invoice. Its payments stay in the ledger.
func (s *BillingService) DeleteInvoice(ctx context.Context, id string) error {
	return s.invoices.Delete(ctx, id)
}

func (s *BillingService) ListInvoices(ctx context.Context) ([]models.InvoiceView, error) {
	invoices, err := s.invoices.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.patients.NamesByID(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, models.InvoiceView{Invoice: inv, PatientName: patientName(names, inv.PatientID)})
	}
	return views, nil
}

func (s *BillingService) ListPayments(ctx context.Context) ([]models.PaymentView, error) {
	payments, err := s.payments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.patients.NamesByID(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, models.PaymentView{Payment: p, PatientName: patientName(names, p.PatientID)})
	}
	return views, nil
}

func patientName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return UnknownPatient
}

// Report aggregates USD invoices created at or after the period cutoff. Invoices in
// other currencies and invoices with unreadable amounts are left out.
func (s *BillingService) Report(ctx context.Context, period string, now time.Time) (*models.Report, error) {
	if err := utils.ValidateReportPeriod(period); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
	invoices, err := s.invoices.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := utils.PeriodCutoff(period, now)
	report := &models.Report{Period: period, Since: cutoff, GeneratedAt: now}
	var revenue, outstanding int64
	for _, inv := range invoices {
		if inv.CreatedAt.Before(cutoff) {
			continue
		}
		if inv.Currency != "" && inv.Currency != models.CurrencyUSD {
			continue
		}
		cents, err := utils.ParseCents(inv.Amount)
		if err != nil {
			log.Warn().Str("invoice_id", inv.ID).Str("amount", inv.Amount).Msg("Skipping invoice with unreadable amount")
			continue
		}
		switch inv.Status {
		case models.InvoicePaid:
			revenue += cents
			report.PaidInvoices++
		case models.InvoiceUnpaid:
			outstanding += cents
			report.UnpaidInvoices++
		}
	}
	report.TotalRevenue = utils.FormatDollars(revenue)
	report.OutstandingPayments = utils.FormatDollars(outstanding)
	return report, nil
}

// ExportReport builds the downloadable artifact of a report.
func (s *BillingService) ExportReport(report *models.Report) models.ReportExport {
	return models.ReportExport{
		TotalRevenue:        report.TotalRevenue,
		OutstandingPayments: report.OutstandingPayments,
		PaidInvoices:        report.PaidInvoices,
		UnpaidInvoices:      report.UnpaidInvoices,
		GeneratedAt:         report.GeneratedAt,
	}
}
