package services

import (
	"SolidarityHospital/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoice(t *testing.T) {
	f := newFixture(t)
	invoice, err := f.billing.CreateInvoice(context.Background(), models.InvoiceRequest{
		PatientID: "p1", ServiceType: "Consultation", Amount: "50.00", DueDate: "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceUnpaid, invoice.Status)
	assert.Equal(t, models.CurrencyUSD, invoice.Currency)
	assert.Equal(t, fixedNow, invoice.CreatedAt)

	_, err = f.billing.CreateInvoice(context.Background(), models.InvoiceRequest{PatientID: "p1", ServiceType: "X", Amount: "-1", DueDate: "2025-07-01"})
	assert.Error(t, err)
}

func TestToggleStatus_TwiceRestoresAndKeepsOnePayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	invoice, err := f.billing.CreateInvoice(ctx, models.InvoiceRequest{
		PatientID: "p1", ServiceType: "Consultation", Amount: "50.00", DueDate: "2025-07-01",
	})
	require.NoError(t, err)

	paid, err := f.billing.ToggleStatus(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, paid.Status)

	unpaid, err := f.billing.ToggleStatus(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceUnpaid, unpaid.Status)

	payments, err := f.payments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.MethodOnline, payments[0].PaymentMethod)
	assert.Equal(t, "50.00", payments[0].Amount)
}

func TestToggleStatus_UnknownInvoice(t *testing.T) {
	f := newFixture(t)
	_, err := f.billing.ToggleStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestDeleteInvoice_UnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.billing.CreateInvoice(ctx, models.InvoiceRequest{PatientID: "p1", ServiceType: "X", Amount: "5", DueDate: "2025-07-01"})
	require.NoError(t, err)

	require.NoError(t, f.billing.DeleteInvoice(ctx, "missing"))
	views, err := f.billing.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestListViewsResolvePatientNames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.patients.Create(ctx, &models.Patient{ID: "p1", FirstName: "Jane", LastName: "Doe"}))

	known, err := f.billing.CreateInvoice(ctx, models.InvoiceRequest{PatientID: "p1", ServiceType: "X", Amount: "5", DueDate: "2025-07-01"})
	require.NoError(t, err)
	_, err = f.billing.CreateInvoice(ctx, models.InvoiceRequest{PatientID: "ghost", ServiceType: "X", Amount: "5", DueDate: "2025-07-01"})
	require.NoError(t, err)
	_, err = f.billing.ToggleStatus(ctx, known.ID)
	require.NoError(t, err)

	invoices, err := f.billing.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "Jane Doe", invoices[0].PatientName)
	assert.Equal(t, UnknownPatient, invoices[1].PatientName)

	payments, err := f.billing.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "Jane Doe", payments[0].PatientName)
}

func seedInvoice(t *testing.T, f *fixture, amount, currency, status string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.invoices.Create(context.Background(), &models.Invoice{
		ID:        createdAt.String() + amount + status,
		PatientID: "p1",
		Amount:    amount,
		Currency:  currency,
		Status:    status,
		CreatedAt: createdAt,
	}))
}

func TestReport_Monthly(t *testing.T) {
	f := newFixture(t)
	seedInvoice(t, f, "50.00", models.CurrencyUSD, models.InvoicePaid, fixedNow.AddDate(0, 0, -3))
	seedInvoice(t, f, "30.00", models.CurrencyUSD, models.InvoicePaid, fixedNow.AddDate(0, 0, -10))
	seedInvoice(t, f, "20.50", models.CurrencyUSD, models.InvoiceUnpaid, fixedNow.AddDate(0, 0, -1))
	seedInvoice(t, f, "999.00", models.CurrencyUSD, models.InvoicePaid, fixedNow.AddDate(0, -2, 0))
	seedInvoice(t, f, "2000", models.CurrencyXAF, models.InvoicePaid, fixedNow.AddDate(0, 0, -1))

	report, err := f.billing.Report(context.Background(), models.PeriodMonthly, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "$80.00", report.TotalRevenue)
	assert.Equal(t, "$20.50", report.OutstandingPayments)
	assert.Equal(t, 2, report.PaidInvoices)
	assert.Equal(t, 1, report.UnpaidInvoices)

	quarterly, err := f.billing.Report(context.Background(), models.PeriodQuarterly, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "$1079.00", quarterly.TotalRevenue)

	export := f.billing.ExportReport(report)
	assert.Equal(t, "$80.00", export.TotalRevenue)
	assert.Equal(t, fixedNow, export.GeneratedAt)
}

func TestReport_UnknownPeriod(t *testing.T) {
	f := newFixture(t)
	_, err := f.billing.Report(context.Background(), "weekly", fixedNow)
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}
