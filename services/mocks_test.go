package services

import (
	"SolidarityHospital/cache"
	"SolidarityHospital/models"
	"SolidarityHospital/repositories"
	"SolidarityHospital/store"
	"SolidarityHospital/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type mockGateway struct {
	AuthorizeFunc func(ctx context.Context, details models.PaymentDetails) (models.Authorization, error)
	calls         int
}

func (m *mockGateway) Authorize(ctx context.Context, details models.PaymentDetails) (models.Authorization, error) {
	m.calls++
	return m.AuthorizeFunc(ctx, details)
}

func approvingGateway() *mockGateway {
	return &mockGateway{AuthorizeFunc: func(_ context.Context, details models.PaymentDetails) (models.Authorization, error) {
		return models.Authorization{Approved: true, Method: details.Method, Reference: "ref-1", AuthorizedAt: fixedNow, Message: "Payment successful"}, nil
	}}
}

type mockMailer struct {
	enabled     bool
	SendHTMLFn  func(to, subject, text, html string) error
	SendResetFn func(email, code string) error
}

func (m *mockMailer) Enabled() bool { return m.enabled }

func (m *mockMailer) SendHTML(to, subject, text, html string) error {
	if m.SendHTMLFn == nil {
		return nil
	}
	return m.SendHTMLFn(to, subject, text, html)
}

func (m *mockMailer) SendResetCode(email, code string) error {
	if m.SendResetFn == nil {
		return nil
	}
	return m.SendResetFn(email, code)
}

type fixture struct {
	store        store.Store
	patients     *repositories.PatientRepository
	doctorRepo   *repositories.DoctorRepository
	appointments *repositories.AppointmentRepository
	invoices     *repositories.InvoiceRepository
	payments     *repositories.PaymentRepository
	doctors      *DoctorService
	billing      *BillingService
	receipts     *ReceiptService
	gateway      *mockGateway
	mailer       *mockMailer
	booking      *AppointmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	f := &fixture{
		store:        s,
		patients:     repositories.NewPatientRepository(s),
		doctorRepo:   repositories.NewDoctorRepository(s),
		appointments: repositories.NewAppointmentRepository(s),
		invoices:     repositories.NewInvoiceRepository(s),
		payments:     repositories.NewPaymentRepository(s),
		gateway:      approvingGateway(),
		mailer:       &mockMailer{},
	}
	f.doctors = NewDoctorService(f.doctorRepo)
	f.doctors.now = func() time.Time { return fixedNow }
	f.billing = NewBillingService(f.invoices, f.payments, f.patients)
	f.billing.now = func() time.Time { return fixedNow }
	f.receipts = NewReceiptService(f.mailer)
	f.booking = NewAppointmentService(f.appointments, f.doctors, f.billing, f.gateway, f.receipts).
		WithClock(func() time.Time { return fixedNow }, time.UTC)
	return f
}

func (f *fixture) addDoctor(t *testing.T, first, specialization string) models.Doctor {
	t.Helper()
	doctor := models.Doctor{
		FirstName:      first,
		LastName:       "Mbarga",
		Specialization: specialization,
		Phone:          "612345678",
		Email:          first + "@solidarityhospital.com",
		LicenseNumber:  "LIC-" + first,
		Experience:     5,
	}
	require.NoError(t, f.doctors.Create(context.Background(), &doctor))
	return doctor
}

func (f *fixture) appointmentCount(t *testing.T) int {
	t.Helper()
	all, err := f.appointments.GetAll(context.Background())
	require.NoError(t, err)
	return len(all)
}

func newAuthService(t *testing.T, mailer *mockMailer) (*AuthService, *fixture) {
	t.Helper()
	f := newFixture(t)
	tokens, err := utils.NewTokenIssuer("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	auth := NewAuthService(
		repositories.NewUserRepository(f.store),
		f.doctors,
		tokens,
		utils.NewResetCodes(cache.NewMemoryCache()),
		mailer,
	)
	auth.now = func() time.Time { return fixedNow }
	return auth, f
}
