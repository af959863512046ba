package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/repositories"
	"SolidarityHospital/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrReceiptUnavailable  = errors.New("appointment has no payment to print a receipt for")
)

// ConfirmationRequiredError carries the prompt a mobile money payer must accept. It
// matches ErrConfirmationRequired with errors.Is.
type ConfirmationRequiredError struct {
	Prompt string
}

func (e *ConfirmationRequiredError) Error() string {
	return ErrConfirmationRequired.Error()
}

func (e *ConfirmationRequiredError) Is(target error) bool {
	return target == ErrConfirmationRequired
}

type AppointmentService struct {
	appointments *repositories.AppointmentRepository
	doctors      *DoctorService
	billing      *BillingService
	gateway      PaymentGateway
	receipts     *ReceiptService
	now          func() time.Time
	loc          *time.Location
}

func NewAppointmentService(
	appointments *repositories.AppointmentRepository,
	doctors *DoctorService,
	billing *BillingService,
	gateway PaymentGateway,
	receipts *ReceiptService,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		doctors:      doctors,
		billing:      billing,
		gateway:      gateway,
		receipts:     receipts,
		now:          time.Now,
		loc:          time.Local,
	}
}

// WithClock sets the clock and the location appointment slots are read in.
func (s *AppointmentService) WithClock(now func() time.Time, loc *time.Location) *AppointmentService {
	s.now = now
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Validate checks a booking form without touching any collection.
func (s *AppointmentService) Validate(req models.BookingRequest) error {
	return utils.ValidateBookingRequest(req, s.now(), s.loc)
}

// Stage validates the form and assigns a doctor. The returned pending appointment is
// not persisted.
func (s *AppointmentService) Stage(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	req = utils.NormalizeBookingRequest(req)

	doctor, err := s.doctors.Assign(ctx, req.DoctorType)
	if err != nil {
		return nil, err
	}

	return &models.Appointment{
		PatientID:       req.PatientID,
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		DoctorType:      req.DoctorType,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		Status:          models.AppointmentPending,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.FullName(),
	}, nil
}

// Book runs the whole booking wizard: stage, validate the payment, authorize it and,
// once approved, persist the ledger entries and the pending appointment. Nothing is
// stored when any step before authorization fails.
func (s *AppointmentService) Book(ctx context.Context, req models.BookingRequest, details models.PaymentDetails) (*models.Booking, error) {
	appointment, err := s.Stage(ctx, req)
	if err != nil {
		return nil, err
	}

	details.Amount, _ = utils.DefaultAmount(details.Method)
	if err := utils.ValidatePaymentDetails(details); err != nil {
		return nil, err
	}
	if utils.IsMobileMoney(details.Method) && !details.Confirmed {
		return nil, &ConfirmationRequiredError{Prompt: ConfirmationPrompt(details)}
	}

	auth, err := s.gateway.Authorize(ctx, details)
	if err != nil {
		log.Info().Err(err).Str("method", details.Method).Msg("Payment not authorized")
		return nil, err
	}

	appointment.ID = uuid.NewString()
	appointment.CreatedAt = s.now()
	appointment.Payment = paymentSummary(details, auth)

	invoice, payment, err := s.billing.RecordBookingPayment(ctx, appointment, auth, details)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	// The payment still names the appointment and its invoice if this write fails.
	if err := s.appointments.Create(ctx, appointment); err != nil {
		log.Error().Err(err).
			Str("invoice_id", invoice.ID).
			Str("appointment_id", appointment.ID).
			Str("amount", payment.Amount).
			Str("method", payment.PaymentMethod).
			Msg("Payment recorded but appointment was not saved")
		return nil, fmt.Errorf("payment recorded on invoice %s but appointment %s was not saved: %w", invoice.ID, appointment.ID, err)
	}

	receipt := s.receipts.Generate(*appointment, *appointment.Payment)
	if err := s.receipts.Send(ctx, receipt); err != nil && !errors.Is(err, utils.ErrMailerDisabled) {
		log.Warn().Err(err).Str("appointment_id", appointment.ID).Msg("Failed to email receipt")
	}

	log.Info().
		Str("appointment_id", appointment.ID).
		Str("doctor_id", appointment.DoctorID).
		Str("method", details.Method).
		Msg("Appointment booked")

	return &models.Booking{
		Appointment:   *appointment,
		Invoice:       *invoice,
		Payment:       *payment,
		Authorization: auth,
		Receipt:       receipt,
	}, nil
}

func paymentSummary(details models.PaymentDetails, auth models.Authorization) *models.PaymentSummary {
	amount, currency := utils.DefaultAmount(details.Method)
	summary := &models.PaymentSummary{
		Method:      details.Method,
		Amount:      amount,
		Currency:    currency,
		PaymentDate: auth.AuthorizedAt,
		Reference:   auth.Reference,
	}
	switch {
	case details.Method == models.MethodCreditCard:
		summary.CardLast4 = utils.CardLast4(details.CardNumber)
	case utils.IsMobileMoney(details.Method):
		summary.PhoneNumber = utils.StripSpaces(details.PhoneNumber)
	}
	return summary
}

func (s *AppointmentService) Confirm(ctx context.Context, id string) (*models.Appointment, error) {
	return s.setStatus(ctx, id, func(a *models.Appointment) {
		a.Status = models.AppointmentConfirmed
		a.DeclineReason = ""
	})
}

func (s *AppointmentService) Decline(ctx context.Context, id, reason string) (*models.Appointment, error) {
	return s.setStatus(ctx, id, func(a *models.Appointment) {
		a.Status = models.AppointmentDeclined
		a.DeclineReason = strings.TrimSpace(reason)
	})
}

// Reschedule moves an appointment to a new future slot.
func (s *AppointmentService) Reschedule(ctx context.Context, id, date, clock string) (*models.Appointment, error) {
	if err := utils.ValidateSlot(date, clock, s.now(), s.loc); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, id, func(a *models.Appointment) {
		a.Status = models.AppointmentRescheduled
		a.AppointmentDate = strings.TrimSpace(date)
		a.AppointmentTime = strings.TrimSpace(clock)
		a.DeclineReason = ""
	})
}

func (s *AppointmentService) setStatus(ctx context.Context, id string, apply func(*models.Appointment)) (*models.Appointment, error) {
	now := s.now()
	appointment, err := s.appointments.Modify(ctx, id, func(a *models.Appointment) error {
		apply(a)
		a.UpdatedAt = &now
		return nil
	})
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("appointment_id", id).Str("status", appointment.Status).Msg("Appointment status changed")
	return appointment, nil
}

func (s *AppointmentService) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return s.appointments.GetAll(ctx)
}

func (s *AppointmentService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// ForDoctor lists the appointments assigned to a doctor.
func (s *AppointmentService) ForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.appointments.GetByDoctor(ctx, doctorID)
}

// Receipt regenerates the receipt of a booked appointment.
func (s *AppointmentService) Receipt(ctx context.Context, id string) (*models.Receipt, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Payment == nil {
		return nil, ErrReceiptUnavailable
	}
	receipt := s.receipts.Generate(*appointment, *appointment.Payment)
	return &receipt, nil
}
