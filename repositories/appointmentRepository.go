package repositories

import (
	"SolidarityHospital/models"
	"SolidarityHospital/store"
	"context"
	"fmt"
)

type AppointmentRepository struct {
	appointments *collection[models.Appointment]
}

func NewAppointmentRepository(s store.Store) *AppointmentRepository {
	return &AppointmentRepository{
		appointments: newCollection(s, store.Appointments, func(a *models.Appointment) string { return a.ID }),
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := r.appointments.append(ctx, *appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	appointment, err := r.appointments.find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (r *AppointmentRepository) GetAll(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := r.appointments.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) GetByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	appointments, err := r.appointments.filter(ctx, func(a *models.Appointment) bool {
		return a.DoctorID == doctorID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor appointments: %w", err)
	}
	return appointments, nil
}

// Modify applies fn to the stored appointment and persists the result. It returns
// ErrRecordNotFound when the id is unknown.
func (r *AppointmentRepository) Modify(ctx context.Context, id string, fn func(*models.Appointment) error) (*models.Appointment, error) {
	appointment, err := r.appointments.modify(ctx, id, fn)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}
