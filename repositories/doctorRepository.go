package repositories

import (
	"SolidarityHospital/models"
	"SolidarityHospital/store"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

type DoctorRepository struct {
	doctors *collection[models.Doctor]
}

func NewDoctorRepository(s store.Store) *DoctorRepository {
	return &DoctorRepository{
		doctors: newCollection(s, store.Doctors, func(d *models.Doctor) string { return d.ID }),
	}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := r.doctors.append(ctx, *doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := r.doctors.find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

// GetByEmail finds the doctor whose email is a login username.
func (r *DoctorRepository) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	matches, err := r.doctors.filter(ctx, func(d *models.Doctor) bool {
		return strings.EqualFold(d.Email, email)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := r.doctors.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}
	return doctors, nil
}

// GetBySpecialization returns doctors whose specialization matches exactly.
func (r *DoctorRepository) GetBySpecialization(ctx context.Context, specialization string) ([]models.Doctor, error) {
	doctors, err := r.doctors.filter(ctx, func(d *models.Doctor) bool {
		return d.Specialization == specialization
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	updated, err := r.doctors.modify(ctx, doctor.ID, func(stored *models.Doctor) error {
		createdAt := stored.CreatedAt
		*stored = *doctor
		stored.CreatedAt = createdAt
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	*doctor = *updated
	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.doctors.remove(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	if !removed {
		log.Debug().Str("doctor_id", id).Msg("Delete of unknown doctor ignored")
	}
	return nil
}
