package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/repositories"
	"SolidarityHospital/utils"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoDoctorAvailable = errors.New("no doctor is available for the selected specialization")
	ErrDoctorNotFound    = errors.New("doctor not found")
)

// Picker returns an index in [0, n). It chooses among eligible doctors.
type Picker func(n int) int

type DoctorService struct {
	repository *repositories.DoctorRepository
	pick       Picker
	now        func() time.Time
}

func NewDoctorService(repository *repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repository: repository, pick: rand.Intn, now: time.Now}
}

// WithPicker replaces the uniform random assignment policy.
func (s *DoctorService) WithPicker(pick Picker) *DoctorService {
	s.pick = pick
	return s
}

// Specializations lists the doctor types offered for booking.
func (s *DoctorService) Specializations() []string {
	return append([]string(nil), models.Specializations...)
}

func (s *DoctorService) FilterBySpecialization(ctx context.Context, specialization string) ([]models.Doctor, error) {
	return s.repository.GetBySpecialization(ctx, specialization)
}

// Assign picks one doctor whose specialization matches exactly. It returns
// ErrNoDoctorAvailable when nobody qualifies.
func (s *DoctorService) Assign(ctx context.Context, specialization string) (*models.Doctor, error) {
	candidates, err := s.FilterBySpecialization(ctx, specialization)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		log.Info().Str("specialization", specialization).Msg("No doctor available")
		return nil, ErrNoDoctorAvailable
	}

	idx := 0
	if len(candidates) > 1 {
		idx = s.pick(len(candidates))
	}
	doctor := candidates[idx]
	return &doctor, nil
}

func (s *DoctorService) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := utils.ValidateDoctor(*doctor); err != nil {
		return err
	}
	doctor.ID = uuid.NewString()
	doctor.CreatedAt = s.now()
	return s.repository.Create(ctx, doctor)
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// GetByEmail resolves the doctor profile of a logged-in doctor.
func (s *DoctorService) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	doctor, err := s.repository.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (s *DoctorService) GetAll(ctx context.Context) ([]models.Doctor, error) {
	return s.repository.GetAll(ctx)
}

func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := utils.ValidateDoctor(*doctor); err != nil {
		return err
	}
	err := s.repository.Update(ctx, doctor)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return ErrDoctorNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update doctor %s: %w", doctor.ID, err)
	}
	return nil
}

func (s *DoctorService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
