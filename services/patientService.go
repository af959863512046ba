package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/repositories"
	"SolidarityHospital/utils"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientService struct {
	repository *repositories.PatientRepository
	now        func() time.Time
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository, now: time.Now}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatient(*patient); err != nil {
		return err
	}
	patient.ID = uuid.NewString()
	patient.CreatedAt = s.now()
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatient(*patient); err != nil {
		return err
	}
	err := s.repository.Update(ctx, patient)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return ErrPatientNotFound
	}
	return err
}

// Delete removes the patient only. Appointments and invoices that reference it keep
// the id and render the name as unknown.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
