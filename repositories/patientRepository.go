package repositories

import (
	"SolidarityHospital/models"
	"SolidarityHospital/store"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type PatientRepository struct {
	patients *collection[models.Patient]
}

func NewPatientRepository(s store.Store) *PatientRepository {
	return &PatientRepository{
		patients: newCollection(s, store.Patients, func(p *models.Patient) string { return p.ID }),
	}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.patients.append(ctx, *patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetByID returns nil without an error when the patient does not exist.
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := r.patients.find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	patients, err := r.patients.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}
	return patients, nil
}

// Update replaces the stored patient, keeping its id and creation time.
func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	updated, err := r.patients.modify(ctx, patient.ID, func(stored *models.Patient) error {
		createdAt := stored.CreatedAt
		*stored = *patient
		stored.CreatedAt = createdAt
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	*patient = *updated
	return nil
}

// Delete removes a patient. Deleting an unknown id is a no-op.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.patients.remove(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if !removed {
		log.Debug().Str("patient_id", id).Msg("Delete of unknown patient ignored")
	}
	return nil
}

// NamesByID maps patient ids to full names for list views.
func (r *PatientRepository) NamesByID(ctx context.Context) (map[string]string, error) {
	patients, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.FullName()
	}
	return names, nil
}
