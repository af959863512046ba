package services

import (
	"SolidarityHospital/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign_NoCandidates(t *testing.T) {
	f := newFixture(t)
	f.addDoctor(t, "Ada", "Dermatologist")

	_, err := f.doctors.Assign(context.Background(), "Cardiologist")
	assert.ErrorIs(t, err, ErrNoDoctorAvailable)
}

func TestAssign_SingleCandidateAlwaysChosen(t *testing.T) {
	f := newFixture(t)
	only := f.addDoctor(t, "Ada", "Cardiologist")
	f.addDoctor(t, "Ben", "Dermatologist")
	f.doctors.WithPicker(func(int) int {
		t.Fatal("picker must not be consulted for a single candidate")
		return 0
	})

	for i := 0; i < 5; i++ {
		doctor, err := f.doctors.Assign(context.Background(), "Cardiologist")
		require.NoError(t, err)
		assert.Equal(t, only.ID, doctor.ID)
	}
}

func TestAssign_UsesPickerAmongMatches(t *testing.T) {
	f := newFixture(t)
	f.addDoctor(t, "Ada", "Cardiologist")
	second := f.addDoctor(t, "Ben", "Cardiologist")
	f.addDoctor(t, "Cleo", "Pediatrician")

	var seen int
	f.doctors.WithPicker(func(n int) int {
		seen = n
		return 1
	})

	doctor, err := f.doctors.Assign(context.Background(), "Cardiologist")
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.Equal(t, second.ID, doctor.ID)
}

func TestAssign_DefaultPickerStaysInRange(t *testing.T) {
	f := newFixture(t)
	a := f.addDoctor(t, "Ada", "Cardiologist")
	b := f.addDoctor(t, "Ben", "Cardiologist")

	for i := 0; i < 20; i++ {
		doctor, err := f.doctors.Assign(context.Background(), "Cardiologist")
		require.NoError(t, err)
		assert.Contains(t, []string{a.ID, b.ID}, doctor.ID)
	}
}

func TestDoctorCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doctor := f.addDoctor(t, "Ada", "Cardiologist")
	assert.NotEmpty(t, doctor.ID)
	assert.Equal(t, fixedNow, doctor.CreatedAt)

	byEmail, err := f.doctors.GetByEmail(ctx, "Ada@solidarityhospital.com")
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, byEmail.ID)

	doctor.Experience = 9
	require.NoError(t, f.doctors.Update(ctx, &doctor))
	got, err := f.doctors.GetByID(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Experience)

	doctor.Specialization = "Astrologer"
	assert.Error(t, f.doctors.Update(ctx, &doctor))

	require.NoError(t, f.doctors.Delete(ctx, doctor.ID))
	_, err = f.doctors.GetByID(ctx, doctor.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	assert.Len(t, f.doctors.Specializations(), 6)
}

func TestUpdate_UnknownIDChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addDoctor(t, "Ada", "Cardiologist")

	ghost := f.addDoctor(t, "Bea", "Pediatrician")
	require.NoError(t, f.doctors.Delete(ctx, ghost.ID))
	ghost.Experience = 20
	assert.ErrorIs(t, f.doctors.Update(ctx, &ghost), ErrDoctorNotFound)

	doctors, err := f.doctors.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Ada", doctors[0].FirstName)

	patients := NewPatientService(f.patients)
	missing := models.Patient{
		ID: "missing", FirstName: "Jane", LastName: "Doe",
		DateOfBirth: "1990-01-01", Gender: "Female", Phone: "612345678",
	}
	assert.ErrorIs(t, patients.Update(ctx, &missing), ErrPatientNotFound)
	all, err := patients.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
