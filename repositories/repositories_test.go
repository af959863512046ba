package repositories

import (
	"SolidarityHospital/models"
	"SolidarityHospital/store"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository(store.NewMemoryStore())

	require.NoError(t, repo.Create(ctx, &models.Patient{ID: "p1", FirstName: "Jane", LastName: "Doe"}))
	require.NoError(t, repo.Create(ctx, &models.Patient{ID: "p2", FirstName: "John", LastName: "Roe"}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.FullName())

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Update(ctx, &models.Patient{ID: "p1", FirstName: "Janet", LastName: "Doe"}))
	names, err := repo.NamesByID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Janet Doe", names["p1"])

	err = repo.Update(ctx, &models.Patient{ID: "nope"})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, "p2"))
	require.NoError(t, repo.Delete(ctx, "p2"))
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDoctorRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorRepository(store.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, &models.Doctor{ID: "d1", Specialization: "Cardiologist", Email: "a@h.com"}))
	require.NoError(t, repo.Create(ctx, &models.Doctor{ID: "d2", Specialization: "Dermatologist", Email: "b@h.com"}))

	cardio, err := repo.GetBySpecialization(ctx, "Cardiologist")
	require.NoError(t, err)
	require.Len(t, cardio, 1)
	assert.Equal(t, "d1", cardio[0].ID)

	none, err := repo.GetBySpecialization(ctx, "cardiologist")
	require.NoError(t, err)
	assert.Empty(t, none)

	byEmail, err := repo.GetByEmail(ctx, "B@H.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "d2", byEmail.ID)
}

func TestAppointmentRepository_Modify(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(store.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, &models.Appointment{ID: "a1", Status: models.AppointmentPending, DoctorID: "d1"}))

	updated, err := repo.Modify(ctx, "a1", func(a *models.Appointment) error {
		a.Status = models.AppointmentConfirmed
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, updated.Status)

	_, err = repo.Modify(ctx, "missing", func(*models.Appointment) error { return nil })
	assert.ErrorIs(t, err, ErrRecordNotFound)

	mine, err := repo.GetByDoctor(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCollection_ConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository(store.NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, &models.Payment{InvoiceID: "i1", Amount: "1.00"}))
		}()
	}
	wg.Wait()

	payments, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 20)
}

func TestInvoiceRepository_DeleteKeepsPayments(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	invoices := NewInvoiceRepository(s)
	payments := NewPaymentRepository(s)

	require.NoError(t, invoices.Create(ctx, &models.Invoice{ID: "i1", Status: models.InvoicePaid}))
	require.NoError(t, payments.Append(ctx, &models.Payment{InvoiceID: "i1"}))
	require.NoError(t, invoices.Delete(ctx, "i1"))
	require.NoError(t, invoices.Delete(ctx, "unknown"))

	all, err := invoices.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	kept, err := payments.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestUserRepository_SeedAndSession(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemoryStore())

	seeded := 0
	seed := func() (models.Users, error) {
		seeded++
		return models.Users{"admin": {Password: "hash", Role: models.RoleAdmin}}, nil
	}

	users, err := repo.GetAll(ctx, seed)
	require.NoError(t, err)
	assert.Contains(t, users, "admin")

	_, err = repo.GetAll(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 1, seeded)

	assert.ErrorIs(t, repo.Create(ctx, "admin", models.User{}), ErrUsernameTaken)
	require.NoError(t, repo.Create(ctx, "nurse", models.User{Role: models.RoleUser}))
	require.NoError(t, repo.UpdatePassword(ctx, "nurse", "newhash"))
	assert.ErrorIs(t, repo.UpdatePassword(ctx, "ghost", "x"), ErrRecordNotFound)

	session, err := repo.GetSession(ctx, "nurse")
	require.NoError(t, err)
	assert.Nil(t, session)

	require.NoError(t, repo.SaveSession(ctx, models.Session{Username: "nurse", Role: models.RoleUser}))
	require.NoError(t, repo.SaveSession(ctx, models.Session{Username: "admin", Role: models.RoleAdmin}))
	session, err = repo.GetSession(ctx, "nurse")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "nurse", session.Username)

	var current models.Session
	found, err := store.LoadValue(ctx, repo.store, store.CurrentUser, &current)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "admin", current.Username)

	require.NoError(t, repo.ClearSession(ctx, "nurse"))
	session, err = repo.GetSession(ctx, "nurse")
	require.NoError(t, err)
	assert.Nil(t, session)

	session, err = repo.GetSession(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, session, "clearing one user keeps the others")
	found, err = store.LoadValue(ctx, repo.store, store.CurrentUser, &current)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, repo.ClearSession(ctx, "admin"))
	found, err = store.LoadValue(ctx, repo.store, store.CurrentUser, &current)
	require.NoError(t, err)
	assert.False(t, found)
}
