package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/repositories"
	"SolidarityHospital/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_BootstrapAccounts(t *testing.T) {
	auth, _ := newAuthService(t, &mockMailer{})
	ctx := context.Background()

	result, err := auth.Login(ctx, models.LoginRequest{Username: "admin@solidarityhospital.com", Password: "admin123", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.PageIndex, result.Redirect)
	assert.NotEmpty(t, result.AccessToken)

	current, err := auth.Current(ctx, "admin@solidarityhospital.com")
	require.NoError(t, err)
	assert.Equal(t, "admin@solidarityhospital.com", current.Username)

	users, err := auth.Users(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", users["admin@solidarityhospital.com"].Password)
}

func TestLogin_RejectsWrongRoleOrPassword(t *testing.T) {
	auth, _ := newAuthService(t, &mockMailer{})
	ctx := context.Background()

	_, err := auth.Login(ctx, models.LoginRequest{Username: "user@solidarityhospital.com", Password: "user123", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, models.LoginRequest{Username: "user@solidarityhospital.com", Password: "wrong", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Current(ctx, "user@solidarityhospital.com")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRegister_DoctorCreatesProfile(t *testing.T) {
	auth, f := newAuthService(t, &mockMailer{})
	ctx := context.Background()
	years := 7

	result, err := auth.Register(ctx, models.RegistrationRequest{
		Username: "ada@solidarityhospital.com", Password: "secret1", ConfirmPassword: "secret1",
		Role: models.RoleDoctor, FirstName: "Ada", LastName: "Nkem", Specialization: "Cardiologist",
		Phone: "612345678", LicenseNumber: "LIC-7", Experience: &years,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PageDoctorDashboard, result.Redirect)
	assert.Equal(t, models.RoleDoctor, result.Session.Role)

	doctor, err := f.doctors.GetByEmail(ctx, "ada@solidarityhospital.com")
	require.NoError(t, err)
	assert.Equal(t, 7, doctor.Experience)

	login, err := auth.Login(ctx, models.LoginRequest{Username: "ada@solidarityhospital.com", Password: "secret1", Role: models.RoleDoctor})
	require.NoError(t, err)
	assert.Equal(t, models.PageDoctorDashboard, login.Redirect)

	users, err := auth.Users(ctx)
	require.NoError(t, err)
	assert.Contains(t, users, "admin@solidarityhospital.com")
}

func TestRegister_RedirectsAndDuplicates(t *testing.T) {
	auth, _ := newAuthService(t, &mockMailer{})
	ctx := context.Background()

	admin, err := auth.Register(ctx, models.RegistrationRequest{Username: "boss", Password: "secret1", ConfirmPassword: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.PagePatients, admin.Redirect)

	_, err = auth.Register(ctx, models.RegistrationRequest{Username: "boss", Password: "secret1", ConfirmPassword: "secret1", Role: models.RoleUser})
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)

	_, err = auth.Register(ctx, models.RegistrationRequest{Username: "clerk", Password: "secret1", ConfirmPassword: "secret2", Role: models.RoleUser})
	assert.ErrorIs(t, err, utils.ErrPasswordMismatch)
}

func TestLogout(t *testing.T) {
	auth, _ := newAuthService(t, &mockMailer{})
	ctx := context.Background()
	_, err := auth.Login(ctx, models.LoginRequest{Username: "user@solidarityhospital.com", Password: "user123", Role: models.RoleUser})
	require.NoError(t, err)

	redirect, err := auth.Logout(ctx, "user@solidarityhospital.com")
	require.NoError(t, err)
	assert.Equal(t, models.PageLogin, redirect)
	_, err = auth.Current(ctx, "user@solidarityhospital.com")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = auth.Logout(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSessionsArePerUser(t *testing.T) {
	auth, _ := newAuthService(t, &mockMailer{})
	ctx := context.Background()
	admin := "admin@solidarityhospital.com"
	user := "user@solidarityhospital.com"

	_, err := auth.Login(ctx, models.LoginRequest{Username: admin, Password: "admin123", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = auth.Login(ctx, models.LoginRequest{Username: user, Password: "user123", Role: models.RoleUser})
	require.NoError(t, err)

	session, err := auth.Current(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, admin, session.Username)
	assert.Equal(t, models.RoleAdmin, session.Role)

	_, err = auth.Logout(ctx, admin)
	require.NoError(t, err)

	session, err = auth.Current(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user, session.Username)
	_, err = auth.Current(ctx, admin)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestPasswordReset(t *testing.T) {
	var sentTo, sentCode string
	auth, _ := newAuthService(t, &mockMailer{enabled: true, SendResetFn: func(email, code string) error {
		sentTo, sentCode = email, code
		return nil
	}})
	ctx := context.Background()
	email := "user@solidarityhospital.com"

	require.NoError(t, auth.SendResetCode(ctx, email))
	assert.Equal(t, email, sentTo)
	require.Len(t, sentCode, 6)

	wrong := "000000"
	if sentCode == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, auth.ChangePassword(ctx, email, wrong, "newpass1"), utils.ErrInvalidResetCode)

	require.NoError(t, auth.ChangePassword(ctx, email, sentCode, "newpass1"))
	_, err := auth.Login(ctx, models.LoginRequest{Username: email, Password: "newpass1", Role: models.RoleUser})
	require.NoError(t, err)

	assert.ErrorIs(t, auth.ChangePassword(ctx, email, sentCode, "another1"), utils.ErrInvalidResetCode, "code is single use")

	sentTo = ""
	require.NoError(t, auth.SendResetCode(ctx, "nobody@example.com"))
	assert.Empty(t, sentTo)
}

func TestSendResetCode_DisabledMailerIssuesNoCode(t *testing.T) {
	sent := false
	auth, _ := newAuthService(t, &mockMailer{SendResetFn: func(email, code string) error {
		sent = true
		return nil
	}})
	ctx := context.Background()
	email := "user@solidarityhospital.com"

	assert.ErrorIs(t, auth.SendResetCode(ctx, email), utils.ErrMailerDisabled)
	assert.ErrorIs(t, auth.SendResetCode(ctx, "nobody@example.com"), utils.ErrMailerDisabled)
	assert.False(t, sent)

	stored, err := auth.resetCodes.Get(ctx, email)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
