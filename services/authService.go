package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/repositories"
	"SolidarityHospital/utils"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidCredentials = errors.New("invalid username, password, or role")
	ErrNotAuthenticated   = errors.New("no user is logged in")
)

// ResetMailer delivers password reset codes.
type ResetMailer interface {
	Enabled() bool
	SendResetCode(email, code string) error
}

type AuthService struct {
	users      *repositories.UserRepository
	doctors    *DoctorService
	tokens     *utils.TokenIssuer
	resetCodes *utils.ResetCodes
	mailer     ResetMailer
	now        func() time.Time
}

func NewAuthService(
	users *repositories.UserRepository,
	doctors *DoctorService,
	tokens *utils.TokenIssuer,
	resetCodes *utils.ResetCodes,
	mailer ResetMailer,
) *AuthService {
	return &AuthService{
		users:      users,
		doctors:    doctors,
		tokens:     tokens,
		resetCodes: resetCodes,
		mailer:     mailer,
		now:        time.Now,
	}
}

func (s *AuthService) bootstrapAccounts() (models.Users, error) {
	users := models.Users{}
	for _, account := range models.BootstrapAccounts {
		hashed, err := utils.HashPassword(account.Password)
		if err != nil {
			return nil, err
		}
		users[account.Username] = models.User{Password: hashed, Role: account.Role, CreatedAt: s.now()}
	}
	return users, nil
}

// Users returns the credential mapping, seeding the bootstrap accounts on first use.
func (s *AuthService) Users(ctx context.Context) (models.Users, error) {
	return s.users.GetAll(ctx, s.bootstrapAccounts)
}

// Register creates a credential, plus a doctor profile for the doctor role, and logs
// the new user in.
func (s *AuthService) Register(ctx context.Context, req models.RegistrationRequest) (*models.AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := utils.ValidateRegistration(req); err != nil {
		return nil, err
	}
	if _, err := s.Users(ctx); err != nil {
		return nil, err
	}

	var doctor *models.Doctor
	if req.Role == models.RoleDoctor {
		doctor = &models.Doctor{
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Specialization: req.Specialization,
			Phone:          req.Phone,
			Email:          req.Username,
			LicenseNumber:  req.LicenseNumber,
			Experience:     *req.Experience,
		}
		if err := utils.ValidateDoctor(*doctor); err != nil {
			return nil, err
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, req.Username, models.User{Password: hashed, Role: req.Role, CreatedAt: s.now()}); err != nil {
		return nil, err
	}

	if doctor != nil {
		if err := s.doctors.Create(ctx, doctor); err != nil {
			return nil, fmt.Errorf("failed to create doctor profile: %w", err)
		}
	}

	log.Info().Str("username", req.Username).Str("role", req.Role).Msg("User registered")
	return s.startSession(ctx, req.Username, req.Role, registrationRedirect(req.Role))
}

// Login checks username, password and role together.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := utils.ValidateLogin(req); err != nil {
		return nil, err
	}
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}

	user, exists := users[req.Username]
	if !exists || user.Role != req.Role || !utils.CheckPassword(user.Password, req.Password) {
		log.Info().Str("username", req.Username).Msg("Login rejected")
		return nil, ErrInvalidCredentials
	}

	redirect := models.PageIndex
	if req.Role == models.RoleDoctor {
		redirect = models.PageDoctorDashboard
	}
	return s.startSession(ctx, req.Username, req.Role, redirect)
}

func (s *AuthService) startSession(ctx context.Context, username, role, redirect string) (*models.AuthResult, error) {
	session := models.Session{Username: username, Role: role, LoginTime: s.now()}
	if err := s.users.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	token, err := s.tokens.GenerateAccessToken(username, role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{Session: session, AccessToken: token, Redirect: redirect}, nil
}

func registrationRedirect(role string) string {
	switch role {
	case models.RoleDoctor:
		return models.PageDoctorDashboard
	case models.RoleAdmin:
		return models.PagePatients
	default:
		return models.PageIndex
	}
}

// Logout ends the session of username and returns the login page target. Other
// users' sessions are untouched.
func (s *AuthService) Logout(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", ErrNotAuthenticated
	}
	if err := s.users.ClearSession(ctx, username); err != nil {
		return "", err
	}
	return models.PageLogin, nil
}

// Current returns the session of username or ErrNotAuthenticated.
func (s *AuthService) Current(ctx context.Context, username string) (*models.Session, error) {
	if username == "" {
		return nil, ErrNotAuthenticated
	}
	session, err := s.users.GetSession(ctx, username)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Username != username {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

// SendResetCode stores a reset code for a known username and emails it. Unknown
// usernames are accepted silently. Without a mailer no code is issued and the call
// fails with utils.ErrMailerDisabled.
func (s *AuthService) SendResetCode(ctx context.Context, email string) error {
	if !s.mailer.Enabled() {
		return utils.ErrMailerDisabled
	}
	email = strings.TrimSpace(email)
	users, err := s.Users(ctx)
	if err != nil {
		return err
	}
	if _, exists := users[email]; !exists {
		log.Info().Str("email", email).Msg("Reset code requested for unknown user")
		return nil
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return err
	}
	if err := s.resetCodes.Set(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := s.mailer.SendResetCode(email, code); err != nil {
		return fmt.Errorf("failed to send reset code: %w", err)
	}
	return nil
}

// ChangePassword replaces the password of email when code matches the pending reset code.
func (s *AuthService) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)
	if err := utils.ValidatePasswordReset(email, code, newPassword); err != nil {
		return err
	}
	stored, err := s.resetCodes.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to read reset code: %w", err)
	}
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return utils.ErrInvalidResetCode
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, email, hashed); err != nil {
		return err
	}
	if err := s.resetCodes.Delete(ctx, email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Failed to delete used reset code")
	}
	return nil
}
