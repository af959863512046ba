package utils

import (
	"SolidarityHospital/models"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"
)

// Validation errors
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidResetCode = errors.New("invalid reset code")
)

var roles = []interface{}{models.RoleAdmin, models.RoleDoctor, models.RoleUser}

// ValidateRegistration checks a registration form. Doctor profile fields are required
// only for the doctor role.
func ValidateRegistration(req models.RegistrationRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	isDoctor := req.Role == models.RoleDoctor
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&req.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&req.Role, validation.Required, validation.In(roles...)),
		validation.Field(&req.FirstName, validation.When(isDoctor, validation.Required)),
		validation.Field(&req.LastName, validation.When(isDoctor, validation.Required)),
		validation.Field(&req.Specialization, validation.When(isDoctor, validation.Required, validation.In(specializations()...))),
		validation.Field(&req.Phone, validation.When(isDoctor, validation.Required)),
		validation.Field(&req.LicenseNumber, validation.When(isDoctor, validation.Required)),
		validation.Field(&req.Experience, validation.When(isDoctor, validation.NotNil, validation.Min(0))),
	)
	if err != nil {
		log.Debug().Err(err).Str("username", req.Username).Msg("Registration rejected")
	}
	return err
}

func ValidateLogin(req models.LoginRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.Required, validation.In(roles...)),
	)
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(email, resetCode, newPassword string) error {
	return validation.Errors{
		"email":     validation.Validate(email, validation.Required, is.EmailFormat),
		"resetCode": validation.Validate(resetCode, validation.Required.Error(ErrInvalidResetCode.Error())),
		"password":  validation.Validate(newPassword, validation.Required, validation.Length(6, 72)),
	}.Filter()
}

func specializations() []interface{} {
	values := make([]interface{}, len(models.Specializations))
	for i, s := range models.Specializations {
		values[i] = s
	}
	return values
}
