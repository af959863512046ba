package handlers

import (
	"SolidarityHospital/middlewares"
	"SolidarityHospital/repositories"
	"SolidarityHospital/services"
	"SolidarityHospital/utils"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		confirm *services.ConfirmationRequiredError
		fields  validation.Errors
		rule    validation.Error
	)

	switch {
	case errors.As(err, &confirm):
		middlewares.HttpError(c, confirm.Error(), http.StatusConflict, err, gin.H{"prompt": confirm.Prompt})
	case errors.As(err, &fields):
		middlewares.HttpError(c, "Validation failed", http.StatusBadRequest, err, fields)
	case errors.As(err, &rule),
		errors.Is(err, utils.ErrPasswordMismatch),
		errors.Is(err, utils.ErrInvalidResetCode),
		errors.Is(err, services.ErrUnknownPeriod):
		middlewares.HttpError(c, err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthenticated):
		middlewares.HttpError(c, err.Error(), http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrPaymentDeclined):
		middlewares.HttpError(c, err.Error(), http.StatusPaymentRequired, err)
	case errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrReceiptUnavailable):
		middlewares.HttpError(c, err.Error(), http.StatusNotFound, err)
	case errors.Is(err, services.ErrNoDoctorAvailable),
		errors.Is(err, repositories.ErrUsernameTaken):
		middlewares.HttpError(c, err.Error(), http.StatusConflict, err)
	case errors.Is(err, utils.ErrMailerDisabled):
		middlewares.HttpError(c, err.Error(), http.StatusServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		middlewares.HttpError(c, "Request timed out", http.StatusGatewayTimeout, err)
	default:
		middlewares.HttpError(c, "Internal server error", http.StatusInternalServerError, err)
	}
}

// bindJSON decodes the request body and answers 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return false
	}
	return true
}
