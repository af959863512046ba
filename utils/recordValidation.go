package utils

import (
	"SolidarityHospital/models"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidatePatient checks the patient form.
func ValidatePatient(p models.Patient) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.DateOfBirth, validation.Required, validation.Date(DateLayout)),
		validation.Field(&p.Gender, validation.Required),
		validation.Field(&p.Phone, validation.Required),
		validation.Field(&p.Email, is.EmailFormat),
	)
}

// ValidateDoctor checks the doctor form.
func ValidateDoctor(d models.Doctor) error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.Specialization, validation.Required, validation.In(specializations()...)),
		validation.Field(&d.Phone, validation.Required),
		validation.Field(&d.Email, validation.Required, is.EmailFormat),
		validation.Field(&d.LicenseNumber, validation.Required),
		validation.Field(&d.Experience, validation.Min(0)),
	)
}

// ValidateInvoiceRequest checks the invoice form. The amount must be a positive decimal.
func ValidateInvoiceRequest(req models.InvoiceRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PatientID, validation.Required),
		validation.Field(&req.ServiceType, validation.Required),
		validation.Field(&req.Amount, validation.Required, validation.By(positiveAmount)),
		validation.Field(&req.DueDate, validation.Required, validation.Date(DateLayout)),
	)
}

func positiveAmount(value interface{}) error {
	amount, _ := value.(string)
	cents, err := ParseCents(amount)
	if err != nil {
		return err
	}
	if cents <= 0 {
		return validation.NewError("validation_amount_positive", "amount must be greater than zero")
	}
	return nil
}

// ValidateReportPeriod checks that period is monthly, quarterly or yearly.
func ValidateReportPeriod(period string) error {
	return validation.Validate(period, validation.Required, validation.In(models.PeriodMonthly, models.PeriodQuarterly, models.PeriodYearly))
}

// PeriodCutoff returns the start of the report window ending at now.
func PeriodCutoff(period string, now time.Time) time.Time {
	switch period {
	case models.PeriodQuarterly:
		return now.AddDate(0, -3, 0)
	case models.PeriodYearly:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}
