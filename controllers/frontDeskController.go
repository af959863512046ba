package controllers

import (
	"SolidarityHospital/handlers"
	"SolidarityHospital/middlewares"
	"SolidarityHospital/models"
	"SolidarityHospital/utils"

	"github.com/gin-gonic/gin"
)

// FrontDeskHandlers groups the handlers behind the front-desk routes.
type FrontDeskHandlers struct {
	Patients     *handlers.PatientHandler
	Doctors      *handlers.DoctorHandler
	Appointments *handlers.AppointmentHandler
	Billing      *handlers.BillingHandler
}

func SetupFrontDeskRoutes(router *gin.Engine, h FrontDeskHandlers, tokens *utils.TokenIssuer) {
	router.GET("/specializations", h.Doctors.Specializations)

	authenticated := router.Group("/", middlewares.TokenAuthMiddleware(tokens))
	{
		authenticated.POST("/appointments/validate", h.Appointments.ValidateAppointment)
		authenticated.POST("/appointments", h.Appointments.BookAppointment)
		authenticated.GET("/appointments", h.Appointments.GetAllAppointments)
		authenticated.GET("/appointments/:id", h.Appointments.GetAppointmentByID)
		authenticated.GET("/appointments/:id/receipt", h.Appointments.GetReceipt)
		authenticated.GET("/appointments/:id/receipt/print", h.Appointments.PrintReceipt)

		authenticated.POST("/payments/prompt", h.Appointments.PaymentPrompt)
		authenticated.GET("/payments", h.Billing.GetAllPayments)

		authenticated.GET("/invoices", h.Billing.GetAllInvoices)
		authenticated.POST("/invoices", h.Billing.CreateInvoice)
		authenticated.POST("/invoices/:id/toggle", h.Billing.ToggleInvoice)
		authenticated.DELETE("/invoices/:id", h.Billing.DeleteInvoice)

		authenticated.GET("/reports/:period", h.Billing.GetReport)
		authenticated.GET("/reports/:period/export", h.Billing.ExportReport)
	}

	admin := router.Group("/", middlewares.TokenAuthMiddleware(tokens), middlewares.RoleAuthMiddleware(models.RoleAdmin))
	{
		admin.POST("/patients", h.Patients.CreatePatient)
		admin.GET("/patients", h.Patients.GetAllPatients)
		admin.GET("/patients/:patient_id", h.Patients.GetPatientByID)
		admin.PUT("/patients/:patient_id", h.Patients.UpdatePatient)
		admin.DELETE("/patients/:patient_id", h.Patients.DeletePatient)

		admin.POST("/doctors", h.Doctors.CreateDoctor)
		admin.GET("/doctors", h.Doctors.GetAllDoctors)
		admin.GET("/doctors/:id", h.Doctors.GetDoctorByID)
		admin.PUT("/doctors/:id", h.Doctors.UpdateDoctor)
		admin.DELETE("/doctors/:id", h.Doctors.DeleteDoctor)
	}

	doctor := router.Group("/doctor", middlewares.TokenAuthMiddleware(tokens), middlewares.RoleAuthMiddleware(models.RoleDoctor))
	{
		doctor.GET("/appointments", h.Doctors.MyAppointments)
		doctor.POST("/appointments/:id/confirm", h.Doctors.ConfirmAppointment)
		doctor.POST("/appointments/:id/decline", h.Doctors.DeclineAppointment)
		doctor.POST("/appointments/:id/reschedule", h.Doctors.RescheduleAppointment)
	}
}
