package routes

import (
	"SolidarityHospital/cache"
	"SolidarityHospital/config"
	"SolidarityHospital/controllers"
	"SolidarityHospital/handlers"
	"SolidarityHospital/middlewares"
	"SolidarityHospital/repositories"
	"SolidarityHospital/services"
	"SolidarityHospital/store"
	"SolidarityHospital/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators the router is assembled from.
type Dependencies struct {
	Config  *config.AppConfig
	Store   store.Store
	Cache   cache.Cache
	Tokens  *utils.TokenIssuer
	Mailer  *utils.Mailer
	Gateway services.PaymentGateway
	Logger  zerolog.Logger

	// Optional, for deterministic runs.
	Now    func() time.Time
	Picker services.Picker
}

// Services are the front-desk services built over one store.
type Services struct {
	Patients     *services.PatientService
	Doctors      *services.DoctorService
	Appointments *services.AppointmentService
	Billing      *services.BillingService
	Receipts     *services.ReceiptService
	Auth         *services.AuthService
}

// NewServices builds repositories and services over the given store.
func NewServices(deps Dependencies) *Services {
	if deps.Mailer == nil {
		deps.Mailer = utils.NewMailer(utils.SMTPConfig{})
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewMemoryCache()
	}
	if deps.Gateway == nil {
		deps.Gateway = services.NewSimulatedGateway(services.DefaultAuthorizationDelay)
	}

	patientRepo := repositories.NewPatientRepository(deps.Store)
	doctorRepo := repositories.NewDoctorRepository(deps.Store)
	appointmentRepo := repositories.NewAppointmentRepository(deps.Store)
	invoiceRepo := repositories.NewInvoiceRepository(deps.Store)
	paymentRepo := repositories.NewPaymentRepository(deps.Store)
	userRepo := repositories.NewUserRepository(deps.Store)

	doctorService := services.NewDoctorService(doctorRepo)
	if deps.Picker != nil {
		doctorService.WithPicker(deps.Picker)
	}
	billingService := services.NewBillingService(invoiceRepo, paymentRepo, patientRepo)
	receiptService := services.NewReceiptService(deps.Mailer)

	appointmentService := services.NewAppointmentService(appointmentRepo, doctorService, billingService, deps.Gateway, receiptService)
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	var loc *time.Location
	if deps.Config != nil {
		loc = deps.Config.Location()
	}
	appointmentService.WithClock(now, loc)

	authService := services.NewAuthService(userRepo, doctorService, deps.Tokens, utils.NewResetCodes(deps.Cache), deps.Mailer)

	return &Services{
		Patients:     services.NewPatientService(patientRepo),
		Doctors:      doctorService,
		Appointments: appointmentService,
		Billing:      billingService,
		Receipts:     receiptService,
		Auth:         authService,
	}
}

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(deps Dependencies) http.Handler {
	if deps.Config == nil || !deps.Config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.LoggingMiddleware(deps.Logger))
	router.Use(middlewares.SecurityHeaders())

	if deps.Config != nil {
		router.Use(middlewares.CorsMiddleware(deps.Config.Cors()))
		router.Use(middlewares.NewRateLimiterMiddleware(deps.Config.RateLimit()))
	}

	svc := NewServices(deps)

	controllers.SetupRootRoute(router)

	authController := controllers.NewAuthController(handlers.NewAuthHandler(svc.Auth), deps.Tokens)
	authController.RegisterRoutes(router)

	controllers.SetupFrontDeskRoutes(router, controllers.FrontDeskHandlers{
		Patients:     handlers.NewPatientHandler(svc.Patients),
		Doctors:      handlers.NewDoctorHandler(svc.Doctors, svc.Appointments),
		Appointments: handlers.NewAppointmentHandler(svc.Appointments, svc.Receipts),
		Billing:      handlers.NewBillingHandler(svc.Billing),
	}, deps.Tokens)

	return router
}
