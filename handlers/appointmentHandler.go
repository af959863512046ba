package handlers

import (
	"SolidarityHospital/models"
	"SolidarityHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service  *services.AppointmentService
	receipts *services.ReceiptService
}

func NewAppointmentHandler(service *services.AppointmentService, receipts *services.ReceiptService) *AppointmentHandler {
	return &AppointmentHandler{service: service, receipts: receipts}
}

// bookingBody is the submission of the booking wizard.
type bookingBody struct {
	Appointment models.BookingRequest `json:"appointment"`
	Payment     models.PaymentDetails `json:"payment"`
}

// ValidateAppointment stages a booking: it validates the form and assigns a doctor
// without saving anything.
func (h *AppointmentHandler) ValidateAppointment(c *gin.Context) {
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	staged, err := h.service.Stage(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, staged)
}

func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var body bookingBody
	if !bindJSON(c, &body) {
		return
	}
	booking, err := h.service.Book(c.Request.Context(), body.Appointment, body.Payment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	appointments, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.service.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// PrintReceipt serves the receipt as a standalone printable page.
func (h *AppointmentHandler) PrintReceipt(c *gin.Context) {
	receipt, err := h.service.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.receipts.RenderHTML(*receipt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// PaymentPrompt returns the mobile money confirmation text for the payment form.
func (h *AppointmentHandler) PaymentPrompt(c *gin.Context) {
	var details models.PaymentDetails
	if !bindJSON(c, &details) {
		return
	}
	prompt := services.ConfirmationPrompt(details)
	c.JSON(http.StatusOK, gin.H{"confirmationRequired": prompt != "", "prompt": prompt})
}
