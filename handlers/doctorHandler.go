package handlers

import (
	"SolidarityHospital/middlewares"
	"SolidarityHospital/models"
	"SolidarityHospital/services"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service      *services.DoctorService
	appointments *services.AppointmentService
}

func NewDoctorHandler(service *services.DoctorService, appointments *services.AppointmentService) *DoctorHandler {
	return &DoctorHandler{service: service, appointments: appointments}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if !bindJSON(c, &doctor) {
		return
	}
	if err := h.service.Create(c.Request.Context(), &doctor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctor, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// GetAllDoctors lists doctors, optionally filtered by ?specialization=.
func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	var (
		doctors []models.Doctor
		err     error
	)
	if specialization := c.Query("specialization"); specialization != "" {
		doctors, err = h.service.FilterBySpecialization(c.Request.Context(), specialization)
	} else {
		doctors, err = h.service.GetAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if !bindJSON(c, &doctor) {
		return
	}
	doctor.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), &doctor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DoctorHandler) Specializations(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Specializations())
}

// currentDoctor resolves the doctor profile of the logged-in doctor.
func (h *DoctorHandler) currentDoctor(c *gin.Context) (*models.Doctor, bool) {
	username, err := middlewares.ExtractUsernameFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Not authenticated", http.StatusUnauthorized, err)
		return nil, false
	}
	doctor, err := h.service.GetByEmail(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return doctor, true
}

// ownAppointment checks that the appointment in the path is assigned to the doctor.
func (h *DoctorHandler) ownAppointment(c *gin.Context, doctor *models.Doctor) (string, bool) {
	id := c.Param("id")
	appointment, err := h.appointments.GetByID(c.Request.Context(), id)
	if err == nil && appointment.DoctorID != doctor.ID {
		err = services.ErrAppointmentNotFound
	}
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return id, true
}

func (h *DoctorHandler) MyAppointments(c *gin.Context) {
	doctor, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	appointments, err := h.appointments.ForDoctor(c.Request.Context(), doctor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": doctor, "appointments": appointments})
}

func (h *DoctorHandler) ConfirmAppointment(c *gin.Context) {
	h.changeStatus(c, func(id string) (*models.Appointment, error) {
		return h.appointments.Confirm(c.Request.Context(), id)
	})
}

func (h *DoctorHandler) DeclineAppointment(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	// The reason is optional, so an empty body is accepted.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	h.changeStatus(c, func(id string) (*models.Appointment, error) {
		return h.appointments.Decline(c.Request.Context(), id, req.Reason)
	})
}

func (h *DoctorHandler) RescheduleAppointment(c *gin.Context) {
	var req struct {
		AppointmentDate string `json:"appointmentDate"`
		AppointmentTime string `json:"appointmentTime"`
	}
	if !bindJSON(c, &req) {
		return
	}
	h.changeStatus(c, func(id string) (*models.Appointment, error) {
		return h.appointments.Reschedule(c.Request.Context(), id, req.AppointmentDate, req.AppointmentTime)
	})
}

func (h *DoctorHandler) changeStatus(c *gin.Context, apply func(id string) (*models.Appointment, error)) {
	doctor, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	id, ok := h.ownAppointment(c, doctor)
	if !ok {
		return
	}
	appointment, err := apply(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}
