package handlers

import (
	"SolidarityHospital/models"
	"SolidarityHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if !bindJSON(c, &patient) {
		return
	}
	if err := h.service.Create(c.Request.Context(), &patient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.GetByID(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if !bindJSON(c, &patient) {
		return
	}
	patient.ID = c.Param("patient_id")
	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("patient_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
