package handlers

import (
	"SolidarityHospital/models"
	"SolidarityHospital/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req models.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	invoice, err := h.service.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *BillingHandler) GetAllInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *BillingHandler) ToggleInvoice(c *gin.Context) {
	invoice, err := h.service.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *BillingHandler) DeleteInvoice(c *gin.Context) {
	if err := h.service.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BillingHandler) GetAllPayments(c *gin.Context) {
	payments, err := h.service.ListPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *BillingHandler) GetReport(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context(), c.Param("period"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportReport serves the report as a downloadable JSON file.
func (h *BillingHandler) ExportReport(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context(), c.Param("period"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+services.ReportFileName+`"`)
	c.IndentedJSON(http.StatusOK, h.service.ExportReport(report))
}
