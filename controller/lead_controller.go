package controller

import (
	"aihub-backend/models"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type LeadController struct {
	service services.LeadServiceInterface
	logger  logger.Logger
}

func NewLeadController(service services.LeadServiceInterface, logger logger.Logger) *LeadController {
	return &LeadController{
		service: service,
		logger:  logger,
	}
}

// requestContext captures the provenance recorded on new leads
func requestContext(c *gin.Context) models.RequestContext {
	return models.RequestContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		UTM: models.UTMData{
			Source:   c.Query("utm_source"),
			Medium:   c.Query("utm_medium"),
			Campaign: c.Query("utm_campaign"),
			Term:     c.Query("utm_term"),
			Content:  c.Query("utm_content"),
		},
	}
}

// CreateContact handles POST /leads
// @Summary Submit a contact inquiry
// @Description Creates a pending lead from the website contact form. UTM parameters are read from the query string.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.CreateContactRequest true "Contact details"
// @Param utm_source query string false "UTM source"
// @Param utm_medium query string false "UTM medium"
// @Param utm_campaign query string false "UTM campaign"
// @Success 201 {object} models.APIResponse{data=models.ContactResult}
// @Failure 400 {object} models.APIResponse "Validation failed"
// @Failure 500 {object} models.APIResponse
// @Router /leads [post]
func (h *LeadController) CreateContact(c *gin.Context) {
	var req models.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateContactLead(c.Request.Context(), &req, requestContext(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to submit contact form. Please try again later.")
		return
	}

	success(c, http.StatusCreated, "Thank you for your inquiry! We'll get back to you within 24 hours.", result)
}

// BookDemo handles POST /leads/demo
// @Summary Book a product demo
// @Description Books one of the fixed daily demo slots. Answers 409 with the remaining slots when the slot is taken.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.BookDemoRequest true "Demo booking"
// @Success 201 {object} models.APIResponse{data=models.BookingResult}
// @Failure 400 {object} models.APIResponse "Validation failed or date not in the future"
// @Failure 409 {object} models.APIResponse "Slot already booked"
// @Failure 500 {object} models.APIResponse
// @Router /leads/demo [post]
func (h *LeadController) BookDemo(c *gin.Context) {
	var req models.BookDemoRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.BookDemo(c.Request.Context(), &req, requestContext(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to book demo. Please try again later.")
		return
	}

	success(c, http.StatusCreated, "Demo booked successfully! We'll send you a confirmation email shortly.", result)
}

// ListLeads handles GET /leads
// @Summary List leads
// @Tags Leads
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Lead status"
// @Param businessType query string false "Business type"
// @Param inquiryType query string false "Inquiry type"
// @Param search query string false "Case-insensitive match on name, business or email"
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Success 200 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /leads [get]
func (h *LeadController) ListLeads(c *gin.Context) {
	filter := models.LeadFilter{
		ListQuery:    listQuery(c),
		Status:       models.LeadStatus(c.Query("status")),
		BusinessType: models.BusinessType(c.Query("businessType")),
		InquiryType:  models.InquiryType(c.Query("inquiryType")),
	}

	leads, pagination, err := h.service.ListLeads(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch contacts")
		return
	}

	success(c, http.StatusOK, "", gin.H{
		"leads":      leads,
		"pagination": pagination,
	})
}

// GetLead handles GET /leads/:id
// @Summary Get a lead
// @Tags Leads
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.APIResponse{data=models.Lead}
// @Failure 404 {object} models.APIResponse
// @Router /leads/{id} [get]
func (h *LeadController) GetLead(c *gin.Context) {
	lead, err := h.service.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch contact")
		return
	}
	success(c, http.StatusOK, "", lead)
}

// UpdateLead handles PUT /leads/:id
// @Summary Update lead status, priority, assignment, tags or append a note
// @Tags Leads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.UpdateLeadRequest true "Partial update"
// @Success 200 {object} models.APIResponse{data=models.Lead}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse "Re-activation hit a booked slot"
// @Router /leads/{id} [put]
func (h *LeadController) UpdateLead(c *gin.Context) {
	var req models.UpdateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	lead, err := h.service.UpdateLead(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update contact")
		return
	}
	success(c, http.StatusOK, "Contact updated successfully", lead)
}

// RescheduleDemo handles PUT /leads/:id/reschedule
// @Summary Move a demo to another slot
// @Tags Leads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.RescheduleRequest true "New slot"
// @Success 200 {object} models.APIResponse{data=models.RescheduleResult}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /leads/{id}/reschedule [put]
func (h *LeadController) RescheduleDemo(c *gin.Context) {
	var req models.RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.RescheduleDemo(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to reschedule demo")
		return
	}
	success(c, http.StatusOK, "Demo rescheduled successfully", result)
}

// ArchiveLead handles DELETE /leads/:id
// @Summary Archive a lead
// @Description Soft delete. Archiving an archived lead succeeds.
// @Tags Leads
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /leads/{id} [delete]
func (h *LeadController) ArchiveLead(c *gin.Context) {
	if err := h.service.ArchiveLead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to archive contact")
		return
	}
	success(c, http.StatusOK, "Contact archived successfully", nil)
}

// Availability handles GET /leads/availability
// @Summary Free demo slots for a date
// @Tags Leads
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} models.APIResponse{data=models.Availability}
// @Failure 400 {object} models.APIResponse
// @Router /leads/availability [get]
func (h *LeadController) Availability(c *gin.Context) {
	availability, err := h.service.Availability(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to check availability")
		return
	}
	success(c, http.StatusOK, "", availability)
}

// DemoSlots handles GET /leads/demo/slots
// @Summary Booked demos ordered by date and time
// @Tags Leads
// @Security BearerAuth
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD), applied with endDate"
// @Param endDate query string false "Range end (YYYY-MM-DD), applied with startDate"
// @Param status query string false "Lead status"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /leads/demo/slots [get]
func (h *LeadController) DemoSlots(c *gin.Context) {
	filter := models.DemoSlotFilter{Status: models.LeadStatus(c.Query("status"))}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"startDate", &filter.StartDate}, {"endDate", &filter.EndDate}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		day, err := services.ParseCalendarDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.APIResponse{
				Error:   true,
				Message: "Validation failed",
				Details: []models.FieldError{{Field: p.name, Reason: "must be a valid date (YYYY-MM-DD)"}},
			})
			return
		}
		*p.dst = &day
	}

	slots, err := h.service.DemoSlots(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch demo slots")
		return
	}
	success(c, http.StatusOK, "", slots)
}

// Statistics handles GET /leads/stats
// @Summary Lead statistics
// @Tags Leads
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.LeadStats}
// @Router /leads/stats [get]
func (h *LeadController) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch contact statistics")
		return
	}
	success(c, http.StatusOK, "", stats)
}

// ExportCSV handles GET /leads/export
// @Summary Export all leads as CSV
// @Tags Leads
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {file} file
// @Failure 404 {object} models.APIResponse "No contacts found"
// @Router /leads/export [get]
func (h *LeadController) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to export contacts")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=contacts.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
