package controller

import (
	"aihub-backend/models"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InfrastructureController struct {
	service services.InfrastructureServiceInterface
	logger  logger.Logger
}

func NewInfrastructureController(service services.InfrastructureServiceInterface, logger logger.Logger) *InfrastructureController {
	return &InfrastructureController{
		service: service,
		logger:  logger,
	}
}

// GetWorkerStatus handles GET /infrastructure/worker/status
// @Summary Get worker execution status
// @Description Table bootstrap progress, reminder schedule and the outcome of the last reminder pass
// @Tags Infrastructure
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ExecutionResult} "Worker ready"
// @Success 202 {object} models.APIResponse{data=models.ExecutionResult} "Worker still provisioning"
// @Failure 503 {object} models.APIResponse "Worker failed or stopped"
// @Failure 500 {object} models.APIResponse "Failed to retrieve worker status"
// @Router /infrastructure/worker/status [get]
func (h *InfrastructureController) GetWorkerStatus(c *gin.Context) {
	workerStatus, err := h.service.GetWorkerStatus(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to get worker status: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Error:   true,
			Message: "Failed to retrieve worker status",
		})
		return
	}

	httpStatus := mapWorkerStatusToHTTP(workerStatus)
	c.JSON(httpStatus, models.APIResponse{
		Error:   httpStatus >= http.StatusInternalServerError,
		Message: statusMessage(workerStatus),
		Data:    workerStatus,
	})
}

// RunReminders handles POST /infrastructure/worker/reminders
// @Summary Run the demo reminder pass now
// @Description Sends reminders for demos starting within the configured lead time without waiting for the schedule
// @Tags Infrastructure
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse "Worker not running"
// @Failure 500 {object} models.APIResponse
// @Router /infrastructure/worker/reminders [post]
func (h *InfrastructureController) RunReminders(c *gin.Context) {
	sent, err := h.service.RunReminders(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrWorkerUnavailable) {
			c.JSON(http.StatusServiceUnavailable, models.APIResponse{
				Error:   true,
				Message: "Reminder worker is not running",
			})
			return
		}
		h.logger.Errorf("Manual reminder pass failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Error:   true,
			Message: "Failed to send reminders",
		})
		return
	}

	success(c, http.StatusOK, fmt.Sprintf("%d reminder(s) sent", sent), gin.H{"sent": sent})
}

// mapWorkerStatusToHTTP maps worker execution status to HTTP status codes
func mapWorkerStatusToHTTP(ws *models.ExecutionResult) int {
	switch ws.Status {
	case models.StatusCompleted, models.StatusSendingReminders:
		return http.StatusOK
	case models.StatusInitializing, models.StatusCreatingTables, models.StatusRetrying:
		return http.StatusAccepted
	case models.StatusFailed, models.StatusStopped:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

func statusMessage(ws *models.ExecutionResult) string {
	switch ws.Status {
	case models.StatusCompleted:
		if ws.ErrorMessage != "" {
			return "Worker is running, last reminder pass failed"
		}
		return "Worker is running and healthy"
	case models.StatusSendingReminders:
		return "Sending demo reminders"
	case models.StatusInitializing:
		return "Initializing worker"
	case models.StatusCreatingTables:
		return "Creating DynamoDB tables"
	case models.StatusRetrying:
		return fmt.Sprintf("Retrying table setup (attempt %d)", ws.RetryCount+1)
	case models.StatusFailed:
		return "Worker setup failed - manual intervention may be required"
	case models.StatusStopped:
		return "Worker is stopped"
	default:
		return "Worker status retrieved successfully"
	}
}
