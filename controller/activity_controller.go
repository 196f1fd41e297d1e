package controller

import (
	"aihub-backend/models"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	service services.ActivityServiceInterface
	logger  logger.Logger
}

func NewActivityController(service services.ActivityServiceInterface, logger logger.Logger) *ActivityController {
	return &ActivityController{
		service: service,
		logger:  logger,
	}
}

// LogActivity handles POST /activity
// @Summary Record a client-side event
// @Tags Activity
// @Accept json
// @Produce json
// @Param request body models.LogActivityRequest true "Event"
// @Success 201 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /activity [post]
func (h *ActivityController) LogActivity(c *gin.Context) {
	var req models.LogActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Log(&req); err != nil {
		respondError(c, h.logger, err, "Failed to log activity")
		return
	}
	success(c, http.StatusCreated, "Activity logged", nil)
}

// Stats handles GET /activity/stats
// @Summary Activity counts
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ActivityStats}
// @Router /activity/stats [get]
func (h *ActivityController) Stats(c *gin.Context) {
	success(c, http.StatusOK, "", h.service.Stats())
}

// Recent handles GET /activity/recent
// @Summary Most recent activity, newest first
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of entries" default(20)
// @Success 200 {object} models.APIResponse{data=[]models.Activity}
// @Router /activity/recent [get]
func (h *ActivityController) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	success(c, http.StatusOK, "", h.service.Recent(limit))
}
