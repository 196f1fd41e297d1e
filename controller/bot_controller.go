package controller

import (
	"aihub-backend/models"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BotController struct {
	service services.BotServiceInterface
	logger  logger.Logger
}

func NewBotController(service services.BotServiceInterface, logger logger.Logger) *BotController {
	return &BotController{
		service: service,
		logger:  logger,
	}
}

// CreateBot handles POST /bots
// @Summary Create an AI bot
// @Tags AI Bots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateBotRequest true "Bot definition"
// @Success 201 {object} models.APIResponse{data=models.AIBot}
// @Failure 400 {object} models.APIResponse
// @Router /bots [post]
func (h *BotController) CreateBot(c *gin.Context) {
	var req models.CreateBotRequest
	if !bindJSON(c, &req) {
		return
	}

	bot, err := h.service.CreateBot(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create AI Bot")
		return
	}
	success(c, http.StatusCreated, "AI Bot created successfully", bot)
}

// ListBots handles GET /bots
// @Summary List AI bots
// @Tags AI Bots
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Bot status"
// @Param type query string false "Bot type"
// @Param businessId query string false "Owning business"
// @Param search query string false "Case-insensitive match on name or description"
// @Success 200 {object} models.APIResponse
// @Router /bots [get]
func (h *BotController) ListBots(c *gin.Context) {
	filter := models.BotFilter{
		ListQuery:  listQuery(c),
		Status:     models.BotStatus(c.Query("status")),
		Type:       models.BotType(c.Query("type")),
		BusinessID: c.Query("businessId"),
	}

	bots, pagination, err := h.service.ListBots(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch AI Bots")
		return
	}
	success(c, http.StatusOK, "", gin.H{
		"bots":       bots,
		"pagination": pagination,
	})
}

// GetBot handles GET /bots/:id
// @Summary Get an AI bot
// @Tags AI Bots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} models.APIResponse{data=models.AIBot}
// @Failure 404 {object} models.APIResponse
// @Router /bots/{id} [get]
func (h *BotController) GetBot(c *gin.Context) {
	bot, err := h.service.GetBot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch AI Bot")
		return
	}
	success(c, http.StatusOK, "", bot)
}

// UpdateBot handles PUT /bots/:id
// @Summary Update an AI bot
// @Tags AI Bots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param request body models.UpdateBotRequest true "Fields to change"
// @Success 200 {object} models.APIResponse{data=models.AIBot}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /bots/{id} [put]
func (h *BotController) UpdateBot(c *gin.Context) {
	var req models.UpdateBotRequest
	if !bindJSON(c, &req) {
		return
	}

	bot, err := h.service.UpdateBot(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update AI Bot")
		return
	}
	success(c, http.StatusOK, "AI Bot updated successfully", bot)
}

// TrainBot handles POST /bots/:id/train
// @Summary Add training data
// @Tags AI Bots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param request body models.TrainBotRequest true "FAQs, business info and custom responses"
// @Success 200 {object} models.APIResponse{data=models.TrainResult}
// @Failure 404 {object} models.APIResponse
// @Router /bots/{id}/train [post]
func (h *BotController) TrainBot(c *gin.Context) {
	var req models.TrainBotRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.TrainBot(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to train AI Bot")
		return
	}
	success(c, http.StatusOK, "AI Bot training started", result)
}

// Chat handles POST /bots/:id/chat
// @Summary Chat with an active bot
// @Tags AI Bots
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param request body models.ChatRequest true "User message"
// @Success 200 {object} models.APIResponse{data=models.ChatResult}
// @Failure 400 {object} models.APIResponse "Empty message or bot not active"
// @Failure 404 {object} models.APIResponse
// @Router /bots/{id}/chat [post]
func (h *BotController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Chat(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to process chat message")
		return
	}
	success(c, http.StatusOK, "", result)
}

// Performance handles GET /bots/:id/performance
// @Summary Bot performance summary
// @Tags AI Bots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} models.APIResponse{data=models.BotPerformanceView}
// @Failure 404 {object} models.APIResponse
// @Router /bots/{id}/performance [get]
func (h *BotController) Performance(c *gin.Context) {
	view, err := h.service.Performance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch performance data")
		return
	}
	success(c, http.StatusOK, "", view)
}

// SubmitFeedback handles POST /bots/:id/feedback
// @Summary Rate a bot conversation
// @Tags AI Bots
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param request body models.FeedbackRequest true "Rating 1-5"
// @Success 200 {object} models.APIResponse{data=models.FeedbackResult}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /bots/{id}/feedback [post]
func (h *BotController) SubmitFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.SubmitFeedback(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to submit feedback")
		return
	}
	success(c, http.StatusOK, "Feedback submitted successfully", result)
}

// ArchiveBot handles DELETE /bots/:id
// @Summary Archive an AI bot
// @Tags AI Bots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /bots/{id} [delete]
func (h *BotController) ArchiveBot(c *gin.Context) {
	if err := h.service.ArchiveBot(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to archive AI Bot")
		return
	}
	success(c, http.StatusOK, "AI Bot archived successfully", nil)
}
