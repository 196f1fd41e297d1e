package controller

import (
	"aihub-backend/models"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP status and envelope the API exposes.
// fallback is the client-facing message for unexpected failures; their detail is only logged.
func respondError(c *gin.Context, log logger.Logger, err error, fallback string) {
	var (
		verr     *services.ValidationError
		notFound *services.NotFoundError
		conflict *services.SlotConflictError
		badSlot  *services.InvalidSlotError
		badState *services.InvalidStateError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Error:   true,
			Message: "Validation failed",
			Details: verr.Fields,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, models.APIResponse{
			Error:   true,
			Message: notFoundMessage(notFound),
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, models.APIResponse{
			Error:   true,
			Message: "This time slot is already booked. Please select another time.",
			Data:    gin.H{"availableSlots": conflict.AvailableSlots},
		})
	case errors.As(err, &badSlot):
		c.JSON(http.StatusBadRequest, models.APIResponse{Error: true, Message: badSlot.Reason})
	case errors.As(err, &badState):
		c.JSON(http.StatusBadRequest, models.APIResponse{Error: true, Message: badState.Reason})
	default:
		log.Errorf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Error:   true,
			Message: fallback,
		})
	}
}

func notFoundMessage(e *services.NotFoundError) string {
	if e.ID == "" {
		return "No " + e.Resource + " found"
	}
	r := e.Resource
	if r != "" {
		r = strings.ToUpper(r[:1]) + r[1:]
	}
	return r + " not found"
}

// bindJSON decodes the request body into req, answering 400 on malformed input
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Error:   true,
			Message: "Invalid request body",
			Details: []models.FieldError{{Field: "body", Reason: err.Error()}},
		})
		return false
	}
	return true
}

func success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.APIResponse{
		Message: message,
		Data:    data,
	})
}

// listQuery reads page, limit, search, sortBy and sortOrder; bad numbers fall back to defaults
func listQuery(c *gin.Context) models.ListQuery {
	q := models.ListQuery{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil {
		q.Limit = l
	}
	return q
}
