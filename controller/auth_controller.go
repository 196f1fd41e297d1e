package controller

import (
	"aihub-backend/middelware"
	"aihub-backend/models"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	jwtManager *middelware.JWTManager
	activity   services.ActivityServiceInterface
	logger     logger.Logger
}

func NewAuthController(jwtManager *middelware.JWTManager, activity services.ActivityServiceInterface, logger logger.Logger) *AuthController {
	return &AuthController{
		jwtManager: jwtManager,
		activity:   activity,
		logger:     logger,
	}
}

// Login handles POST /auth/login
// @Summary Admin login
// @Description Exchanges the admin credentials for a Bearer token. Only registered when auth is enabled.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Admin credentials"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Router /auth/login [post]
func (h *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := services.ValidateRequest(&req); err != nil {
		respondError(c, h.logger, err, "Login failed")
		return
	}

	if err := h.jwtManager.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, middelware.ErrInvalidCredentials) {
			h.logger.Warnf("Failed admin login for %q from %s", req.Username, c.ClientIP())
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Error:   true,
				Message: "Invalid username or password",
			})
			return
		}
		respondError(c, h.logger, err, "Login failed")
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		respondError(c, h.logger, err, "Token generation failed")
		return
	}

	h.activity.Append(models.ActivityAdminLogin, map[string]interface{}{
		"username":  req.Username,
		"ipAddress": c.ClientIP(),
	})

	success(c, http.StatusOK, "Login successful", models.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.jwtManager.Config.JWTExpiresIn.Seconds()),
	})
	h.logger.Infof("Admin %s logged in, token expires at %s", req.Username, expiresAt.Format("2006-01-02 15:04:05"))
}

// Logout handles POST /auth/logout
// @Summary Revoke the current admin token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Router /auth/logout [post]
func (h *AuthController) Logout(c *gin.Context) {
	value, ok := c.Get(middelware.ContextClaimsKey)
	claims, _ := value.(*models.AdminClaims)
	if !ok || claims == nil {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Error:   true,
			Message: "Authentication required",
		})
		return
	}

	expiry := time.Now().Add(h.jwtManager.Config.JWTExpiresIn)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	h.jwtManager.RevokeToken(claims.ID, expiry)
	h.jwtManager.CleanupExpiredTokens()
	success(c, http.StatusOK, "Logged out successfully", nil)
}
