package middelware

import (
	"aihub-backend/models"
	"aihub-backend/utils"
	"aihub-backend/utils/logger"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	adminRole = "admin"

	// ContextClaimsKey is the gin context key holding validated *models.AdminClaims
	ContextClaimsKey = "jwt_claims"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// JWTManager issues and validates admin tokens
type JWTManager struct {
	Config            *models.Config
	Logger            logger.Logger
	BlacklistedTokens map[string]time.Time // token id -> expiry, for immediate revocation
	TokenMutex        sync.RWMutex
	now               func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger) *JWTManager {
	return &JWTManager{
		Config:            cfg,
		Logger:            log,
		BlacklistedTokens: make(map[string]time.Time),
		now:               time.Now,
	}
}

// Authenticate checks admin credentials against the configured bcrypt hash
func (j *JWTManager) Authenticate(username, password string) error {
	if j.Config.AdminUsername == "" || j.Config.AdminPasswordHash == "" {
		return ErrInvalidCredentials
	}
	if username != j.Config.AdminUsername {
		return ErrInvalidCredentials
	}
	if !utils.CheckPassword(j.Config.AdminPasswordHash, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken signs an HS256 token for the admin user
func (j *JWTManager) GenerateToken(username string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.Config.JWTExpiresIn)
	claims := models.AdminClaims{
		Username: username,
		Role:     adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", time.Time{}, err
	}

	j.Logger.Debugf("Generated JWT token for admin: %s", username)
	return tokenString, expiresAt, nil
}

// ValidateToken parses tokenString and returns its claims
func (j *JWTManager) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject anything but HS256 to prevent algorithm confusion
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}
		return []byte(j.Config.JWTSecret), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		j.Logger.Debugf("Failed to parse JWT token: %v", err)
		return nil, err
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Role != adminRole || claims.Username != j.Config.AdminUsername {
		return nil, fmt.Errorf("token is not issued to the admin")
	}

	j.TokenMutex.RLock()
	expiry, revoked := j.BlacklistedTokens[claims.ID]
	j.TokenMutex.RUnlock()
	if revoked && expiry.After(j.now()) {
		return nil, fmt.Errorf("token has been revoked")
	}

	return claims, nil
}

// RevokeToken blacklists a token id until its expiry (logout)
func (j *JWTManager) RevokeToken(tokenID string, expiry time.Time) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	j.BlacklistedTokens[tokenID] = expiry
	j.Logger.Debugf("Revoked token %s", tokenID)
}

// CleanupExpiredTokens removes expired tokens from blacklist
func (j *JWTManager) CleanupExpiredTokens() {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	now := j.now()
	for tokenID, expiry := range j.BlacklistedTokens {
		if expiry.Before(now) {
			delete(j.BlacklistedTokens, tokenID)
		}
	}
}

// AuthMiddleware requires a valid admin Bearer token. It is a pass-through when auth is disabled.
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !j.Config.AuthEnabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Authorization header must be in format: Bearer <token>")
			return
		}

		claims, err := j.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			j.Logger.Warnf("Token validation failed: %v", err)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.Username)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
		Error:   true,
		Message: message,
	})
}
