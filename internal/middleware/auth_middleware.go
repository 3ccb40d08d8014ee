package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/notesapp/backend/internal/errors"
	"github.com/notesapp/backend/pkg/redis"
	"github.com/notesapp/backend/pkg/util"
)

// Context key for the authenticated user
const UserIDKey = "user_id"

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the bearer token on protected routes.
// Every failure mode answers with the same 401 so callers cannot
// distinguish a missing header from an expired or forged token;
// the distinction is kept in the logs only.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":    c.Request.URL.Path,
				"expired": err == util.ErrExpiredToken,
				"error":   err.Error(),
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		// Tokens revoked by logout stay blacklisted until their natural expiry
		if redis.Enabled() {
			revoked, err := redis.IsTokenBlacklisted(c.Request.Context(), token)
			if err != nil {
				log.Error("Token blacklist check failed", err, map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusInternalServerError, errors.InternalServerError, "Internal server error")
				c.Abort()
				return
			}
			if revoked {
				log.Warn("Revoked token presented", map[string]interface{}{
					"path":    c.Request.URL.Path,
					"user_id": claims.UserID,
				})
				errors.Unauthorized(c, "Authentication required")
				c.Abort()
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)

		log.Debug("User authenticated", map[string]interface{}{
			"user_id": claims.UserID,
		})

		c.Next()
	}
}

// GetUserID extracts the authenticated user's ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}
