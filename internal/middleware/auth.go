package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/auth"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

// Context keys for storing claims in gin.Context. Handlers read them through
// the helpers below.
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
	ContextKeyEmail  = "email"
)

// AuthMiddleware returns a Gin middleware that validates Bearer JWT tokens.
// A missing or bad token aborts the chain with 401; a good one stores the
// claims and calls c.Next().
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		tokenString, ok := bearer(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the caller's claims when a valid Bearer token is present
// and lets anonymous requests through untouched.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearer(c.GetHeader("Authorization")); ok {
			if claims, err := auth.ParseToken(tokenString, secret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller has one of
// roles. It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, GetRole(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// SettingsSource is the part of the data service the maintenance gate needs.
type SettingsSource interface {
	QuerySettings(ctx context.Context) (*models.SystemSettings, error)
}

// Maintenance rejects mutating requests with 503 while the platform is in
// maintenance mode. Admins holding a valid token pass through, as do the
// exempt paths (login, so an admin can get that token).
func Maintenance(settings SettingsSource, secret string, logger *zap.Logger, exempt ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if slices.Contains(exempt, c.FullPath()) {
			c.Next()
			return
		}

		// Unreadable settings close the gate: only admins may write while the
		// store is in doubt.
		s, err := settings.QuerySettings(c.Request.Context())
		if err != nil {
			logger.Error("failed to load settings for maintenance gate", zap.Error(err))
		} else if s == nil || !s.MaintenanceMode {
			c.Next()
			return
		}

		if tokenString, ok := bearer(c.GetHeader("Authorization")); ok {
			if claims, err := auth.ParseToken(tokenString, secret); err == nil && claims.Role == models.RoleAdmin {
				c.Next()
				return
			}
		}
		msg := "platform is under maintenance"
		if err != nil {
			msg = "storage unavailable"
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": msg})
	}
}

func bearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyRole, claims.Role)
	c.Set(ContextKeyEmail, claims.Email)
}

// GetUserID returns "" when the request was not authenticated.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

func GetRole(c *gin.Context) models.Role {
	val, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	role, ok := val.(models.Role)
	if !ok {
		return ""
	}
	return role
}

func GetEmail(c *gin.Context) string {
	return c.GetString(ContextKeyEmail)
}

func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == models.RoleAdmin
}
