package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/services"
	"gorm.io/gorm"
)

const (
	callerKey = "caller"
	tokenKey  = "token"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// AuthMiddleware resolves the caller for every request. It never rejects:
// guests browse the menu and place orders without a session.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		caller := services.ResolveCaller(c.Request.Context(), db, token)
		if !caller.IsAnonymous() {
			c.Set(tokenKey, token)
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// GetCaller returns the caller set by AuthMiddleware, or Anonymous.
func GetCaller(c *gin.Context) models.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(models.Caller); ok {
			return caller
		}
	}
	return models.Anonymous
}

// GetToken returns the raw session token of an authenticated caller.
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// RequireAuth rejects anonymous callers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCaller(c).IsAnonymous() {
			abortWith(c, services.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
