package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

// RequireRoles guards a route group. Services check roles again; this
// keeps whole sections (admin, kitchen) closed before any binding happens.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.RequireRole(GetCaller(c), roles...); err != nil {
			abortWith(c, err)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	code := http.StatusForbidden
	if errors.Is(err, services.ErrUnauthorized) {
		code = http.StatusUnauthorized
	}
	utils.RespondError(c, code, err)
	c.Abort()
}
