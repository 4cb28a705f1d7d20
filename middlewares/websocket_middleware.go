package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
	"gorm.io/gorm"
)

// WebSocketAuthMiddleware resolves the caller from the token query
// parameter, since browsers cannot set headers on a websocket handshake.
func WebSocketAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !websocket.IsWebSocketUpgrade(c.Request) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("websocket upgrade required"))
			c.Abort()
			return
		}

		token := c.Query("token")
		if token == "" {
			token = bearerToken(c)
		}
		caller := services.ResolveCaller(c.Request.Context(), db, token)
		if caller.IsAnonymous() {
			abortWith(c, services.ErrUnauthorized)
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}
