package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shegacafe/cafe-app/kds"
	"github.com/shegacafe/cafe-app/middlewares"
	"github.com/shegacafe/cafe-app/utils"
)

type KDSController struct {
	Hub      *kds.Hub
	upgrader websocket.Upgrader
}

// NewKDSController accepts upgrades from the configured origin; "*"
// accepts any.
func NewKDSController(hub *kds.Hub, allowedOrigin string) *KDSController {
	return &KDSController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Serve -> GET /ws/orders?token=...
func (kc *KDSController) Serve(c *gin.Context) {
	caller := middlewares.GetCaller(c)
	conn, err := kc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	kc.Hub.Attach(conn, caller.Role)
}
