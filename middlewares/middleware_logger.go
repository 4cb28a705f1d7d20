package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/utils"
	"github.com/sirupsen/logrus"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"request_id": c.GetString(utils.RequestIDKey),
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}
		if caller := GetCaller(c); !caller.IsAnonymous() {
			fields["user_id"] = caller.UserID
			fields["role"] = caller.Role
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= 500:
			utils.ErrorLogger.WithFields(fields).Error("request failed")
		case status >= 400:
			utils.InfoLogger.WithFields(fields).Warn("request rejected")
		default:
			utils.InfoLogger.WithFields(fields).Info("request")
		}
	}
}
