package utils

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request id middleware sets.
const RequestIDKey = "request_id"

// JSONResponse is the envelope every handler answers with. Errors carry
// the request id so a client report can be matched to the server log.
type JSONResponse struct {
	Status    bool        `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Message:   err.Error(),
		RequestID: c.GetString(RequestIDKey),
	})
}
