package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

var errInternal = errors.New("internal server error")

// respondServiceError maps service errors onto HTTP statuses. Anything
// unrecognised is logged and hidden behind a 500.
func respondServiceError(c *gin.Context, err error) {
	var code int
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrConflict):
		code = http.StatusConflict
	default:
		utils.ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		_ = c.Error(err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}
	utils.RespondError(c, code, err)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}
