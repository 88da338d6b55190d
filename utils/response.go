// File: /utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoshare-api/logging"
	"photoshare-api/services"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendValidationError(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: err,
		Code:    http.StatusBadRequest,
	})
}

func SendMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// SendServiceError maps a service error to its HTTP status. Errors outside
// the service taxonomy are logged and reported as 500.
func SendServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logging.GetLogger().Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("user_id", c.GetString("user_id")),
			zap.Error(err))
		SendError(c, status, "Internal server error")
		return
	}

	SendError(c, status, err.Error())
}
