// File: /middleware/middleware.go
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"photoshare-api/logging"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// ErrorHandler turns errors attached with c.Error into a 500 when the
// handler did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		logging.WithComponent("http").Error("Request error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err.Err))

		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Message: "An unexpected error occurred",
			Code:    http.StatusInternalServerError,
		})
	}
}

// CORS applies rs/cors to gin and answers preflight requests directly.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ValidateJSON rejects write requests whose body is not JSON, except on
// the multipart upload endpoints.
func ValidateJSON() gin.HandlerFunc {
	skipPaths := []string{
		"/photo/upload",
		"/user/upload-avatar",
	}

	return func(c *gin.Context) {
		for _, path := range skipPaths {
			if strings.HasSuffix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodDelete, http.MethodOptions, http.MethodHead:
			c.Next()
			return
		}

		// bodiless writes such as logout carry no content type
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		if !strings.Contains(c.GetHeader("Content-Type"), "application/json") {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid content type",
				Message: "Content-Type must be application/json",
				Code:    http.StatusBadRequest,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestLogger emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	logger := logging.WithComponent("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if userID := c.GetString("user_id"); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("Request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request", fields...)
		default:
			logger.Info("Request", fields...)
		}
	}
}

// SecurityHeaders middleware adds security headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}
