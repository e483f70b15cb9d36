package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal server error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// NotFoundHandler answers routes nobody registered.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: "Route " + c.Request.Method + " " + c.Request.URL.Path + " not found",
	})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details interface{}) {
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, zap.Any("details", details), zap.String("path", c.Request.URL.Path))
	} else {
		GetLogger().Warn(message, zap.Any("details", details), zap.String("path", c.Request.URL.Path))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}
