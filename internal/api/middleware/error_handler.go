package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lbrouwer/surfcast/internal/dberrors"
)

// ErrorHandler centralizes error handling
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there were any errors
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			requestID := c.GetString("request_id")

			// Determine status code
			status := http.StatusInternalServerError
			message := "Internal server error"

			switch {
			case errors.Is(err, sql.ErrNoRows), dberrors.IsNotFound(err):
				status = http.StatusNotFound
				message = "Resource not found"
			case errors.Is(err, dberrors.ErrInvalidInput):
				status = http.StatusBadRequest
				message = "Invalid input"
			case dberrors.IsConflict(err):
				status = http.StatusConflict
				message = "Conflict"
			case dberrors.IsBusy(err):
				status = http.StatusServiceUnavailable
				message = "Store busy, retry"
			case errors.Is(err, dberrors.ErrProviderUnavailable):
				status = http.StatusBadGateway
				message = "Upstream provider unavailable"
			case errors.Is(err, context.DeadlineExceeded):
				status = http.StatusRequestTimeout
				message = "Request timeout"
			}

			c.JSON(status, gin.H{
				"error":      message,
				"request_id": requestID,
			})
		}
	}
}
