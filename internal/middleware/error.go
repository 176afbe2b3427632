package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/plantissier/backend/internal/service"
)

// ErrorResponse is the JSON envelope every failed request returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers panics and renders errors that handlers attach with
// c.Error. Handlers report what failed; the status mapping lives here so it
// stays in one place.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("request panicked",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(RequestIDKey)),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(RequestIDKey)),
			)
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}

// statusFor maps formulation failures onto HTTP statuses. An unknown
// dessert is a 404, an unsatisfiable request a 400, a catalog fault a 500.
func statusFor(err error) int {
	var roleErr *service.UnsatisfiableRoleError
	var ratioErr *service.RatioInvariantError
	var dataErr *service.DataIntegrityError
	switch {
	case errors.Is(err, service.ErrUnknownDessertType):
		return http.StatusNotFound
	case errors.As(err, &roleErr), errors.As(err, &ratioErr):
		return http.StatusBadRequest
	case errors.As(err, &dataErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
