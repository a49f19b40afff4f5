package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to an HTTP status and a client-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "Username already registered"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Book not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
	if msg == "" {
		return common.ErrorValidation.Error()
	}
	return msg
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), err.Error(), "request_id", c.GetString(requestIDKey))
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", common.BearerScheme)
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

func (s *HTTPServer) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": msg})
}
