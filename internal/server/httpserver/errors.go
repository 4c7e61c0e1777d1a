package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgServerError   = "Server error"
	msgInvalidBody   = "Invalid request body"
	msgUnauthorized  = "Unauthorized"
	msgTokenExpired  = "Token expired"
	msgUserNotFound  = "User not found"
	msgExportOffline = "Export is not configured"
)

var validationMessages = []struct {
	err error
	msg string
}{
	{common.ErrInvalidStatus, "Invalid status value. Must be 0 or 1."},
	{common.ErrMissingID, "Please provide a user ID"},
	{common.ErrMissingEmail, "Please provide an email"},
	{common.ErrMissingMobile, "Please provide a mobile number"},
	{common.ErrMissingFields, "Please fill all fields"},
}

// statusFor maps a service error to an HTTP status and client message.
// Unknown errors map to 500.
func statusFor(err error) (int, string) {
	for _, v := range validationMessages {
		if errors.Is(err, v.err) {
			return http.StatusBadRequest, v.msg
		}
	}

	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgUserNotFound
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, msgTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, common.ErrExportDisabled):
		return http.StatusNotImplemented, msgExportOffline
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// respondError writes the error envelope. Internal failures include the raw
// error text and are logged.
func (h *Handler) respondError(c *gin.Context, err error) {
	code, msg := statusFor(err)

	resp := ErrorResponse{Status: false, Message: msg}
	if code == http.StatusInternalServerError {
		resp.Error = err.Error()
		h.logger.Error(c.Request.Context(), "request failed",
			"path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)
	}

	c.AbortWithStatusJSON(code, resp)
}
