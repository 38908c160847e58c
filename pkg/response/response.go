package response

import (
	"errors"
	"net/http"

	"fixly/internal/domain"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform API response shape.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK writes a 200 with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Message writes a 200 with a human-readable message and no data.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

// Fail writes an error envelope with the given status, error code and message.
func Fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, Envelope{Success: false, Error: code, Message: msg})
}

// Abort writes an error envelope and aborts the handler chain.
func Abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: code, Message: msg})
}

// FromError maps a domain error to its HTTP status and writes the envelope.
// Unknown errors become a 500 without leaking internals.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		Fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		Fail(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		Fail(c, http.StatusNotFound, "NotFound", err.Error())
	case errors.Is(err, domain.ErrUpstream):
		Fail(c, http.StatusBadGateway, "UpstreamFailure", err.Error())
	default:
		Fail(c, http.StatusInternalServerError, "Internal", "internal error")
	}
}
