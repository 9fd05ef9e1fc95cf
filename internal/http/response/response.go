package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
)

// Envelope is the uniform response shape. Success responses carry Data,
// failures carry Message and Code.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func RespondOK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: payload})
}

func RespondCreated(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: payload})
}

// RespondError maps a service error onto the wire. Status-coded errors
// keep their status and message; anything else becomes an opaque 500.
func RespondError(c *gin.Context, err error) {
	status := apierr.StatusOf(err)
	msg := "internal server error"
	code := "internal_error"
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Status != 0 && ae.Status != http.StatusInternalServerError {
		msg = ae.Error()
		if ae.Code != "" {
			code = ae.Code
		}
	}
	c.JSON(status, Envelope{Success: false, Message: msg, Code: code})
}

// RespondValidation is the shortcut for request binding failures.
func RespondValidation(c *gin.Context, err error) {
	RespondError(c, apierr.Validation("invalid request: %v", err))
}
