package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carmarket/internal/pkg/validator"
)

// Success writes data as the bare JSON body.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// Error writes a plain-text message and stops the chain.
func Error(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
	c.Abort()
}

// Fail hands err to the storage error responder, which picks the status.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Invalid reports a body that could not be decoded or failed validation.
func Invalid(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Fail(c, err)
		return
	}

	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		Error(c, http.StatusBadRequest, verr.Error())
		return
	}

	Error(c, http.StatusBadRequest, "Invalid request body.")
}

// Propagate answers validation errors with 400 and hands anything else to
// the storage error responder.
func Propagate(c *gin.Context, err error) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		Error(c, http.StatusBadRequest, verr.Error())
		return
	}
	Fail(c, err)
}
