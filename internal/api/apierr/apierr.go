// Package apierr writes domain errors as JSON responses.
package apierr

import (
	"errors"
	"log/slog"
	"net/http"

	"startup-marketplace/internal/errs"

	"github.com/gin-gonic/gin"
)

// Status maps an error kind to its HTTP status.
func Status(k errs.Kind) int {
	switch k {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Write aborts c with the response for err. Database failures are logged and hidden.
func Write(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	status := Status(kind)

	var e *errs.Error
	if !errors.As(err, &e) || kind == errs.KindDatabase {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": e.Message}
	if e.Details != nil {
		body["details"] = e.Details
	}
	c.AbortWithStatusJSON(status, body)
}

// BadRequest aborts with a 400 carrying msg.
func BadRequest(c *gin.Context, msg string, details ...any) {
	body := gin.H{"error": msg}
	if len(details) > 0 {
		body["details"] = details[0]
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
