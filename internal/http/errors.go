package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"project-manager/internal/domain"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).WithField("request_id", RequestID(c)).Error("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": publicMessage(err)})
}

// publicMessage drops the sentinel prefix from wrapped domain errors.
func publicMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrNotFound, domain.ErrConflict, domain.ErrInvalid} {
		if trimmed, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return trimmed
		}
	}
	return msg
}
