// Package response writes JSON bodies and maps error kinds to HTTP statuses.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
)

const internalMessage = "An unexpected error occurred. Please try again later."

// Message is the body of every error response.
type Message struct {
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Status returns the HTTP status for kind.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindCodeExpired, apperr.KindCodeInvalid:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidCredentials, apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindUnauthorized:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as {"message": ...}. Server-side failures are logged
// and their details are not exposed, except for mail delivery whose
// message is meant for the caller.
func Error(w http.ResponseWriter, log *logger.Logger, err error) {
	kind := apperr.KindOf(err)
	status := Status(kind)

	message := err.Error()
	switch kind {
	case apperr.KindDependency, apperr.KindConfiguration:
		log.Error("request failed",
			"kind", string(kind),
			"error", err.Error())
		message = internalMessage
	case apperr.KindDeliveryFailed:
		log.Error("request failed",
			"kind", string(kind),
			"error", err.Error())
		message = publicMessage(err)
	}

	JSON(w, status, Message{Message: message})
}

// publicMessage drops the wrapped cause from a delivery error.
func publicMessage(err error) string {
	message, _, _ := strings.Cut(err.Error(), ": ")
	return message
}
