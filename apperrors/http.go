package apperrors

import (
	"log"
	"net/http"
)

// StatusFor maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is an internal failure; those are logged here so a 500
// never leaves without a trace, whichever handler produced it.
func StatusFor(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsCapacityExceeded(err):
		return http.StatusConflict
	case IsAlreadyExists(err):
		return http.StatusConflict
	default:
		log.Printf("❌ Internal error: %v", err)
		return http.StatusInternalServerError
	}
}
