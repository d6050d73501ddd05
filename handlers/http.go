package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"teamspace/core"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to write JSON response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps domain error kinds to HTTP status codes. Errors
// without a kind are internal and never leak their message.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidationError(err):
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case core.IsNotFoundError(err):
		writeErrorResponse(w, http.StatusNotFound, err.Error())
	case core.IsUnauthorizedError(err):
		writeErrorResponse(w, http.StatusUnauthorized, err.Error())
	case core.IsIntegrityError(err):
		log.Printf("❌ Data integrity violation: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
	default:
		log.Printf("❌ Internal error: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
