package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloo-solutions/docsum/internal/domain"
)

// GenericProcessingError is returned for every failure that is not a
// validation or lookup error.
const GenericProcessingError = "An error occured durring processing"

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Message: message})
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error type.
// Client errors carry their domain message; everything else collapses into
// GenericProcessingError.
func HandleError(w http.ResponseWriter, err error) {
	status := DomainErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		Error(w, status, GenericProcessingError)
		return
	}

	var domainErr *domain.DomainError
	errors.As(err, &domainErr)
	Error(w, status, domainErr.Message)
}
