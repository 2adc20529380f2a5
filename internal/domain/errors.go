package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code and message so wrapped copies compare
// equal to the sentinel they were derived from.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Upload validation errors. Messages are returned to clients verbatim.
var (
	ErrNoPDFUploaded  = NewDomainError(ErrCodeValidation, "No pdf file uploaded!")
	ErrNotPDF         = NewDomainError(ErrCodeValidation, "File uploaded is not a pdf file")
	ErrNoPPTXUploaded = NewDomainError(ErrCodeValidation, "No pptx uploaded")
	ErrNotPPTX        = NewDomainError(ErrCodeValidation, "File uploaded is not a pptx file..")
	ErrUploadTooLarge = NewDomainError(ErrCodePayloadTooLarge, "File uploaded exceeds the size limit")
)

// Not found errors
var (
	ErrSummaryNotFound = NewDomainError(ErrCodeNotFound, "File not found. It may have been deleted")
)

// Processing errors
var (
	ErrExtractionFailed     = NewDomainError(ErrCodeInternalError, "text extraction failed")
	ErrStorageOperationFail = NewDomainError(ErrCodeInternalError, "storage operation failed")
)
