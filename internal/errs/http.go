package errs

import (
	"net/http"
)

const (
	// InvalidRequestMessage is the only message a routing failure ever carries.
	InvalidRequestMessage = "Invalid request"

	// CodeConfiguration marks a missing or broken runtime configuration.
	CodeConfiguration = "CONFIGURATION_ERROR"
)

// NewBadRequestError creates the 400 returned for unknown (method, table)
// or (method, action) combinations.
func NewBadRequestError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest)),
		Message: InvalidRequestMessage,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404; used only by the HTTP adapter for unknown paths.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewConfigurationError creates the 500 returned when a required setting
// (e.g. DATABASE_URL) is missing.
func NewConfigurationError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeConfiguration,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// NewInternalServerError creates a 500 whose message is shown to the client verbatim.
func NewInternalServerError(message string, code string) *HTTPError {
	if code == "" {
		code = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
	}
	return &HTTPError{
		Code:    code,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// FromError wraps any error into a 500 carrying err.Error() as message.
// An *HTTPError anywhere in the chain is returned unchanged.
func FromError(err error) *HTTPError {
	if httpErr, ok := As(err); ok {
		return httpErr
	}
	return NewInternalServerError(err.Error(), "").WithCause(err)
}
