package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingField is returned when a required signup field is absent or empty.
	ErrMissingField = errors.New("all fields are required")
	// ErrInvalidRollNo is returned when a student roll number does not match the expected format.
	ErrInvalidRollNo = errors.New("invalid roll number format")
	// ErrPasswordTooLong is returned for passwords over 72 bytes. bcrypt ignores
	// everything past that, so longer passwords are refused rather than truncated.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrDuplicateKey is returned when a roll number is already registered.
	ErrDuplicateKey = errors.New("user already exists")
	// ErrValidation is returned by the store when a required column is empty.
	ErrValidation = errors.New("required field is empty")
	// ErrInvalidCredentials is returned for an unknown roll number or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmptyInput is returned when a question is empty after trimming.
	ErrEmptyInput = errors.New("question cannot be empty")
	// ErrStartupConfigMissing is returned when the provider API key is not configured.
	ErrStartupConfigMissing = errors.New("OPENAI_API_KEY is missing")
)

// ProviderErrorKind classifies completion provider failures.
type ProviderErrorKind string

const (
	// ProviderNetwork covers transport failures: DNS, dial, TLS, resets, cancellation.
	ProviderNetwork ProviderErrorKind = "network"
	// ProviderMalformedResponse covers responses that carry no usable completion.
	ProviderMalformedResponse ProviderErrorKind = "malformed_response"
	// ProviderUpstream covers errors reported by the provider itself (quota, auth, model).
	ProviderUpstream ProviderErrorKind = "upstream"
)

// ProviderError wraps a completion provider failure with its kind.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider error (%s)", e.Kind)
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error.
func NewProviderError(kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Kind: kind, Err: err}
}

// ErrorResponse is the failure body of the auth endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AIErrorResponse is the failure body of the ask-ai endpoint.
type AIErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to the auth endpoint failure body.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
	}
}

// ToAIErrorResponse converts an HTTPError to the ask-ai failure body.
func (e *HTTPError) ToAIErrorResponse() AIErrorResponse {
	return AIErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var providerErr *ProviderError
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, "All fields are required", "MISSING_FIELD")
	case errors.Is(err, ErrInvalidRollNo):
		return NewHTTPError(http.StatusBadRequest, "Invalid Roll Number Format", "INVALID_FORMAT")
	case errors.Is(err, ErrPasswordTooLong):
		return NewHTTPError(http.StatusBadRequest, "Password must be at most 72 bytes", "INVALID_FORMAT")
	case errors.Is(err, ErrDuplicateKey):
		return NewHTTPError(http.StatusConflict, "User already exists", "DUPLICATE_KEY")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid Credentials", "UNAUTHORIZED")
	case errors.Is(err, ErrEmptyInput):
		return NewHTTPError(http.StatusBadRequest, "Question cannot be empty", "EMPTY_INPUT")
	case errors.As(err, &providerErr):
		return NewHTTPError(http.StatusInternalServerError, providerErr.Error(), "PROVIDER_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
