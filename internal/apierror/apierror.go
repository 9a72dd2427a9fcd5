// Package apierror defines the error envelopes the API returns to clients.
// Handlers never serialize raw errors: everything goes through these types so
// that DB messages and stack traces stay out of responses.
package apierror

// APIError carries a single human-readable detail message. It is the body of
// every non-validation 4xx/5xx response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func (e *APIError) Error() string { return e.Detail }

// ValidationError carries per-field messages for 422 responses.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
