// Package apierror defines the JSON error envelopes the API returns. Handlers
// never write raw error strings or DB errors to clients; everything goes
// through these types so the wire contract stays uniform.
package apierror

// APIError carries a single human-readable message under "detail".
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError reports per-field failures from request validation, keyed by
// struct field name with the failed tag as value.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
