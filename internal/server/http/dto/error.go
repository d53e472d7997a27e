package dto

// ErrorResponse carries a short machine-readable error label for failures
// the client is expected to recover from.
type ErrorResponse struct {
	Error string `json:"error"`
}
