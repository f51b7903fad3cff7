package dto

// ErrorResponse is the uniform error payload returned by all controllers.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
