package constants

// APIResponse is the envelope every handler returns. The HTTP status code is
// mirrored into the body so clients that swallow transport details still see
// the outcome.
type APIResponse struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// NewResponse builds a success envelope.
func NewResponse(status int, data any, message string) APIResponse {
	return APIResponse{
		Status:  status,
		Data:    data,
		Message: message,
		Success: status < 400,
	}
}

// NewErrorResponse builds an error envelope with an empty payload.
func NewErrorResponse(status int, message string) APIResponse {
	return APIResponse{
		Status:  status,
		Data:    struct{}{},
		Message: message,
		Success: false,
	}
}

// ListPayload wraps list results with their total count.
type ListPayload struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page,omitempty"`
}
