package models

import "time"

// Response status constants
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusFallback = "fallback"
)

// BaseResponse represents common response fields
type BaseResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBaseResponse stamps a response with the given status
func NewBaseResponse(status string) BaseResponse {
	return BaseResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}

// ErrorResponse builds the body returned by failed API calls
func ErrorResponse(message string) BaseResponse {
	resp := NewBaseResponse(StatusError)
	resp.Error = message
	return resp
}
