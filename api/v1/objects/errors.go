package objects

import "fmt"

type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeInternal       ErrorType = "internal"
)

type APIError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}
