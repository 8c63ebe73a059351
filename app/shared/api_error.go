package shared

import "fmt"

type ApiErrorType string

const (
	ApiErrorTypeInvalidRequest ApiErrorType = "invalid_request"
	ApiErrorTypeNotFound       ApiErrorType = "not_found"
	ApiErrorTypeGeneration     ApiErrorType = "generation"
	ApiErrorTypeCollaborator   ApiErrorType = "collaborator"
	ApiErrorTypeServer         ApiErrorType = "server"

	ApiErrorTypeOther ApiErrorType = "other"
)

// ApiError is the body of every non-2xx response. Message is meant for the
// user; Detail carries the underlying cause when it is safe to expose
// (collaborator failures, malformed generation output).
type ApiError struct {
	Type    ApiErrorType `json:"type"`
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Detail  string       `json:"detail,omitempty"`
}

func (e *ApiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// UserMessage prefers the detail, which is what the editor shows inline.
func (e *ApiError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}
