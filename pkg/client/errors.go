package client

import "errors"

const (
	// NetworkErrorText is shown for transport-level failures. It hides
	// raw error internals from the user but keeps the likely cause
	// diagnosable.
	NetworkErrorText = "Cannot reach the server. Please check that the backend is running."

	// FallbackErrorText is shown when a backend reports failure without
	// a usable message.
	FallbackErrorText = "Request failed"
)

// APIError is a failure the backend reported in its response body, as
// opposed to a failure reaching the backend at all.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return FallbackErrorText
	}
	return e.Message
}

// ErrorMessage converts a request error into the text shown to the
// user: the backend's own message when it reported one, otherwise the
// fixed network hint.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return NetworkErrorText
}
