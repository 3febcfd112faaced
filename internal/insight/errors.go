package insight

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Kind classifies a failed remote call into the small set of cases the
// view layer knows how to display.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindForbidden
	KindRateLimited
	KindUnreachable
)

// Error is the only error type the client surfaces. Its Error() text is
// a human-readable message safe to render directly.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "API key authentication failed. Please check your API key in Settings."
	case KindForbidden:
		return "Access forbidden. Your API key may not have permission to use this model."
	case KindRateLimited:
		return "Rate limit exceeded. Please try again later or check your plan."
	case KindUnreachable:
		return "No response from the API server. Please check your internet connection."
	}

	return "Unable to retrieve AI suggestions at this time. Please try again later."
}

func (e *Error) Unwrap() error {
	return e.cause
}

// classify maps any error from the completion call onto an *Error.
func classify(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: kindForStatus(apiErr.HTTPStatusCode), cause: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return &Error{Kind: kindForStatus(reqErr.HTTPStatusCode), cause: err}
		}

		return &Error{Kind: KindUnreachable, cause: err}
	}

	// No HTTP response at all: transport-level failure.
	return &Error{Kind: KindUnreachable, cause: err}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusTooManyRequests:
		return KindRateLimited
	}

	return KindUnknown
}
