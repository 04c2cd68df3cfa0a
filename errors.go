package crm

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeUnauthorized marks 401 responses from the backend
	TextCodeUnauthorized = "BACKEND_UNAUTHORIZED"
	// TextCodeTransport marks failures where no response was obtained
	TextCodeTransport = "BACKEND_UNREACHABLE"
	// TextCodeBadResponse marks responses whose body could not be decoded
	TextCodeBadResponse = "BACKEND_BAD_RESPONSE"
	// TextCodeRequestRejected marks structured non-2xx responses
	TextCodeRequestRejected = "BACKEND_REQUEST_REJECTED"
)

// ErrNoSession is returned by operations that need an authenticated user
var ErrNoSession = goerrors.New("no active session", goerrors.CategoryAuth).
	WithTextCode("NO_SESSION").
	WithCode(goerrors.CodeUnauthorized)

// NewTransportError wraps a failure that produced no HTTP response.
func NewTransportError(err error, msg string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, msg).
		WithTextCode(TextCodeTransport)
}

// NewResponseError normalizes a non-2xx backend response into a rich error
// carrying the original status and any server supplied message/code.
func NewResponseError(status int, serverMessage, serverCode string) *goerrors.Error {
	msg := serverMessage
	if msg == "" {
		msg = http.StatusText(status)
	}

	category := goerrors.CategoryInternal
	switch {
	case status == http.StatusUnauthorized:
		category = goerrors.CategoryAuth
	case status >= 400 && status < 500:
		category = goerrors.CategoryBadInput
	case status >= 500:
		category = goerrors.CategoryInternal
	}

	code := goerrors.CodeInternal
	switch {
	case status == http.StatusUnauthorized:
		code = goerrors.CodeUnauthorized
	case status == http.StatusForbidden:
		code = goerrors.CodeForbidden
	case status == http.StatusNotFound:
		code = goerrors.CodeNotFound
	case status == http.StatusConflict:
		code = goerrors.CodeConflict
	case status >= 400 && status < 500:
		code = goerrors.CodeBadRequest
	}

	richErr := goerrors.New(msg, category).
		WithTextCode(TextCodeRequestRejected).
		WithCode(code).
		WithMetadata(map[string]any{
			"status": status,
		})

	if status == http.StatusUnauthorized {
		richErr = richErr.WithTextCode(TextCodeUnauthorized)
	}

	if serverCode != "" {
		richErr = richErr.WithMetadata(map[string]any{
			"status":      status,
			"server_code": serverCode,
		})
	}

	return richErr
}

// IsUnauthorizedError reports whether err represents a 401 from the backend
func IsUnauthorizedError(err error) bool {
	return StatusFromError(err) == http.StatusUnauthorized
}

// StatusFromError extracts the HTTP status a normalized error carries, or 0
// when the error did not originate from an HTTP response.
func StatusFromError(err error) int {
	if err == nil {
		return 0
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return 0
	}

	if richErr.Metadata == nil {
		return 0
	}

	if status, ok := richErr.Metadata["status"].(int); ok {
		return status
	}

	return 0
}

// ServerMessageFromError returns the backend supplied error message, if any
func ServerMessageFromError(err error) string {
	if err == nil {
		return ""
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Message
	}

	return err.Error()
}
