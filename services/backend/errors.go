package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the backend reports a missing resource.
var ErrNotFound = errors.New("backend: not found")

// GenericErrorText is shown when the backend gives no usable detail.
const GenericErrorText = "요청 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."

// APIError is a non-2xx reply from the ticket backend. Detail carries the
// server-provided message when one could be extracted from the body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Detail)
}

// Message is the reader-facing text: the server detail verbatim, or the
// generic fallback.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return GenericErrorText
}

// newAPIError extracts the error detail from a backend reply body. The
// backend reports either {"detail": "..."} or {"non_field_errors": ["..."]}.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var reply struct {
		Detail         string   `json:"detail"`
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if err := json.Unmarshal(body, &reply); err == nil {
		if reply.Detail != "" {
			apiErr.Detail = reply.Detail
		} else if len(reply.NonFieldErrors) > 0 {
			apiErr.Detail = reply.NonFieldErrors[0]
		}
	}

	return apiErr
}

// IsNotFound reports whether err represents a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
