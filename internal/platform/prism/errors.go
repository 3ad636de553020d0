package prism

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrConnectivity is matched by every *ConnectivityError via errors.Is.
	ErrConnectivity = errors.New("connectivity error")

	// ErrReadOnly is returned for mutating requests on a read-only client.
	ErrReadOnly = errors.New("mutating request refused by read-only client")
)

// ConnectivityError reports that Prism Central could not be reached or
// rejected the credentials.
type ConnectivityError struct {
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot connect to Prism Central at %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConnectivity) true.
func (e *ConnectivityError) Is(target error) bool {
	return target == ErrConnectivity
}

// APIError is a non-2xx response from the v3 API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// TaskError reports a task that ended in a state other than SUCCEEDED.
type TaskError struct {
	TaskUUID string
	Status   string
	Detail   string
}

func (e *TaskError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("task %s %s", e.TaskUUID, strings.ToLower(e.Status))
	}
	return fmt.Sprintf("task %s %s: %s", e.TaskUUID, strings.ToLower(e.Status), e.Detail)
}

// newAPIError builds an APIError from a response body, preferring the
// messages of a v3 error document over the raw body.
func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    errorMessage(body),
	}
}

func errorMessage(body []byte) string {
	var doc struct {
		MessageList []struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		} `json:"message_list"`
	}
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.MessageList) > 0 {
		var parts []string
		for _, m := range doc.MessageList {
			switch {
			case m.Reason != "" && m.Message != "":
				parts = append(parts, m.Reason+": "+m.Message)
			case m.Message != "":
				parts = append(parts, m.Message)
			case m.Reason != "":
				parts = append(parts, m.Reason)
			}
		}
		return strings.Join(parts, "; ")
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 256 {
		msg = msg[:256] + "..."
	}
	return msg
}

// isStatus checks if the error is an APIError with one of the given codes.
func isStatus(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if an error indicates rejected credentials.
func IsUnauthorized(err error) bool {
	return isStatus(err, http.StatusUnauthorized, http.StatusForbidden)
}

// IsConflict checks if an error indicates a conflicting update
// (for example a stale spec_version).
func IsConflict(err error) bool {
	return isStatus(err, http.StatusConflict)
}
