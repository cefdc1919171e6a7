// Package apierr defines the error taxonomy shared by every Kling API surface.
//
// Each typed error matches a category sentinel through errors.Is, so callers can
// branch on the category without knowing the concrete type:
//
//	if errors.Is(err, apierr.ErrAPI) { ... }
//
// and recover the details with errors.As when they need them.
package apierr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category sentinels.
var (
	// ErrValidation matches *ValidationError.
	ErrValidation = errors.New("kling: invalid request")
	// ErrAPI matches *APIError.
	ErrAPI = errors.New("kling: api error")
	// ErrTaskFailed matches *TaskFailedError.
	ErrTaskFailed = errors.New("kling: task failed")
	// ErrTimeout matches *TimeoutError.
	ErrTimeout = errors.New("kling: polling timed out")
	// ErrTransport matches *TransportError.
	ErrTransport = errors.New("kling: transport error")
	// ErrDownload matches *DownloadError.
	ErrDownload = errors.New("kling: download failed")
)

// Transport failure kinds. A *TransportError matches exactly one of them.
var (
	// ErrNetwork is a connection or I/O failure before a full response was read.
	ErrNetwork = errors.New("kling: network failure")
	// ErrHTTPStatus is a non-2xx response that carried no API error envelope.
	ErrHTTPStatus = errors.New("kling: unexpected http status")
	// ErrMalformedResponse is a response body that is not a valid envelope.
	ErrMalformedResponse = errors.New("kling: malformed response")
)

// DefaultTaskFailedMessage is used when the server reports a failed task without a message.
const DefaultTaskFailedMessage = "task failed"

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string // Dotted path of the field, e.g. "face_choose[0].sound_volume"
	Rule    string // Constraint that failed, e.g. "max"
	Param   string // Constraint parameter, e.g. "2"
	Message string
}

// ValidationError is returned when caller input is rejected before any network call.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// APIError is an application-level rejection signalled by a non-zero envelope code.
type APIError struct {
	Code       int
	Message    string
	RequestID  string
	HTTPStatus int // 0 when unknown
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kling: api error [%d] %s (request_id: %s)", e.Code, e.Message, e.RequestID)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// TaskFailedError is returned when a polled task reaches the failed state.
type TaskFailedError struct {
	TaskID  string
	Message string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("kling: task %s failed: %s", e.TaskID, e.Message)
}

func (e *TaskFailedError) Is(target error) bool { return target == ErrTaskFailed }

// TimeoutError is returned when a task is still pending after the polling budget.
// The task keeps running server-side; polling again with the same id resumes it.
type TimeoutError struct {
	TaskID  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("kling: task %s did not complete within %s", e.TaskID, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// TimeoutSeconds returns the configured budget in seconds.
func (e *TimeoutError) TimeoutSeconds() float64 { return e.Timeout.Seconds() }

// TransportError is a failure where no usable envelope could be obtained.
type TransportError struct {
	Kind       error // ErrNetwork, ErrHTTPStatus or ErrMalformedResponse
	Method     string
	URL        string
	StatusCode int    // 0 for network failures
	Body       string // Truncated response body, if any
	Err        error  // Underlying cause, may be nil
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	fmt.Fprintf(&b, ": %s %s", e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status %d", e.StatusCode)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport || target == e.Kind
}

func (e *TransportError) Unwrap() error { return e.Err }

// DownloadError is a failure while streaming a media artifact to a sink.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d", ErrDownload, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDownload, e.URL, e.Err)
}

func (e *DownloadError) Is(target error) bool { return target == ErrDownload }

func (e *DownloadError) Unwrap() error { return e.Err }
