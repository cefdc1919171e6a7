package kling

import (
	"github.com/maauso/kling-go/internal/apierr"
	"github.com/maauso/kling-go/internal/poll"
	"github.com/maauso/kling-go/internal/transport"
)

// Error categories. Every error returned by the client matches at most one of
// them through errors.Is.
var (
	ErrValidation = apierr.ErrValidation
	ErrAPI        = apierr.ErrAPI
	ErrTaskFailed = apierr.ErrTaskFailed
	ErrTimeout    = apierr.ErrTimeout
	ErrTransport  = apierr.ErrTransport
	ErrDownload   = apierr.ErrDownload
)

// Transport failure kinds, matched by *TransportError.
var (
	ErrNetwork           = apierr.ErrNetwork
	ErrHTTPStatus        = apierr.ErrHTTPStatus
	ErrMalformedResponse = apierr.ErrMalformedResponse
)

var (
	// ErrClosed is returned by every call made after Client.Close.
	ErrClosed = transport.ErrClosed
	// ErrInvalidPollInterval is returned when a wait is configured with a non-positive interval.
	ErrInvalidPollInterval = poll.ErrInvalidInterval
)

// Typed errors. Use errors.As to read their fields.
type (
	FieldError      = apierr.FieldError
	ValidationError = apierr.ValidationError
	APIError        = apierr.APIError
	TaskFailedError = apierr.TaskFailedError
	TimeoutError    = apierr.TimeoutError
	TransportError  = apierr.TransportError
	DownloadError   = apierr.DownloadError
)
