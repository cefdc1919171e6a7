// Package envelope decodes the uniform {code, message, request_id, data}
// wrapper around every Kling API response.
//
// Decode never returns a successful envelope whose code is non-zero: an API
// error envelope is turned into *apierr.APIError regardless of HTTP status.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maauso/kling-go/internal/apierr"
	"github.com/maauso/kling-go/internal/transport"
)

// maxErrorBody bounds the body excerpt kept on transport errors.
const maxErrorBody = 512

var errMissingCode = errors.New("missing code field")

// Envelope is a decoded successful response.
type Envelope[T any] struct {
	Code      int
	Message   string
	RequestID string
	Data      T
}

// wire mirrors the response body. Code is a pointer so a missing field can be
// told apart from a zero code.
type wire struct {
	Code      *int            `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

// Decode parses resp into an Envelope with payload type T.
//
// Classification:
//   - body parses and code != 0: *apierr.APIError
//   - non-2xx without an error envelope: *apierr.TransportError (ErrHTTPStatus)
//   - 2xx with an unparseable body or payload: *apierr.TransportError (ErrMalformedResponse)
func Decode[T any](resp *transport.Response) (*Envelope[T], error) {
	var w wire
	parseErr := json.Unmarshal(resp.Body, &w)
	if parseErr == nil && w.Code == nil {
		parseErr = errMissingCode
	}

	if parseErr == nil && *w.Code != 0 {
		msg := w.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &apierr.APIError{
			Code:       *w.Code,
			Message:    msg,
			RequestID:  w.RequestID,
			HTTPStatus: resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, transportError(resp, apierr.ErrHTTPStatus, nil)
	}

	if parseErr != nil {
		return nil, transportError(resp, apierr.ErrMalformedResponse, parseErr)
	}

	env := &Envelope[T]{
		Code:      *w.Code,
		Message:   w.Message,
		RequestID: w.RequestID,
	}
	if len(w.Data) > 0 && !bytes.Equal(w.Data, []byte("null")) {
		if err := json.Unmarshal(w.Data, &env.Data); err != nil {
			return nil, transportError(resp, apierr.ErrMalformedResponse, fmt.Errorf("decode data: %w", err))
		}
	}
	return env, nil
}

func transportError(resp *transport.Response, kind error, cause error) *apierr.TransportError {
	body := resp.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &apierr.TransportError{
		Kind:       kind,
		Method:     resp.Method,
		URL:        resp.URL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Err:        cause,
	}
}
