package kling

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/maauso/kling-go/internal/apierr"
	"github.com/maauso/kling-go/internal/envelope"
	"github.com/maauso/kling-go/internal/poll"
	"github.com/maauso/kling-go/internal/transport"
)

// API paths.
const (
	pathTextToVideo       = "/v1/videos/text2video"
	pathImageToVideo      = "/v1/videos/image2video"
	pathMultiImageToVideo = "/v1/videos/multi-image2video"
	pathVideoExtension    = "/v1/videos/video-extend"
	pathAvatar            = "/v1/videos/avatar/image2video"
	pathIdentifyFace      = "/v1/videos/identify-face"
	pathLipSync           = "/v1/videos/advanced-lip-sync"
	pathEffects           = "/v1/videos/effects"
	pathTextToAudio       = "/v1/audio/text-to-audio"
	pathVideoToAudio      = "/v1/audio/video-to-audio"
	pathTTS               = "/v1/audio/tts"
)

// List pagination bounds.
const (
	DefaultPageNum  = 1
	DefaultPageSize = 30
	MaxPageNum      = 1000
	MaxPageSize     = 500
)

// Defaults for WaitForCompletion.
const (
	DefaultPollInterval = poll.DefaultInterval
	DefaultPollTimeout  = poll.DefaultTimeout
)

// endpoint binds one resource path to the shared transport.
type endpoint struct {
	path   string
	doer   transport.Doer
	logger *slog.Logger
	clock  poll.Clock
}

// call performs one request and decodes its envelope payload into T.
func call[T any](ctx context.Context, doer transport.Doer, req transport.Request) (T, error) {
	var zero T
	resp, err := doer.Do(ctx, req)
	if err != nil {
		return zero, err
	}
	env, err := envelope.Decode[T](resp)
	if err != nil {
		return zero, err
	}
	return env.Data, nil
}

// submit validates body and posts it to the endpoint.
func (e endpoint) submit(ctx context.Context, body any) (*Task, error) {
	if err := validateRequest(body); err != nil {
		return nil, err
	}
	t, err := call[Task](ctx, e.doer, transport.Request{Method: http.MethodPost, Path: e.path, Body: body})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TaskAPI is the query and wait surface shared by every task-producing
// capability.
type TaskAPI struct {
	ep endpoint
}

// Get fetches the current snapshot of a task. id may be the server-assigned
// task id or the caller-supplied external task id.
func (a TaskAPI) Get(ctx context.Context, id string) (*Task, error) {
	if id == "" {
		return nil, requiredField("task_id")
	}
	t, err := call[Task](ctx, a.ep.doer, transport.Request{
		Method: http.MethodGet,
		Path:   a.ep.path + "/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns one page of tasks. pageNum is 1-indexed. Later pages must be
// requested explicitly.
func (a TaskAPI) List(ctx context.Context, pageNum, pageSize int) ([]Task, error) {
	if err := validatePage(pageNum, pageSize); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("pageNum", strconv.Itoa(pageNum))
	query.Set("pageSize", strconv.Itoa(pageSize))

	tasks, err := call[[]Task](ctx, a.ep.doer, transport.Request{
		Method: http.MethodGet,
		Path:   a.ep.path,
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// WaitForCompletion polls the task at a fixed interval until it succeeds,
// fails, or the timeout elapses. A client-side timeout leaves the task running
// server-side, so calling WaitForCompletion again resumes the wait.
func (a TaskAPI) WaitForCompletion(ctx context.Context, id string, opts ...WaitOption) (*Task, error) {
	if id == "" {
		return nil, requiredField("task_id")
	}
	cfg := poll.Config{
		Interval: DefaultPollInterval,
		Timeout:  DefaultPollTimeout,
		Clock:    a.ep.clock,
		Logger:   a.ep.logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return poll.Run(ctx, id, a.Get, cfg)
}

// WaitOption configures WaitForCompletion.
type WaitOption func(*poll.Config)

// WithPollInterval sets the delay between status fetches. It must be positive.
func WithPollInterval(d time.Duration) WaitOption {
	return func(c *poll.Config) {
		c.Interval = d
	}
}

// WithPollTimeout sets the total wait budget. At least one status fetch
// happens whatever the budget.
func WithPollTimeout(d time.Duration) WaitOption {
	return func(c *poll.Config) {
		c.Timeout = d
	}
}

func validatePage(pageNum, pageSize int) error {
	var fields []apierr.FieldError
	if pageNum < 1 || pageNum > MaxPageNum {
		fields = append(fields, apierr.FieldError{
			Field:   "pageNum",
			Rule:    "range",
			Param:   "1-" + strconv.Itoa(MaxPageNum),
			Message: "pageNum must be between 1 and " + strconv.Itoa(MaxPageNum),
		})
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		fields = append(fields, apierr.FieldError{
			Field:   "pageSize",
			Rule:    "range",
			Param:   "1-" + strconv.Itoa(MaxPageSize),
			Message: "pageSize must be between 1 and " + strconv.Itoa(MaxPageSize),
		})
	}
	if len(fields) > 0 {
		return &apierr.ValidationError{Fields: fields}
	}
	return nil
}
