// Package poll implements the fixed-interval, timeout-bounded wait used by
// every task-producing endpoint.
//
// The loop fetches the task, returns on success, fails on the failed state, and
// otherwise sleeps for the interval. It never sleeps past the deadline: if the
// next fetch would start at or after the timeout, the engine gives up with a
// *apierr.TimeoutError instead. The first fetch always happens, so a zero
// timeout still checks status once.
//
// Each Run is independent and holds no shared state; concurrent runs for
// different tasks never interact.
package poll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maauso/kling-go/internal/apierr"
	"github.com/maauso/kling-go/internal/task"
)

// Defaults mirror the public API's documented wait parameters.
const (
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = 600 * time.Second
)

// ErrInvalidInterval is returned when the poll interval is not positive.
var ErrInvalidInterval = errors.New("poll: interval must be positive")

// Fetcher returns the current snapshot of a task.
type Fetcher func(ctx context.Context, taskID string) (*task.Task, error)

// Clock abstracts time so tests can run the loop without sleeping.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in that case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RealClock is the wall clock.
var RealClock Clock = realClock{}

// Config controls one Run.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
	Clock    Clock        // Defaults to RealClock
	Logger   *slog.Logger // Defaults to a discarding logger
}

// DefaultConfig returns the default wait parameters.
func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
	}
}

// Run polls fetch until the task identified by taskID is terminal.
func Run(ctx context.Context, taskID string, fetch Fetcher, cfg Config) (*task.Task, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidInterval, cfg.Interval)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	start := clock.Now()
	for attempt := 1; ; attempt++ {
		t, err := fetch(ctx, taskID)
		if err != nil {
			return nil, err
		}

		elapsed := clock.Now().Sub(start)
		logger.Debug("polled task",
			slog.String("task_id", taskID),
			slog.String("status", string(t.Status)),
			slog.Int("attempt", attempt),
			slog.Duration("elapsed", elapsed),
		)

		switch t.Phase() {
		case task.PhaseSucceeded:
			logger.Info("task succeeded",
				slog.String("task_id", taskID),
				slog.Int("attempts", attempt),
				slog.Duration("elapsed", elapsed),
			)
			return t, nil
		case task.PhaseFailed:
			msg := t.StatusMsg
			if msg == "" {
				msg = apierr.DefaultTaskFailedMessage
			}
			logger.Warn("task failed",
				slog.String("task_id", taskID),
				slog.String("message", msg),
			)
			return nil, &apierr.TaskFailedError{TaskID: taskID, Message: msg}
		}

		// The next fetch would land at or past the deadline.
		if elapsed+cfg.Interval >= cfg.Timeout {
			logger.Warn("task polling timed out",
				slog.String("task_id", taskID),
				slog.Int("attempts", attempt),
				slog.Duration("timeout", cfg.Timeout),
			)
			return nil, &apierr.TimeoutError{TaskID: taskID, Timeout: cfg.Timeout}
		}

		if err := clock.Sleep(ctx, cfg.Interval); err != nil {
			return nil, fmt.Errorf("poll: wait for task %s: %w", taskID, err)
		}
	}
}
