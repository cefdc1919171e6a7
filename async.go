package kling

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Future is the pending result of a call started with Async.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Async runs fn in its own goroutine and returns immediately. The goroutine
// parks on network I/O and poll sleeps, so thousands of submissions and waits
// can be in flight at once.
//
//	f := kling.Async(ctx, func(ctx context.Context) (*kling.Task, error) {
//		return client.TextToVideo.Create(ctx, req)
//	})
//	t, err := f.Await(ctx)
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx is done. Giving up on
// ctx does not stop the underlying call; cancel the context passed to Async
// for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// WaitFunc waits for one task to finish.
type WaitFunc func(ctx context.Context) (*Task, error)

// Waiter returns a WaitFunc that waits for id with opts.
func (a TaskAPI) Waiter(id string, opts ...WaitOption) WaitFunc {
	return func(ctx context.Context) (*Task, error) {
		return a.WaitForCompletion(ctx, id, opts...)
	}
}

// WaitAll runs every wait concurrently and returns the finished tasks in
// argument order. The first failure cancels the remaining waits and is
// returned; tasks that completed before it are still filled in.
func WaitAll(ctx context.Context, waits ...WaitFunc) ([]*Task, error) {
	tasks := make([]*Task, len(waits))
	g, gctx := errgroup.WithContext(ctx)
	for i, wait := range waits {
		g.Go(func() error {
			t, err := wait(gctx)
			if err != nil {
				return err
			}
			tasks[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tasks, err
	}
	return tasks, nil
}

// NewExternalTaskID returns a random id suitable for ExternalTaskID. Tasks can
// be fetched by it as well as by their server-assigned id.
func NewExternalTaskID() string {
	return uuid.NewString()
}
