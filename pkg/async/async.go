package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[T any] struct {
	result T
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await blocks until the computation completes and returns its result and error.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Run starts fn in its own goroutine and returns a Future for its result.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Skip the work entirely when the context is already canceled.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		result, err := fn(ctx)
		f.once.Do(func() {
			f.result = result
			f.err = err
		})
	}()

	return f
}

// WaitAll joins all futures and returns their results in argument order.
// The first error encountered is returned alongside the partial results.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))

	var firstErr error
	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}
