package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/async"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()

		future := async.Run(context.Background(), func(ctx context.Context) (int, error) {
			return 42, nil
		})

		result, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("fetch failed")
		future := async.Run(context.Background(), func(ctx context.Context) (string, error) {
			return "", wantErr
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("await is idempotent", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		future := async.Run(context.Background(), func(ctx context.Context) (int, error) {
			calls.Add(1)
			return 7, nil
		})

		first, err := future.Await()
		require.NoError(t, err)
		second, err := future.Await()
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("canceled context skips work", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls atomic.Int32
		future := async.Run(ctx, func(ctx context.Context) (int, error) {
			calls.Add(1)
			return 1, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Run(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	assert.False(t, future.IsComplete())

	close(release)
	_, err := future.Await()
	require.NoError(t, err)
	assert.True(t, future.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()

		futures := make([]*async.Future[int], 5)
		for i := range futures {
			futures[i] = async.Run(context.Background(), func(ctx context.Context) (int, error) {
				time.Sleep(time.Duration(5-i) * time.Millisecond)
				return i, nil
			})
		}

		results, err := async.WaitAll(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, results)
	})

	t.Run("returns first error with partial results", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		ok := async.Run(context.Background(), func(ctx context.Context) (string, error) {
			return "ok", nil
		})
		failed := async.Run(context.Background(), func(ctx context.Context) (string, error) {
			return "", wantErr
		})

		results, err := async.WaitAll(ok, failed)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, "ok", results[0])
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		results, err := async.WaitAll[int]()
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
