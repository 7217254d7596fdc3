// Package async provides typed futures for fan-out work such as fetching
// many images concurrently and joining the results in order.
//
// # Usage
//
//	poster := async.Run(ctx, func(ctx context.Context) ([]byte, error) {
//		return fetcher.Fetch(ctx, item.PosterURL)
//	})
//	background := async.Run(ctx, func(ctx context.Context) ([]byte, error) {
//		return fetcher.Fetch(ctx, item.BackgroundURL)
//	})
//
//	images, err := async.WaitAll(poster, background)
//	if err != nil {
//		return err
//	}
//
// Futures can also be polled without blocking:
//
//	if poster.IsComplete() {
//		data, err := poster.Await() // returns immediately
//	}
//
// Run honors context cancellation before starting the work; a future created
// with an already-canceled context resolves to ctx.Err() without invoking
// the function.
package async
