package assistant

import (
	"context"
	"fmt"
	"time"
)

type callResult[T any] struct {
	val T
	err error
}

// withCeiling runs call and waits at most limit for it. The call gets a
// context that expires at the ceiling, but a call that ignores its context
// is simply abandoned: its goroutine finishes on its own and the result is
// dropped.
func withCeiling[T any](ctx context.Context, limit time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	done := make(chan callResult[T], 1)
	go func() {
		v, err := call(ctx)
		done <- callResult[T]{val: v, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("call abandoned after %s: %w", limit, ctx.Err())
	}
}
