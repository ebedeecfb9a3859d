package client

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// RetryOptions tunes WithRetry. Zero values fall back to one retry after a
// one second delay, matching the web client's defaults.
type RetryOptions struct {
	// MaxRetries is the number of re-attempts after the initial call.
	MaxRetries int
	// RetryDelay is the base wait; attempt n waits n * RetryDelay.
	RetryDelay time.Duration
	// OnError, if set, receives the final error after retries are exhausted
	// or a non-retryable failure occurs.
	OnError func(*APIError)
}

// linearBackOff waits RetryDelay, then 2×, 3×, … — the schedule the gallery
// front-end has always used for flaky reads.
type linearBackOff struct {
	delay   time.Duration
	attempt int
}

func (l *linearBackOff) NextBackOff() time.Duration {
	l.attempt++
	return time.Duration(l.attempt) * l.delay
}

func (l *linearBackOff) Reset() { l.attempt = 0 }

// WithRetry invokes op, re-attempting on retry-eligible failures (network,
// rate-limit, server errors) with linear backoff. Non-retryable kinds and
// non-API errors abort immediately. The last error is returned unchanged.
//
// The helper cannot tell idempotent operations from non-idempotent ones;
// wrap reads freely, but only wrap mutations you are prepared to have
// applied twice.
func WithRetry[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts RetryOptions) (T, error) {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}

	operation := func() (T, error) {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		apiErr, ok := AsAPIError(err)
		if !ok || !apiErr.CanRetry() {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	notify := func(err error, wait time.Duration) {
		retriesTotal.Inc()
		log.Debug().Err(err).Dur("wait", wait).Msg("retrying after retryable error")
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{delay: opts.RetryDelay}, uint64(opts.MaxRetries)),
		ctx,
	)
	v, err := backoff.RetryNotifyWithData(operation, b, notify)
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok && opts.OnError != nil {
			opts.OnError(apiErr)
		}
	}
	return v, err
}
