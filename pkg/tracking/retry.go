package tracking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/kasuboski/showtrack/pkg/logger"
)

var _ Service = (*retrying)(nil)

type retrying struct {
	next     Service
	attempts uint
	delay    time.Duration
}

// WithRetry wraps s so failed remote calls are attempted up to attempts times.
// Client errors (4xx) and authentication failures are returned immediately.
func WithRetry(s Service, attempts uint, delay time.Duration) Service {
	if attempts <= 1 {
		return s
	}

	return &retrying{next: s, attempts: attempts, delay: delay}
}

func (r *retrying) options(ctx context.Context, op string) []retry.Option {
	log := logger.FromCtx(ctx)
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			log.Debugw("retrying tracking call", "service", r.next.Name(), "op", op, "attempt", n+1, "error", err)
		}),
	}
}

func retryable(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, context.Canceled) {
		return false
	}

	var re *RemoteError
	if errors.As(err, &re) && re.StatusCode >= http.StatusBadRequest && re.StatusCode < http.StatusInternalServerError {
		return re.StatusCode == http.StatusTooManyRequests
	}

	return true
}

func (r *retrying) Name() string {
	return r.next.Name()
}

func (r *retrying) IsAuthenticated(ctx context.Context) bool {
	return r.next.IsAuthenticated(ctx)
}

type countResult struct {
	value int32
	ok    bool
}

func (r *retrying) EpisodeCount(ctx context.Context, id int32) (int32, bool, error) {
	res, err := retry.DoWithData(func() (countResult, error) {
		v, ok, err := r.next.EpisodeCount(ctx, id)
		return countResult{v, ok}, err
	}, r.options(ctx, "episode count")...)

	return res.value, res.ok, err
}

func (r *retrying) EpisodeMetadata(ctx context.Context, id int32) ([]EpisodeMetadata, error) {
	return retry.DoWithData(func() ([]EpisodeMetadata, error) {
		return r.next.EpisodeMetadata(ctx, id)
	}, r.options(ctx, "episode metadata")...)
}

func (r *retrying) RemoteProgress(ctx context.Context, id int32) (int32, bool, error) {
	res, err := retry.DoWithData(func() (countResult, error) {
		v, ok, err := r.next.RemoteProgress(ctx, id)
		return countResult{v, ok}, err
	}, r.options(ctx, "remote progress")...)

	return res.value, res.ok, err
}

func (r *retrying) SetRemoteProgress(ctx context.Context, id int32, progress int32) (int32, error) {
	return retry.DoWithData(func() (int32, error) {
		return r.next.SetRemoteProgress(ctx, id, progress)
	}, r.options(ctx, "set remote progress")...)
}

func (r *retrying) SearchTitles(ctx context.Context, text string) ([]SearchResult, error) {
	return retry.DoWithData(func() ([]SearchResult, error) {
		return r.next.SearchTitles(ctx, text)
	}, r.options(ctx, "search titles")...)
}
