package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientFunc func(req *http.Request) (*http.Response, error)

func (f clientFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
	}
}

func TestNewRateLimitedClient(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		c := NewRateLimitedClient()
		assert.Equal(t, DefaultMaxRetries, c.maxRetries)
		assert.Equal(t, DefaultBaseBackoff, c.baseBackoff)
	})

	t.Run("custom", func(t *testing.T) {
		inner := clientFunc(func(*http.Request) (*http.Response, error) { return nil, nil })
		c := NewRateLimitedClient(WithMaxRetries(5), WithBaseBackoff(time.Millisecond), WithHTTPClient(inner))
		assert.Equal(t, 5, c.maxRetries)
		assert.Equal(t, time.Millisecond, c.baseBackoff)
		assert.NotNil(t, c.client)
	})

	t.Run("non positive values keep defaults", func(t *testing.T) {
		c := NewRateLimitedClient(WithMaxRetries(0), WithBaseBackoff(0))
		assert.Equal(t, DefaultMaxRetries, c.maxRetries)
		assert.Equal(t, DefaultBaseBackoff, c.baseBackoff)
	})
}

func TestRateLimitedClient_Do(t *testing.T) {
	t.Run("returns first non 429 response", func(t *testing.T) {
		calls := 0
		c := NewRateLimitedClient(WithBaseBackoff(time.Millisecond), WithHTTPClient(clientFunc(func(*http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return response(http.StatusTooManyRequests), nil
			}
			return response(http.StatusInternalServerError), nil
		})))

		req, err := http.NewRequest(http.MethodGet, "http://example.test", nil)
		require.NoError(t, err)

		resp, err := c.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, 2, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		c := NewRateLimitedClient(WithMaxRetries(2), WithBaseBackoff(time.Millisecond), WithHTTPClient(clientFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return response(http.StatusTooManyRequests), nil
		})))

		req, err := http.NewRequest(http.MethodGet, "http://example.test", nil)
		require.NoError(t, err)

		_, err = c.Do(req)
		assert.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("transport error is not retried", func(t *testing.T) {
		calls := 0
		wantErr := errors.New("connection refused")
		c := NewRateLimitedClient(WithHTTPClient(clientFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return nil, wantErr
		})))

		req, err := http.NewRequest(http.MethodGet, "http://example.test", nil)
		require.NoError(t, err)

		_, err = c.Do(req)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		c := NewRateLimitedClient(WithBaseBackoff(time.Hour), WithHTTPClient(clientFunc(func(*http.Request) (*http.Response, error) {
			cancel()
			return response(http.StatusTooManyRequests), nil
		})))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.test", nil)
		require.NoError(t, err)

		_, err = c.Do(req)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
