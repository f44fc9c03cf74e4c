package slog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/webwalk"
	"github.com/fwojciec/webwalk/mock"
	webslog "github.com/fwojciec/webwalk/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) webwalk.FetchResult {
				return webwalk.FetchResult{URL: url, Body: "<html>content</html>"}
			},
		}

		fetcher := webslog.NewLoggingFetcher(inner, debugLogger(&buf))
		result := fetcher.Fetch(context.Background(), "https://example.com/page")

		assert.Equal(t, "<html>content</html>", result.Body)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/page")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs zero bytes for degraded fetch", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) webwalk.FetchResult {
				return webwalk.FetchResult{URL: url}
			},
		}

		fetcher := webslog.NewLoggingFetcher(inner, debugLogger(&buf))
		result := fetcher.Fetch(context.Background(), "https://example.com/dead")

		assert.Empty(t, result.Body)
		assert.Contains(t, buf.String(), "bytes=0")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := webslog.NewLoggingFetcher(inner, debugLogger(&buf))
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
