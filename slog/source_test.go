package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/flexlist/mock"
	flexslog "github.com/fwojciec/flexlist/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPageSource_FindSource(t *testing.T) {
	t.Parallel()

	t.Run("logs page with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageSource{
			FindSourceFn: func(ctx context.Context, name string) (string, error) {
				return "#flexlist_config", nil
			},
		}

		src, err := flexslog.NewLoggingPageSource(inner, logger).FindSource(context.Background(), "Data/Stations")

		require.NoError(t, err)
		assert.Equal(t, "#flexlist_config", src)
		output := buf.String()
		assert.Contains(t, output, `msg="find source"`)
		assert.Contains(t, output, "page=Data/Stations")
		assert.Contains(t, output, "bytes=16")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageSource{
			FindSourceFn: func(ctx context.Context, name string) (string, error) {
				return "", errors.New("network error")
			},
		}

		_, err := flexslog.NewLoggingPageSource(inner, logger).FindSource(context.Background(), "Data")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="network error"`)
	})
}
