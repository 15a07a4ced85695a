package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/mock"
	locslog "github.com/fwojciec/locqa/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("logs completion with model and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts locqa.CompleteOptions) (string, error) {
				return "reply text", nil
			},
		}

		completer := locslog.NewLoggingCompleter(inner, logger)
		reply, err := completer.Complete(context.Background(), "question", locqa.CompleteOptions{Model: "llama3.1"})

		require.NoError(t, err)
		assert.Equal(t, "reply text", reply)
		output := buf.String()
		assert.Contains(t, output, "llm completion")
		assert.Contains(t, output, "model=llama3.1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts locqa.CompleteOptions) (string, error) {
				return "", errors.New("backend down")
			},
		}

		completer := locslog.NewLoggingCompleter(inner, logger)
		_, err := completer.Complete(context.Background(), "question", locqa.CompleteOptions{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"backend down\"")
	})
}
