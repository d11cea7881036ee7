package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/ankify"
	"github.com/fwojciec/ankify/mock"
	ankifyslog "github.com/fwojciec/ankify/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("warns about missing media", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MediaResolver{
			ResolveFn: func(ref string) ankify.MediaRef {
				return ankify.MediaRef{Name: "photo.png", Found: false}
			},
		}

		resolver := ankifyslog.NewLoggingResolver(inner, logger)
		ref := resolver.Resolve("images/photo.png")

		require.False(t, ref.Found)
		output := buf.String()
		assert.Contains(t, output, "missing media file")
		assert.Contains(t, output, "ref=images/photo.png")
		assert.Contains(t, output, "name=photo.png")
	})

	t.Run("stays silent for found media", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MediaResolver{
			ResolveFn: func(ref string) ankify.MediaRef {
				return ankify.MediaRef{Name: "photo.png", Path: "/assets/photo.png", Found: true}
			},
		}

		resolver := ankifyslog.NewLoggingResolver(inner, logger)
		ref := resolver.Resolve("images/photo.png")

		require.True(t, ref.Found)
		assert.Empty(t, buf.String())
	})
}
