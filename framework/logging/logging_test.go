package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-validation/framework/logging"
	"github.com/km-arc/go-validation/framework/validation"
)

func TestNew(t *testing.T) {
	t.Run("json format with attrs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logging.New(
			logging.WithOutput(buf),
			logging.WithFormat(logging.FormatJSON),
			logging.WithAttr(slog.String("app", "test")),
		)
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "test", entry["app"])
	})

	t.Run("text format filters by level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logging.New(logging.WithOutput(buf), logging.WithLevel(slog.LevelWarn))
		log.Info("hidden")
		log.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logging.New(logging.WithFormat("xml")) })
	})
}

func TestParseLevel(t *testing.T) {
	l, err := logging.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = logging.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestSubscribe(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logging.New(logging.WithOutput(buf), logging.WithLevel(slog.LevelDebug), logging.WithFormat(logging.FormatJSON))

	events := validation.NewDispatcher()
	logging.Subscribe(events, log)

	v := validation.NewWithDefaults(validation.WithEvents(events))
	_, err := v.Validate(map[string]any{"email": "nope"}, validation.Rules{"email": "email"}, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"msg":"validation failed"`)
	assert.Contains(t, buf.String(), `"errors":1`)

	buf.Reset()
	_, err = v.Validate(map[string]any{}, validation.Rules{"email": "nope"}, nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"validation aborted"`)
}
