package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlane/classlane/pkg/logger"
	"github.com/classlane/classlane/pkg/tenant"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithService("classlane"))

	log.Debug("dropped below default level")
	assert.Zero(t, buf.Len())

	log.Info("hello")
	m := logLine(t, &buf)
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "classlane", m["service"])
}

func TestWithLevelString(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevelString("debug"))

	log.Debug("visible now")
	assert.Equal(t, "visible now", logLine(t, &buf)["msg"])

	buf.Reset()
	log = logger.New(logger.WithOutput(&buf), logger.WithLevelString("nonsense"))
	log.Debug("suppressed")
	assert.Zero(t, buf.Len(), "unknown level names fall back to info")
}

func TestContextExtraction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(tenant.LoggerExtractor(), nil),
	)

	ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(7))
	log.InfoContext(ctx, "scoped work")

	m := logLine(t, &buf)
	assert.Equal(t, "7", m["tenant_id"])

	buf.Reset()
	log.InfoContext(context.Background(), "platform work")
	_, hasTenant := logLine(t, &buf)["tenant_id"]
	assert.False(t, hasTenant)
}

func TestErrorAttr(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestGroupAttr(t *testing.T) {
	t.Parallel()

	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Len(t, attr.Value.Group(), 2)
}
