package sl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer // buffer for log capturing
	// Create slog.Logger, which writes in logBuf
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	errAttr := sl.Err(assert.AnError)
	testLogger.Warn("expected result:", errAttr)

	loggedOutput := logBuf.String()

	assert.Contains(t, loggedOutput, assert.AnError.Error())
}

func TestErr_Nil(t *testing.T) {
	t.Parallel()

	attr := sl.Err(nil)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "<nil>", attr.Value.String())
}
