package log_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gwenzek/layerz/internal/ievent"
	layerzlog "github.com/gwenzek/layerz/internal/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, layerzlog.LevelTrace, layerzlog.ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, layerzlog.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, layerzlog.ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, layerzlog.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, layerzlog.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, layerzlog.ParseLevel("garbage"))
}

func TestSetupLoggerNoFile(t *testing.T) {
	logger, closers, err := layerzlog.SetupLogger("info", "")
	assert.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Empty(t, closers)
}

func TestSetupLoggerWithFile(t *testing.T) {
	dir := t.TempDir()
	logger, closers, err := layerzlog.SetupLogger("debug", dir+"/out.log")
	assert.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Len(t, closers, 1)
	for _, c := range closers {
		assert.NoError(t, c.Close())
	}
}

func TestSetupLoggingFallsBackToStdoutRawDumpAtTraceLevel(t *testing.T) {
	_, raw, closers, err := layerzlog.SetupLogging("trace", "", "")
	assert.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, closers)
}

func TestSetupLoggingNoRawDumpBelowTrace(t *testing.T) {
	_, raw, closers, err := layerzlog.SetupLogging("info", "", "")
	assert.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, closers)
	// Below trace level the raw logger is wired but inert: LogRead on a
	// nil writer must not panic.
	raw.LogRead(ievent.Event{Type: ievent.EVKey, Code: 16, Value: ievent.KeyPress})
}

func TestSetupLoggingExplicitRawFileWinsOverTraceDefault(t *testing.T) {
	dir := t.TempDir()
	_, raw, closers, err := layerzlog.SetupLogging("trace", "", dir+"/raw.log")
	assert.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Len(t, closers, 1)
	for _, c := range closers {
		assert.NoError(t, c.Close())
	}
}

func TestRawLoggerNoOpWithoutWriter(t *testing.T) {
	r := layerzlog.NewRaw(nil)
	r.LogRead(ievent.Event{Type: ievent.EVKey, Code: 16, Value: ievent.KeyPress})
}

func TestRawLoggerWritesHexDump(t *testing.T) {
	var buf bytes.Buffer
	r := layerzlog.NewRaw(&buf)
	r.LogRead(ievent.Event{Type: ievent.EVKey, Code: 16, Value: ievent.KeyPress})
	assert.True(t, strings.Contains(buf.String(), "IN "))
	assert.True(t, strings.Contains(buf.String(), "hex:"))
}
