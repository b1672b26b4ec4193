package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CaptureLogs redirects the global logger into a buffer until the test ends
func CaptureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

// CountLevel counts the JSON log lines of the given level in buf
func CountLevel(buf *bytes.Buffer, level zerolog.Level) int {
	return strings.Count(buf.String(), `"level":"`+level.String()+`"`)
}
