package testing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/speters9/JobMatch/types"
)

// NewTestLogger creates a logger that writes through testing.T, so solver and
// matcher diagnostics show up interleaved with test output and only when the
// test fails or runs verbose.
func NewTestLogger(t *testing.T) types.Logger {
	return &testLogger{t: t}
}

type testLogger struct {
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

// formatPairs renders key/value pairs as " k=v k=v"; a trailing unpaired key
// is kept rather than dropped.
func formatPairs(keysAndValues []any) string {
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, " %v", keysAndValues[i])
		}
	}

	return b.String()
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("DEBUG %s%s", msg, formatPairs(keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("INFO %s%s", msg, formatPairs(keysAndValues))
}

func (l *testLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("WARN %s%s", msg, formatPairs(keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("ERROR %s%s", msg, formatPairs(keysAndValues))
}

// Fatal fails the test immediately, mirroring a production logger's exit.
func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Fatalf("FATAL %s%s", msg, formatPairs(keysAndValues))
}
