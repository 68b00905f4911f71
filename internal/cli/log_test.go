package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerRoundTrip(t *testing.T) {
	logger := log.New(bytes.NewBuffer(nil))
	ctx := withLogger(context.Background(), logger)

	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("expected default logger, got nil")
	}
}

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	p := newProgress(logger)
	p.done("Parsed widgets")

	out := buf.String()
	if !strings.Contains(out, "Parsed widgets") {
		t.Errorf("missing message in %q", out)
	}
	if !strings.Contains(out, "(") || !strings.Contains(out, "s)") {
		t.Errorf("missing duration in %q", out)
	}
}
