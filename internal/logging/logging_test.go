package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown", "file", "a.csv")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written without verbose: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, Prefix) {
		t.Errorf("info line missing or unprefixed: %q", out)
	}

	if New(&buf, true).GetLevel() != log.DebugLevel {
		t.Error("verbose logger is not at debug level")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	logger := log.New(&bytes.Buffer{})
	if OrDiscard(logger) != logger {
		t.Error("OrDiscard replaced a non-nil logger")
	}
}
