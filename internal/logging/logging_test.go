package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPreInitLoggerUsesConfiguredHandler(t *testing.T) {
	logger := L("hostscan")

	var buf bytes.Buffer
	Init("text", "info", &buf)

	logger.Info("scan complete", "hits", 3)

	out := buf.String()
	if !strings.Contains(out, "msg=\"scan complete\"") {
		t.Fatalf("expected scan complete message, got: %s", out)
	}
	if !strings.Contains(out, "component=hostscan") {
		t.Fatalf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "hits=3") {
		t.Fatalf("expected hits field, got: %s", out)
	}
}

func TestPreInitLoggerRespectsConfiguredLevel(t *testing.T) {
	logger := L("avdict")

	var buf bytes.Buffer
	Init("text", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info log should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn log should be emitted: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("json", "info", &buf)

	L("cli").Info("ready")

	out := buf.String()
	if !strings.Contains(out, `"msg":"ready"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avwatch.log")

	rw, err := NewRotatingWriter(path, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer rw.Close()

	// Force a rotation by pretending the cap is nearly reached.
	rw.maxSize = 16
	if _, err := rw.Write([]byte("0123456789")); err != nil {
		t.Fatal(err)
	}
	if _, err := rw.Write([]byte("abcdefghij")); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected rotated backup file: %v", err)
	}
}
