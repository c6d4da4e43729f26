package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenWritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, closer, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	logger.Info("generation started", "project", "mysite")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "generation started") {
		t.Errorf("log file content = %q", data)
	}
	if !strings.Contains(string(data), "project=mysite") {
		t.Errorf("log attributes missing, content = %q", data)
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := Open(path)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		logger.Info(msg)
		closer.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log not appended across opens, content = %q", data)
	}
}

func TestDefaultPathUnderHome(t *testing.T) {
	got := DefaultPath()
	if !strings.HasSuffix(got, filepath.Join(".djboot", "djboot.log")) {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestDiscardNeverPanics(t *testing.T) {
	logger := Discard()
	logger.Info("dropped", "key", "value")
	logger.Error("also dropped")
}
