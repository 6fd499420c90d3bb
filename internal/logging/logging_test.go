package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"lskinbot/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestConsoleOutputShape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("pipeline completed",
		logging.Int64(logging.FieldUserID, 42),
		logging.String("file_name", "skin.png"),
	)

	line := strings.TrimSuffix(buf.String(), "\n")
	if strings.Contains(line, "\n") {
		t.Fatalf("expected a single line, got %q", buf.String())
	}
	for _, want := range []string{"INFO", "pipeline completed", "user_id=42", "file_name=skin.png"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestConsoleComponentPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logging.NewComponentLogger(logger, "pipeline").Info("stage failed")

	line := buf.String()
	if !strings.Contains(line, " pipeline: stage failed") {
		t.Fatalf("component not rendered as prefix: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component leaked as a key-value pair: %q", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("failed", logging.Error(errors.New("chat not found")))

	if !strings.Contains(buf.String(), `error="chat not found"`) {
		t.Fatalf("multi-word value not quoted: %q", buf.String())
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line not suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONOutputKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("pipeline completed", logging.Int64(logging.FieldChatID, 7))

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if doc["msg"] != "pipeline completed" {
		t.Fatalf("msg = %v", doc["msg"])
	}
	if doc["level"] != "info" {
		t.Fatalf("level = %v", doc["level"])
	}
	if _, ok := doc["ts"]; !ok {
		t.Fatalf("ts key missing: %v", doc)
	}
	if doc[logging.FieldChatID] != float64(7) {
		t.Fatalf("chat_id = %v", doc[logging.FieldChatID])
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()
	logger.Error("goes nowhere", logging.Error(errors.New("boom")))
}
