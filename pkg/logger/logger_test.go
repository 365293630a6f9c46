package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestCloudRunHandler_WritesSeverityAndData(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelInfo)).With("uid", "u1")

	log.Debug("hidden")
	log.Warn("catalog rebuilt", "fields", 17, "error", errors.New("boom"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("unexpected output %q: %v", buf.String(), err)
	}
	if event["severity"] != "WARNING" {
		t.Fatalf("expected WARNING, got %v", event["severity"])
	}
	if event["message"] != "catalog rebuilt" {
		t.Fatalf("unexpected message %v", event["message"])
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", event["data"])
	}
	if data["uid"] != "u1" || data["fields"] != 17.0 || data["error"] != "boom" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestNew_ParsesLevel(t *testing.T) {
	log := New("warn", NewTestHandler)
	if log.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}
	if !log.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("warn should be enabled")
	}
}

func TestWith_StoresLoggerInContext(t *testing.T) {
	base := slog.New(NewTestHandler(slog.LevelDebug))
	ctx := ToContext(context.Background(), base)

	log, ctx := With(ctx, "requestId", "r1")
	if FromContext(ctx) != log {
		t.Fatal("expected enriched logger in context")
	}
	if !IsDebugEnabled(ctx) {
		t.Fatal("expected debug enabled")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
}
