package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GregMSThompson/dashboard-builder/internal/config"
	"github.com/GregMSThompson/dashboard-builder/internal/layout"
)

func TestRun_SampleRecord(t *testing.T) {
	bs, err := Run(context.Background(), &config.Config{LogLevel: "error", AuthMode: "header"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer bs.Close()

	if bs.Source.Snapshot() == nil || len(bs.Source.Snapshot().Fields) == 0 {
		t.Fatal("expected sample record to be loaded")
	}
	if bs.Defaults().Len() != layout.Default().Len() {
		t.Fatal("expected built-in default layout")
	}
	if bs.Firebase != nil {
		t.Fatal("firebase should only start in firebase mode")
	}
}

func TestRun_LayoutPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.toml")
	body := `name = "Ops"

[[widgets]]
id = "rev"
kind = "stat-card"
title = "Revenue"
fields = ["revenue.total"]
width = 1
height = 1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	bs, err := Run(context.Background(), &config.Config{LogLevel: "error", AuthMode: "header", LayoutPath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer bs.Close()

	ids := bs.Defaults().IDs()
	if len(ids) != 1 || ids[0] != "rev" {
		t.Fatalf("unexpected default layout %v", ids)
	}
}

func TestRun_MissingRecord(t *testing.T) {
	cfg := &config.Config{LogLevel: "error", AuthMode: "header", RecordPath: filepath.Join(t.TempDir(), "none.json")}
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing record")
	}
}
