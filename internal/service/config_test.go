package service

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/solks/sprintrec/internal/config"
)

func TestConfigService_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(path, config.DefaultConfig())

	if svc.Exists() {
		t.Fatal("config file should not exist before Init")
	}

	if err := svc.Init(); err != nil {
		t.Fatalf("Init returned unexpected error: %v", err)
	}
	if !svc.Exists() {
		t.Error("config file should exist after Init")
	}

	// Init must not clobber an existing file.
	err := svc.Init()
	if err == nil {
		t.Error("second Init succeeded, expected error")
	} else if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Init error = %v, expected it to mention the existing file", err)
	}
}

func TestConfigService_Get(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Clockify.WorkspaceName = "Work"

	svc := NewConfigService("/tmp/config.toml", cfg)
	if svc.Get().Clockify.WorkspaceName != "Work" {
		t.Errorf("Get().WorkspaceName = %q, expected %q", svc.Get().Clockify.WorkspaceName, "Work")
	}
	if svc.GetPath() != "/tmp/config.toml" {
		t.Errorf("GetPath() = %q, expected %q", svc.GetPath(), "/tmp/config.toml")
	}
}
