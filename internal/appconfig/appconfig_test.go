// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad verifies that Load handles valid and invalid configuration files.
// A valid file loads without error and defaults are applied; invalid JSON, a
// missing designer URL, or a nonexistent path each produce an error.
func TestLoad(t *testing.T) {
	validConfig := `{
        "designerUrl": "http://localhost:8080",
        "records": 25,
        "output": "out/telemetry.json"
    }`
	tmpfile := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(tmpfile, []byte(validConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.BaseURL() != "http://localhost:8080" {
		t.Fatalf("unexpected designer URL: %s", cfg.BaseURL())
	}
	if cfg.Records() != 25 {
		t.Fatalf("expected 25 records, got %d", cfg.Records())
	}
	if cfg.OutputFilePath() != "out/telemetry.json" {
		t.Fatalf("unexpected output path: %s", cfg.OutputFilePath())
	}
	if cfg.TimeoutSeconds != 600 {
		t.Fatalf("expected default timeout of 600 seconds, got %d", cfg.TimeoutSeconds)
	}
	if cfg.RequestTimeout() != 600*time.Second {
		t.Fatalf("expected default request timeout of 600s, got %v", cfg.RequestTimeout())
	}
	if cfg.Model.Alias != "nemotron-nano-v3" {
		t.Fatalf("expected default model profile, got %+v", cfg.Model)
	}
	if cfg.ConfigPath != tmpfile {
		t.Fatalf("expected ConfigPath %q, got %q", tmpfile, cfg.ConfigPath)
	}

	invalidJSON := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(invalidJSON, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalidJSON); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	noURL := filepath.Join(t.TempDir(), "nourl.json")
	if err := os.WriteFile(noURL, []byte(`{"records": 5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(noURL); err == nil {
		t.Fatal("Load() without designer URL should have failed")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Load() with missing file should have failed")
	}
}

// TestConfigDefaults exercises the accessor fallbacks on a zero-value Config.
func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	if cfg.Records() != 10 {
		t.Fatalf("expected default record count 10, got %d", cfg.Records())
	}
	if cfg.OutputFilePath() != DefaultOutputPath {
		t.Fatalf("expected default output path, got %s", cfg.OutputFilePath())
	}
	if cfg.LogFilePath() != "vehiclesim.log" {
		t.Fatalf("expected default log file, got %s", cfg.LogFilePath())
	}
	if cfg.BaseURL() != DefaultDesignerURL {
		t.Fatalf("expected default designer URL, got %s", cfg.BaseURL())
	}
}

// TestBaseURLTrimsTrailingSlash ensures request URLs are never double-slashed.
func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	cfg := Config{DesignerURL: "http://localhost:8080/"}
	if cfg.BaseURL() != "http://localhost:8080" {
		t.Fatalf("expected trailing slash removed, got %s", cfg.BaseURL())
	}
}

// TestDefaultModelProfile pins the model profile constants used for generation.
func TestDefaultModelProfile(t *testing.T) {
	t.Parallel()

	m := DefaultModel()
	if m.Model != "nvidia/nemotron-3-nano-30b-a3b" || m.Provider != "nvidiabuild" {
		t.Fatalf("unexpected model identity: %+v", m)
	}
	if m.Temperature != 0.25 || m.TopP != 1.0 || m.MaxTokens != 1024 {
		t.Fatalf("unexpected inference parameters: %+v", m)
	}
	if m.SystemPrompt != "/no_think" {
		t.Fatalf("unexpected system prompt: %q", m.SystemPrompt)
	}
}
