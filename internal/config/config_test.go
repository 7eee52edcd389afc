package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lantern/internal/config"
)

func TestLoadWithoutBucketFailsValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONTENT_BUCKET", "")
	t.Setenv("CONTENT_TABLE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	_, _, _, err := config.Load("")
	if !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadDefaultsWithEnvFallbacks(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CONTENT_BUCKET", "env-bucket")
	t.Setenv("CONTENT_TABLE", "EnvTable")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "eu-west-1")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Storage.Bucket != "env-bucket" {
		t.Fatalf("expected bucket from env, got %q", cfg.Storage.Bucket)
	}
	if cfg.Registry.Table != "EnvTable" {
		t.Fatalf("expected table from env, got %q", cfg.Registry.Table)
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Fatalf("expected region from AWS_DEFAULT_REGION, got %q", cfg.AWS.Region)
	}
	if cfg.Storage.KeyPrefix != "activities" {
		t.Fatalf("unexpected key prefix: %q", cfg.Storage.KeyPrefix)
	}
	if cfg.AWS.Profile != "default" {
		t.Fatalf("unexpected profile: %q", cfg.AWS.Profile)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if !filepath.IsAbs(cfg.Paths.StateDir) || !strings.HasPrefix(cfg.Paths.StateDir, tempHome) {
		t.Fatalf("expected state dir under temp HOME, got %q", cfg.Paths.StateDir)
	}
	if cfg.JournalPath() != filepath.Join(cfg.Paths.StateDir, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.JournalPath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadFileOverridesAndNormalizes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONTENT_BUCKET", "")
	t.Setenv("CONTENT_TABLE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[content]
root_dir = "~/units"

[storage]
bucket = "file-bucket"
key_prefix = "/nested/prefix/"

[registry]
table = "FileTable"

[aws]
region = "ap-southeast-1"
profile = "publisher"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Storage.Bucket != "file-bucket" {
		t.Fatalf("unexpected bucket: %q", cfg.Storage.Bucket)
	}
	if cfg.Storage.KeyPrefix != "nested/prefix" {
		t.Fatalf("expected trimmed prefix, got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.AWS.Region != "ap-southeast-1" || cfg.AWS.Profile != "publisher" {
		t.Fatalf("unexpected aws settings: %#v", cfg.AWS)
	}
	if !filepath.IsAbs(cfg.Content.RootDir) {
		t.Fatalf("expected expanded root dir, got %q", cfg.Content.RootDir)
	}
}

func TestEnvTableOverridesFileValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONTENT_BUCKET", "env-bucket")
	t.Setenv("CONTENT_TABLE", "EnvWins")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[registry]\ntable = \"FileTable\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Registry.Table != "EnvWins" {
		t.Fatalf("expected env to win, got %q", cfg.Registry.Table)
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Bucket = "b"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONTENT_BUCKET", "env-bucket")

	target := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}
