package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
redis:
  addr: redis.internal:6380
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
	if cfg.Channels.TrialStartedKey != "channel:trial_started" {
		t.Errorf("trial started key = %q, want default", cfg.Channels.TrialStartedKey)
	}
	if cfg.ResolveTimeout() != 60*time.Second {
		t.Errorf("resolve timeout = %v, want 60s", cfg.ResolveTimeout())
	}
	if cfg.RequeueDelay() != 500*time.Millisecond {
		t.Errorf("requeue delay = %v, want 500ms", cfg.RequeueDelay())
	}
	if cfg.Worker.MaxRequeueAttempts != 0 {
		t.Errorf("max requeue attempts = %d, want 0 (unbounded)", cfg.Worker.MaxRequeueAttempts)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
channels:
  trial_started_key: run7:starts
  sample_key: run7:samples
datastore:
  resolve_timeout_sec: 5
worker:
  requeue_delay_ms: 50
  max_requeue_attempts: 10
  env_spec_path: envs/drift.toml
models:
  - policy-a
  - policy-b
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Channels.SampleKey != "run7:samples" {
		t.Errorf("sample key = %q", cfg.Channels.SampleKey)
	}
	if cfg.ResolveTimeout() != 5*time.Second {
		t.Errorf("resolve timeout = %v, want 5s", cfg.ResolveTimeout())
	}
	if cfg.RequeueDelay() != 50*time.Millisecond {
		t.Errorf("requeue delay = %v, want 50ms", cfg.RequeueDelay())
	}
	if cfg.Worker.MaxRequeueAttempts != 10 {
		t.Errorf("max requeue attempts = %d, want 10", cfg.Worker.MaxRequeueAttempts)
	}
	if len(cfg.Models) != 2 || cfg.Models[0] != "policy-a" {
		t.Errorf("models = %v", cfg.Models)
	}
}

func TestLoadRejectsNegativeRequeueCap(t *testing.T) {
	path := writeConfig(t, `
worker:
  max_requeue_attempts: -1
`)

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted a negative requeue cap")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() succeeded on a missing file")
	}
}
