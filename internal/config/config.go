// Package config loads the worker configuration from a yaml file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the worker process configuration.
type Config struct {
	Redis     RedisConfig     `yaml:"redis"`
	Channels  ChannelsConfig  `yaml:"channels"`
	Datastore DatastoreConfig `yaml:"datastore"`
	Worker    WorkerConfig    `yaml:"worker"`
	Models    []string        `yaml:"models,omitempty"`
}

// RedisConfig locates the redis instance carrying the channels, the trial
// datastore, and the model registry.
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// ChannelsConfig names the redis lists backing the two channels.
type ChannelsConfig struct {
	TrialStartedKey string `yaml:"trial_started_key"`
	SampleKey       string `yaml:"sample_key"`
}

// DatastoreConfig tunes trial directory access.
type DatastoreConfig struct {
	ResolveTimeoutSec float64 `yaml:"resolve_timeout_sec"`
}

// WorkerConfig tunes the retrieval loop.
type WorkerConfig struct {
	RequeueDelayMs     int    `yaml:"requeue_delay_ms"`
	MaxRequeueAttempts int    `yaml:"max_requeue_attempts"` // 0 = unbounded
	EnvSpecPath        string `yaml:"env_spec_path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Channels: ChannelsConfig{
			TrialStartedKey: "channel:trial_started",
			SampleKey:       "channel:samples",
		},
		Datastore: DatastoreConfig{
			ResolveTimeoutSec: 60,
		},
		Worker: WorkerConfig{
			RequeueDelayMs: 500,
			EnvSpecPath:    "env.toml",
		},
	}
}

// Load reads and parses a worker config file, filling defaults for missing
// values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading worker config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing worker config: %w", err)
	}

	// Apply defaults for values explicitly set to zero
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Channels.TrialStartedKey == "" {
		cfg.Channels.TrialStartedKey = "channel:trial_started"
	}
	if cfg.Channels.SampleKey == "" {
		cfg.Channels.SampleKey = "channel:samples"
	}
	if cfg.Datastore.ResolveTimeoutSec <= 0 {
		cfg.Datastore.ResolveTimeoutSec = 60
	}
	if cfg.Worker.MaxRequeueAttempts < 0 {
		return cfg, fmt.Errorf("worker.max_requeue_attempts must not be negative, got %d", cfg.Worker.MaxRequeueAttempts)
	}

	return cfg, nil
}

// ResolveTimeout returns the datastore resolve timeout as a duration.
func (c Config) ResolveTimeout() time.Duration {
	return time.Duration(c.Datastore.ResolveTimeoutSec * float64(time.Second))
}

// RequeueDelay returns the requeue pause as a duration.
func (c Config) RequeueDelay() time.Duration {
	return time.Duration(c.Worker.RequeueDelayMs) * time.Millisecond
}
