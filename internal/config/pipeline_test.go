package config_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/sage/internal/config"
)

func TestPipelineConfigDefaults(t *testing.T) {
	var cfg config.PipelineConfig

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.ContextLimit != 5 {
		t.Errorf("ContextLimit = %d, want 5", cfg.ContextLimit)
	}
	if cfg.HistoryLimit != 2 {
		t.Errorf("HistoryLimit = %d, want 2", cfg.HistoryLimit)
	}
	if cfg.NotesKey != "notes.txt" {
		t.Errorf("NotesKey = %q, want notes.txt", cfg.NotesKey)
	}
	if cfg.AuditKey != "audit.log" {
		t.Errorf("AuditKey = %q, want audit.log", cfg.AuditKey)
	}
}

func TestPipelineConfigEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvPipelineMaxAttempts, "5")
	t.Setenv(config.EnvPipelineNotesKey, "scratch.txt")

	var cfg config.PipelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
	if cfg.NotesKey != "scratch.txt" {
		t.Errorf("NotesKey = %q, want scratch.txt", cfg.NotesKey)
	}
}

func TestPipelineConfigValidation(t *testing.T) {
	cfg := config.PipelineConfig{MaxAttempts: -2}

	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() error = nil, want rejection of negative max_attempts")
	}
}

func TestPipelineConfigMerge(t *testing.T) {
	base := config.PipelineConfig{MaxAttempts: 3, NotesKey: "notes.txt"}
	overlay := config.PipelineConfig{MaxAttempts: 4}

	base.Merge(&overlay)

	if base.MaxAttempts != 4 {
		t.Errorf("MaxAttempts = %d, want 4", base.MaxAttempts)
	}
	if base.NotesKey != "notes.txt" {
		t.Errorf("NotesKey = %q, want unchanged", base.NotesKey)
	}
}

func TestCacheConfigDefaults(t *testing.T) {
	var cfg config.CacheConfig

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Size != 100 {
		t.Errorf("Size = %d, want 100", cfg.Size)
	}
	if cfg.TTLDuration() != time.Hour {
		t.Errorf("TTLDuration() = %v, want 1h", cfg.TTLDuration())
	}
}

func TestCacheConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.CacheConfig
	}{
		{"negative size", config.CacheConfig{Size: -1}},
		{"bad ttl", config.CacheConfig{TTL: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() error = nil, want validation failure")
			}
		})
	}
}
