package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvPipelineMaxAttempts  = "SAGE_PIPELINE_MAX_ATTEMPTS"
	EnvPipelineContextLimit = "SAGE_PIPELINE_CONTEXT_LIMIT"
	EnvPipelineHistoryLimit = "SAGE_PIPELINE_HISTORY_LIMIT"
	EnvPipelineNotesKey     = "SAGE_PIPELINE_NOTES_KEY"
	EnvPipelineAuditKey     = "SAGE_PIPELINE_AUDIT_KEY"

	EnvCacheSize = "SAGE_CACHE_SIZE"
	EnvCacheTTL  = "SAGE_CACHE_TTL"
)

// PipelineConfig holds query pipeline tuning: the completion attempt budget,
// retrieval limits, and the blob keys for notes and the audit log.
type PipelineConfig struct {
	MaxAttempts  int    `toml:"max_attempts"`
	ContextLimit int    `toml:"context_limit"`
	HistoryLimit int    `toml:"history_limit"`
	NotesKey     string `toml:"notes_key"`
	AuditKey     string `toml:"audit_key"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.ContextLimit != 0 {
		c.ContextLimit = overlay.ContextLimit
	}
	if overlay.HistoryLimit != 0 {
		c.HistoryLimit = overlay.HistoryLimit
	}
	if overlay.NotesKey != "" {
		c.NotesKey = overlay.NotesKey
	}
	if overlay.AuditKey != "" {
		c.AuditKey = overlay.AuditKey
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.ContextLimit == 0 {
		c.ContextLimit = 5
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 2
	}
	if c.NotesKey == "" {
		c.NotesKey = "notes.txt"
	}
	if c.AuditKey == "" {
		c.AuditKey = "audit.log"
	}
}

func (c *PipelineConfig) loadEnv() {
	setInt := func(envVar string, target *int) {
		if v := os.Getenv(envVar); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*target = n
			}
		}
	}

	setInt(EnvPipelineMaxAttempts, &c.MaxAttempts)
	setInt(EnvPipelineContextLimit, &c.ContextLimit)
	setInt(EnvPipelineHistoryLimit, &c.HistoryLimit)

	if v := os.Getenv(EnvPipelineNotesKey); v != "" {
		c.NotesKey = v
	}
	if v := os.Getenv(EnvPipelineAuditKey); v != "" {
		c.AuditKey = v
	}
}

func (c *PipelineConfig) validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.ContextLimit < 0 {
		return fmt.Errorf("context_limit must not be negative, got %d", c.ContextLimit)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}

// CacheConfig holds result cache sizing: entry capacity and lifetime.
type CacheConfig struct {
	Size int    `toml:"size"`
	TTL  string `toml:"ttl"`
}

// TTLDuration returns TTL as a time.Duration.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CacheConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CacheConfig) Merge(overlay *CacheConfig) {
	if overlay.Size != 0 {
		c.Size = overlay.Size
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
}

func (c *CacheConfig) loadDefaults() {
	if c.Size == 0 {
		c.Size = 100
	}
	if c.TTL == "" {
		c.TTL = "1h"
	}
}

func (c *CacheConfig) loadEnv() {
	if v := os.Getenv(EnvCacheSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Size = n
		}
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		c.TTL = v
	}
}

func (c *CacheConfig) validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", c.Size)
	}
	if _, err := time.ParseDuration(c.TTL); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	return nil
}
