// Package config reads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/floorplan-tools-mcp/internal/detection"
)

// Environment variables.
const (
	EnvLogLevel         = "FLOORPLAN_MCP_LOG_LEVEL"
	EnvEdgeThreshold    = "FLOORPLAN_EDGE_THRESHOLD"
	EnvMinRunLength     = "FLOORPLAN_MIN_RUN_LENGTH"
	EnvMergeDistance    = "FLOORPLAN_MERGE_DISTANCE"
	EnvMinSeparation    = "FLOORPLAN_MIN_SEPARATION"
	EnvMaxSeparation    = "FLOORPLAN_MAX_SEPARATION"
	EnvCornerTolerance  = "FLOORPLAN_CORNER_TOLERANCE"
	EnvDuplicateOverlap = "FLOORPLAN_DUPLICATE_OVERLAP"
)

// DefaultEnvFile is read when Load is called without file names.
const DefaultEnvFile = ".env"

// Config is the resolved server configuration.
type Config struct {
	LogLevel  string
	Detection detection.Config
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Load resolves the configuration. Values from the process environment win
// over values from the env files; missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	fileEnv := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
}

// FromLookup builds a configuration from lookup, starting from the detection
// defaults. The result is validated.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{Detection: detection.DefaultConfig()}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}

	d := &cfg.Detection
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvEdgeThreshold, &d.EdgeThreshold},
		{EnvMergeDistance, &d.MergeDistance},
		{EnvMinSeparation, &d.MinSeparation},
		{EnvMaxSeparation, &d.MaxSeparation},
		{EnvCornerTolerance, &d.CornerTolerance},
		{EnvDuplicateOverlap, &d.DuplicateOverlap},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvMinRunLength); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvMinRunLength, err)
		}
		d.MinRunLength = n
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection settings: %w", err)
	}
	return cfg, nil
}
