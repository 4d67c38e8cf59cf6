// Package config loads editor settings from YAML files and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/wedit/editor"
)

// Clipboard modes.
const (
	ClipboardSystem   = "system"
	ClipboardOSC52    = "osc52"
	ClipboardInternal = "internal"
)

// Config holds user-tunable settings. Zero values mean "use the default".
type Config struct {
	TabWidth      int    `yaml:"tab_width"`
	EastAsian     bool   `yaml:"east_asian_width"`
	ChunkSize     int    `yaml:"chunk_size"`
	MaxChunks     int    `yaml:"max_chunks"`
	UndoThreshold int    `yaml:"undo_threshold"`
	UndoLimit     int    `yaml:"undo_limit"`
	Clipboard     string `yaml:"clipboard"`
	LogFile       string `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabWidth:      editor.DefaultTabWidth,
		ChunkSize:     editor.DefaultChunkSize,
		MaxChunks:     editor.DefaultMaxChunks,
		UndoThreshold: editor.DefaultUndoThreshold,
		Clipboard:     ClipboardSystem,
	}
}

// SearchPaths lists candidate config files in priority order: $WEDIT_CONFIG,
// a .wedit.yaml in dir, then the user config directory.
func SearchPaths(dir string) []string {
	paths := make([]string, 0, 3)
	if envPath := strings.TrimSpace(os.Getenv("WEDIT_CONFIG")); envPath != "" {
		paths = append(paths, envPath)
	}
	if dir != "" {
		paths = append(paths, filepath.Join(dir, ".wedit.yaml"))
	}
	if cfgRoot, err := os.UserConfigDir(); err == nil && cfgRoot != "" {
		paths = append(paths, filepath.Join(cfgRoot, "wedit", "config.yaml"))
	}
	return paths
}

// Load reads the first existing file from paths on top of the defaults. It
// returns the path that was used, or "" when none existed.
func Load(paths []string) (Config, string, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Default(), "", fmt.Errorf("read config: %w", err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), path, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

// Parse decodes YAML onto the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from WEDIT_* environment variables found by
// lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	setInt := func(name string, dst *int) {
		v, ok := lookup(name)
		if !ok {
			return
		}
		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = n
	}
	setInt("WEDIT_TAB_WIDTH", &c.TabWidth)
	setInt("WEDIT_CHUNK_SIZE", &c.ChunkSize)
	setInt("WEDIT_MAX_CHUNKS", &c.MaxChunks)
	setInt("WEDIT_UNDO_THRESHOLD", &c.UndoThreshold)
	setInt("WEDIT_UNDO_LIMIT", &c.UndoLimit)

	if v, ok := lookup("WEDIT_EAST_ASIAN"); ok {
		b, err := cast.ToBoolE(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("WEDIT_EAST_ASIAN: %w", err))
		} else {
			c.EastAsian = b
		}
	}
	if v, ok := lookup("WEDIT_CLIPBOARD"); ok {
		c.Clipboard = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("WEDIT_LOG"); ok {
		c.LogFile = strings.TrimSpace(v)
	}
	return errors.Join(errs...)
}

// Validate resets out-of-range settings to their defaults and reports each
// one it changed.
func (c *Config) Validate() error {
	def := Default()
	var errs []error
	clamp := func(name string, v *int, lo, hi, fallback int) {
		if *v < lo || *v > hi {
			errs = append(errs, fmt.Errorf("%s %d out of range [%d, %d], using %d", name, *v, lo, hi, fallback))
			*v = fallback
		}
	}
	clamp("tab_width", &c.TabWidth, 1, 16, def.TabWidth)
	clamp("chunk_size", &c.ChunkSize, 64, 1<<20, def.ChunkSize)
	clamp("max_chunks", &c.MaxChunks, 2, 4096, def.MaxChunks)
	clamp("undo_threshold", &c.UndoThreshold, 1, 10000, def.UndoThreshold)
	clamp("undo_limit", &c.UndoLimit, 0, 1<<20, def.UndoLimit)

	switch c.Clipboard {
	case ClipboardSystem, ClipboardOSC52, ClipboardInternal:
	case "":
		c.Clipboard = def.Clipboard
	default:
		errs = append(errs, fmt.Errorf("unknown clipboard mode %q, using %q", c.Clipboard, def.Clipboard))
		c.Clipboard = def.Clipboard
	}
	return errors.Join(errs...)
}

// Options converts the settings into session options.
func (c Config) Options() editor.Options {
	return editor.Options{
		ChunkSize:     c.ChunkSize,
		MaxChunks:     c.MaxChunks,
		TabWidth:      c.TabWidth,
		EastAsian:     c.EastAsian,
		UndoThreshold: c.UndoThreshold,
		UndoLimit:     c.UndoLimit,
	}
}
