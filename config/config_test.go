package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wedit/editor"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("tab_width: 8\nundo_limit: 100\nclipboard: osc52\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.TabWidth)
	assert.Equal(t, 100, cfg.UndoLimit)
	assert.Equal(t, ClipboardOSC52, cfg.Clipboard)
	assert.Equal(t, editor.DefaultChunkSize, cfg.ChunkSize, "unset keys keep defaults")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("tabwidth: 8\n"))
	assert.Error(t, err)
}

func TestLoadFirstExisting(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte("tab_width: 2\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("tab_width: 6\n"), 0o600))

	cfg, used, err := Load([]string{missing, first, second})
	require.NoError(t, err)
	assert.Equal(t, first, used)
	assert.Equal(t, 2, cfg.TabWidth)
}

func TestLoadNone(t *testing.T) {
	cfg, used, err := Load([]string{filepath.Join(t.TempDir(), "nope.yaml")})
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Default(), cfg)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tab_width: [1, 2]\n"), 0o600))
	_, used, err := Load([]string{path})
	assert.Error(t, err)
	assert.Equal(t, path, used)
}

func TestSearchPaths(t *testing.T) {
	t.Setenv("WEDIT_CONFIG", "/tmp/custom.yaml")
	paths := SearchPaths("/work")
	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, "/tmp/custom.yaml", paths[0])
	assert.Equal(t, filepath.Join("/work", ".wedit.yaml"), paths[1])
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"WEDIT_TAB_WIDTH":  " 3 ",
		"WEDIT_EAST_ASIAN": "true",
		"WEDIT_CLIPBOARD":  "Internal",
		"WEDIT_LOG":        "/tmp/wedit.log",
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TabWidth)
	assert.True(t, cfg.EastAsian)
	assert.Equal(t, ClipboardInternal, cfg.Clipboard)
	assert.Equal(t, "/tmp/wedit.log", cfg.LogFile)
}

func TestApplyEnvReportsBadValues(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"WEDIT_CHUNK_SIZE": "lots",
		"WEDIT_EAST_ASIAN": "maybe",
		"WEDIT_MAX_CHUNKS": "8",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEDIT_CHUNK_SIZE")
	assert.Contains(t, err.Error(), "WEDIT_EAST_ASIAN")
	assert.Equal(t, editor.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, 8, cfg.MaxChunks, "valid values still apply")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.TabWidth = 0
	cfg.ChunkSize = 10
	cfg.UndoLimit = -1
	cfg.Clipboard = "carrier-pigeon"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)

	ok := Default()
	assert.NoError(t, ok.Validate())
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.UndoLimit = 50
	cfg.EastAsian = true
	opts := cfg.Options()
	assert.Equal(t, 50, opts.UndoLimit)
	assert.True(t, opts.EastAsian)
	assert.Equal(t, cfg.ChunkSize, opts.ChunkSize)
}
