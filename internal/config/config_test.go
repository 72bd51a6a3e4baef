package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/htmllite-go/internal/types"
)

func TestLoad_DefaultsMatchBuiltIn(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultRenderConfig(), cfg)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	content := `
default_text_color = "#ffffff"
[fonts]
bold = "Heavy.otf"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "htmllite.toml"), []byte(content), 0644))

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", cfg.DefaultTextColor)
	assert.Equal(t, "Heavy.otf", cfg.Fonts.Bold)
	// Untouched keys keep their defaults.
	assert.Equal(t, "regular.otf", cfg.Fonts.Regular)
	assert.Equal(t, 20.0, cfg.DefaultFontSize)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "default_font_size: 32\nhandler_attrs:\n  - click\nallow_trailing: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(dir, path)
	require.NoError(t, err)
	assert.Equal(t, 32.0, cfg.DefaultFontSize)
	assert.Equal(t, []string{"click"}, cfg.HandlerAttrs)
	assert.True(t, cfg.AllowTrailing)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HTMLLITE_DEFAULT_TEXT_COLOR", "red")
	t.Setenv("HTMLLITE_FONTS__ITALIC", "Slanted.otf")

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "red", cfg.DefaultTextColor)
	assert.Equal(t, "Slanted.otf", cfg.Fonts.Italic)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir, filepath.Join(dir, "config.json"))
	assert.ErrorIs(t, err, types.ErrConfigLoad)

	_, err = Load(dir, filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, types.ErrConfigLoad)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("default_text_color = ["), 0644))
	_, err = Load(dir, bad)
	assert.ErrorIs(t, err, types.ErrConfigLoad)
}

func TestDump(t *testing.T) {
	data, err := Dump(types.DefaultRenderConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_text_color")
	assert.Contains(t, string(data), "#6a8eae")
	assert.Contains(t, string(data), "[fonts]")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "default_font_size", envKey("HTMLLITE_DEFAULT_FONT_SIZE"))
	assert.Equal(t, "fonts.bold_italic", envKey("HTMLLITE_FONTS__BOLD_ITALIC"))
}
