// Package config loads display defaults with koanf. Layers, lowest first:
// the embedded defaults, an optional TOML or YAML file, then HTMLLITE_
// environment variables (double underscore separates nested keys, so
// HTMLLITE_FONTS__BOLD sets fonts.bold).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/riverfjs/htmllite-go/internal/logging"
	"github.com/riverfjs/htmllite-go/internal/types"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "HTMLLITE_"

// DefaultFileNames are probed in the working directory when no path is given.
var DefaultFileNames = []string{".htmllite.toml", "htmllite.toml", ".htmllite.yaml", "htmllite.yaml"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load builds a RenderConfig. path may be empty, in which case the default
// file names are probed in dir.
func Load(dir, path string) (*types.RenderConfig, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, &types.Error{Code: types.CodeConfigParse, Message: "failed to load defaults", Wrapped: err}
	}

	if path == "" {
		path = findConfigFile(dir)
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, &types.Error{Code: types.CodeConfigLoad, Message: fmt.Sprintf("failed to load config from %s", path), Wrapped: err}
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, &types.Error{Code: types.CodeConfigLoad, Message: "failed to load environment", Wrapped: err}
	}

	cfg := &types.RenderConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &types.Error{Code: types.CodeConfigParse, Message: "failed to decode config", Wrapped: err}
	}
	return cfg, nil
}

// Dump renders cfg as TOML.
func Dump(cfg *types.RenderConfig) ([]byte, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Defaults returns the embedded defaults file.
func Defaults() string {
	return string(defaultConfig)
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, types.NewError(types.CodeConfigLoad, types.Pos{}, "unsupported config format %q", filepath.Ext(path))
	}
}

func findConfigFile(dir string) string {
	if dir == "" {
		dir = "."
	}
	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
