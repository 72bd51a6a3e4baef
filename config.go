package htmllite

import (
	"sync"

	"github.com/riverfjs/htmllite-go/internal/config"
	"github.com/riverfjs/htmllite-go/internal/types"
)

// Configuration types
type (
	RenderConfig = types.RenderConfig
	Fonts        = types.Fonts
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// LoadConfig layers an optional TOML/YAML file and HTMLLITE_ environment
// variables over the defaults. An empty path probes dir for htmllite.toml,
// .htmllite.toml, htmllite.yaml and .htmllite.yaml.
func LoadConfig(dir, path string) (*RenderConfig, error) {
	return config.Load(dir, path)
}
