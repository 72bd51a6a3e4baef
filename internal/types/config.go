package types

// Fonts names the four faces a consumer picks from for a span.
type Fonts struct {
	Regular    string `koanf:"regular" toml:"regular" yaml:"regular"`
	Bold       string `koanf:"bold" toml:"bold" yaml:"bold"`
	Italic     string `koanf:"italic" toml:"italic" yaml:"italic"`
	BoldItalic string `koanf:"bold_italic" toml:"bold_italic" yaml:"bold_italic"`
}

// RenderConfig holds the defaults a consumer applies when a span does not
// say otherwise, plus the attribute and tag names it gives meaning to.
type RenderConfig struct {
	DefaultTextColor string   `koanf:"default_text_color" toml:"default_text_color" yaml:"default_text_color"`
	DefaultFontSize  float64  `koanf:"default_font_size" toml:"default_font_size" yaml:"default_font_size"`
	Fonts            Fonts    `koanf:"fonts" toml:"fonts" yaml:"fonts"`
	BoldTag          string   `koanf:"bold_tag" toml:"bold_tag" yaml:"bold_tag"`
	ItalicTag        string   `koanf:"italic_tag" toml:"italic_tag" yaml:"italic_tag"`
	ColorAttr        string   `koanf:"color_attr" toml:"color_attr" yaml:"color_attr"`
	FontSizeAttr     string   `koanf:"font_size_attr" toml:"font_size_attr" yaml:"font_size_attr"`
	HandlerAttrs     []string `koanf:"handler_attrs" toml:"handler_attrs" yaml:"handler_attrs"`
	AllowTrailing    bool     `koanf:"allow_trailing" toml:"allow_trailing" yaml:"allow_trailing"`
}

// DefaultRenderConfig returns the built-in defaults. It must agree with
// internal/config/embedded/defaults.toml.
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		DefaultTextColor: "#6a8eae",
		DefaultFontSize:  20,
		Fonts: Fonts{
			Regular:    "regular.otf",
			Bold:       "bold.otf",
			Italic:     "italic.otf",
			BoldItalic: "bold_italic.otf",
		},
		BoldTag:       TagBold,
		ItalicTag:     TagItalic,
		ColorAttr:     "color",
		FontSizeAttr:  "font_size",
		HandlerAttrs:  []string{"click", "over", "out"},
		AllowTrailing: false,
	}
}
