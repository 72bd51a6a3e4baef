package htmllite

import (
	"github.com/rs/zerolog"

	"github.com/riverfjs/htmllite-go/internal/compiler"
	"github.com/riverfjs/htmllite-go/internal/lexer"
)

// CompileOptions holds options for compilation.
type CompileOptions struct {
	AllowTrailing bool
	Refs          map[string]any
	Factories     map[string]Factory
	Config        *RenderConfig
	Logger        *zerolog.Logger
}

// Option is a function that configures CompileOptions.
type Option func(*CompileOptions)

// WithAllowTrailing sets whether trailing input that forms no word is
// ignored instead of failing the compilation.
func WithAllowTrailing(allow bool) Option {
	return func(opts *CompileOptions) {
		opts.AllowTrailing = allow
	}
}

// WithRefs adds identifier values, e.g. `color = accent`.
func WithRefs(refs map[string]any) Option {
	return func(opts *CompileOptions) {
		for k, v := range refs {
			opts.Refs[k] = v
		}
	}
}

// WithRef adds a single identifier value.
func WithRef(name string, value any) Option {
	return func(opts *CompileOptions) {
		opts.Refs[name] = value
	}
}

// WithFactory registers a constructor for inline values such as
// `click = { Observer(tada) }`. It runs once per span.
func WithFactory(name string, f Factory) Option {
	return func(opts *CompileOptions) {
		opts.Factories[name] = f
	}
}

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *CompileOptions) {
		opts.Config = config
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *CompileOptions) {
		opts.Logger = &logger
	}
}

// defaultCompileOptions returns the default compile options.
func defaultCompileOptions() *CompileOptions {
	return &CompileOptions{
		Refs:      make(map[string]any),
		Factories: make(map[string]Factory),
		Config:    DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *CompileOptions {
	options := defaultCompileOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *CompileOptions) allowTrailing() bool {
	return o.AllowTrailing || (o.Config != nil && o.Config.AllowTrailing)
}

func (o *CompileOptions) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return packageLogger()
}

func (o *CompileOptions) compilerOptions() compiler.Options {
	logger := o.logger()
	return compiler.Options{
		Refs:      o.Refs,
		Factories: o.Factories,
		Logger:    &logger,
	}
}

func (o *CompileOptions) lexerOptions() lexer.Options {
	logger := o.logger()
	return lexer.Options{
		AllowTrailing: o.allowTrailing(),
		Logger:        &logger,
	}
}
