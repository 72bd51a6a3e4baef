package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	htmllite "github.com/riverfjs/htmllite-go"
	"github.com/riverfjs/htmllite-go/display"
	"github.com/riverfjs/htmllite-go/internal/config"
	"github.com/riverfjs/htmllite-go/internal/logging"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbosity     int
	configPath    string
	markdown      bool
	allowTrailing bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "htmllite",
		Short: "Compile lightweight text markup into styled spans",
		Long: `htmllite compiles markup such as

  { "Hello " } <b color = "#ff0000"> { "world" } </b>

into an ordered list of text spans, each carrying its enclosing tags and
resolved attributes, and renders them to the terminal.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (TOML or YAML); defaults to ./htmllite.toml when present")
	rootCmd.PersistentFlags().BoolVar(&opts.markdown, "markdown", false, "Treat input as Markdown instead of markup")
	rootCmd.PersistentFlags().BoolVar(&opts.allowTrailing, "allow-trailing", false, "Ignore trailing input that forms no word")

	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newSpansCmd(opts))
	rootCmd.AddCommand(newEntitiesCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render markup to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sections, err := compileInput(cmd, opts, args)
			if err != nil {
				return err
			}
			area, err := display.NewArea(cfg)
			if err != nil {
				return err
			}
			if err := area.Push(sections); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderer := display.NewPlainRenderer()
			if f, ok := out.(*os.File); ok && !plain && display.ColorEnabled(f) {
				renderer = display.NewRenderer(f)
			}
			_, err = fmt.Fprintln(out, renderer.Render(area.Nodes()))
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable styling")
	return cmd
}

func newSpansCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "spans [file|-]",
		Short: "Print compiled spans as JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sections, err := compileInput(cmd, opts, args)
			if err != nil {
				return err
			}
			return writeSpans(cmd.OutOrStdout(), sections, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func newEntitiesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entities [file|-]",
		Short: "Print plain text and UTF-16 entities as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sections, err := compileInput(cmd, opts, args)
			if err != nil {
				return err
			}
			text, entities := htmllite.Flatten(sections)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Text     string            `json:"text"`
				Entities []htmllite.Entity `json:"entities"`
			}{text, entities})
		},
	}
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|-]",
		Short: "Compile input and report the first error",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sections, err := compileInput(cmd, opts, args)
			if err != nil {
				if code := htmllite.CodeOf(err); code != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", code)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d span(s)\n", len(sections))
			return nil
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			data, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func loadConfig(opts *globalOptions) (*htmllite.RenderConfig, error) {
	cfg, err := config.Load(".", opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.allowTrailing {
		cfg.AllowTrailing = true
	}
	return cfg, nil
}

// compileInput reads the named file (or stdin) and compiles it.
func compileInput(cmd *cobra.Command, opts *globalOptions, args []string) (*htmllite.RenderConfig, htmllite.Sections, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	src, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return nil, nil, err
	}

	var sections htmllite.Sections
	if opts.markdown {
		sections, err = htmllite.CompileMarkdown(src, htmllite.WithConfig(cfg))
	} else {
		sections, err = htmllite.Compile(src, htmllite.WithConfig(cfg))
	}
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("spans", len(sections)).Msg("Compiled input")
	return cfg, sections, nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// spanView is the serializable form of a span.
type spanView struct {
	Text       string         `json:"text" yaml:"text"`
	Tags       []string       `json:"tags" yaml:"tags"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

func writeSpans(w io.Writer, sections htmllite.Sections, format string) error {
	views := make([]spanView, len(sections))
	for i, s := range sections {
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}
		views[i] = spanView{Text: s.Text, Tags: tags}
		if s.Attrs.Len() > 0 {
			views[i].Attributes = s.Attrs.Describe()
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
