package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/pipeline"
	"github.com/matzehuels/fabmenu/pkg/render"
)

// defaultOutputBase is the file name stem used when --output is not set.
const defaultOutputBase = "menu"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file, base path for several formats, or "-" for stdout
	formats string // comma-separated output formats
	noCache bool
	pipeline.Options
}

// renderCommand creates the render command for drawing a static frame.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		mf   menuFlags
		opts = renderOpts{Options: pipeline.Options{
			Total:  pipeline.DefaultTotal,
			Engine: pipeline.DefaultEngine,
			Scale:  pipeline.DefaultScale,
		}}
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a menu frame to svg, json, dot, png or pdf",
		Long: `Render a static frame of a menu with the given configuration.

The sink engine draws the trigger and child items as they would appear on
screen. The nodelink engine draws the trigger-to-item graph through
Graphviz. JSON is the raw frame and DOT is the Graphviz source; both are
independent of the engine.

With several formats, --output is a base path and each file gets its
format's extension. Artifacts are cached; use --refresh to redraw them.`,
		Example: `  fabmenu render --open -n 7
  fabmenu render -c menu.toml -f svg,png --guides -o out/menu
  fabmenu render --strategy grid --engine nodelink -f pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mf.load(cmd)
			if err != nil {
				return err
			}
			opts.Formats = pipeline.ParseFormats(opts.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateEngine(opts.Engine); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.Formats) > 1 {
				return fmt.Errorf("cannot write %d formats to stdout", len(opts.Formats))
			}
			return c.runRender(cmd.Context(), cfg, &opts)
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	cmd.Flags().IntVarP(&opts.Total, "total", "n", opts.Total, "number of child items")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "render the menu expanded")
	cmd.Flags().StringVarP(&opts.Engine, "engine", "e", opts.Engine, "render engine: sink, nodelink")
	cmd.Flags().BoolVar(&opts.Guides, "guides", false, "draw petal rings and grid lines (sink)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label child items with their index (sink)")
	cmd.Flags().BoolVar(&opts.Ghosts, "ghosts", false, "draw closed-menu children as outlines")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show offsets in nodelink labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "png scale factor")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label stored in json output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "redraw even when cached")

	return cmd
}

// runRender renders cfg and writes one file per format.
func (c *CLI) runRender(ctx context.Context, cfg menu.Config, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	toStdout := opts.output == "-"
	var sp *spinner
	if !toStdout {
		sp = newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s", strings.Join(opts.Formats, ", "))).start()
	}

	po := opts.Options
	po.Logger = logger
	result, err := runner.RenderConfig(ctx, cfg, po)
	if sp != nil {
		if err != nil {
			sp.stopWithError("Render failed")
		} else {
			sp.stop()
		}
	}
	if err != nil {
		return err
	}

	if toStdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s (%d bytes)", paths[format], len(result.Artifacts[format]))
	}
	prog.done("Rendered %d format(s)", len(opts.Formats))

	printSuccess("Rendered %s menu", cfg.Strategy)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Frame.Total(), fmt.Sprintf("%s · %s", cfg.Strategy, cfg.Corner), result.CacheHit)
	if !opts.Open {
		printNewline()
		printNextStep("Render expanded", "fabmenu render --open")
	}
	return nil
}

// outputPaths maps every format to the file it is written to. A single
// format uses output as given; several formats share its base path.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output. An empty output
// becomes defaultOutputBase.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if render.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
