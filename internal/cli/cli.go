package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/pkg/buildinfo"
	"github.com/matzehuels/fabmenu/pkg/cache"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fabmenu"

	// envRedisAddr selects the Redis cache backend when set.
	envRedisAddr = "FABMENU_REDIS_ADDR"

	// cliKeyPrefix scopes CLI cache keys apart from a server sharing the
	// same backend.
	cliKeyPrefix = "cli:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fabmenu lays out and drives draggable floating action menus",
		Long: `fabmenu is a toolkit for corner-anchored floating action button menus.

It computes child item offsets for the petal, vertical and grid layouts,
replays pointer gesture scripts against the tap-versus-drag state machine,
renders menu frames to SVG, JSON, DOT, PNG and PDF, and hosts live menus in
an interactive terminal playground or behind an HTTP API.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerFlagCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, cliKeyPrefix), c.Logger), nil
}

// newCache picks the cache backend: none with --no-cache, Redis when
// FABMENU_REDIS_ADDR is set, otherwise files under the XDG cache dir.
// Every backend reports to the observability cache hooks.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := redisAddr(); addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: addr})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", addr)
		return cache.NewInstrumented(rc), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewInstrumented(fc), nil
}

// =============================================================================
// Paths
// =============================================================================

// redisAddr returns the Redis address from the environment, if any.
func redisAddr() string {
	return os.Getenv(envRedisAddr)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/fabmenu/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Config Helpers
// =============================================================================

// menuFlags are the menu.Config fields exposed as command-line flags.
// Flags that were set on the command line override a --config file.
type menuFlags struct {
	config    string
	corner    string
	strategy  string
	draggable bool
	threshold float64
	radius    float64
	spacing   float64
}

func (f *menuFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "menu config file (.toml, .yaml, .yml or .json)")
	cmd.Flags().StringVar(&f.corner, "corner", string(menu.DefaultCorner), "anchor corner: bottom-right, bottom-left, top-right, top-left")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", string(menu.DefaultStrategy), "layout strategy: petal, vertical, grid")
	cmd.Flags().BoolVar(&f.draggable, "draggable", false, "allow the trigger to be dragged")
	cmd.Flags().Float64Var(&f.threshold, "drag-threshold", menu.DefaultDragThresholdPx, "drag threshold in px (Manhattan)")
	cmd.Flags().Float64Var(&f.radius, "radius", menu.DefaultBaseRadiusPx, "petal base radius in px")
	cmd.Flags().Float64Var(&f.spacing, "spacing", menu.DefaultSpacingPx, "vertical/grid item pitch in px")
}

// load builds the menu config from --config and any explicitly set flags,
// then validates the result.
func (f *menuFlags) load(cmd *cobra.Command) (menu.Config, error) {
	var cfg menu.Config
	if f.config != "" {
		loaded, err := menu.ReadConfig(f.config)
		if err != nil {
			return menu.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("corner") || f.config == "" {
		if err := cfg.Corner.UnmarshalText([]byte(f.corner)); err != nil {
			return menu.Config{}, err
		}
	}
	if flags.Changed("strategy") || f.config == "" {
		if err := cfg.Strategy.UnmarshalText([]byte(f.strategy)); err != nil {
			return menu.Config{}, err
		}
	}
	if flags.Changed("draggable") {
		cfg.Draggable = f.draggable
	}
	if flags.Changed("drag-threshold") {
		cfg.DragThresholdPx = f.threshold
	}
	if flags.Changed("radius") {
		cfg.BaseRadiusPx = f.radius
	}
	if flags.Changed("spacing") {
		cfg.SpacingPx = f.spacing
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return menu.Config{}, err
	}
	return cfg, nil
}
