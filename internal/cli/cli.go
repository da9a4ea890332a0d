// Package cli implements the diskmap command-line interface.
//
// The root command opens the interactive treemap. Subcommands print scan
// summaries, render treemaps to SVG or PNG, and hit-test points. All commands
// support --verbose for debug-level logging and --config for a YAML or TOML
// settings file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/diskmap/internal/config"
	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/scanner"
	"github.com/lumipallolabs/diskmap/internal/treemap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	Config     *config.Config
	configPath string
	verbose    bool
}

// New creates a CLI logging to w
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.DefaultConfig(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "diskmap [path]",
		Short: "diskmap shows disk usage as a treemap",
		Long: `diskmap scans a directory tree and shows it as a squarified treemap.
Rectangle areas are proportional to sizes; brighter colors are more recently
modified. Without a subcommand it opens the interactive view.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), pathArg(args))
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.diskmap/config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.hitCommand())

	return root
}

// setup applies --verbose, loads the config and attaches the logger to the
// command context
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.Logger.SetLevel(LogDebug)
	}

	path := c.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			c.Logger.Debug("no default config path", "err", err)
			path = ""
		}
	}
	if path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		c.Config = cfg
		c.Logger.Debug("config loaded", "path", path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// pathArg returns the first argument or the working directory
func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// buildMap scans root and lays it out in a width x height container
func (c *CLI) buildMap(ctx context.Context, root string, width, height float64) (*model.Tree, *treemap.Map, error) {
	logger := loggerFromContext(ctx)

	opts, err := c.Config.TreemapOptions()
	if err != nil {
		return nil, nil, err
	}

	prog := newProgress(logger)
	tree := scanner.NewBuilder(nil).Build(ctx, root)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if tree.IsEmpty() {
		return nil, nil, fmt.Errorf("cannot read %s", root)
	}
	prog.done(fmt.Sprintf("Scanned %d items", tree.Len()))

	prog = newProgress(logger)
	m, err := treemap.NewBuilder(opts).Build(ctx, model.NewRect(0, 0, width, height), tree)
	if err != nil {
		return tree, m, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	prog.done(fmt.Sprintf("Laid out %d rectangles", m.Len()))
	return tree, m, nil
}
