package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/diskmap/internal/render"
)

const (
	defaultWidth  = 1280 // default image width
	defaultHeight = 800  // default image height
)

type renderOpts struct {
	output string
	width  float64
	height float64
}

// renderCommand writes a treemap image; the format follows the extension
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		output: "diskmap.svg",
		width:  defaultWidth,
		height: defaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render a treemap to SVG or PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), pathArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (.svg or .png)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "image width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "image height")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, root string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	ext := strings.ToLower(filepath.Ext(opts.output))
	if ext != ".svg" && ext != ".png" {
		return fmt.Errorf("unsupported output format %q (use .svg or .png)", ext)
	}
	if opts.width < 1 || opts.height < 1 {
		return fmt.Errorf("image size must be positive, got %vx%v", opts.width, opts.height)
	}

	palette, err := c.Config.BuildPalette()
	if err != nil {
		return err
	}

	tree, m, err := c.buildMap(ctx, root, opts.width, opts.height)
	if err != nil {
		if m == nil {
			return err
		}
		logger.Warn("layout incomplete", "err", err)
	}

	scene := render.NewScene(tree, m)
	scene.Palette = palette

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	prog := newProgress(logger)
	switch ext {
	case ".svg":
		_, err = f.Write(render.SVG(scene))
	case ".png":
		err = render.PNG(f, scene)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Wrote %s", opts.output))
	return nil
}
