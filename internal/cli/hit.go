package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/treemap"
)

// hitCommand lays out a tree and prints the deepest entry under a point
func (c *CLI) hitCommand() *cobra.Command {
	opts := renderOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "hit <path> <x> <y>",
		Short: "Print the entry under a point of the treemap",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}
			return c.runHit(cmd.Context(), cmd.OutOrStdout(), args[0], model.Point{X: x, Y: y}, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "layout width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "layout height")

	return cmd
}

func (c *CLI) runHit(ctx context.Context, w io.Writer, root string, p model.Point, opts renderOpts) error {
	tree, m, err := c.buildMap(ctx, root, opts.width, opts.height)
	if err != nil && m == nil {
		return err
	}

	e, ok := treemap.HitTest(p, tree, m)
	if !ok {
		return fmt.Errorf("no entry at %v,%v", p.X, p.Y)
	}
	n := tree.Node(e.Node)
	fmt.Fprintf(w, "%s\t%s\t%v\n", n.Path, humanize.IBytes(uint64(n.Size)), e.Rect)
	return nil
}
