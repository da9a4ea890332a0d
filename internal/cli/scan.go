package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/scanner"
)

const defaultTop = 10

// scanCommand builds the tree and a parallel survey of the same directory
// side by side and prints a summary
func (c *CLI) scanCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Print a size summary of a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), cmd.OutOrStdout(), pathArg(args), top)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", defaultTop, "number of largest children to list")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, w io.Writer, root string, top int) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var (
		tree    *model.Tree
		summary scanner.Summary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tree = scanner.NewBuilder(nil).Build(gctx, root)
		if tree.IsEmpty() {
			return fmt.Errorf("cannot read %s", root)
		}
		return gctx.Err()
	})
	g.Go(func() error {
		var err error
		summary, err = scanner.Survey(gctx, root, c.Config.Scan.Workers)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %s", root))

	rootNode := tree.Node(tree.Root())
	if summary.Bytes != rootNode.Size {
		logger.Warn("survey and tree disagree, files changed during the scan?",
			"tree", rootNode.Size, "survey", summary.Bytes)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Path\t%s\n", rootNode.Path)
	fmt.Fprintf(tw, "Size\t%s (%s bytes)\n", humanize.IBytes(uint64(rootNode.Size)), humanize.Comma(rootNode.Size))
	fmt.Fprintf(tw, "On disk\t%s\n", humanize.IBytes(uint64(summary.DiskBytes)))
	fmt.Fprintf(tw, "Files\t%s\n", humanize.Comma(summary.Files))
	fmt.Fprintf(tw, "Directories\t%s\n", humanize.Comma(summary.Dirs))
	if summary.Unreadable > 0 {
		fmt.Fprintf(tw, "Unreadable\t%s\n", humanize.Comma(summary.Unreadable))
	}
	if tree.Span() > 0 {
		fmt.Fprintf(tw, "Oldest folder\t%s\n", humanize.Time(tree.Oldest))
		fmt.Fprintf(tw, "Newest folder\t%s\n", humanize.Time(tree.Newest))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	children := tree.SizedChildren(tree.Root())
	if len(children) == 0 || top <= 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, id := range children[:min(top, len(children))] {
		n := tree.Node(id)
		share := float64(n.Size) / float64(rootNode.Size) * 100
		name := n.Name
		if n.IsDir {
			name += "/"
		}
		fmt.Fprintf(tw, "%s\t%.1f%%\t %s\n", humanize.IBytes(uint64(n.Size)), share, name)
	}
	return tw.Flush()
}
