package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumipallolabs/diskmap/internal/core"
	"github.com/lumipallolabs/diskmap/internal/ui"
)

// runTUI opens the interactive treemap for root
func (c *CLI) runTUI(ctx context.Context, root string) error {
	opts, err := c.Config.TreemapOptions()
	if err != nil {
		return err
	}
	palette, err := c.Config.BuildPalette()
	if err != nil {
		return err
	}

	ctrl := core.NewController(root, core.Options{
		Treemap:  opts,
		Debounce: c.Config.Debounce(),
	})
	defer ctrl.Stop()

	p := tea.NewProgram(
		ui.NewApp(ctrl, palette, c.Config.UI.Watch),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
