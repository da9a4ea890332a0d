// Package ui implements the interactive terminal treemap
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/lumipallolabs/diskmap/internal/core"
	"github.com/lumipallolabs/diskmap/internal/logging"
	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/render"
)

// Screen rows around the treemap
const (
	headerHeight  = 1
	infoBarHeight = 1
	helpBarHeight = 1
)

const doubleClickWindow = 400 * time.Millisecond

// eventMsg wraps a controller event
type eventMsg struct {
	event core.Event
}

// typeDetectedMsg carries the content type sniffed for node of tree
type typeDetectedMsg struct {
	tree     *model.Tree
	node     model.NodeID
	mimeType string
}

// App is the main TUI application model
type App struct {
	ctrl    *core.Controller
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	palette render.Palette
	watch   bool

	width  int
	height int

	// Selection refers to nodes of tree; it is reset when the tree changes
	tree         *model.Tree
	selected     model.NodeID
	selectedType string
	cursorCol    int
	cursorRow    int

	lastClick     time.Time
	lastClickNode model.NodeID

	showHelp bool
	ticking  bool
	notice   string
	err      error
}

// NewApp creates the TUI around ctrl. With watch set, filesystem changes
// trigger rebuilds.
func NewApp(ctrl *core.Controller, palette render.Palette, watch bool) App {
	return App{
		ctrl:          ctrl,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(BusyStyle)),
		palette:       palette,
		watch:         watch,
		selected:      model.NoNode,
		lastClickNode: model.NoNode,
	}
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	a.ctrl.Rescan()
	if a.watch {
		if err := a.ctrl.StartWatching(); err != nil {
			logging.Debug.Debug("watcher not started", "err", err)
		}
	}
	return tea.Batch(a.listen(), a.spinner.Tick)
}

// listen waits for the next controller event
func (a App) listen() tea.Cmd {
	events := a.ctrl.Events()
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{event: event}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.ctrl.Resize(render.CellRect(a.width, a.mapRows()))
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case eventMsg:
		return a.handleEvent(msg.event)

	case typeDetectedMsg:
		// Drop results for a selection that has moved on
		if msg.tree == a.tree && msg.node == a.selected {
			a.selectedType = msg.mimeType
		}
		return a, nil

	case spinner.TickMsg:
		if !a.ctrl.Snapshot().Scan.IsBusy() {
			a.ticking = false
			return a, nil
		}
		a.ticking = true
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) handleEvent(event core.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.listen()}

	switch e := event.(type) {
	case core.ScanStartedEvent:
		a.notice = ""
		if !a.ticking {
			a.ticking = true
			cmds = append(cmds, a.spinner.Tick)
		}

	case core.ChangeDetectedEvent:
		a.notice = fmt.Sprintf("%s %s", e.Type, e.Path)

	case core.LayoutCompletedEvent:
		a.err = e.Err
		if summary := FormatChanges(e.Changes); summary != "" {
			a.notice = summary
		}
		snap := a.ctrl.Snapshot()
		if snap.Tree != a.tree {
			a.tree = snap.Tree
			a.selected = model.NoNode
			a.selectedType = ""
		}

	case core.ErrorEvent:
		a.err = e.Err
	}

	return a, tea.Batch(cmds...)
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay - any key closes it
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Stop()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.Up):
		cmd = a.moveCursor(0, -1)
	case key.Matches(msg, a.keys.Down):
		cmd = a.moveCursor(0, 1)
	case key.Matches(msg, a.keys.Left):
		cmd = a.moveCursor(-1, 0)
	case key.Matches(msg, a.keys.Right):
		cmd = a.moveCursor(1, 0)

	case key.Matches(msg, a.keys.Enter):
		a.openSelected()

	case key.Matches(msg, a.keys.Back):
		if _, ok := a.ctrl.Parent(); !ok {
			a.notice = "already at the top"
		}

	case key.Matches(msg, a.keys.Rescan):
		a.ctrl.Rescan()

	case key.Matches(msg, a.keys.Reveal):
		if n := a.selectedNode(); n != nil {
			if err := revealPath(n.Path); err != nil {
				logging.Debug.Debug("reveal failed", "path", n.Path, "err", err)
			}
		}
	}

	return a, cmd
}

// moveCursor steps the keyboard cursor one cell and selects what lies under it
func (a *App) moveCursor(dx, dy int) tea.Cmd {
	a.cursorCol = max(0, min(a.cursorCol+dx, a.width-1))
	a.cursorRow = max(0, min(a.cursorRow+dy, a.mapRows()-1))
	_, cmd, _ := a.selectAt(a.cursorCol, a.cursorRow)
	return cmd
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}
	row := msg.Y - headerHeight
	if row < 0 || row >= a.mapRows() {
		return a, nil
	}

	a.cursorCol, a.cursorRow = msg.X, row
	id, cmd, ok := a.selectAt(msg.X, row)
	if !ok {
		return a, nil
	}

	now := time.Now()
	if id == a.lastClickNode && now.Sub(a.lastClick) <= doubleClickWindow {
		a.lastClickNode = model.NoNode
		a.openSelected()
		return a, cmd
	}
	a.lastClick, a.lastClickNode = now, id
	return a, cmd
}

// selectAt selects the deepest entry under a map cell. A newly selected file
// gets its content type detected by the returned command.
func (a *App) selectAt(col, row int) (model.NodeID, tea.Cmd, bool) {
	snap := a.ctrl.Snapshot()
	e, ok := snap.Map.HitTest(render.CellPoint(col, row), snap.Tree)
	if !ok {
		return model.NoNode, nil, false
	}
	if snap.Tree == a.tree && e.Node == a.selected {
		return e.Node, nil, true
	}

	a.tree = snap.Tree
	a.selected = e.Node
	a.selectedType = ""
	n := snap.Tree.Node(e.Node)
	if n.IsDir {
		a.selectedType = "directory"
		return e.Node, nil, true
	}
	return e.Node, detectType(snap.Tree, e.Node, n.Path), true
}

// openSelected makes the selected directory the new root
func (a *App) openSelected() {
	n := a.selectedNode()
	if n == nil || !n.IsDir {
		return
	}
	if n.Parent == model.NoNode {
		return
	}
	a.ctrl.Navigate(n.Path)
}

func (a App) selectedNode() *model.Node {
	if a.selected == model.NoNode {
		return nil
	}
	return a.tree.Node(a.selected)
}

func (a App) mapRows() int {
	return max(1, a.height-headerHeight-infoBarHeight-helpBarHeight)
}

// detectType sniffs the content type of the file at path from its first
// bytes. It reads the disk, so it runs as a command.
func detectType(tree *model.Tree, id model.NodeID, path string) tea.Cmd {
	return func() tea.Msg {
		msg := typeDetectedMsg{tree: tree, node: id}
		mt, err := mimetype.DetectFile(path)
		if err != nil {
			logging.Debug.Debug("content type unknown", "path", path, "err", err)
			return msg
		}
		msg.mimeType = mt.String()
		return msg
	}
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	snap := a.ctrl.Snapshot()
	if a.showHelp {
		return a.helpOverlay()
	}

	sections := []string{
		a.header(snap),
		a.mapView(snap),
		a.infoBar(snap),
		a.help.View(a.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) header(snap core.Snapshot) string {
	parts := []string{TitleStyle.Render("diskmap"), snap.Root}
	if !snap.Tree.IsEmpty() {
		root := snap.Tree.Node(snap.Tree.Root())
		parts = append(parts, FormatSize(root.Size), fmt.Sprintf("%d items", snap.Tree.Len()))
	}
	if snap.Scan.IsBusy() {
		status := snap.Scan.Phase.String()
		if snap.Scan.FilesScanned > 0 {
			status += fmt.Sprintf(" %d files, %s", snap.Scan.FilesScanned, FormatSize(snap.Scan.BytesFound))
		}
		parts = append(parts, a.spinner.View()+BusyStyle.Render(status))
	}
	return HeaderStyle.Width(a.width).MaxHeight(headerHeight).Render(strings.Join(parts, "  "))
}

func (a App) mapView(snap core.Snapshot) string {
	rows := a.mapRows()
	if snap.Map.Len() == 0 {
		msg := "Scanning..."
		if !snap.Scan.IsBusy() {
			msg = "Nothing to show"
		}
		return lipgloss.Place(a.width, rows, lipgloss.Center, lipgloss.Center, MutedStyle.Render(msg))
	}

	scene := render.Scene{
		Tree:     snap.Tree,
		Map:      snap.Map,
		Palette:  a.palette,
		Selected: model.NoNode,
	}
	// Ids only match the tree the selection was made in
	if snap.Tree == a.tree {
		scene.Selected = a.selected
	}
	return render.Terminal(scene, a.width, rows)
}

func (a App) infoBar(snap core.Snapshot) string {
	var text string
	switch {
	case a.err != nil:
		text = ErrorStyle.Render(fmt.Sprintf("Error: %v", a.err))
	case snap.Tree == a.tree && snap.Tree.Node(a.selected) != nil:
		n := snap.Tree.Node(a.selected)
		fields := []string{n.Path, FormatSize(n.Size), FormatTime(n.LastModified)}
		if a.selectedType != "" {
			fields = append(fields, a.selectedType)
		}
		text = InfoStyle.Render(strings.Join(fields, "  "))
	case a.notice != "":
		text = MutedStyle.Render(a.notice)
	}
	return lipgloss.NewStyle().Width(a.width).MaxHeight(infoBarHeight).Render(text)
}

func (a App) helpOverlay() string {
	avail := max(1, a.width-HelpOverlayStyle.GetHorizontalFrameSize())
	content := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("diskmap"),
		"",
		MutedStyle.Width(avail).Render("Click to select, double-click a folder to open it."),
		MutedStyle.Width(avail).Render("Brighter green means more recently modified."),
		"",
		a.fullHelp(avail),
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, HelpOverlayStyle.Render(content))
}

// fullHelp renders every binding in as many columns as fit in width
func (a App) fullHelp(width int) string {
	full := a.help
	full.ShowAll = true
	full.Width = 0

	groups := a.keys.FullHelp()
	view := full.FullHelpView(groups)
	for cols := len(groups) - 1; cols > 0 && lipgloss.Width(view) > width; cols-- {
		view = full.FullHelpView(regroup(groups, cols))
	}
	return view
}

// regroup flattens groups and splits the bindings into n columns
func regroup(groups [][]key.Binding, n int) [][]key.Binding {
	var all []key.Binding
	for _, g := range groups {
		all = append(all, g...)
	}
	per := (len(all) + n - 1) / n
	out := make([][]key.Binding, 0, n)
	for len(all) > 0 {
		k := min(per, len(all))
		out = append(out, all[:k])
		all = all[k:]
	}
	return out
}
