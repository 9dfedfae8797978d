/*
Package explore implements the interactive terminal explorer for
grown decision trees.

The explorer shows the whole tree with a movable cursor. The cursor
descends into either branch of a decision node or climbs back
towards the root, a built-in panel charts feature importance, and
pinning a node traces the rest of a probe record's path from there.
When watching is enabled the tree file is re-read whenever it
changes on disk, so the explorer can follow rebuilds.
*/
package explore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
	treejson "github.com/farazjawedd/XAI-FINAL-PROJ/tree/json"
)

/*
Config configures the explorer.
*/
type Config struct {
	// TreePath is the file the tree was read from. It names the
	// tree on screen and is the file re-read while watching.
	// Leave it empty for trees that did not come from a file.
	TreePath string
	// Probe is an optional record whose decision path is
	// highlighted on the tree.
	Probe dataset.Record
	// Watch re-reads TreePath whenever it changes on disk.
	Watch bool
}

type keyMap struct {
	DescendLeft  key.Binding
	DescendRight key.Binding
	Ascend       key.Binding
	Root         key.Binding
	Importance   key.Binding
	Pin          key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		DescendLeft:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "descend left")),
		DescendRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "descend right")),
		Ascend:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "ascend")),
		Root:         key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "back to root")),
		Importance:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "importance")),
		Pin:          key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin node")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.DescendLeft, k.DescendRight, k.Ascend, k.Importance, k.Pin, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.DescendLeft, k.DescendRight, k.Ascend, k.Root},
		{k.Importance, k.Pin, k.Help, k.Quit},
	}
}

/*
Model is the bubbletea model of the explorer. Build one with New
and hand it to tea.NewProgram, or use Run.
*/
type Model struct {
	cfg  Config
	tree *tree.Tree

	// path holds the nodes from the root to the cursor, which is
	// its last element. Nodes carry no parent pointers, so the
	// stack is what lets the cursor ascend.
	path   []*tree.Node
	pinned *tree.Node

	probePath  []*tree.Node
	probeErr   error
	pinnedPath []*tree.Node
	pinnedErr  error

	showImportance bool
	status         string
	cursorLine     int

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	watcher  *watcher

	ready    bool
	quitting bool
	width    int
	height   int
}

type treeChangedMsg struct{}

/*
New takes a grown tree and a Config and returns an explorer Model
for it, or an error if the tree is empty or the watcher cannot be
started.
*/
func New(t *tree.Tree, cfg Config) (Model, error) {
	if t == nil || t.Root == nil {
		return Model{}, fmt.Errorf("exploring tree: %w", tree.ErrNoTree)
	}
	m := Model{
		cfg:  cfg,
		tree: t,
		path: []*tree.Node{t.Root},
		keys: defaultKeyMap(),
		help: help.New(),
	}
	m.resolveProbePath()
	if cfg.Watch && cfg.TreePath != "" {
		w, err := newWatcher(cfg.TreePath)
		if err != nil {
			return Model{}, err
		}
		m.watcher = w
	}
	return m, nil
}

/*
Run builds an explorer for the given tree and runs it on the
terminal until the user quits.
*/
func Run(t *tree.Tree, cfg Config) error {
	m, err := New(t, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	if m.watcher != nil {
		m.watcher.close()
	}
	if err != nil {
		return fmt.Errorf("exploring tree: %v", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.help.Width = m.width
		m.updateContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.DescendLeft):
			m = m.descend(true)
		case key.Matches(msg, m.keys.DescendRight):
			m = m.descend(false)
		case key.Matches(msg, m.keys.Ascend):
			if len(m.path) > 1 {
				m.path = m.path[:len(m.path)-1]
			}
		case key.Matches(msg, m.keys.Root):
			m.path = m.path[:1]
		case key.Matches(msg, m.keys.Importance):
			m.showImportance = !m.showImportance
		case key.Matches(msg, m.keys.Pin):
			m = m.togglePin()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.updateContent()
		return m, nil

	case treeChangedMsg:
		m = m.reloadTree()
		m.updateContent()
		return m, m.watcher.wait()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) cursor() *tree.Node {
	return m.path[len(m.path)-1]
}

func (m Model) descend(left bool) Model {
	n := m.cursor()
	if n.IsLeaf() {
		return m
	}
	if left {
		m.path = append(m.path, n.Left)
	} else {
		m.path = append(m.path, n.Right)
	}
	return m
}

func (m Model) togglePin() Model {
	if m.pinned == m.cursor() {
		m.pinned = nil
		m.pinnedPath = nil
		m.pinnedErr = nil
		return m
	}
	m.pinned = m.cursor()
	m.pinnedPath = nil
	m.pinnedErr = nil
	if m.cfg.Probe != nil {
		m.pinnedPath, m.pinnedErr = tree.PathFrom(m.pinned, m.cfg.Probe)
	}
	return m
}

func (m *Model) resolveProbePath() {
	m.probePath = nil
	m.probeErr = nil
	if m.cfg.Probe == nil || m.tree == nil {
		return
	}
	m.probePath, m.probeErr = m.tree.Path(m.cfg.Probe)
}

func (m Model) reloadTree() Model {
	f, err := os.Open(m.cfg.TreePath)
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return m
	}
	defer f.Close()
	t, err := treejson.ReadJSONTree(f)
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return m
	}
	if t.Root == nil {
		m.status = "reload failed: tree has no root"
		return m
	}
	m.tree = t
	m.path = []*tree.Node{t.Root}
	m.pinned = nil
	m.pinnedPath = nil
	m.pinnedErr = nil
	m.resolveProbePath()
	m.status = fmt.Sprintf("reloaded %s", filepath.Base(m.cfg.TreePath))
	return m
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	if m.showImportance {
		m.viewport.SetContent(m.renderImportance())
		m.viewport.GotoTop()
		return
	}
	content, cursorLine := m.renderTree()
	m.cursorLine = cursorLine
	m.viewport.SetContent(content)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursorLine >= m.viewport.YOffset && m.cursorLine < m.viewport.YOffset+m.viewport.Height {
		return
	}
	offset := m.cursorLine - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}
