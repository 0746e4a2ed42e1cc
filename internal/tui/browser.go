// internal/tui/browser.go
//
// Terminal browser over the script-module loader. It uses bubbletea, which
// follows The Elm Architecture: Model holds state, Update reacts to
// messages, View renders a string. Selecting a module loads it through the
// shared loader and shows the resulting namespace.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrybill/modpath/internal/module"
	"github.com/wrybill/modpath/loader"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// moduleItem implements list.Item for one discovered qualified name.
type moduleItem struct {
	name loader.Name
}

func (i moduleItem) Title() string       { return i.name.String() }
func (i moduleItem) Description() string { return "" }
func (i moduleItem) FilterValue() string { return i.name.String() }

type loadResultMsg struct {
	name loader.Name
	mod  *module.Module
	err  error
}

type rescanMsg struct {
	items []list.Item
	err   error
}

// Browser is the bubbletea model for the module browser.
type Browser struct {
	loader  *loader.Loader
	menu    list.Model
	loaded  *module.Module
	current loader.Name
	loadErr error
	width   int
	height  int
}

// NewBrowser builds a browser over the given loader.
func NewBrowser(l *loader.Loader) (*Browser, error) {
	items, err := discoverItems(l)
	if err != nil {
		return nil, err
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	menu := list.New(items, delegate, 0, 0)
	menu.Title = "script modules"
	menu.SetShowStatusBar(false)
	return &Browser{loader: l, menu: menu}, nil
}

func discoverItems(l *loader.Loader) ([]list.Item, error) {
	names, err := l.Discover()
	if err != nil {
		return nil, fmt.Errorf("tui: discover modules: %w", err)
	}
	items := make([]list.Item, len(names))
	for idx, name := range names {
		items[idx] = moduleItem{name: name}
	}
	return items, nil
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.menu.SetSize(msg.Width/2, msg.Height-2)
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "enter":
			if item, ok := b.menu.SelectedItem().(moduleItem); ok {
				return b, b.loadCmd(item.name)
			}
			return b, nil
		case "r":
			return b, b.rescanCmd()
		}

	case loadResultMsg:
		b.current = msg.name
		b.loaded = msg.mod
		b.loadErr = msg.err
		return b, nil

	case rescanMsg:
		if msg.err == nil {
			return b, b.menu.SetItems(msg.items)
		}
		b.loadErr = msg.err
		return b, nil
	}

	var cmd tea.Cmd
	b.menu, cmd = b.menu.Update(msg)
	return b, cmd
}

func (b *Browser) loadCmd(name loader.Name) tea.Cmd {
	return func() tea.Msg {
		mod, err := b.loader.Load(name)
		return loadResultMsg{name: name, mod: mod, err: err}
	}
}

func (b *Browser) rescanCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := discoverItems(b.loader)
		return rescanMsg{items: items, err: err}
	}
}

// View implements tea.Model.
func (b *Browser) View() string {
	left := b.menu.View()
	right := detailBoxStyle.Render(b.detailView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := mutedStyle.Render("enter: load · r: rescan · q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (b *Browser) detailView() string {
	if b.current == "" {
		return mutedStyle.Render("select a module and press enter")
	}
	var lines []string
	lines = append(lines, titleStyle.Render(b.current.String()))
	if b.loadErr != nil {
		lines = append(lines, errorStyle.Render(b.loadErr.Error()))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, fmt.Sprintf("file: %s", b.loaded.File()))
	if search := b.loaded.SearchPath(); len(search) > 0 {
		lines = append(lines, fmt.Sprintf("package dir: %s", search[0]))
	}
	exported := b.loaded.Exported()
	if len(exported) == 0 {
		lines = append(lines, mutedStyle.Render("no exported symbols"))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, "exported:")
	for _, name := range exported {
		lines = append(lines, "  "+name)
	}
	return strings.Join(lines, "\n")
}

// Run starts the browser and blocks until it exits.
func Run(l *loader.Loader) error {
	browser, err := NewBrowser(l)
	if err != nil {
		return err
	}
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
