package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// destinationItem is a list row that moves the drawer to a discrete state when selected.
type destinationItem struct {
	State drawer.State
	Y     float64
	// Current marks the state the drawer is resting in or heading to.
	Current bool
}

// List item interface methods.
func (it destinationItem) Title() string       { return it.State.String() }
func (it destinationItem) Description() string { return "" }
func (it destinationItem) FilterValue() string { return it.State.String() }

// destinationsDelegate renders one-line rows with the anchor Y right-justified.
type destinationsDelegate struct{}

func (d destinationsDelegate) Height() int                             { return 1 }
func (d destinationsDelegate) Spacing() int                            { return 0 }
func (d destinationsDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d destinationsDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(destinationItem)
	if !ok {
		return
	}
	selected := index == m.Index()
	leftPrefix := "  "
	lineStyle := lipgloss.NewStyle()
	if selected {
		leftPrefix = "> "
		lineStyle = lineStyle.Foreground(lipgloss.Color("69")).Bold(true)
	}

	left := fmt.Sprintf("%s%02d. %s", leftPrefix, index+1, it.State)
	right := "y=" + strconv.FormatFloat(it.Y, 'f', -1, 64)
	if it.Current {
		right += " " + lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("●")
	}

	available := m.Width()
	padding := available - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	line := left + spaces(padding) + right
	if available > 0 {
		line = ansi.Truncate(line, available, "…")
	}
	_, _ = fmt.Fprint(w, lineStyle.Render(line))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(n).Render("")
}

func newDestinationList() list.Model {
	lst := list.New([]list.Item{}, destinationsDelegate{}, 0, 0)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowPagination(false)
	lst.DisableQuitKeybindings()
	// Arrow keys move the drawer; the list is navigated with tab.
	lst.KeyMap.CursorUp = key.NewBinding(key.WithKeys("shift+tab"))
	lst.KeyMap.CursorDown = key.NewBinding(key.WithKeys("tab"))
	lst.KeyMap.NextPage = key.NewBinding(key.WithDisabled())
	lst.KeyMap.PrevPage = key.NewBinding(key.WithDisabled())
	lst.KeyMap.GoToStart = key.NewBinding(key.WithDisabled())
	lst.KeyMap.GoToEnd = key.NewBinding(key.WithDisabled())
	return lst
}

// syncDestinations rebuilds the list rows from the current anchors.
func (m *Model) syncDestinations() {
	a := m.ctrl.Anchors()
	target := m.ctrl.TargetState()

	states := append(a.Stops(), drawer.StateDismissed)

	items := make([]list.Item, 0, len(states))
	for _, s := range states {
		items = append(items, destinationItem{State: s, Y: a.PositionY(s), Current: s.Equal(target)})
	}
	m.items.SetItems(items)
}

// selectedDestination returns the state under the list cursor.
func (m Model) selectedDestination() (drawer.State, bool) {
	it, ok := m.items.SelectedItem().(destinationItem)
	if !ok {
		return drawer.State{}, false
	}
	return it.State, true
}
