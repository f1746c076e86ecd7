// Package tui provides the terminal view of the connection inventory.
//
// The view observes the inventory model: provider change events arrive
// as messages and are applied to the model inside Update, so all model
// mutation happens on the program's single event-processing goroutine.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/nm-connection-editor/common"
	"github.com/yllada/nm-connection-editor/model"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

// item adapts an inventory row to the list widget.
type item struct {
	row model.Item
}

func (i item) Title() string {
	return i.row.Name()
}

func (i item) Description() string {
	if i.row.Path == "" {
		return "All VPN connections"
	}
	return i.row.Path
}

func (i item) FilterValue() string {
	return i.row.Name()
}

// changeMsg wraps a provider change event as a bubbletea message.
type changeMsg common.ChangeEvent

// View is the bubbletea model rendering the connection inventory.
type View struct {
	inventory *model.Model
	events    <-chan common.ChangeEvent
	list      list.Model
}

// New builds a view over the given inventory, fed by the provider's
// change-event stream and colored for the configured theme.
func New(inventory *model.Model, events <-chan common.ChangeEvent, theme string) View {
	l := list.New(itemsFor(inventory), list.NewDefaultDelegate(), 0, 0)
	l.Title = common.AppName
	l.SetShowStatusBar(false)
	l.Styles.Title = titleStyleFor(theme)

	return View{
		inventory: inventory,
		events:    events,
		list:      l,
	}
}

// Init starts listening for provider change events.
func (v View) Init() tea.Cmd {
	return waitForChange(v.events)
}

// Update handles input and provider events.
func (v View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return v, tea.Quit
		}

	case tea.WindowSizeMsg:
		h, w := docStyle.GetFrameSize()
		v.list.SetSize(msg.Width-w, msg.Height-h)

	case changeMsg:
		v.inventory.Apply(common.ChangeEvent(msg))
		cmd := v.list.SetItems(itemsFor(v.inventory))
		return v, tea.Batch(cmd, waitForChange(v.events))
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the inventory list.
func (v View) View() string {
	return docStyle.Render(v.list.View())
}

// Run displays the inventory until the user quits.
func Run(inventory *model.Model, events <-chan common.ChangeEvent, theme string) error {
	program := tea.NewProgram(New(inventory, events, theme), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// titleStyleFor picks the title bar colors for the configured theme.
// "auto" adapts to the terminal background.
func titleStyleFor(theme string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	switch theme {
	case "light":
		return base.Foreground(lipgloss.Color("235")).Background(lipgloss.Color("117"))
	case "dark":
		return base.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	default:
		return base.
			Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "230"}).
			Background(lipgloss.AdaptiveColor{Light: "117", Dark: "62"})
	}
}

func itemsFor(inventory *model.Model) []list.Item {
	rows := inventory.Items()
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = item{row: row}
	}
	return items
}

func waitForChange(events <-chan common.ChangeEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return changeMsg(ev)
	}
}
