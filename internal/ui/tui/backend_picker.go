// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/placesync/placesync/internal/model"
)

// BackendPickerAction represents the action taken in the picker.
type BackendPickerAction int

const (
	// BackendPickerActionNone means no action was taken (user quit).
	BackendPickerActionNone BackendPickerAction = iota
	// BackendPickerActionSelect means the user selected a source backend.
	BackendPickerActionSelect
)

// BackendPickerResult contains the result of the picker interaction.
type BackendPickerResult struct {
	Action BackendPickerAction
	Source model.Backend
}

// backendPickerKeyMap defines the key bindings for the backend picker.
type backendPickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultBackendPickerKeyMap() backendPickerKeyMap {
	return backendPickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// backendDescriptions explains each store in the list view.
var backendDescriptions = map[model.Backend]string{
	model.GTK: "GTK file chooser bookmarks (plain text)",
	model.KDE: "KDE places (XBEL)",
	model.Qt:  "Qt file dialog shortcuts (INI)",
}

// Styles for the backend picker TUI.
var backendPickerStyles = struct {
	Title       lipgloss.Style
	Help        lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Item:        lipgloss.NewStyle().Padding(0, 2),
	Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2),
	Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 4),
}

var pickerTitleCaser = cases.Title(language.English)

// BackendPickerModel is the BubbleTea model for source backend selection.
type BackendPickerModel struct {
	backends []model.Backend
	cursor   int
	keys     backendPickerKeyMap
	result   BackendPickerResult
	quitting bool
}

// NewBackendPickerModel creates a new backend picker model.
func NewBackendPickerModel() BackendPickerModel {
	return BackendPickerModel{
		backends: model.AllBackends(),
		keys:     defaultBackendPickerKeyMap(),
	}
}

// Result returns the outcome of the picker interaction.
func (m BackendPickerModel) Result() BackendPickerResult {
	return m.result
}

// Init implements tea.Model.
func (m BackendPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BackendPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.backends)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		m.result = BackendPickerResult{
			Action: BackendPickerActionSelect,
			Source: m.backends[m.cursor],
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m BackendPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(backendPickerStyles.Title.Render(pickerTitleCaser.String("select source backend")))
	b.WriteString("\n\n")

	for i, backend := range m.backends {
		line := fmt.Sprintf("  %s", backend)
		if i == m.cursor {
			line = backendPickerStyles.Selected.Render(fmt.Sprintf("> %s", backend))
		} else {
			line = backendPickerStyles.Item.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(backendPickerStyles.Description.Render(backendDescriptions[backend]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(backendPickerStyles.Help.Render("↑/k up • ↓/j down • enter select • q quit"))
	b.WriteString("\n")

	return b.String()
}

// RunBackendPicker runs the picker and returns the selected source.
func RunBackendPicker() (BackendPickerResult, error) {
	p := tea.NewProgram(NewBackendPickerModel())
	final, err := p.Run()
	if err != nil {
		return BackendPickerResult{}, err
	}
	m, ok := final.(BackendPickerModel)
	if !ok {
		return BackendPickerResult{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}
