package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/placesync/placesync/internal/model"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBackendPicker_SelectFirst(t *testing.T) {
	m := NewBackendPickerModel()

	updated, _ := m.Update(keyMsg("enter"))
	picker := updated.(BackendPickerModel)

	result := picker.Result()
	if result.Action != BackendPickerActionSelect {
		t.Fatalf("Action = %v, want select", result.Action)
	}
	if result.Source != model.GTK {
		t.Errorf("Source = %q, want gtk", result.Source)
	}
}

func TestBackendPicker_Navigation(t *testing.T) {
	m := NewBackendPickerModel()

	updated, _ := m.Update(keyMsg("down"))
	updated, _ = updated.(BackendPickerModel).Update(keyMsg("down"))
	updated, _ = updated.(BackendPickerModel).Update(keyMsg("enter"))

	result := updated.(BackendPickerModel).Result()
	if result.Source != model.Qt {
		t.Errorf("Source = %q, want qt", result.Source)
	}
}

func TestBackendPicker_CursorBounds(t *testing.T) {
	m := NewBackendPickerModel()

	// Up at the top stays put; down past the end stays on the last item.
	updated, _ := m.Update(keyMsg("up"))
	picker := updated.(BackendPickerModel)
	if picker.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", picker.cursor)
	}

	for i := 0; i < 5; i++ {
		next, _ := picker.Update(keyMsg("down"))
		picker = next.(BackendPickerModel)
	}
	if picker.cursor != len(picker.backends)-1 {
		t.Errorf("cursor = %d after overshoot, want %d", picker.cursor, len(picker.backends)-1)
	}
}

func TestBackendPicker_Quit(t *testing.T) {
	m := NewBackendPickerModel()

	updated, _ := m.Update(keyMsg("q"))
	result := updated.(BackendPickerModel).Result()
	if result.Action != BackendPickerActionNone {
		t.Errorf("Action = %v after quit, want none", result.Action)
	}
}

func TestBackendPicker_View(t *testing.T) {
	m := NewBackendPickerModel()
	view := m.View()

	for _, b := range model.AllBackends() {
		if !strings.Contains(view, string(b)) {
			t.Errorf("view missing backend %q:\n%s", b, view)
		}
	}
	if !strings.Contains(view, "Select Source Backend") {
		t.Errorf("view missing title:\n%s", view)
	}
}

func TestBackendPicker_ViewEmptyAfterQuit(t *testing.T) {
	m := NewBackendPickerModel()
	updated, _ := m.Update(keyMsg("q"))
	if view := updated.(BackendPickerModel).View(); view != "" {
		t.Errorf("view after quit = %q, want empty", view)
	}
}
