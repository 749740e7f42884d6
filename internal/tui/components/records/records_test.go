package records

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestUpdateEmitsRecordMessages(t *testing.T) {
	items := []Item{
		{ID: "a", Head: "Padron 1964", Kind: "cigars"},
		{ID: "b", Head: "Oliva Serie V", Kind: "cigars"},
	}
	m := New("cigars", "empty", items, 80, 20)

	tests := []struct {
		key  rune
		want tea.Msg
	}{
		{'a', AddMsg{Kind: "cigars"}},
		{'e', EditMsg{Kind: "cigars", ID: "a"}},
		{'d', DeleteMsg{Kind: "cigars", ID: "a"}},
	}
	for _, tt := range tests {
		_, cmd := m.Update(runeKey(tt.key))
		if cmd == nil {
			t.Fatalf("key %q produced no command", tt.key)
		}
		if got := cmd(); got != tt.want {
			t.Errorf("key %q: got %#v, want %#v", tt.key, got, tt.want)
		}
	}
}

func TestSelectionFollowsCursor(t *testing.T) {
	m := New("journal", "empty", []Item{{ID: "1", Head: "A"}, {ID: "2", Head: "B"}}, 80, 20)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	sel, ok := m.Selected()
	if !ok || sel.ID != "2" {
		t.Errorf("Selected() = %v, %v; want item 2", sel, ok)
	}
}

func TestEmptyView(t *testing.T) {
	m := New("cigars", "Nothing here", nil, 80, 20)
	if got := m.View(); got != "Nothing here" {
		t.Errorf("View() = %q", got)
	}
	_, cmd := m.Update(runeKey('e'))
	if cmd != nil {
		if _, isEdit := cmd().(EditMsg); isEdit {
			t.Error("edit should not fire without a selection")
		}
	}
}
