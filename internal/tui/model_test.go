package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ltask/internal/app"
	"ltask/internal/backend/localstore"
	"ltask/internal/testutil"
)

const seed = `[
  {"id":"1","title":"Buy milk","dueDate":"2024-01-01","completed":false},
  {"id":"2","title":"Walk dog","dueDate":"","completed":true}
]`

func newModel(t *testing.T, kv *testutil.MemoryStore) (*Model, *localstore.Store) {
	t.Helper()
	s := localstore.New(kv, localstore.Options{Logger: zerolog.Nop()})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(context.Background(), s, Options{Logger: zerolog.Nop()}), s
}

func seeded(t *testing.T) (*Model, *localstore.Store, *testutil.MemoryStore) {
	t.Helper()
	kv := testutil.NewMemoryStore()
	kv.Put("tasks", seed)
	m, s := newModel(t, kv)
	return m, s, kv
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestAddForm(t *testing.T) {
	m, s := newModel(t, testutil.NewMemoryStore())

	send(m, runes("a"), runes("Buy milk"), tab, runes("2024-01-01"), enter)

	tasks := s.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" || tasks[0].DueDate != "2024-01-01" {
		t.Errorf("unexpected task: %+v", tasks[0])
	}
	if m.mode != modeList {
		t.Errorf("expected list mode after submit, got %d", m.mode)
	}

	v := m.View()
	if !strings.Contains(v, "Buy milk") || !strings.Contains(v, "0% Complete") {
		t.Errorf("view missing new task or progress:\n%s", v)
	}
}

func TestAddForm_TypingDoesNotTriggerBindings(t *testing.T) {
	m, s := newModel(t, testutil.NewMemoryStore())

	send(m, runes("a"), runes("q"))
	if m.mode != modeAdd {
		t.Fatalf("q in the add form should be typed, mode %d", m.mode)
	}
	send(m, enter)

	if got := s.Tasks(); len(got) != 1 || got[0].Title != "q" {
		t.Errorf("expected task titled q, got %+v", got)
	}
}

func TestAddForm_EmptyTitleShowsNotice(t *testing.T) {
	m, s := newModel(t, testutil.NewMemoryStore())

	send(m, runes("a"), runes("   "), enter)

	if len(s.Tasks()) != 0 {
		t.Fatalf("expected no tasks, got %d", len(s.Tasks()))
	}
	if m.mode != modeNotice {
		t.Fatalf("expected notice mode, got %d", m.mode)
	}
	if !strings.Contains(m.View(), app.MsgEmptyTitle) {
		t.Errorf("view missing notice:\n%s", m.View())
	}

	send(m, runes("z"))
	if m.mode != modeAdd {
		t.Errorf("expected to return to the add form, got %d", m.mode)
	}
	if len(s.Tasks()) != 0 {
		t.Errorf("dismissing the notice should not add a task")
	}
}

func TestAddForm_Cancel(t *testing.T) {
	m, s := newModel(t, testutil.NewMemoryStore())

	send(m, runes("a"), runes("Draft"), esc)

	if len(s.Tasks()) != 0 {
		t.Errorf("expected no tasks after cancel")
	}
	if m.mode != modeList {
		t.Errorf("expected list mode, got %d", m.mode)
	}
	if m.titleInput.Value() != "" {
		t.Errorf("expected title input cleared, got %q", m.titleInput.Value())
	}
}

func TestToggleSelected(t *testing.T) {
	m, s, _ := seeded(t)

	send(m, space)
	task, _ := s.Find("1")
	if !task.Completed {
		t.Fatal("expected first task completed")
	}
	if !strings.Contains(m.View(), "100% Complete") {
		t.Errorf("expected 100%% progress:\n%s", m.View())
	}

	send(m, runes("j"), runes("x"))
	task, _ = s.Find("2")
	if task.Completed {
		t.Error("expected second task toggled back to active")
	}
	if !strings.Contains(m.View(), "50% Complete") {
		t.Errorf("expected 50%% progress:\n%s", m.View())
	}
}

func TestToggleLabelFollowsSelection(t *testing.T) {
	m, _, _ := seeded(t)

	if !strings.Contains(m.View(), "Mark Complete") {
		t.Errorf("expected Mark Complete for active task:\n%s", m.View())
	}
	send(m, runes("j"))
	if !strings.Contains(m.View(), "Mark Incomplete") {
		t.Errorf("expected Mark Incomplete for completed task:\n%s", m.View())
	}
}

func TestFilterKeys(t *testing.T) {
	m, _, _ := seeded(t)

	tests := []struct {
		msg      tea.KeyMsg
		want     []string
		dontWant []string
	}{
		{runes("2"), []string{"Buy milk"}, []string{"Walk dog"}},
		{runes("3"), []string{"Walk dog"}, []string{"Buy milk"}},
		{runes("1"), []string{"Buy milk", "Walk dog"}, nil},
		{tab, []string{"Buy milk"}, []string{"Walk dog"}},
	}
	for _, tt := range tests {
		send(m, tt.msg)
		v := m.View()
		for _, w := range tt.want {
			if !strings.Contains(v, w) {
				t.Errorf("after %q: view missing %q", tt.msg.String(), w)
			}
		}
		for _, w := range tt.dontWant {
			if strings.Contains(v, w) {
				t.Errorf("after %q: view should not contain %q", tt.msg.String(), w)
			}
		}
		// progress covers the whole collection regardless of filter
		if !strings.Contains(v, "50% Complete") {
			t.Errorf("after %q: expected 50%% progress", tt.msg.String())
		}
	}
}

func TestFilterTargetsVisibleRow(t *testing.T) {
	m, s, _ := seeded(t)

	send(m, runes("3"), space)

	task, _ := s.Find("2")
	if task.Completed {
		t.Error("expected the completed task to be toggled")
	}
	task, _ = s.Find("1")
	if task.Completed {
		t.Error("hidden task should not change")
	}
}

func TestEdit_TwoSteps(t *testing.T) {
	m, s, _ := seeded(t)

	send(m, runes("e"))
	if m.mode != modeEditTitle {
		t.Fatalf("expected title prompt, got %d", m.mode)
	}
	if !strings.Contains(m.View(), app.MsgEditTitle) {
		t.Errorf("view missing title prompt")
	}

	send(m, runes(" today"), enter)
	if m.mode != modeEditDue {
		t.Fatalf("expected due prompt, got %d", m.mode)
	}
	if got := m.promptInput.Value(); got != "2024-01-01" {
		t.Errorf("expected due prompt prefilled, got %q", got)
	}

	send(m, runes("X"), enter)
	task, _ := s.Find("1")
	if task.Title != "Buy milk today" || task.DueDate != "2024-01-01X" {
		t.Errorf("unexpected task after edit: %+v", task)
	}
	if m.mode != modeList {
		t.Errorf("expected list mode, got %d", m.mode)
	}
}

func TestEdit_CancelTitleAbandons(t *testing.T) {
	m, s, kv := seeded(t)

	send(m, runes("e"), runes("!!"), esc)

	task, _ := s.Find("1")
	if task.Title != "Buy milk" {
		t.Errorf("title changed: %q", task.Title)
	}
	if kv.Writes() != 0 {
		t.Errorf("expected no writes, got %d", kv.Writes())
	}
}

func TestEdit_CancelDueKeepsTitle(t *testing.T) {
	m, s, kv := seeded(t)

	send(m, runes("e"), runes("!"), enter, esc)

	task, _ := s.Find("1")
	if task.Title != "Buy milk!" || task.DueDate != "2024-01-01" {
		t.Errorf("unexpected task: %+v", task)
	}
	if kv.Writes() != 1 {
		t.Errorf("expected 1 write, got %d", kv.Writes())
	}
}

func TestDelete_Confirm(t *testing.T) {
	m, s, _ := seeded(t)

	send(m, runes("d"))
	if !strings.Contains(m.View(), app.MsgConfirmDelete) {
		t.Errorf("view missing confirmation")
	}
	send(m, runes("y"))

	if _, ok := s.Find("1"); ok {
		t.Error("expected task deleted")
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}

func TestDelete_Decline(t *testing.T) {
	m, s, kv := seeded(t)

	send(m, runes("d"), runes("n"))

	if len(s.Tasks()) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(s.Tasks()))
	}
	if kv.Writes() != 0 {
		t.Errorf("expected no writes, got %d", kv.Writes())
	}
	if m.mode != modeList {
		t.Errorf("expected list mode, got %d", m.mode)
	}
}

func TestDeleteLastRowClampsCursor(t *testing.T) {
	m, s, _ := seeded(t)

	send(m, runes("j"), runes("d"), runes("y"))

	if len(s.Tasks()) != 1 {
		t.Fatalf("expected 1 task, got %d", len(s.Tasks()))
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestStorageErrorShownInStatus(t *testing.T) {
	m, s, kv := seeded(t)
	kv.SetErr = errors.New("disk full")

	send(m, space)

	task, _ := s.Find("1")
	if !task.Completed {
		t.Error("expected in-memory toggle to be kept")
	}
	if !strings.Contains(m.View(), "storage error: disk full") {
		t.Errorf("view missing storage error:\n%s", m.View())
	}
}

func TestEmptyList(t *testing.T) {
	m, _ := newModel(t, testutil.NewMemoryStore())

	send(m, space, runes("e"), runes("d"))
	if m.mode != modeList {
		t.Errorf("actions on an empty list should be ignored, mode %d", m.mode)
	}
	v := m.View()
	if !strings.Contains(v, "no tasks") || !strings.Contains(v, "0% Complete") {
		t.Errorf("unexpected empty view:\n%s", v)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, testutil.NewMemoryStore())

	cmd := send(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}
