package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/journal"
	"tasklist/internal/todo"
)

type fakeRecorder struct {
	events []todo.Event
	err    error
}

func (f *fakeRecorder) Record(ev todo.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeRecorder) Recent(limit int) ([]journal.Entry, error) {
	var out []journal.Entry
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		ev := f.events[i]
		out = append(out, journal.Entry{ID: i + 1, Action: ev.Action, TaskID: ev.TaskID, Description: ev.Description, Filter: ev.Filter, Applied: ev.Applied})
	}
	return out, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyCtrlU = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func newTestModel(t *testing.T, rec recorder, tasks ...todo.Task) (Model, *todo.Store) {
	t.Helper()
	store := todo.NewStore(todo.WithTasks(tasks))
	m, unsubscribe := New(store, rec, config.Default())
	t.Cleanup(unsubscribe)
	return m, store
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(Model)
	}
	return m
}

func TestAddPanel_SubmitAddsAtFrontAndKeepsFocus(t *testing.T) {
	m, store := newTestModel(t, nil, todo.Task{ID: "t1", Description: "Learn X"})

	m = press(m, keyTab, runes("  Buy milk  "), keyEnter)

	tasks := store.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Description != "Buy milk" || tasks[0].Done {
		t.Fatalf("expected new pending task at front, got %#v", tasks[0])
	}
	if tasks[1].ID != "t1" {
		t.Fatalf("expected t1 second, got %#v", tasks[1])
	}
	if got := m.add.draft(); got != "" {
		t.Fatalf("expected draft cleared, got %q", got)
	}
	if m.focus != focusAdd || !m.add.focused() {
		t.Fatalf("expected focus to stay on the add panel")
	}
	if m.status != "Added task" {
		t.Fatalf("expected status %q, got %q", "Added task", m.status)
	}
	if len(m.list.rows) != 2 || m.list.rows[0].task.Description != "Buy milk" {
		t.Fatalf("expected list to show the new task first, got %d rows", len(m.list.rows))
	}
}

func TestAddPanel_BlankSubmitIsDiscarded(t *testing.T) {
	m, store := newTestModel(t, nil, todo.Task{ID: "t1", Description: "A"})
	before := m.status

	m = press(m, keyTab, runes("   "), keyEnter)

	if got := store.Len(); got != 1 {
		t.Fatalf("expected task count to stay 1, got %d", got)
	}
	if got := m.add.draft(); got != "   " {
		t.Fatalf("expected draft to be left alone, got %q", got)
	}
	if m.status != before {
		t.Fatalf("expected no status message, got %q", m.status)
	}
}

func TestAddPanel_EscReturnsToList(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(m, keyTab, runes("half"), keyEsc)
	if m.focus != focusList || m.add.focused() {
		t.Fatalf("expected list focus after esc")
	}
	if got := m.add.draft(); got != "half" {
		t.Fatalf("expected draft kept, got %q", got)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	m = press(m, keyTab)
	mm, _ := m.Update(runes("q"))
	m = mm.(Model)
	if got := m.add.draft(); got != "q" {
		t.Fatalf("expected q to be typed into the add panel, got %q", got)
	}
}

func TestToggleAndDeleteKeys(t *testing.T) {
	m, store := newTestModel(t, nil,
		todo.Task{ID: "t1", Description: "A"},
		todo.Task{ID: "t2", Description: "B"},
	)

	m = press(m, runes("j"), keySpace)
	if got, _ := store.Task("t2"); !got.Done {
		t.Fatalf("expected t2 toggled")
	}
	if m.status != "Toggled task" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = press(m, runes("d"))
	if _, ok := store.Task("t2"); ok {
		t.Fatalf("expected t2 deleted without confirmation")
	}
	if m.list.cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", m.list.cursor)
	}
}

func TestFilterKeys(t *testing.T) {
	m, store := newTestModel(t, nil,
		todo.Task{ID: "t1", Description: "A", Done: true},
		todo.Task{ID: "t2", Description: "B"},
	)

	m = press(m, runes("3"))
	if store.Filter() != todo.FilterDone {
		t.Fatalf("expected done filter, got %q", store.Filter())
	}
	if len(m.list.rows) != 1 || m.list.rows[0].task.ID != "t1" {
		t.Fatalf("expected only t1 visible")
	}

	m = press(m, keySpace)
	if !strings.Contains(m.View(), "No tasks") {
		t.Fatalf("expected placeholder once nothing is done")
	}

	m = press(m, runes("2"))
	if len(m.list.rows) != 2 {
		t.Fatalf("expected both tasks under the to-do filter, got %d", len(m.list.rows))
	}
	m = press(m, runes("1"))
	if store.Filter() != todo.FilterAll {
		t.Fatalf("expected all filter, got %q", store.Filter())
	}
}

func TestJournalRecordsDispatches(t *testing.T) {
	rec := &fakeRecorder{}
	m, _ := newTestModel(t, rec, todo.Task{ID: "t1", Description: "A"})

	m = press(m, keySpace, runes("2"), runes("h"))

	if len(rec.events) != 2 {
		t.Fatalf("expected 2 recorded events, got %d", len(rec.events))
	}
	if rec.events[0].Action != todo.ActionToggle || rec.events[1].Action != todo.ActionFilter {
		t.Fatalf("unexpected events %#v", rec.events)
	}
	if !m.showHistory {
		t.Fatalf("expected history panel to open")
	}
	if len(m.history) != 2 || m.history[0].Action != todo.ActionFilter {
		t.Fatalf("expected newest-first history, got %#v", m.history)
	}
	if !strings.Contains(m.View(), "History") {
		t.Fatalf("expected history panel in view")
	}
}

func TestJournalFailureShownOnStatus(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m, store := newTestModel(t, rec, todo.Task{ID: "t1", Description: "A"})

	m = press(m, keySpace)

	if got, _ := store.Task("t1"); !got.Done {
		t.Fatalf("expected toggle to apply despite journal failure")
	}
	if !m.statusErr || m.status != "journal failed: disk full" {
		t.Fatalf("unexpected status %q (err=%v)", m.status, m.statusErr)
	}
}

func TestViewShowsHeadingAndRows(t *testing.T) {
	m, _ := newTestModel(t, nil,
		todo.Task{ID: "t1", Description: "Learn X"},
		todo.Task{ID: "t2", Description: "Shop", Done: true},
	)
	view := m.View()
	for _, want := range []string{"ToDo App", "[ ] Learn X", "[x]", "Shop", "All", "To do", "Done"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, view)
		}
	}
}
