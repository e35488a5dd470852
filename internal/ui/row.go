package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/todo"
)

type rowState int

const (
	rowViewing rowState = iota
	rowEditing
)

// taskRow renders one task and owns the draft used while renaming it.
type taskRow struct {
	task   todo.Task
	seen   string // description the draft was last synced from
	seeded string // draft as set from seen, after input sanitizing
	state  rowState
	input  textinput.Model
}

func newTaskRow(t todo.Task, width int) taskRow {
	ti := textinput.New()
	ti.CharLimit = 0
	ti.Width = width
	ti.Prompt = ""
	r := taskRow{task: t, seen: t.Description, input: ti}
	r.resetDraft()
	return r
}

func (r *taskRow) resetDraft() {
	r.input.SetValue(r.task.Description)
	r.input.CursorEnd()
	r.seeded = r.input.Value()
}

func (r taskRow) editing() bool {
	return r.state == rowEditing
}

func (r taskRow) draft() string {
	return r.input.Value()
}

// sync takes the store's copy of the task. A description that changed
// since the last sync overwrites the draft, even mid-edit.
func (r *taskRow) sync(t todo.Task) {
	r.task = t
	if t.Description != r.seen {
		r.seen = t.Description
		r.resetDraft()
	}
}

func (r *taskRow) startEdit() tea.Cmd {
	r.state = rowEditing
	r.resetDraft()
	return r.input.Focus()
}

// save commits the trimmed draft. A blank draft keeps the row in edit mode,
// and an untouched draft closes it without dispatching, since the input
// may have sanitized the stored text.
func (r *taskRow) save(d dispatcher) bool {
	text := strings.TrimSpace(r.input.Value())
	if text == "" {
		return false
	}
	if text != strings.TrimSpace(r.seeded) {
		d.EditTask(r.task.ID, text)
	}
	r.state = rowViewing
	r.input.Blur()
	return true
}

func (r *taskRow) cancel() {
	r.resetDraft()
	r.state = rowViewing
	r.input.Blur()
}

func (r taskRow) update(msg tea.KeyMsg, keys keyMap, d dispatcher) (taskRow, tea.Cmd) {
	if r.editing() {
		switch {
		case key.Matches(msg, keys.Save):
			r.save(d)
			return r, nil
		case key.Matches(msg, keys.Cancel):
			r.cancel()
			return r, nil
		}
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return r, cmd
	}

	switch {
	case key.Matches(msg, keys.Toggle):
		d.ToggleDone(r.task.ID)
	case key.Matches(msg, keys.Delete):
		d.DeleteTask(r.task.ID)
	case key.Matches(msg, keys.Edit):
		cmd := r.startEdit()
		return r, cmd
	}
	return r, nil
}

func (r taskRow) view(selected bool, keys keyMap) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	checkbox := "[ ]"
	if r.task.Done {
		checkbox = "[x]"
	}

	var body, hints string
	if r.editing() {
		body = r.input.View()
		hints = fmt.Sprintf("%s save · %s cancel", keys.Save.Help().Key, keys.Cancel.Help().Key)
	} else {
		body = r.task.Description
		if r.task.Done {
			body = doneStyle.Render(body)
		}
		hints = fmt.Sprintf("%s edit · %s del", keys.Edit.Help().Key, keys.Delete.Help().Key)
	}

	line := cursor + checkbox + " " + body
	if selected {
		line += "  " + hintStyle.Render(hints)
	}
	return line
}
