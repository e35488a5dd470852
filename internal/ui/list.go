package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/todo"
)

// dispatcher is the set of intents the components send to the store.
type dispatcher interface {
	AddTask(description string)
	ToggleDone(id string)
	DeleteTask(id string)
	EditTask(id, description string)
	SetFilter(f todo.Filter)
}

type taskSource interface {
	FilteredTasks() []todo.Task
	Filter() todo.Filter
	Counts() (total, done int)
}

type taskList struct {
	rows   []taskRow
	cursor int
	filter todo.Filter
	total  int
	done   int
	width  int
}

const defaultRowWidth = 40

func (l *taskList) setWidth(w int) {
	l.width = w
	for i := range l.rows {
		l.rows[i].input.Width = l.rowWidth()
	}
}

// rowWidth leaves room for the cursor, checkbox and panel border.
func (l taskList) rowWidth() int {
	if l.width > 20 {
		return l.width - 14
	}
	return defaultRowWidth
}

// sync rebuilds the rows from the store's filtered view. Rows are keyed by
// task id, so a visible task keeps its edit state; rows of tasks that left
// the view are dropped.
func (l *taskList) sync(src taskSource) {
	selectedID := ""
	if r, ok := l.selected(); ok {
		selectedID = r.task.ID
	}

	prev := make(map[string]taskRow, len(l.rows))
	for _, r := range l.rows {
		prev[r.task.ID] = r
	}

	tasks := src.FilteredTasks()
	rows := make([]taskRow, 0, len(tasks))
	cursor := -1
	for i, t := range tasks {
		r, ok := prev[t.ID]
		if ok {
			r.sync(t)
		} else {
			r = newTaskRow(t, l.rowWidth())
		}
		rows = append(rows, r)
		if t.ID == selectedID {
			cursor = i
		}
	}
	l.rows = rows
	if cursor < 0 {
		cursor = l.cursor
	}
	l.cursor = clampCursor(cursor, len(rows))
	l.filter = src.Filter()
	l.total, l.done = src.Counts()
}

func (l taskList) selected() (taskRow, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return taskRow{}, false
	}
	return l.rows[l.cursor], true
}

func (l taskList) editing() bool {
	r, ok := l.selected()
	return ok && r.editing()
}

func (l taskList) update(msg tea.KeyMsg, keys keyMap, d dispatcher) (taskList, tea.Cmd) {
	if !l.editing() {
		switch {
		case key.Matches(msg, keys.Down):
			l.cursor = clampCursor(l.cursor+1, len(l.rows))
			return l, nil
		case key.Matches(msg, keys.Up):
			l.cursor = clampCursor(l.cursor-1, len(l.rows))
			return l, nil
		case key.Matches(msg, keys.FilterAll):
			d.SetFilter(todo.FilterAll)
			return l, nil
		case key.Matches(msg, keys.FilterNot):
			d.SetFilter(todo.FilterNot)
			return l, nil
		case key.Matches(msg, keys.FilterDone):
			d.SetFilter(todo.FilterDone)
			return l, nil
		}
	}
	if _, ok := l.selected(); !ok {
		return l, nil
	}
	var cmd tea.Cmd
	l.rows[l.cursor], cmd = l.rows[l.cursor].update(msg, keys, d)
	return l, cmd
}

// updateInput forwards non-key messages (cursor blink) to the editing row.
func (l taskList) updateInput(msg tea.Msg) (taskList, tea.Cmd) {
	if !l.editing() {
		return l, nil
	}
	var cmd tea.Cmd
	l.rows[l.cursor].input, cmd = l.rows[l.cursor].input.Update(msg)
	return l, cmd
}

func (l taskList) view(keys keyMap, focused bool) string {
	var b strings.Builder
	b.WriteString(l.renderFilters(keys))
	b.WriteString("\n")

	if len(l.rows) == 0 {
		b.WriteString(placeholderStyle.Render("No tasks"))
	} else {
		for i, r := range l.rows {
			b.WriteString(r.view(focused && i == l.cursor, keys))
			b.WriteString("\n")
		}
	}

	style := panelStyle
	if focused {
		style = panelFocusedStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (l taskList) renderFilters(keys keyMap) string {
	bindings := map[todo.Filter]key.Binding{
		todo.FilterAll:  keys.FilterAll,
		todo.FilterNot:  keys.FilterNot,
		todo.FilterDone: keys.FilterDone,
	}
	controls := make([]string, 0, 4)
	for _, f := range todo.Filters() {
		label := fmt.Sprintf("%s %s", bindings[f].Help().Key, f.Label())
		if f == l.filter {
			controls = append(controls, filterActiveStyle.Render(label))
		} else {
			controls = append(controls, filterIdleStyle.Render(label))
		}
	}
	controls = append(controls, hintStyle.Render(fmt.Sprintf("  %d tasks · %d done", l.total, l.done)))
	return lipgloss.JoinHorizontal(lipgloss.Top, controls...)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
