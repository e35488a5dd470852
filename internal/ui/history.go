package ui

import (
	"fmt"
	"log"
	"strings"

	"tasklist/internal/journal"
	"tasklist/internal/todo"
)

type recorder interface {
	Record(ev todo.Event) error
	Recent(limit int) ([]journal.Entry, error)
}

// sessionObserver is subscribed to the store. It forwards events to the
// journal and keeps the latest event and error for the status line.
type sessionObserver struct {
	rec  recorder
	last *todo.Event
	err  error
}

func (o *sessionObserver) observe(ev todo.Event) {
	o.last = &ev
	if o.rec == nil {
		return
	}
	if err := o.rec.Record(ev); err != nil {
		log.Printf("journal: record %s %s: %v", ev.Action, ev.TaskID, err)
		o.err = err
	}
}

// take returns and clears what was observed since the last call.
func (o *sessionObserver) take() (*todo.Event, error) {
	ev, err := o.last, o.err
	o.last, o.err = nil, nil
	return ev, err
}

func describeEvent(ev todo.Event) string {
	switch ev.Action {
	case todo.ActionAdd:
		return "Added task"
	case todo.ActionToggle:
		return "Toggled task"
	case todo.ActionDelete:
		return "Deleted task"
	case todo.ActionEdit:
		return "Renamed task"
	case todo.ActionFilter:
		return "Showing " + strings.ToLower(ev.Filter.Label())
	}
	return ""
}

func renderHistory(entries []journal.Entry) string {
	var b strings.Builder
	b.WriteString("History\n")
	if len(entries) == 0 {
		b.WriteString(hintStyle.Render("nothing yet"))
		return panelStyle.Render(b.String())
	}
	for _, e := range entries {
		mark := "✓"
		if !e.Applied {
			mark = "·"
		}
		detail := e.Description
		if e.Action == todo.ActionFilter {
			detail = string(e.Filter)
		}
		line := fmt.Sprintf("%s %s %-6s %s", e.At.Local().Format("15:04:05"), mark, e.Action, detail)
		if !e.Applied {
			line = hintStyle.Render(line)
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
