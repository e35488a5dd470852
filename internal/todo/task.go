// Package todo holds the task collection and the intents that mutate it.
package todo

import (
	"errors"
	"fmt"
	"strings"
)

type Task struct {
	ID          string
	Description string
	Done        bool
}

type Filter string

const (
	FilterAll  Filter = "all"
	FilterNot  Filter = "not"
	FilterDone Filter = "done"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Filters lists the filter modes in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterNot, FilterDone}
}

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterNot, FilterDone:
		return true
	}
	return false
}

// Label is the text shown on the filter control.
func (f Filter) Label() string {
	switch f {
	case FilterNot:
		return "To do"
	case FilterDone:
		return "Done"
	default:
		return "All"
	}
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterDone:
		return t.Done
	case FilterNot:
		return !t.Done
	default:
		return true
	}
}

func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	if !f.Valid() {
		return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
	return f, nil
}
