package todo

import (
	"strings"

	"github.com/google/uuid"
)

type Action string

const (
	ActionAdd    Action = "add"
	ActionToggle Action = "toggle"
	ActionDelete Action = "delete"
	ActionEdit   Action = "edit"
	ActionFilter Action = "filter"
)

// Event describes one dispatched intent. Applied is false when the intent
// left the state unchanged.
type Event struct {
	Action      Action
	TaskID      string
	Description string
	Filter      Filter
	Applied     bool
}

// Store owns the task collection for one session. It is not safe for
// concurrent use; all mutations come from the UI event loop.
type Store struct {
	tasks  []Task
	filter Filter
	newID  func() string

	subs    []subscriber
	lastSub int
}

type subscriber struct {
	id int
	fn func(Event)
}

type options struct {
	tasks  []Task
	filter Filter
	newID  func() string
}

type Option func(*options)

// WithTasks seeds the initial collection. Tasks without an id get a fresh
// one; blank descriptions are skipped.
func WithTasks(tasks []Task) Option {
	return func(o *options) {
		o.tasks = append(o.tasks, tasks...)
	}
}

func WithFilter(f Filter) Option {
	return func(o *options) {
		if f.Valid() {
			o.filter = f
		}
	}
}

func WithIDFunc(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

func NewStore(opts ...Option) *Store {
	o := options{filter: FilterAll, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store{filter: o.filter, newID: o.newID}
	ids := make(map[string]bool, len(o.tasks))
	for _, t := range o.tasks {
		t.Description = strings.TrimSpace(t.Description)
		if t.Description == "" {
			continue
		}
		if t.ID == "" {
			t.ID = s.newID()
		}
		// first task with a given id wins
		if ids[t.ID] {
			continue
		}
		ids[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	return s
}

// Subscribe registers fn to run after every dispatched intent and returns a
// func that removes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.lastSub++
	id := s.lastSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(ev Event) {
	for _, sub := range s.subs {
		sub.fn(ev)
	}
}

func (s *Store) AddTask(description string) {
	description = strings.TrimSpace(description)
	if description == "" {
		s.emit(Event{Action: ActionAdd})
		return
	}
	t := Task{ID: s.newID(), Description: description}
	s.tasks = append([]Task{t}, s.tasks...)
	s.emit(Event{Action: ActionAdd, TaskID: t.ID, Description: description, Applied: true})
}

func (s *Store) ToggleDone(id string) {
	i := s.index(id)
	if i < 0 {
		s.emit(Event{Action: ActionToggle, TaskID: id})
		return
	}
	s.tasks[i].Done = !s.tasks[i].Done
	s.emit(Event{Action: ActionToggle, TaskID: id, Description: s.tasks[i].Description, Applied: true})
}

func (s *Store) DeleteTask(id string) {
	i := s.index(id)
	if i < 0 {
		s.emit(Event{Action: ActionDelete, TaskID: id})
		return
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.emit(Event{Action: ActionDelete, TaskID: id, Description: removed.Description, Applied: true})
}

// EditTask replaces the description of the task with the given id. A
// description that trims to nothing is ignored.
func (s *Store) EditTask(id, description string) {
	description = strings.TrimSpace(description)
	i := s.index(id)
	if i < 0 || description == "" {
		s.emit(Event{Action: ActionEdit, TaskID: id, Description: description})
		return
	}
	s.tasks[i].Description = description
	s.emit(Event{Action: ActionEdit, TaskID: id, Description: description, Applied: true})
}

func (s *Store) SetFilter(f Filter) {
	if !f.Valid() {
		s.emit(Event{Action: ActionFilter, Filter: f})
		return
	}
	s.filter = f
	s.emit(Event{Action: ActionFilter, Filter: f, Applied: true})
}

func (s *Store) Filter() Filter {
	return s.filter
}

// FilteredTasks returns a copy of the tasks matching the active filter, in
// store order.
func (s *Store) FilteredTasks() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Task(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Counts() (total, done int) {
	for _, t := range s.tasks {
		if t.Done {
			done++
		}
	}
	return len(s.tasks), done
}

// index is a linear scan; lists are small and local.
func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
