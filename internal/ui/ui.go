package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/journal"
	"tasklist/internal/todo"
)

type focusArea int

const (
	focusList focusArea = iota
	focusAdd
)

type Model struct {
	store    *todo.Store
	observer *sessionObserver
	cfg      config.Config
	keys     keyMap
	help     help.Model

	add   addPanel
	list  taskList
	focus focusArea

	status      string
	statusErr   bool
	showHistory bool
	history     []journal.Entry
}

// New builds the root model around store and subscribes the journal to it.
// rec may be nil. The returned func drops the subscription.
func New(store *todo.Store, rec recorder, cfg config.Config) (Model, func()) {
	obs := &sessionObserver{rec: rec}
	unsubscribe := store.Subscribe(obs.observe)

	keys := newKeyMap(cfg.Keys)
	m := Model{
		store:    store,
		observer: obs,
		cfg:      cfg,
		keys:     keys,
		help:     help.New(),
		add:      newAddPanel(),
		focus:    focusList,
		status: fmt.Sprintf("Press %s to add, %s to toggle, %s to edit, %s to delete.",
			keys.Focus.Help().Key, keys.Toggle.Help().Key, keys.Edit.Help().Key, keys.Delete.Help().Key),
	}
	m.list.sync(store)
	return m, unsubscribe
}

func Run(store *todo.Store, j *journal.Journal, cfg config.Config) error {
	var rec recorder
	if j != nil {
		rec = j
	}
	m, unsubscribe := New(store, rec, cfg)
	defer unsubscribe()

	log.Printf("starting with %d tasks, filter %s", store.Len(), store.Filter())
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		if m.focus == focusAdd {
			m, cmd = m.updateAdd(msg)
		} else {
			m, cmd = m.updateList(msg)
		}
		m.refresh()
		return m, cmd
	case tea.WindowSizeMsg:
		m.add.setWidth(msg.Width)
		m.list.setWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.add.focused() {
		m.add, cmd = m.add.update(msg)
		cmds = append(cmds, cmd)
	}
	m.list, cmd = m.list.updateInput(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateAdd(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Cancel):
		m.add.blur()
		m.focus = focusList
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.add.submit(m.store)
		return m, nil
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.list.editing() {
		var cmd tea.Cmd
		m.list, cmd = m.list.update(msg, m.keys, m.store)
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		m.focus = focusAdd
		cmd := m.add.focus()
		return m, cmd
	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.update(msg, m.keys, m.store)
	return m, cmd
}

// refresh re-syncs the views from the store after a key was handled.
func (m *Model) refresh() {
	m.list.sync(m.store)

	ev, err := m.observer.take()
	switch {
	case err != nil:
		m.status = fmt.Sprintf("journal failed: %v", err)
		m.statusErr = true
	case ev != nil && ev.Applied:
		m.status = describeEvent(*ev)
		m.statusErr = false
	}

	if m.showHistory && m.observer.rec != nil {
		entries, err := m.observer.rec.Recent(m.cfg.HistorySize)
		if err != nil {
			log.Printf("journal: recent: %v", err)
			m.status = fmt.Sprintf("history failed: %v", err)
			m.statusErr = true
			return
		}
		m.history = entries
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render(m.cfg.Heading))
	b.WriteString("\n\n")
	b.WriteString(m.add.view())
	b.WriteString("\n")
	b.WriteString(m.list.view(m.keys, m.focus == focusList))
	b.WriteString("\n\n")

	if m.statusErr {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	if m.showHistory {
		if m.observer.rec == nil {
			b.WriteString(hintStyle.Render("History unavailable: no journal"))
		} else {
			b.WriteString(renderHistory(m.history))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}
