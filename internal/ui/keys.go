package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"tasklist/internal/config"
)

type keyMap struct {
	Quit       key.Binding
	Focus      key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Edit       key.Binding
	Save       key.Binding
	Cancel     key.Binding
	FilterAll  key.Binding
	FilterNot  key.Binding
	FilterDone key.Binding
	History    key.Binding
	Help       key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:       binding(k.Quit, "quit"),
		Focus:      binding(k.Focus, "switch focus"),
		Up:         binding(k.Up, "up"),
		Down:       binding(k.Down, "down"),
		Toggle:     binding(k.Toggle, "toggle"),
		Delete:     binding(k.Delete, "delete"),
		Edit:       binding(k.Edit, "edit"),
		Save:       binding(k.Save, "save"),
		Cancel:     binding(k.Cancel, "cancel"),
		FilterAll:  binding(k.FilterAll, "all"),
		FilterNot:  binding(k.FilterNot, "to do"),
		FilterDone: binding(k.FilterDone, "done"),
		History:    binding(k.History, "history"),
		Help:       binding(k.Help, "more"),
	}
}

// binding accepts a comma separated list of keys, e.g. "k,up".
// A lone space is kept so it can be bound to the space bar.
func binding(list, desc string) key.Binding {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if t := strings.TrimSpace(k); t != "" {
			k = t
		}
		if k != "" {
			keys = append(keys, k)
		}
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys), desc),
	)
}

func keyLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, "/")
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Edit, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus},
		{k.Toggle, k.Edit, k.Delete},
		{k.Save, k.Cancel},
		{k.FilterAll, k.FilterNot, k.FilterDone},
		{k.History, k.Help, k.Quit},
	}
}
