package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type addPanel struct {
	input textinput.Model
}

func newAddPanel() addPanel {
	ti := textinput.New()
	ti.Placeholder = "New task..."
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "+ "
	return addPanel{input: ti}
}

func (p *addPanel) focus() tea.Cmd {
	return p.input.Focus()
}

func (p *addPanel) blur() {
	p.input.Blur()
}

func (p addPanel) focused() bool {
	return p.input.Focused()
}

func (p addPanel) draft() string {
	return p.input.Value()
}

func (p *addPanel) setWidth(w int) {
	if w > 10 {
		p.input.Width = w - 10
	}
}

// submit dispatches the trimmed draft. Blank drafts are dropped without a
// trace and left in place.
func (p *addPanel) submit(d dispatcher) bool {
	text := strings.TrimSpace(p.input.Value())
	if text == "" {
		return false
	}
	d.AddTask(text)
	p.input.SetValue("")
	return true
}

func (p addPanel) update(msg tea.Msg) (addPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p addPanel) view() string {
	style := panelStyle
	if p.focused() {
		style = panelFocusedStyle
	}
	return style.Render(p.input.View())
}
