package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorMuted  = lipgloss.Color("241")
	colorAccent = lipgloss.Color("62")

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(colorAccent).
			Padding(0, 1)

	filterActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Foreground(lipgloss.Color("235")).
				Background(lipgloss.Color("252"))
	filterIdleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorMuted)

	doneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("245"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(1, 2)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	panelFocusedStyle = panelStyle.BorderForeground(colorAccent)

	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
