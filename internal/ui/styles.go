package ui

import "github.com/charmbracelet/lipgloss"

var (
	UserMessageStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	AgentMessageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	ToolStyle         = lipgloss.NewStyle().Faint(true)
	ToolErrorStyle    = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("9"))
	ErrorStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)
