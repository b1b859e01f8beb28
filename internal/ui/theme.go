package ui

import "github.com/charmbracelet/lipgloss"

// Theme - стили терминального клиента
type Theme struct {
	Title        lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Header       lipgloss.Style
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
	FilterLabel  lipgloss.Style
	FilterActive lipgloss.Style
	StatusBar    lipgloss.Style
}

// DefaultTheme возвращает стандартную тему
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("39")).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")),
		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		RowSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("25")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		ModalBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		FilterLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		FilterActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("240")),
	}
}
