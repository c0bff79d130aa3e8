package tui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles used by the list view. Colors are ANSI
// 256-color codes.
type Styles struct {
	Header      lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Completed   lipgloss.Style
	Due         lipgloss.Style
	Placeholder lipgloss.Style
	Label       lipgloss.Style
	Prompt      lipgloss.Style
	Notice      lipgloss.Style
	Error       lipgloss.Style
	Empty       lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Tab: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("245")),
		ActiveTab: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("25")),
		Row: lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")),
		Completed: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("242")),
		Due: lipgloss.NewStyle().
			Foreground(lipgloss.Color("180")),
		Placeholder: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("242")),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Empty: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245")),
	}
}
