// Package cli provides styled terminal output for the ledger commands using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("86")
	// SuccessColor indicates balanced books and successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// ErrorColor indicates imbalances or failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// WarningColor indicates warnings.
	WarningColor = lipgloss.Color("#FFE66D")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("241")

	// TitleStyle is used for report titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor).
				Padding(0, 1)

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// AmountCellStyle right-aligns numeric columns.
	AmountCellStyle = TableCellStyle.Align(lipgloss.Right)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a report title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatBalanced renders the balanced flag of a report.
func FormatBalanced(balanced bool) string {
	if balanced {
		return FormatSuccess("Balanced")
	}
	return FormatError("Not balanced")
}

// RenderTable renders rows under headers. Columns listed in amountCols are right aligned.
func RenderTable(headers []string, rows [][]string, amountCols ...int) string {
	right := make(map[int]bool, len(amountCols))
	for _, c := range amountCols {
		right[c] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case right[col]:
				return AmountCellStyle
			default:
				return TableCellStyle
			}
		})
	return t.Render()
}
