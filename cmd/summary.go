package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/availreport/internal/domain/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// renderOverview formats an overview as a bordered two column table.
func renderOverview(name string, ov types.Overview) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Metric", "Value").
		Row("Total associates", strconv.Itoa(ov.Rows)).
		Row("Unique roles", strconv.Itoa(ov.UniqueRoles)).
		Row("Regions", strconv.Itoa(ov.Regions)).
		Row("Avg availability", strconv.FormatFloat(ov.MeanAvailability, 'f', 1, 64)+"%").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(name), t.String())
}
