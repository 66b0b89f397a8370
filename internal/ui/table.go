package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table renders rows under headers with a plain box-drawing border.
// Rows are padded or truncated to the header count.
func Table(headers []string, rows [][]string) string {
	padded := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)
		padded = append(padded, cells)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(padded...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
