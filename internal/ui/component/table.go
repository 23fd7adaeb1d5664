package component

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/robgonnella/wisp/internal/ui/style"
)

// createTable returns a bordered table with a bold header row followed by
// an empty spacer row
func createTable(title string, columnHeaders []string) *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetFixed(2, 0).
		SetSelectable(true, false).
		SetSelectedStyle(style.StyleDefault.Background(style.ColorLightGreen).Bold(true))

	table.SetBorder(true)
	table.SetBorderPadding(1, 1, 2, 2)

	for c, h := range columnHeaders {
		cell := tview.NewTableCell(h)
		cell.SetExpansion(1)
		cell.SetAlign(tview.AlignLeft)
		cell.SetTextColor(style.ColorPurple)
		cell.SetSelectable(false)
		cell.SetAttributes(tcell.AttrBold)
		table.SetCell(0, c, cell)

		spacer := tview.NewTableCell("")
		spacer.SetSelectable(false)
		table.SetCell(1, c, spacer)
	}

	table.SetTitle(title)
	table.SetTitleColor(style.ColorLightGreen)
	table.SetBorderColor(style.ColorPurple)

	return table
}
