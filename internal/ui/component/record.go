package component

import (
	"fmt"
	"strconv"

	"github.com/rivo/tview"
	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/ui/style"
)

// RecordTable lists one row per completed device, newest last
type RecordTable struct {
	table         *tview.Table
	columnHeaders []string
	count         int
}

func NewRecordTable() *RecordTable {
	columnHeaders := []string{
		"NO",
		"IP",
		"STATUS",
		"USER",
		"IDENTITY",
		"SSIDS",
		"RADIOS",
		"TIME",
		"ERROR",
	}

	return &RecordTable{
		table:         createTable("devices", columnHeaders),
		columnHeaders: columnHeaders,
	}
}

func (t *RecordTable) Primitive() tview.Primitive {
	return t.table
}

// Count returns the number of rows appended so far
func (t *RecordTable) Count() int {
	return t.count
}

func (t *RecordTable) AppendRecord(rec *device.Record) {
	t.count++

	row := []string{
		strconv.Itoa(t.count),
		rec.IP,
		string(rec.Status),
		rec.Credential.Username,
		rec.Identity,
		rec.SSIDs,
		rec.RadioNames,
		fmt.Sprintf("%.2fs", rec.Seconds()),
		rec.Error,
	}

	rowIdx := t.table.GetRowCount()

	for col, text := range row {
		cell := tview.NewTableCell(text)
		cell.SetExpansion(1)
		cell.SetAlign(tview.AlignLeft)
		color := style.ColorWhite

		if col == 2 {
			color = style.ColorMediumGreen

			if rec.Status != device.StatusOK {
				color = style.ColorRed
			}
		}

		cell.SetTextColor(color)
		t.table.SetCell(rowIdx, col, cell)
	}

	t.table.ScrollToEnd()
}
