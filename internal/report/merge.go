package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/loader"
	"github.com/xuri/excelize/v2"
)

// MergeColumns are added to the source workbook, in this order, when not
// already present
var MergeColumns = []string{
	"ssh_status",
	"ssh_username",
	"ssh_password",
	"system_identity",
	"wireless_ssids",
	"radio_names",
	"ssh_error",
}

func mergeValues(r *device.Record) []string {
	return []string{
		string(r.Status),
		r.Credential.Username,
		r.Credential.Secret,
		r.Identity,
		r.SSIDs,
		r.RadioNames,
		r.Error,
	}
}

// Backup copies path to path.bak_YYYYMMDD_HHMMSS and returns the copy path
func Backup(path string, now time.Time) (string, error) {
	backup := fmt.Sprintf("%s.bak_%s", path, now.Format("20060102_150405"))

	src, err := os.Open(path)

	if err != nil {
		return "", err
	}

	defer src.Close()

	dst, err := os.Create(backup)

	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}

	// a failed close can mean the copy never reached disk
	if err := dst.Close(); err != nil {
		return "", err
	}

	return backup, nil
}

// MergeIntoSource backs up the source workbook then writes each record's
// results into the row whose address cell matches it. Result columns are
// matched by header name and appended when missing. Returns the backup
// path.
func MergeIntoSource(path, sheet, column string, records []*device.Record) (string, error) {
	colIdx, err := excelize.ColumnNameToNumber(column)

	if err != nil {
		return "", fmt.Errorf("invalid column %s: %w", column, err)
	}

	backup, err := Backup(path, time.Now())

	if err != nil {
		return "", fmt.Errorf("failed creating backup: %w", err)
	}

	f, err := excelize.OpenFile(path)

	if err != nil {
		return backup, err
	}

	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)

	if err != nil {
		return backup, err
	}

	if len(rows) == 0 {
		return backup, fmt.Errorf("sheet %s is empty", sheet)
	}

	width := 0

	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	if colIdx > width {
		return backup, fmt.Errorf("address column %s out of range", column)
	}

	byIP := map[string]*device.Record{}

	for _, r := range records {
		byIP[r.IP] = r
	}

	targets, err := resultColumns(f, sheet, rows[0], width)

	if err != nil {
		return backup, err
	}

	for i, row := range rows[1:] {
		if len(row) < colIdx {
			continue
		}

		ip, ok := loader.ExtractAddress(row[colIdx-1])

		if !ok {
			continue
		}

		r, ok := byIP[ip]

		if !ok {
			continue
		}

		for j, value := range mergeValues(r) {
			cell, err := excelize.CoordinatesToCellName(targets[j], i+2)

			if err != nil {
				return backup, err
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return backup, err
			}
		}
	}

	return backup, f.Save()
}

// resultColumns returns the 1-based column number of every merge column,
// writing headers for the ones that do not exist yet
func resultColumns(f *excelize.File, sheet string, header []string, width int) ([]int, error) {
	existing := map[string]int{}

	for i, name := range header {
		existing[strings.TrimSpace(name)] = i + 1
	}

	next := width + 1
	columns := make([]int, len(MergeColumns))

	for i, name := range MergeColumns {
		if col, ok := existing[name]; ok {
			columns[i] = col
			continue
		}

		cell, err := excelize.CoordinatesToCellName(next, 1)

		if err != nil {
			return nil, err
		}

		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}

		columns[i] = next
		next++
	}

	return columns, nil
}
