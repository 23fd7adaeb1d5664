package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

var records = []*device.Record{
	{
		IP:         "10.0.0.1",
		Status:     device.StatusOK,
		Credential: config.Credential{Username: "admin", Secret: "admin"},
		Identity:   "Router7",
		SSIDs:      "Net-A;Net-B",
		RadioNames: "ap-1",
		Elapsed:    1234 * time.Millisecond,
	},
	{
		IP:      "10.0.0.2",
		Status:  device.StatusFail,
		Error:   "authentication/connection failed",
		Elapsed: 8 * time.Second,
	},
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	err := report.WriteWorkbook(path, records)

	assert.NoError(t, err)

	f, err := excelize.OpenFile(path)

	assert.NoError(t, err)

	defer f.Close()

	t.Run("writes every record to results sheet", func(st *testing.T) {
		rows, err := f.GetRows(report.SheetResults)

		assert.NoError(st, err)
		assert.Len(st, rows, 3)
		assert.Equal(st, report.Columns, rows[0])
		assert.Equal(st, []string{"10.0.0.1", "OK", "admin", "admin", "Router7", "Net-A;Net-B", "ap-1", "", "1.23"}, rows[1])
	})

	t.Run("splits records by status", func(st *testing.T) {
		success, err := f.GetRows(report.SheetSuccess)

		assert.NoError(st, err)
		assert.Len(st, success, 2)
		assert.Equal(st, "10.0.0.1", success[1][0])

		failed, err := f.GetRows(report.SheetFailed)

		assert.NoError(st, err)
		assert.Len(st, failed, 2)
		assert.Equal(st, "10.0.0.2", failed[1][0])
		assert.Equal(st, "authentication/connection failed", failed[1][7])
	})
}

func TestWriteFailedList(t *testing.T) {
	t.Run("writes failed ips", func(st *testing.T) {
		path := filepath.Join(st.TempDir(), "failed.txt")

		count, err := report.WriteFailedList(path, records)

		assert.NoError(st, err)
		assert.Equal(st, 1, count)

		data, err := os.ReadFile(path)

		assert.NoError(st, err)
		assert.Equal(st, "10.0.0.2", string(data))
	})

	t.Run("skips file when nothing failed", func(st *testing.T) {
		path := filepath.Join(st.TempDir(), "failed.txt")

		count, err := report.WriteFailedList(path, records[:1])

		assert.NoError(st, err)
		assert.Equal(st, 0, count)

		_, err = os.Stat(path)

		assert.True(st, os.IsNotExist(err))
	})
}

func TestMergeIntoSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	cells := map[string]string{
		"A1": "site", "B1": "address", "C1": "ssh_status",
		"A2": "north", "B2": "10.0.0.1 main",
		"A3": "south", "B3": "10.0.0.2",
		"A4": "west", "B4": "10.0.0.9",
	}

	for cell, value := range cells {
		assert.NoError(t, f.SetCellValue(sheet, cell, value))
	}

	assert.NoError(t, f.SaveAs(path))
	assert.NoError(t, f.Close())

	backup, err := report.MergeIntoSource(path, "", "B", records)

	assert.NoError(t, err)

	t.Run("creates timestamped backup", func(st *testing.T) {
		assert.True(st, strings.HasPrefix(filepath.Base(backup), "inventory.xlsx.bak_"))

		_, err := os.Stat(backup)

		assert.NoError(st, err)
	})

	t.Run("reuses existing columns and appends missing ones", func(st *testing.T) {
		merged, err := excelize.OpenFile(path)

		assert.NoError(st, err)

		defer merged.Close()

		rows, err := merged.GetRows(sheet)

		assert.NoError(st, err)
		assert.Equal(st, []string{
			"site", "address", "ssh_status", "ssh_username", "ssh_password",
			"system_identity", "wireless_ssids", "radio_names", "ssh_error",
		}, rows[0])

		assert.Equal(st, []string{
			"north", "10.0.0.1 main", "OK", "admin", "admin",
			"Router7", "Net-A;Net-B", "ap-1",
		}, rows[1])

		assert.Equal(st, "FAIL", rows[2][2])
		assert.Equal(st, "authentication/connection failed", rows[2][8])

		// rows without a matching record are untouched
		assert.Equal(st, []string{"west", "10.0.0.9"}, rows[3])
	})
}

func TestBackup(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	t.Run("copies source to timestamped file", func(st *testing.T) {
		path := filepath.Join(st.TempDir(), "devices.xlsx")

		err := os.WriteFile(path, []byte("workbook"), 0644)

		assert.NoError(st, err)

		backup, err := report.Backup(path, now)

		assert.NoError(st, err)
		assert.Equal(st, path+".bak_20240305_140709", backup)

		content, err := os.ReadFile(backup)

		assert.NoError(st, err)
		assert.Equal(st, "workbook", string(content))
	})

	t.Run("returns error for missing source", func(st *testing.T) {
		path := filepath.Join(st.TempDir(), "missing.xlsx")

		_, err := report.Backup(path, now)

		assert.Error(st, err)
	})

	t.Run("returns error when backup cannot be created", func(st *testing.T) {
		dir := st.TempDir()
		path := filepath.Join(dir, "devices.xlsx")

		err := os.WriteFile(path, []byte("workbook"), 0644)

		assert.NoError(st, err)

		// occupy the backup name with a directory
		err = os.Mkdir(path+".bak_20240305_140709", 0755)

		assert.NoError(st, err)

		_, err = report.Backup(path, now)

		assert.Error(st, err)
	})
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	t.Run("prints progress line", func(st *testing.T) {
		buf := new(bytes.Buffer)

		report.PrintSummary(buf, records[0])

		assert.Equal(st, "[OK] 10.0.0.1 time=1.23s identity=Router7\n", buf.String())
	})

	t.Run("prints failure line", func(st *testing.T) {
		buf := new(bytes.Buffer)

		report.PrintSummary(buf, records[1])

		assert.Equal(st, "[FAIL] 10.0.0.2 time=8.00s identity=\n", buf.String())
	})
}
