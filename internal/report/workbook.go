package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/robgonnella/wisp/internal/device"
	"github.com/xuri/excelize/v2"
)

// Result sheet names
const (
	SheetResults = "results"
	SheetSuccess = "success"
	SheetFailed  = "failed"
)

// Columns is the header row of every result sheet
var Columns = []string{
	"ip",
	"status",
	"username",
	"password",
	"system_identity",
	"ssids",
	"radio_names",
	"error",
	"seconds",
}

func recordRow(r *device.Record) []interface{} {
	return []interface{}{
		r.IP,
		string(r.Status),
		r.Credential.Username,
		r.Credential.Secret,
		r.Identity,
		r.SSIDs,
		r.RadioNames,
		r.Error,
		r.Seconds(),
	}
}

func writeSheet(f *excelize.File, sheet string, records []*device.Record) error {
	header := make([]interface{}, len(Columns))

	for i, c := range Columns {
		header[i] = c
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)

		if err != nil {
			return err
		}

		row := recordRow(r)

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

// WriteWorkbook writes all records to the results sheet and splits them by
// status into the success and failed sheets
func WriteWorkbook(path string, records []*device.Record) error {
	f := excelize.NewFile()

	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetResults); err != nil {
		return err
	}

	ok := []*device.Record{}
	failed := []*device.Record{}

	for _, r := range records {
		if r.Status == device.StatusOK {
			ok = append(ok, r)
		} else {
			failed = append(failed, r)
		}
	}

	sheets := []struct {
		name    string
		records []*device.Record
	}{
		{name: SheetResults, records: records},
		{name: SheetSuccess, records: ok},
		{name: SheetFailed, records: failed},
	}

	for _, s := range sheets {
		if s.name != SheetResults {
			if _, err := f.NewSheet(s.name); err != nil {
				return err
			}
		}

		if err := writeSheet(f, s.name, s.records); err != nil {
			return fmt.Errorf("failed writing sheet %s: %w", s.name, err)
		}
	}

	return f.SaveAs(path)
}

// WriteFailedList writes the ip of every FAIL record one per line. No file
// is created when nothing failed. Returns the number of ips written.
func WriteFailedList(path string, records []*device.Record) (int, error) {
	failed := []string{}

	for _, r := range records {
		if r.Status != device.StatusOK {
			failed = append(failed, r.IP)
		}
	}

	if len(failed) == 0 {
		return 0, nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(failed, "\n")), 0644); err != nil {
		return 0, err
	}

	return len(failed), nil
}
