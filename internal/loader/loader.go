package loader

import (
	"bufio"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/projectdiscovery/mapcidr"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/robgonnella/wisp/internal/util"
	"github.com/xuri/excelize/v2"
)

var ipv4Pattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// ExtractAddress returns the first valid IPv4 address found in cell, which
// may carry surrounding text such as "10.0.0.1 (tower)". Cells holding a
// bare IPv6 literal are accepted as is.
func ExtractAddress(cell string) (string, bool) {
	trimmed := strings.TrimSpace(cell)

	if addr, err := netip.ParseAddr(trimmed); err == nil {
		return addr.String(), true
	}

	for _, candidate := range ipv4Pattern.FindAllString(trimmed, -1) {
		if addr, err := netip.ParseAddr(candidate); err == nil {
			return addr.String(), true
		}
	}

	return "", false
}

// Load dispatches on file extension: .xlsx files are read as workbooks,
// anything else as a plain text target list
func Load(path, sheet, column string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadWorkbook(path, sheet, column)
	}

	return LoadText(path)
}

// LoadWorkbook returns the unique addresses found in one column of a
// workbook sheet. The first row is treated as a header. An empty sheet
// name selects the first sheet.
func LoadWorkbook(path, sheet, column string) ([]string, error) {
	log := logger.New()

	colIdx, err := excelize.ColumnNameToNumber(column)

	if err != nil {
		return nil, fmt.Errorf("invalid column %s: %w", column, err)
	}

	f, err := excelize.OpenFile(path)

	if err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", path, err)
	}

	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)

	if err != nil {
		return nil, fmt.Errorf("failed reading %s sheet %s: %w", path, sheet, err)
	}

	ips := []string{}

	for i, row := range rows {
		if i == 0 || len(row) < colIdx {
			continue
		}

		cell := row[colIdx-1]

		if strings.TrimSpace(cell) == "" {
			continue
		}

		ip, ok := ExtractAddress(cell)

		if !ok {
			log.Debug().
				Int("row", i+1).
				Str("cell", cell).
				Msg("skipping cell without address")
			continue
		}

		ips = append(ips, ip)
	}

	return util.Dedupe(ips), nil
}

// LoadText returns the unique addresses listed one per line in path. CIDR
// ranges are expanded, blank lines and lines starting with # are skipped.
func LoadText(path string) ([]string, error) {
	log := logger.New()

	file, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", path, err)
	}

	defer file.Close()

	ips := []string{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if _, err := netip.ParsePrefix(line); err == nil {
			expanded, err := mapcidr.IPAddresses(line)

			if err != nil {
				return nil, fmt.Errorf("failed expanding %s: %w", line, err)
			}

			ips = append(ips, expanded...)
			continue
		}

		ip, ok := ExtractAddress(line)

		if !ok {
			log.Warn().
				Int("line", lineNum).
				Str("target", line).
				Msg("skipping invalid target")
			continue
		}

		ips = append(ips, ip)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", path, err)
	}

	return util.Dedupe(ips), nil
}
