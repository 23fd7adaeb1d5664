package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/robgonnella/wisp/internal/device"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// PrintSummary writes one progress line for r:
//
//	[OK] 10.0.0.1 time=1.23s identity=Router7
func PrintSummary(w io.Writer, r *device.Record) {
	status := okColor.Sprintf("[%s]", r.Status)

	if r.Status != device.StatusOK {
		status = failColor.Sprintf("[%s]", r.Status)
	}

	fmt.Fprintf(w, "%s %s time=%.2fs identity=%s\n", status, r.IP, r.Seconds(), r.Identity)
}

// PrintTotals writes the closing line of a run
func PrintTotals(w io.Writer, results string, records []*device.Record) {
	failed := 0

	for _, r := range records {
		if r.Status != device.StatusOK {
			failed++
		}
	}

	fmt.Fprintf(w, "Written %s. Failed IP count: %s\n", results, color.YellowString("%d", failed))
}
