package component_test

import (
	"testing"
	"time"

	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/ui/component"
	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	t.Run("tallies completed devices", func(st *testing.T) {
		h := component.NewHeader("inventory.xlsx")

		h.SetTotal(3)
		h.Count(true)
		h.Count(false)

		assert.Equal(st, "Devices: 2/3  OK: 1  FAIL: 1", h.ProgressText())
	})
}

func TestRecordTable(t *testing.T) {
	t.Run("appends a row per record", func(st *testing.T) {
		table := component.NewRecordTable()

		table.AppendRecord(&device.Record{IP: "10.0.0.1", Status: device.StatusOK, Elapsed: time.Second})
		table.AppendRecord(&device.Record{IP: "10.0.0.2", Status: device.StatusFail})

		assert.Equal(st, 2, table.Count())
	})
}
