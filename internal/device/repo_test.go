package device_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/exception"
	"github.com/robgonnella/wisp/internal/test_util"
	"github.com/stretchr/testify/assert"
)

func TestDeviceSqliteRepo(t *testing.T) {
	testDBFile := filepath.Join(t.TempDir(), "device.db")

	db, err := test_util.GetDBConnection(testDBFile)

	if err != nil {
		t.Logf("failed to create test db: %s", err.Error())
		t.FailNow()
	}

	if err := test_util.Migrate(db, &device.RecordModel{}); err != nil {
		t.Logf("failed to migrate test db: %s", err.Error())
		t.FailNow()
	}

	repo := device.NewSqliteRepo(db)

	okRecord := &device.Record{
		IP:           "10.0.0.1",
		Status:       device.StatusOK,
		Credential:   config.Credential{Username: "admin", Secret: "secret"},
		Identity:     "Router7",
		SSIDs:        "Net-A;Net-B",
		RadioNames:   "ap-1",
		SSIDSet:      []string{"Net-A", "Net-B"},
		RadioNameSet: []string{"ap-1"},
		Elapsed:      1230 * time.Millisecond,
	}

	failRecord := &device.Record{
		IP:      "10.0.0.2",
		Status:  device.StatusFail,
		Error:   "authentication/connection failed",
		Elapsed: 8 * time.Second,
	}

	t.Run("LastRunID returns record not found error", func(st *testing.T) {
		_, err := repo.LastRunID()

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("GetRun returns record not found error", func(st *testing.T) {
		_, err := repo.GetRun("noop")

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("rejects empty run id", func(st *testing.T) {
		err := repo.SaveRun("", []*device.Record{okRecord})

		assert.Error(st, err)
	})

	t.Run("saves and gets run without storing secret", func(st *testing.T) {
		err := repo.SaveRun("run-1", []*device.Record{okRecord, failRecord})

		assert.NoError(st, err)

		records, err := repo.GetRun("run-1")

		assert.NoError(st, err)
		assert.Len(st, records, 2)

		expected := *okRecord
		expected.Credential.Secret = ""

		assert.Equal(st, &expected, records[0])
		assert.Equal(st, failRecord, records[1])
	})

	t.Run("keeps separator inside stored ssids", func(st *testing.T) {
		rec := &device.Record{
			IP:           "10.0.0.3",
			Status:       device.StatusOK,
			SSIDs:        "Guest;5G;Net-A",
			SSIDSet:      []string{"Guest;5G", "Net-A"},
			RadioNameSet: []string{},
		}

		err := repo.SaveRun("run-sep", []*device.Record{rec})

		assert.NoError(st, err)

		records, err := repo.GetRun("run-sep")

		assert.NoError(st, err)
		assert.Len(st, records, 1)
		assert.Equal(st, []string{"Guest;5G", "Net-A"}, records[0].SSIDSet)
		assert.Equal(st, "Guest;5G;Net-A", records[0].SSIDs)
		assert.Nil(st, records[0].RadioNameSet)
	})

	t.Run("returns most recent run id", func(st *testing.T) {
		err := repo.SaveRun("run-2", []*device.Record{failRecord})

		assert.NoError(st, err)

		runID, err := repo.LastRunID()

		assert.NoError(st, err)
		assert.Equal(st, "run-2", runID)
	})

	t.Run("deletes all runs", func(st *testing.T) {
		err := repo.DeleteAll()

		assert.NoError(st, err)

		_, err = repo.LastRunID()

		assert.Equal(st, exception.ErrRecordNotFound, err)
	})
}
