package device

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/robgonnella/wisp/internal/parser"
	"gorm.io/datatypes"
)

// RecordModel represents a stored device record. Secrets are never stored,
// only the username that matched.
type RecordModel struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"index"`
	IP         string
	Status     string
	Username   string
	Identity   string
	SSIDs      datatypes.JSON
	RadioNames datatypes.JSON
	Error      string
	ElapsedMS  int64
	CreatedAt  time.Time
}

func recordToModel(runID string, r *Record) (*RecordModel, error) {
	ssids, err := json.Marshal(setOf(r.SSIDSet, r.SSIDs))

	if err != nil {
		return nil, err
	}

	radios, err := json.Marshal(setOf(r.RadioNameSet, r.RadioNames))

	if err != nil {
		return nil, err
	}

	return &RecordModel{
		RunID:      runID,
		IP:         r.IP,
		Status:     string(r.Status),
		Username:   r.Credential.Username,
		Identity:   r.Identity,
		SSIDs:      datatypes.JSON(ssids),
		RadioNames: datatypes.JSON(radios),
		Error:      r.Error,
		ElapsedMS:  r.Elapsed.Milliseconds(),
	}, nil
}

func modelToRecord(m *RecordModel) (*Record, error) {
	ssids := []string{}

	if err := json.Unmarshal([]byte(m.SSIDs.String()), &ssids); err != nil {
		return nil, err
	}

	radios := []string{}

	if err := json.Unmarshal([]byte(m.RadioNames.String()), &radios); err != nil {
		return nil, err
	}

	r := &Record{
		IP:           m.IP,
		Status:       Status(m.Status),
		Identity:     m.Identity,
		SSIDs:        strings.Join(ssids, parser.SetSeparator),
		RadioNames:   strings.Join(radios, parser.SetSeparator),
		SSIDSet:      nilIfEmpty(ssids),
		RadioNameSet: nilIfEmpty(radios),
		Error:        m.Error,
		Elapsed:      time.Duration(m.ElapsedMS) * time.Millisecond,
	}

	r.Credential.Username = m.Username

	return r, nil
}

// setOf prefers the parsed set, splitting the joined form only for records
// built without one
func setOf(set []string, joined string) []string {
	if set != nil {
		return set
	}

	return splitSet(joined)
}

func nilIfEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	return values
}

func splitSet(joined string) []string {
	if joined == "" {
		return []string{}
	}

	return strings.Split(joined, parser.SetSeparator)
}
