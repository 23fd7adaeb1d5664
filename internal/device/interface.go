package device

import (
	"math"
	"time"

	"github.com/robgonnella/wisp/internal/config"
)

//go:generate mockgen -destination=../mock/device/mock_device.go -package=mock_device . Repo,Service

// Status represents the outcome of processing one device
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
)

// Record represents the final result for one device address. SSIDs and
// RadioNames are the joined forms of SSIDSet and RadioNameSet.
type Record struct {
	IP           string
	Status       Status
	Credential   config.Credential
	Identity     string
	SSIDs        string
	RadioNames   string
	SSIDSet      []string
	RadioNameSet []string
	Error        string
	Elapsed      time.Duration
}

// Seconds returns elapsed time in seconds rounded to two decimals
func (r *Record) Seconds() float64 {
	return math.Round(r.Elapsed.Seconds()*100) / 100
}

// NewFailure returns a FAIL record for ip
func NewFailure(ip string, err error, elapsed time.Duration) *Record {
	msg := ""

	if err != nil {
		msg = err.Error()
	}

	return &Record{
		IP:      ip,
		Status:  StatusFail,
		Error:   msg,
		Elapsed: elapsed,
	}
}

// Repo interface representing access to stored run results
type Repo interface {
	SaveRun(runID string, records []*Record) error
	GetRun(runID string) ([]*Record, error)
	LastRunID() (string, error)
	DeleteAll() error
}

// Service interface for recording and retrieving runs
type Service interface {
	RecordRun(records []*Record) (string, error)
	LastRun() (string, []*Record, error)
	Clean() error
}
