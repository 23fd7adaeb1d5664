package device

import (
	"github.com/google/uuid"
	"github.com/robgonnella/wisp/internal/logger"
)

// RecordService represents our device.Service implementation
type RecordService struct {
	log  logger.Logger
	repo Repo
}

// NewService returns a new instance of RecordService
func NewService(repo Repo) *RecordService {
	return &RecordService{
		log:  logger.New(),
		repo: repo,
	}
}

// RecordRun stores records under a newly generated run id
func (s *RecordService) RecordRun(records []*Record) (string, error) {
	runID := uuid.New().String()

	if err := s.repo.SaveRun(runID, records); err != nil {
		return "", err
	}

	s.log.Debug().
		Str("run", runID).
		Int("count", len(records)).
		Msg("stored run results")

	return runID, nil
}

// LastRun returns the most recently stored run
func (s *RecordService) LastRun() (string, []*Record, error) {
	runID, err := s.repo.LastRunID()

	if err != nil {
		return "", nil, err
	}

	records, err := s.repo.GetRun(runID)

	if err != nil {
		return "", nil, err
	}

	return runID, records, nil
}

// Clean removes all stored runs
func (s *RecordService) Clean() error {
	return s.repo.DeleteAll()
}
