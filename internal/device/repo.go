package device

import (
	"errors"

	"github.com/robgonnella/wisp/internal/exception"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteDatabase opens and migrates the sqlite database at dbFile
func NewSqliteDatabase(dbFile string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&RecordModel{}); err != nil {
		return nil, err
	}

	return db, nil
}

// NewSqliteRepo returns a new wisp sqlite repo
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

// SaveRun stores all records of a run under runID
func (r *SqliteRepo) SaveRun(runID string, records []*Record) error {
	if runID == "" {
		return errors.New("run id cannot be empty")
	}

	if len(records) == 0 {
		return nil
	}

	models := []*RecordModel{}

	for _, rec := range records {
		m, err := recordToModel(runID, rec)

		if err != nil {
			return err
		}

		models = append(models, m)
	}

	return r.db.Create(&models).Error
}

// GetRun returns the records stored for runID in the order they were saved
func (r *SqliteRepo) GetRun(runID string) ([]*Record, error) {
	models := []RecordModel{}

	if result := r.db.Where("run_id = ?", runID).Order("id asc").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	if len(models) == 0 {
		return nil, exception.ErrRecordNotFound
	}

	records := []*Record{}

	for i := range models {
		rec, err := modelToRecord(&models[i])

		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// LastRunID returns the id of the most recently saved run
func (r *SqliteRepo) LastRunID() (string, error) {
	model := RecordModel{}

	if result := r.db.Order("id desc").First(&model); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", exception.ErrRecordNotFound
		}

		return "", result.Error
	}

	return model.RunID, nil
}

// DeleteAll removes every stored record
func (r *SqliteRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&RecordModel{}).Error
}
