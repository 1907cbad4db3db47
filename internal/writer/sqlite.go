package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobnorm/internal/logger"
	"jobnorm/internal/models"
	"jobnorm/internal/normalizer"
)

const defaultBatchSize = 500

// SQLiteWriter writes the dataset into a fresh SQLite file, one table per entity.
type SQLiteWriter struct {
	path      string
	batchSize int
	logger    *logger.Logger
}

// NewSQLiteWriter creates a writer for the database file at path.
func NewSQLiteWriter(path string, log *logger.Logger) *SQLiteWriter {
	if log == nil {
		log = logger.Discard()
	}

	return &SQLiteWriter{path: path, batchSize: defaultBatchSize, logger: log}
}

// Write replaces any existing file at the writer's path with the tables of ds.
func (w *SQLiteWriter) Write(ds *normalizer.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove previous database: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(w.path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&models.Industry{},
		&models.Country{},
		&models.City{},
		&models.Company{},
		&models.User{},
		&models.Employer{},
		&models.JobPosting{},
	); err != nil {
		return fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	steps := []struct {
		table string
		rows  int
		run   func() error
	}{
		{"Industry", len(ds.Industries), func() error { return insert(db, ds.Industries, w.batchSize) }},
		{"Countries", len(ds.Countries), func() error { return insert(db, ds.Countries, w.batchSize) }},
		{"Cities", len(ds.Cities), func() error { return insert(db, ds.Cities, w.batchSize) }},
		{"Companies", len(ds.Companies), func() error { return insert(db, ds.Companies, w.batchSize) }},
		{"Users", len(ds.Users), func() error { return insert(db, ds.Users, w.batchSize) }},
		{"Employers", len(ds.Employers), func() error { return insert(db, ds.Employers, w.batchSize) }},
		{"JobPostings", len(ds.JobPostings), func() error { return insert(db, ds.JobPostings, w.batchSize) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("failed to insert %s: %w", step.table, err)
		}

		w.logger.Info("table loaded", "table", step.table, "path", w.path, "rows", step.rows)
	}

	return nil
}

func insert[T any](db *gorm.DB, rows []T, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}

	return db.CreateInBatches(&rows, batchSize).Error
}
