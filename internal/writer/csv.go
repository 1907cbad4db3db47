package writer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jobnorm/internal/logger"
	"jobnorm/internal/models"
	"jobnorm/internal/normalizer"
)

// WrittenFile describes one file produced by a writer.
type WrittenFile struct {
	Table string
	Path  string
	Rows  int
}

// CSVWriter writes one CSV file per table into a directory.
type CSVWriter struct {
	dir    string
	null   string
	logger *logger.Logger
}

// NewCSVWriter creates a writer; null is written for absent values.
func NewCSVWriter(dir, null string, log *logger.Logger) *CSVWriter {
	if log == nil {
		log = logger.Discard()
	}

	return &CSVWriter{dir: dir, null: null, logger: log}
}

// Write writes the seven tables of ds, in a fixed order.
func (w *CSVWriter) Write(ds *normalizer.Dataset) ([]WrittenFile, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []WrittenFile

	for _, t := range tables(ds, w.null) {
		file, err := w.writeTable(t)
		if err != nil {
			return written, err
		}

		written = append(written, file)
	}

	return written, nil
}

// WriteErrors writes the rejected-record report.
func (w *CSVWriter) WriteErrors(errs []models.RecordError) (WrittenFile, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return WrittenFile{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	return w.writeTable(errorTable(errs))
}

// RemoveErrors deletes a rejected-record report left behind by an earlier run.
func (w *CSVWriter) RemoveErrors() error {
	path := filepath.Join(w.dir, FileErrors)

	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to remove stale %s: %w", path, err)
	}

	w.logger.Info("stale error report removed", "path", path)

	return nil
}

func (w *CSVWriter) writeTable(t table) (WrittenFile, error) {
	path := filepath.Join(w.dir, t.file)

	f, err := os.Create(path)
	if err != nil {
		return WrittenFile{}, fmt.Errorf("failed to create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)

	if err := cw.Write(t.header); err != nil {
		f.Close()
		return WrittenFile{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := cw.WriteAll(t.rows); err != nil {
		f.Close()
		return WrittenFile{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return WrittenFile{}, fmt.Errorf("failed to close %s: %w", path, err)
	}

	w.logger.Info("table written", "table", t.name, "path", path, "rows", len(t.rows))

	return WrittenFile{Table: t.name, Path: path, Rows: len(t.rows)}, nil
}
