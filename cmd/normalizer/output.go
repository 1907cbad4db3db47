package main

import (
	"fmt"
	"path/filepath"

	"jobnorm/internal/config"
	"jobnorm/internal/logger"
	"jobnorm/internal/normalizer"
	"jobnorm/internal/writer"
	"jobnorm/pkg/metadata"
)

func writeOutputs(cfg *config.Config, ds *normalizer.Dataset, runID string, log *logger.Logger) ([]writer.WrittenFile, error) {
	if log == nil {
		log = logger.Discard()
	}

	dir := cfg.Output.BasePath

	var written []writer.WrittenFile

	if cfg.Output.HasFormat(config.FormatCSV) {
		files, err := writer.NewCSVWriter(dir, cfg.Output.NullValue, log).Write(ds)
		if err != nil {
			return nil, err
		}

		written = append(written, files...)
	}

	reports := writer.NewCSVWriter(dir, cfg.Output.NullValue, log)

	if len(ds.Errors) > 0 {
		report, err := reports.WriteErrors(ds.Errors)
		if err != nil {
			return nil, err
		}

		written = append(written, report)
	} else if err := reports.RemoveErrors(); err != nil {
		return nil, err
	}

	if cfg.Output.HasFormat(config.FormatSQLite) {
		if err := writer.NewSQLiteWriter(cfg.GetSQLitePath(), log).Write(ds); err != nil {
			return nil, err
		}
	}

	if cfg.Output.Manifest && len(written) > 0 {
		if err := saveManifest(dir, runID, cfg.Input.Path, written); err != nil {
			return nil, err
		}

		log.Info("manifest saved", "path", metadata.ManifestFile)
	}

	return written, nil
}

func saveManifest(dir, runID, source string, written []writer.WrittenFile) error {
	tables := make([]metadata.Table, len(written))
	for i, f := range written {
		tables[i] = metadata.Table{Name: f.Table, File: filepath.Base(f.Path), Rows: f.Rows}
	}

	m, err := metadata.Build(dir, runID, source, tables)
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}

	return m.Save(dir)
}
