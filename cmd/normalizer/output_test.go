package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnorm/internal/config"
	"jobnorm/internal/models"
	"jobnorm/internal/normalizer"
	"jobnorm/internal/writer"
	"jobnorm/pkg/metadata"
)

func outputRecords(contact string) []models.RawJobRecord {
	return []models.RawJobRecord{{
		Row:            1,
		Role:           "Engineer",
		SalaryRange:    "$50K-$60K",
		WorkType:       "Full-time",
		Location:       "Paris",
		Country:        "France",
		ContactPerson:  "Ann",
		Contact:        "555-1",
		Company:        "Acme",
		CompanyProfile: `{'Industry': 'Retail'}`,
	}, {
		Row:     2,
		Role:    "Analyst",
		Contact: contact,
		Company: "Acme",
	}}
}

func TestWriteOutputs_RemovesStaleErrorReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.BasePath = t.TempDir()
	cfg.Input.Path = filepath.Join(t.TempDir(), "job_descriptions.csv")
	require.NoError(t, os.WriteFile(cfg.Input.Path, []byte("raw"), 0644))

	processor := normalizer.NewProcessor(cfg.Rules, nil)
	reportPath := filepath.Join(cfg.Output.BasePath, writer.FileErrors)

	// first run: row 2 has no contact and is rejected
	ds, err := processor.Process(outputRecords(""))
	require.NoError(t, err)
	require.Len(t, ds.Errors, 1)

	written, err := writeOutputs(cfg, ds, "run-1", nil)
	require.NoError(t, err)
	assert.Len(t, written, 8)
	assert.FileExists(t, reportPath)

	// second run: clean input
	ds, err = processor.Process(outputRecords("555-2"))
	require.NoError(t, err)
	require.Empty(t, ds.Errors)

	written, err = writeOutputs(cfg, ds, "run-2", nil)
	require.NoError(t, err)
	assert.Len(t, written, 7)
	assert.NoFileExists(t, reportPath)

	m, err := metadata.Load(cfg.Output.BasePath)
	require.NoError(t, err)
	assert.Equal(t, "run-2", m.RunID)

	for _, table := range m.Tables {
		assert.NotEqual(t, writer.FileErrors, table.File)
	}

	ok, err := metadata.Verify(cfg.Output.BasePath)
	require.NoError(t, err)
	assert.True(t, ok)
}
