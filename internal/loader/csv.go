// Package loader reads the flat job-listing CSV into raw records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"jobnorm/internal/models"
	"jobnorm/pkg/utils"
)

// Loader errors.
var (
	ErrEmptyInput    = errors.New("input has no header row")
	ErrMissingColumn = errors.New("required column missing")
)

// LoadCSV reads every record of the CSV file at path.
func LoadCSV(path string) ([]models.RawJobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return records, nil
}

// Read parses CSV from r. Columns are addressed by header name; extra
// columns are ignored. Row numbers count data rows from 1.
func Read(r io.Reader) ([]models.RawJobRecord, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.RawJobRecord

	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		records = append(records, cols.record(row, fields))
	}

	return records, nil
}

type columnIndex struct {
	positions map[string]int
	cleaner   *utils.StringHelper
}

func indexColumns(header []string) (*columnIndex, error) {
	cleaner := utils.NewStringHelper()
	positions := make(map[string]int, len(header))

	for i, name := range header {
		name = cleaner.CleanCell(name)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	var missing []string

	for _, name := range models.RequiredColumns {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, missing)
	}

	return &columnIndex{positions: positions, cleaner: cleaner}, nil
}

func (c *columnIndex) get(fields []string, name string) string {
	i := c.positions[name]
	if i >= len(fields) {
		return ""
	}

	return c.cleaner.CleanCell(fields[i])
}

func (c *columnIndex) record(row int, fields []string) models.RawJobRecord {
	return models.RawJobRecord{
		Row:            row,
		Role:           c.get(fields, models.ColumnRole),
		Description:    c.get(fields, models.ColumnDescription),
		SalaryRange:    c.get(fields, models.ColumnSalaryRange),
		WorkType:       c.get(fields, models.ColumnWorkType),
		Location:       c.get(fields, models.ColumnLocation),
		Country:        c.get(fields, models.ColumnCountry),
		PostDate:       c.get(fields, models.ColumnPostDate),
		ContactPerson:  c.get(fields, models.ColumnContactPerson),
		Contact:        c.get(fields, models.ColumnContact),
		Company:        c.get(fields, models.ColumnCompany),
		CompanySize:    c.get(fields, models.ColumnCompanySize),
		CompanyProfile: c.get(fields, models.ColumnCompanyProfile),
	}
}
