package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Job Id,Experience,Salary Range,location,Country,Work Type,Company Size,Job Posting Date,Contact Person,Contact,Role,Job Description,Company,Company Profile\n"

func TestRead(t *testing.T) {
	input := header +
		`1,2 to 5 Years,$59K-$99K,Douglas,Isle of Man,Intern,26801,2022-04-24,Brandon Cunningham,001-381-930-7517x737,Social Media Manager,"Social media managers oversee ...",Icahn Enterprises,"{""Sector"":""Diversified"",""Industry"":""Diversified Financials""}"` + "\n" +
		`2,0 to 12 Years, $56K-$116K ,Ashgabat,Turkmenistan,Intern,100340,2022-12-19,Francisco Larsen,461-509-4216,Web Developer,Frontend devs,PNC Financial Services Group,"{'Industry': 'Commercial Banks'}"` + "\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, "Social Media Manager", first.Role)
	assert.Equal(t, "$59K-$99K", first.SalaryRange)
	assert.Equal(t, "Douglas", first.Location)
	assert.Equal(t, "Isle of Man", first.Country)
	assert.Equal(t, "001-381-930-7517x737", first.Contact)
	assert.Equal(t, "Icahn Enterprises", first.Company)
	assert.Equal(t, "26801", first.CompanySize)
	assert.Equal(t, `{"Sector":"Diversified","Industry":"Diversified Financials"}`, first.CompanyProfile)

	second := records[1]
	assert.Equal(t, 2, second.Row)
	assert.Equal(t, "$56K-$116K", second.SalaryRange, "cells are trimmed")
	assert.Equal(t, "{'Industry': 'Commercial Banks'}", second.CompanyProfile)
}

func TestRead_ShortRowYieldsEmptyCells(t *testing.T) {
	input := header + "1,x,$1K\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "$1K", records[0].SalaryRange)
	assert.Empty(t, records[0].Company)
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Role,Company\nDev,Acme\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Salary Range")
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRead_HeaderOnly(t *testing.T) {
	records, err := Read(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeff"+header+"1,,,Paris,France,,,,,555,Dev,,Acme,\n"), 0644))

	records, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Paris", records[0].Location)
}

func TestLoadCSV_NotFound(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
