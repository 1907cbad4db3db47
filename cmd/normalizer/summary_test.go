package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnorm/internal/models"
	"jobnorm/internal/normalizer"
	"jobnorm/internal/writer"
)

func TestRejectedLines_TruncatesLongFields(t *testing.T) {
	errs := []models.RecordError{{
		Row:     7,
		Kind:    models.ErrorKindUnresolvedForeignKey,
		Field:   models.ColumnContact,
		Value:   strings.Repeat("9", 500),
		Message: strings.Repeat("m", 500),
	}}

	lines := rejectedLines(errs, maxListedErrors)
	require.Len(t, lines, 1)

	assert.True(t, strings.HasPrefix(lines[0], "- row 7: UnresolvedForeignKey: Contact="))
	assert.Contains(t, lines[0], strings.Repeat("9", maxErrorValue)+"...")
	assert.NotContains(t, lines[0], strings.Repeat("9", maxErrorValue+1))
	assert.Contains(t, lines[0], strings.Repeat("m", maxErrorMessage)+"...")
	assert.NotContains(t, lines[0], strings.Repeat("m", maxErrorMessage+1))
}

func TestRejectedLines_Limit(t *testing.T) {
	errs := make([]models.RecordError, 5)
	for i := range errs {
		errs[i] = models.RecordError{Row: i + 1, Kind: models.ErrorKindUnresolvedForeignKey}
	}

	lines := rejectedLines(errs, 3)
	require.Len(t, lines, 4)
	assert.Equal(t, "... and 2 more, see "+writer.FileErrors, lines[3])

	assert.Len(t, rejectedLines(errs, 10), 5)
}

func TestPrintSummary(t *testing.T) {
	ds := &normalizer.Dataset{
		Countries: []models.Country{{CountryID: 1, CountryName: "France"}},
		Errors:    []models.RecordError{{Row: 3, Kind: models.ErrorKindUnresolvedForeignKey, Message: "contact does not resolve to a user"}},
		Stats:     normalizer.Stats{Records: 4, UnresolvedForeignKeys: 1},
	}

	var buf bytes.Buffer
	printSummary(&buf, ds, nil, time.Second)

	out := buf.String()
	assert.Contains(t, out, "Records: 4")
	assert.Contains(t, out, "| Countries   | 1    |")
	assert.Contains(t, out, "| Unresolved foreign keys | 1     |")
	assert.Contains(t, out, "Rejected records: 1")
	assert.Contains(t, out, "- row 3: UnresolvedForeignKey")
}
