package main

import (
	"fmt"
	"io"
	"time"

	"jobnorm/internal/formatter"
	"jobnorm/internal/models"
	"jobnorm/internal/normalizer"
	"jobnorm/internal/writer"
	"jobnorm/pkg/utils"
)

const (
	maxListedErrors = 10
	maxErrorValue   = 40
	maxErrorMessage = 80
)

func printSummary(w io.Writer, ds *normalizer.Dataset, written []writer.WrittenFile, elapsed time.Duration) {
	counts := []formatter.CountRow{
		{Name: "Industry", Count: len(ds.Industries)},
		{Name: "Countries", Count: len(ds.Countries)},
		{Name: "Cities", Count: len(ds.Cities)},
		{Name: "Companies", Count: len(ds.Companies)},
		{Name: "Users", Count: len(ds.Users)},
		{Name: "Employers", Count: len(ds.Employers)},
		{Name: "JobPostings", Count: len(ds.JobPostings)},
	}

	defects := []formatter.CountRow{
		{Name: "Malformed sub-fields", Count: ds.Stats.MalformedSubfields},
		{Name: "Unparsable ranges", Count: ds.Stats.UnparsableRanges},
		{Name: "Unknown categories", Count: ds.Stats.UnknownCategories},
		{Name: "Unresolved foreign keys", Count: ds.Stats.UnresolvedForeignKeys},
	}

	fmt.Fprintln(w, "\n------------------------------------------------")
	fmt.Fprintf(w, "📊 Summary Report\n")
	fmt.Fprintln(w, "------------------------------------------------")
	fmt.Fprintf(w, "Records: %d\n\n", ds.Stats.Records)
	fmt.Fprintln(w, formatter.RenderCounts("Table", "Rows", counts))
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatter.RenderCounts("Defect", "Count", defects))
	fmt.Fprintf(w, "\nFiles written: %d\n", len(written))
	fmt.Fprintf(w, "Total Duration: %v\n", elapsed)

	if len(ds.Errors) > 0 {
		fmt.Fprintf(w, "⚠️  Rejected records: %d\n", len(ds.Errors))

		for _, line := range rejectedLines(ds.Errors, maxListedErrors) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	fmt.Fprintln(w, "------------------------------------------------")
}

// rejectedLines lists up to limit errors, shortening long values and messages.
func rejectedLines(errs []models.RecordError, limit int) []string {
	s := utils.NewStringHelper()

	lines := make([]string, 0, min(len(errs), limit)+1)

	for i, e := range errs {
		if i == limit {
			lines = append(lines, fmt.Sprintf("... and %d more, see %s", len(errs)-limit, writer.FileErrors))
			break
		}

		e.Value = s.TruncateString(e.Value, maxErrorValue)
		e.Message = s.TruncateString(e.Message, maxErrorMessage)

		lines = append(lines, "- "+e.Error())
	}

	return lines
}
