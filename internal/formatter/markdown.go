// Package formatter renders run summaries as aligned markdown tables.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderTable renders headers and rows as a markdown table whose columns are
// padded to the widest cell, measured in display width so CJK text lines up.
// Short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string) string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return ""
	}

	colWidths := make([]int, colCount)

	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(row[i]); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	measure(headers)

	for _, row := range rows {
		measure(row)
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, renderRow(headers, colWidths, false))
	lines = append(lines, renderRow(nil, colWidths, true))

	for _, row := range rows {
		lines = append(lines, renderRow(row, colWidths, false))
	}

	return strings.Join(lines, "\n")
}

func renderRow(row []string, colWidths []int, separator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		if separator {
			sb.WriteString(strings.Repeat("-", width))
		} else {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

// CountRow is one line of a run summary.
type CountRow struct {
	Name  string
	Count int
}

// RenderCounts renders name/count pairs as a two-column table.
func RenderCounts(nameHeader, countHeader string, counts []CountRow) string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Name, strconv.Itoa(c.Count)}
	}

	return RenderTable([]string{nameHeader, countHeader}, rows)
}
