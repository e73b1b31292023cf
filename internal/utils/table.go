package utils

import (
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

// RenderCSVTable renders csv data as an aligned text table with a header
// separator. Ragged rows are padded so that malformed tool output still
// renders instead of erroring out.
func RenderCSVTable(data string) (string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(data)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	amCols := 0
	for _, rec := range records {
		if len(rec) > amCols {
			amCols = len(rec)
		}
	}
	widths := make([]int, amCols)
	for _, rec := range records {
		for i, cell := range rec {
			if l := utf8.RuneCountInString(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}

	var sb strings.Builder
	writeRow := func(rec []string) {
		for i := range amCols {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			sb.WriteString(fmt.Sprintf("| %-*s ", widths[i], cell))
		}
		sb.WriteString("|\n")
	}

	writeRow(records[0])
	for i := range amCols {
		sb.WriteString("|" + strings.Repeat("-", widths[i]+2))
	}
	sb.WriteString("|\n")
	for _, rec := range records[1:] {
		writeRow(rec)
	}
	return sb.String(), nil
}
