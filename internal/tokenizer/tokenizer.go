// Package tokenizer splits raw CSV text into rows of string fields.
//
// Point-of-sale exports are messy enough that encoding/csv is too strict for
// them: mid-file blank lines, carriage returns inside quoted fields and
// unterminated quotes all occur in practice and must degrade gracefully
// instead of failing the load. The scanner below never returns an error.
package tokenizer

import "strings"

// Parse tokenizes text into rows of fields.
//
// Rules:
//   - a double quote toggles quoted mode; two consecutive double quotes
//     inside quoted mode emit one literal quote
//   - a comma ends a field outside quotes
//   - a newline ends a row outside quotes; carriage returns are dropped
//   - a row consisting of a single empty field (trailing blank line
//     artifact) is silently skipped
//   - any trailing partial field or row at end of input is flushed
//   - an unterminated quote consumes to end of input
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if len(row) == 1 && row[0] == "" {
			row = nil
			return
		}
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\n':
			endRow()
		case '\r':
			// dropped
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}

	return rows
}
