package kitsparser

import "strings"

// ParseCSV splits CSV text into rows of raw fields.
//
// Quoted fields may contain commas and line breaks; a doubled quote inside a
// quoted field is a literal quote. Blank lines are skipped. Fields are not
// trimmed.
func ParseCSV(text string) [][]string {
	var (
		rows    [][]string
		current []string
		value   strings.Builder
		quoted  bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c == '"' && quoted && i+1 < len(text) && text[i+1] == '"':
			value.WriteByte('"')
			i++
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			current = append(current, value.String())
			value.Reset()
		case (c == '\n' || c == '\r') && !quoted:
			if value.Len() > 0 || len(current) > 0 {
				rows = append(rows, append(current, value.String()))
				current = nil
				value.Reset()
			}
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			value.WriteByte(c)
		}
	}

	if value.Len() > 0 || len(current) > 0 {
		rows = append(rows, append(current, value.String()))
	}

	return rows
}
