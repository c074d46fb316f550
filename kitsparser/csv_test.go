package kitsparser

import (
	"reflect"
	"testing"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "simple rows",
			input:    "a,b\nc,d\n",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "quoted comma",
			input:    `"a,b",c`,
			expected: [][]string{{"a,b", "c"}},
		},
		{
			name:     "escaped quotes",
			input:    `"say ""hi"""`,
			expected: [][]string{{`say "hi"`}},
		},
		{
			name:     "quoted newline",
			input:    "\"line1\nline2\",x\n",
			expected: [][]string{{"line1\nline2", "x"}},
		},
		{
			name:     "blank lines skipped",
			input:    "a\n\n\nb\n",
			expected: [][]string{{"a"}, {"b"}},
		},
		{
			name:     "no trailing newline",
			input:    "a,b\nc",
			expected: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name:     "trailing empty field",
			input:    "a,\n",
			expected: [][]string{{"a", ""}},
		},
		{
			name:     "fields not trimmed",
			input:    " a , b ",
			expected: [][]string{{" a ", " b "}},
		},
		{
			name:     "quote toggles mid field",
			input:    `ab"c,d"e,f`,
			expected: [][]string{{"abc,de", "f"}},
		},
		{
			name:     "lone comma line",
			input:    ",\n",
			expected: [][]string{{"", ""}},
		},
		{
			name:     "utf8 content",
			input:    "Quirófano Nro,Farmacia\n3,Central\n",
			expected: [][]string{{"Quirófano Nro", "Farmacia"}, {"3", "Central"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSV(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseCSV(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseCSVLineEndingsAreEquivalent(t *testing.T) {
	lf := ParseCSV("h1,h2\n1,\"a,b\"\n\n2,c\n")
	crlf := ParseCSV("h1,h2\r\n1,\"a,b\"\r\n\r\n2,c\r\n")
	cr := ParseCSV("h1,h2\r1,\"a,b\"\r\r2,c\r")

	if !reflect.DeepEqual(lf, crlf) {
		t.Errorf("LF and CRLF differ: %#v vs %#v", lf, crlf)
	}
	if !reflect.DeepEqual(lf, cr) {
		t.Errorf("LF and CR differ: %#v vs %#v", lf, cr)
	}
	if len(lf) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(lf))
	}
}
