package xer

import (
	"fmt"
	"strings"
)

const (
	markerHeader = "ERMHDR"
	markerTable  = "%T"
	markerField  = "%F"
	markerRecord = "%R"
)

// ParseError reports a structural problem in the input, per spec.md
// section 4.1: "Malformed file" or "table structure" errors are fatal —
// the parser never guesses.
type ParseError struct {
	Kind    string // "MalformedFile" or "SchemaViolation"
	Table   string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s: table %s, line %d: %s", e.Kind, e.Table, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: line %d: %s", e.Kind, e.Line, e.Message)
}

// Parse decodes raw XER bytes (legacy Western code page) into a File.
func Parse(data []byte) (*File, error) {
	text := decodeLegacyWestern(data)
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &ParseError{Kind: "MalformedFile", Line: 0, Message: "empty file"}
	}

	header := strings.TrimRight(lines[0], " \t")
	if !strings.HasPrefix(header, markerHeader) {
		return nil, &ParseError{Kind: "MalformedFile", Line: 1, Message: "missing ERMHDR header record"}
	}

	file := &File{Header: splitFields(header)[1:]}

	i := 1
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		fields := splitFields(line)
		if fields[0] != markerTable {
			return nil, &ParseError{Kind: "MalformedFile", Line: i + 1, Message: fmt.Sprintf("expected %s table marker, got %q", markerTable, fields[0])}
		}
		if len(fields) < 2 {
			return nil, &ParseError{Kind: "MalformedFile", Line: i + 1, Message: "table marker missing table name"}
		}
		tableName := fields[1]

		if i+1 >= len(lines) {
			return nil, &ParseError{Kind: "MalformedFile", Table: tableName, Line: i + 1, Message: "unterminated table: missing field-name record"}
		}
		fieldLine := splitFields(lines[i+1])
		if fieldLine[0] != markerField {
			return nil, &ParseError{Kind: "MalformedFile", Table: tableName, Line: i + 2, Message: fmt.Sprintf("expected %s field marker, got %q", markerField, fieldLine[0])}
		}
		columns := fieldLine[1:]
		table := newTable(tableName, columns)

		j := i + 2
		for j < len(lines) {
			rowFields := splitFields(lines[j])
			if len(rowFields) == 0 || rowFields[0] != markerRecord {
				break
			}
			values := rowFields[1:]
			if len(values) > len(columns) {
				return nil, &ParseError{
					Kind: "SchemaViolation", Table: tableName, Line: j + 1,
					Message: fmt.Sprintf("row has %d values, table declares %d columns", len(values), len(columns)),
				}
			}
			row := make(Row, len(columns))
			copy(row, values)
			// Missing trailing columns equal the empty string (already zero-valued).
			table.Rows = append(table.Rows, row)
			j++
		}

		file.addTable(table)
		i = j
	}

	return file, nil
}

// splitLines accepts either LF or CRLF terminators per spec.md section 6.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")
	// Drop a single trailing empty line produced by a final terminator.
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	return raw
}

// splitFields splits one record on TAB, stripping trailing whitespace from
// the final field only, per spec.md section 4.1.
func splitFields(line string) []string {
	fields := strings.Split(line, "\t")
	if n := len(fields); n > 0 {
		fields[n-1] = strings.TrimRight(fields[n-1], " \t")
	}
	return fields
}
