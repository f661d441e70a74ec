package xer

import (
	"bytes"
)

// Write serializes a File back into XER bytes, reproducing the header
// record, each table marker, each column-name record, and one record per
// row, per spec.md section 4.7. Tables are emitted in their original file
// order (File.Order); any table appended after parsing is emitted last.
func Write(f *File) []byte {
	var buf bytes.Buffer

	buf.WriteString(markerHeader)
	buf.WriteByte('\t')
	buf.WriteString(joinFields(f.Header))
	buf.WriteString("\r\n")

	seen := make(map[string]bool, len(f.Order))
	order := append([]string(nil), f.Order...)
	for name := range f.Tables {
		if !contains(order, name) {
			order = append(order, name)
		}
	}

	for _, name := range order {
		if seen[name] {
			continue
		}
		seen[name] = true
		table := f.Tables[name]
		if table == nil {
			continue
		}
		buf.WriteString(markerTable)
		buf.WriteByte('\t')
		buf.WriteString(table.Name)
		buf.WriteString("\r\n")

		buf.WriteString(markerField)
		buf.WriteByte('\t')
		buf.WriteString(joinFields(table.Columns))
		buf.WriteString("\r\n")

		for _, row := range table.Rows {
			buf.WriteString(markerRecord)
			buf.WriteByte('\t')
			buf.WriteString(joinFields(padRow(row, len(table.Columns))))
			buf.WriteString("\r\n")
		}
	}

	return encodeLegacyWestern(buf.String())
}

func joinFields(fields []string) string {
	var b bytes.Buffer
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(f)
	}
	return b.String()
}

func padRow(row Row, n int) Row {
	if len(row) >= n {
		return row
	}
	padded := make(Row, n)
	copy(padded, row)
	return padded
}

func contains(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}
