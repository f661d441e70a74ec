// Package xer implements the tabular parser and serializer for the
// vendor-neutral XER export format (SPEC_FULL.md component C1/C7).
// It has no knowledge of projects, activities, or calendars; it only
// turns a byte stream into named, ordered, column-addressable tables and
// back, preserving anything it does not understand.
package xer

// Row is one record of a table: an ordered slice of string values aligned
// positionally with the owning Table's Columns. A missing trailing value
// is the empty string, matching spec.md section 4.1.
type Row []string

// Get returns the value of the named column in the row, or "" if the
// column does not exist in this table or the row is short that column.
func (r Row) Get(t *Table, column string) string {
	idx, ok := t.columnIndex[column]
	if !ok || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Table is a rectangular record set: a name, an ordered list of column
// names, and the rows beneath it.
type Table struct {
	Name        string
	Columns     []string
	Rows        []Row
	columnIndex map[string]int
}

func newTable(name string, columns []string) *Table {
	t := &Table{Name: name, Columns: columns}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.columnIndex = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.columnIndex[c] = i
	}
}

// Get returns the value of the named column for row i, or "" if out of range.
func (t *Table) Get(rowIdx int, column string) string {
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return ""
	}
	return t.Rows[rowIdx].Get(t, column)
}

// Set rewrites the value of the named column for row i. It reports false
// if the row index or column is unknown to this table, leaving the row
// untouched.
func (t *Table) Set(rowIdx int, column, value string) bool {
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return false
	}
	idx, ok := t.columnIndex[column]
	if !ok {
		return false
	}
	row := t.Rows[rowIdx]
	if idx >= len(row) {
		padded := make(Row, idx+1)
		copy(padded, row)
		row = padded
		t.Rows[rowIdx] = row
	}
	row[idx] = value
	return true
}

// ColumnIndex exposes whether a column exists on this table, for callers
// that need to branch on column presence (e.g. schema validation).
func (t *Table) ColumnIndex(column string) (int, bool) {
	idx, ok := t.columnIndex[column]
	return idx, ok
}

// File is the parsed representation of one XER export: the verbatim
// header record plus every table found, in file order.
type File struct {
	// Header holds the ERMHDR record's fields verbatim (version, export
	// date, originator, ...), positional per spec.md section 4.1.
	Header []string

	// Order preserves table file-order for lossless re-serialization.
	Order []string
	Tables map[string]*Table
}

// Table looks up a table by name, returning nil if absent.
func (f *File) Table(name string) *Table {
	return f.Tables[name]
}

func (f *File) addTable(t *Table) {
	if f.Tables == nil {
		f.Tables = make(map[string]*Table)
	}
	if _, exists := f.Tables[t.Name]; !exists {
		f.Order = append(f.Order, t.Name)
	}
	f.Tables[t.Name] = t
}

// Clone deep-copies the file, used by C5 (reprojection) and C8 (windows)
// to produce independent snapshots per spec.md section 3's "Ownership".
func (f *File) Clone() *File {
	clone := &File{
		Header: append([]string(nil), f.Header...),
		Order:  append([]string(nil), f.Order...),
		Tables: make(map[string]*Table, len(f.Tables)),
	}
	for name, t := range f.Tables {
		nt := &Table{
			Name:    t.Name,
			Columns: append([]string(nil), t.Columns...),
			Rows:    make([]Row, len(t.Rows)),
		}
		for i, r := range t.Rows {
			nt.Rows[i] = append(Row(nil), r...)
		}
		nt.buildIndex()
		clone.Tables[name] = nt
	}
	return clone
}
