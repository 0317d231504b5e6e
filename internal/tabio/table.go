// Package tabio reads and writes delimited text tables with a
// configurable separator and character encoding. All cells are kept as
// strings so that zero-padded identifiers survive a round trip.
package tabio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Table is a parsed delimited file. Headers are normalized
// (trimmed, lowercased); rows are keyed by normalized header.
type Table struct {
	Headers []string
	Rows    []Row
}

// Row maps normalized column name to cell value.
type Row map[string]string

// Get returns the trimmed cell value for a column, with empty-value
// markers ("#N/A") normalized to the empty string.
func (r Row) Get(column string) string {
	v := strings.TrimSpace(r[column])
	if v == "#N/A" || v == "N/A" {
		return ""
	}
	return v
}

// NormalizeHeader canonicalizes a column name for case-insensitive,
// whitespace-tolerant matching.
func NormalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// HasColumn reports whether the table has the given normalized column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}

func sepRune(sep string) (rune, error) {
	if sep == "" {
		return ',', nil
	}
	runes := []rune(sep)
	if len(runes) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", sep)
	}
	return runes[0], nil
}

// Read parses a delimited table from r.
func Read(r io.Reader, sep string, encodingName string) (*Table, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	comma, err := sepRune(sep)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	// Ragged rows degrade per cell instead of failing the whole file:
	// short rows leave trailing columns absent, extra cells are dropped.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = NormalizeHeader(h)
	}

	table := &Table{Headers: headers}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(table.Rows)+2, err)
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ReadFile parses a delimited table from a file.
func ReadFile(path string, sep string, encodingName string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	table, err := Read(f, sep, encodingName)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return table, nil
}

// Write emits a header plus rows in the given column order.
func Write(w io.Writer, sep string, encodingName string, columns []string, rows [][]string) error {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return err
	}
	if enc != nil {
		ew := transform.NewWriter(w, enc.NewEncoder())
		defer func() { _ = ew.Close() }()
		w = ew
	}

	comma, err := sepRune(sep)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile emits a delimited table to a file.
func WriteFile(path string, sep string, encodingName string, columns []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if err := Write(f, sep, encodingName, columns, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
