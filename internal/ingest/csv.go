package ingest

// csv.go - shared CSV reading with header checks and line-numbered errors

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// row is one parsed CSV record with enough context for error messages.
type row struct {
	line   int
	fields map[string]string
}

func (r row) get(col string) string {
	return strings.TrimSpace(r.fields[col])
}

func (r row) getInt(col string) (int, error) {
	v := r.get(col)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: invalid integer %q", r.line, col, v)
	}
	return n, nil
}

func (r row) getFloat(col string) (float64, error) {
	v := r.get(col)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: invalid number %q", r.line, col, v)
	}
	return f, nil
}

// optionalFloat returns 0 when the column is absent or empty.
func (r row) optionalFloat(col string) (float64, error) {
	v := r.get(col)
	if v == "" {
		return 0, nil
	}
	return r.getFloat(col)
}

// readCSV parses a CSV stream whose first record is a header. required
// names all columns that must be present; extra columns are ignored.
func readCSV(src io.Reader, required ...string) ([]row, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var rows []row
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		fields := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(rec) {
				fields[name] = rec[i]
			}
		}
		rows = append(rows, row{line: line, fields: fields})
	}
	return rows, nil
}
