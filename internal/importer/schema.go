// Package importer reads preference and roster tables from CSV.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PreferenceRow is one "provider wants requester" line.
type PreferenceRow struct {
	Line      int
	Provider  string
	Requester string
	// Cells holds the raw cell count, used to report short rows.
	Cells int
}

// RosterRow is one "role,id" line.
type RosterRow struct {
	Line  int
	Role  string
	ID    string
	Cells int
}

var preferenceHeaders = []string{"provider", "seller", "vendedor", "name", "nombre"}
var rosterHeaders = []string{"role", "rol", "type", "tipo"}

// LoadPreferences reads a preference CSV file.
func LoadPreferences(path string) ([]PreferenceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadPreferences(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// ReadPreferences parses provider,requester rows. A first row whose first
// cell names a provider column is treated as a header and skipped.
func ReadPreferences(r io.Reader) ([]PreferenceRow, error) {
	records, err := readRecords(r, preferenceHeaders)
	if err != nil {
		return nil, err
	}
	rows := make([]PreferenceRow, 0, len(records))
	for _, rec := range records {
		row := PreferenceRow{Line: rec.line, Cells: len(rec.cells)}
		if len(rec.cells) > 0 {
			row.Provider = rec.cells[0]
		}
		if len(rec.cells) > 1 {
			row.Requester = rec.cells[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadRoster reads a roster CSV file.
func LoadRoster(path string) ([]RosterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadRoster(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// ReadRoster parses role,id rows with an optional header.
func ReadRoster(r io.Reader) ([]RosterRow, error) {
	records, err := readRecords(r, rosterHeaders)
	if err != nil {
		return nil, err
	}
	rows := make([]RosterRow, 0, len(records))
	for _, rec := range records {
		row := RosterRow{Line: rec.line, Cells: len(rec.cells)}
		if len(rec.cells) > 0 {
			row.Role = rec.cells[0]
		}
		if len(rec.cells) > 1 {
			row.ID = rec.cells[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type record struct {
	line  int
	cells []string
}

// readRecords returns trimmed, non-blank records. Line numbers are 1-based and
// count the header.
func readRecords(r io.Reader, headers []string) ([]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []record
	first := true
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if first {
			first = false
			if len(cells) > 0 {
				cells[0] = strings.TrimPrefix(cells[0], "\ufeff")
			}
			if isHeader(cells, headers) {
				continue
			}
		}
		if blank(cells) {
			continue
		}
		out = append(out, record{line: line, cells: cells})
	}
	return out, nil
}

func isHeader(cells []string, headers []string) bool {
	if len(cells) == 0 {
		return false
	}
	first := strings.ToLower(cells[0])
	for _, h := range headers {
		if strings.Contains(first, h) {
			return true
		}
	}
	return false
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
