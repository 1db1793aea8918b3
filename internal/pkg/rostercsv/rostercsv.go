// Package rostercsv parses the admin roster upload.
//
// The first row is a header; columns are matched by name, case-insensitively, so their
// order is free. Blank lines are skipped. Required columns: name, email, ern_number,
// branch, batch_year, section. mobile_number is optional.
package rostercsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yigit/collegesocial/internal/pkg/validation"
)

// Column names
const (
	ColName         = "name"
	ColEmail        = "email"
	ColERNNumber    = "ern_number"
	ColBranch       = "branch"
	ColBatchYear    = "batch_year"
	ColSection      = "section"
	ColMobileNumber = "mobile_number"
)

var requiredColumns = []string{ColName, ColEmail, ColERNNumber, ColBranch, ColBatchYear, ColSection}

// ErrEmptyFile is returned when the upload has no header row.
var ErrEmptyFile = errors.New("roster file is empty")

// Record is one student line of the roster.
type Record struct {
	Line         int
	Name         string
	Email        string
	ERNNumber    string
	Branch       string
	BatchYear    int
	Section      string
	MobileNumber *string
}

// RowError points at the offending line of the file.
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Parse reads every record or fails on the first malformed one.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var records []Record
	seen := make(map[string]int)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(row) {
			continue
		}

		rec, err := toRecord(row, index, line)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[rec.ERNNumber]; dup {
			return nil, &RowError{Line: line, Reason: fmt.Sprintf("ern_number %s already appears on line %d", rec.ERNNumber, first)}
		}
		seen[rec.ERNNumber] = line
		records = append(records, rec)
	}

	return records, nil
}

func toRecord(row []string, index map[string]int, line int) (Record, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var missing []string
	for _, col := range requiredColumns {
		if get(col) == "" {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Record{}, &RowError{Line: line, Reason: "missing required fields: " + strings.Join(missing, ", ")}
	}

	email := strings.ToLower(get(ColEmail))
	if !validation.IsEmail(email) {
		return Record{}, &RowError{Line: line, Reason: "invalid email " + email}
	}

	year, err := strconv.Atoi(get(ColBatchYear))
	if err != nil || !validation.ValidBatchYear(year) {
		return Record{}, &RowError{Line: line, Reason: "invalid batch_year " + get(ColBatchYear)}
	}

	rec := Record{
		Line:      line,
		Name:      get(ColName),
		Email:     email,
		ERNNumber: get(ColERNNumber),
		Branch:    get(ColBranch),
		BatchYear: year,
		Section:   get(ColSection),
	}
	if m := get(ColMobileNumber); m != "" {
		m = validation.NormalizeMobile(m)
		if !validation.IsMobileNumber(m) {
			return Record{}, &RowError{Line: line, Reason: "invalid mobile_number " + m}
		}
		rec.MobileNumber = &m
	}
	return rec, nil
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
