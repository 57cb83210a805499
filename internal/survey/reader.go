// Package survey reads survey-export CSV files: discovering them, filtering
// rows by approval status, and extracting the target answer column.
package survey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/restivus/dietscan/internal/common"
	"github.com/restivus/dietscan/internal/model"
)

// approvalColumn is the fixed column gating which rows are processed.
const approvalColumn = "approval_status"

// ListFiles returns the CSV files in dir, sorted by name so that every run
// processes files in the same order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", common.ErrNoCSVFiles, dir)
	}

	sort.Strings(files)
	return files, nil
}

// ReadRows returns the parsed responses of every approved row's target
// column in one CSV file. Rows whose approval_status is not "approved"
// (case-insensitive, trimmed) are skipped; a file without the approval
// column cannot gate its rows and is an error. A positive limit caps how
// many data rows are scanned, approved or not, for cheap test runs.
//
// A missing target column reads as an empty answer rather than an error;
// survey exports are not uniform and an absent column just means the file
// contributes "No restrictions" rows.
func ReadRows(path, column string, limit int) ([]model.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	approvalIdx := columnIndex(header, approvalColumn)
	if approvalIdx < 0 {
		return nil, fmt.Errorf("%w: %s has no %q column", common.ErrMissingColumn, path, approvalColumn)
	}
	valueIdx := columnIndex(header, column)

	var responses []model.Response
	for i := 0; limit <= 0 || i < limit; i++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !approved(field(record, approvalIdx)) {
			continue
		}
		responses = append(responses, model.ParseResponse(field(record, valueIdx)))
	}

	return responses, nil
}

// UniqueValues collects the deduplicated raw answers of the target column
// across the approved rows of all files. The result is sorted so the
// derivation prompt is identical for identical inputs.
func UniqueValues(files []string, column string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, path := range files {
		responses, err := ReadRows(path, column, 0)
		if err != nil {
			return nil, err
		}
		for _, r := range responses {
			if !r.IsEmpty() {
				seen[r.Raw()] = struct{}{}
			}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func approved(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "approved")
}
