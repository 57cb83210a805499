// Package export writes the aggregated classification counts to disk.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/restivus/dietscan/internal/model"
)

// UniquePath returns the first "base(n)ext" path, n counting up from 1,
// that does not exist yet. Previous runs' outputs are never overwritten;
// the bare base name is never used.
func UniquePath(base, ext string) string {
	for counter := 1; ; counter++ {
		path := fmt.Sprintf("%s(%d)%s", base, counter, ext)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}

// WriteCounts writes the aggregated counts as a CSV file with the header
// filename,category_name,count.
func WriteCounts(path string, counts []model.CategoryCount) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"filename", "category_name", "count"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, count := range counts {
		record := []string{count.Filename, count.Category, strconv.Itoa(count.Count)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record for %s: %w", count.Filename, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
