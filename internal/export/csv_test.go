package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restivus/dietscan/internal/model"
)

func TestUniquePath(t *testing.T) {
	t.Run("first run picks (1)", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "classification_results")
		assert.Equal(t, base+"(1).csv", UniquePath(base, ".csv"))
	})

	t.Run("skips existing suffixes", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, "classification_results")
		require.NoError(t, os.WriteFile(base+".csv", nil, 0o600))
		require.NoError(t, os.WriteFile(base+"(1).csv", nil, 0o600))

		assert.Equal(t, base+"(2).csv", UniquePath(base, ".csv"))
	})
}

func TestWriteCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	counts := []model.CategoryCount{
		{Filename: "a.csv", Category: "Vegan", Count: 2},
		{Filename: "a.csv", Category: "Gluten-Free", Count: 1},
		{Filename: "b.csv", Category: "No restrictions", Count: 3},
	}

	require.NoError(t, WriteCounts(path, counts))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"filename", "category_name", "count"},
		{"a.csv", "Vegan", "2"},
		{"a.csv", "Gluten-Free", "1"},
		{"b.csv", "No restrictions", "3"},
	}, records)
}

func TestWriteCountsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCounts(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"filename", "category_name", "count"}}, records)
}
