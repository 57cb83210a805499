package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restivus/dietscan/internal/model"
)

func TestAggregator(t *testing.T) {
	t.Run("additive per file and category", func(t *testing.T) {
		agg := NewAggregator()
		agg.Add("a.csv", []string{"Vegan"})
		agg.Add("a.csv", []string{"Vegan", "Gluten-Free"})
		agg.Add("a.csv", []string{"No restrictions"})

		assert.Equal(t, []model.CategoryCount{
			{Filename: "a.csv", Category: "Vegan", Count: 2},
			{Filename: "a.csv", Category: "Gluten-Free", Count: 1},
			{Filename: "a.csv", Category: "No restrictions", Count: 1},
		}, agg.Results())
	})

	t.Run("repeated category in one row counts twice", func(t *testing.T) {
		agg := NewAggregator()
		agg.Add("a.csv", []string{"Vegan", "Vegan"})

		assert.Equal(t, []model.CategoryCount{
			{Filename: "a.csv", Category: "Vegan", Count: 2},
		}, agg.Results())
	})

	t.Run("files keep first-seen order", func(t *testing.T) {
		agg := NewAggregator()
		agg.Add("b.csv", []string{"Vegan"})
		agg.Add("a.csv", []string{"Kosher"})
		agg.Add("b.csv", []string{"Halal"})

		assert.Equal(t, []model.CategoryCount{
			{Filename: "b.csv", Category: "Vegan", Count: 1},
			{Filename: "b.csv", Category: "Halal", Count: 1},
			{Filename: "a.csv", Category: "Kosher", Count: 1},
		}, agg.Results())
	})

	t.Run("empty classification contributes nothing", func(t *testing.T) {
		agg := NewAggregator()
		agg.Add("a.csv", nil)
		assert.Empty(t, agg.Results())
	})
}
