package engine

import (
	"github.com/restivus/dietscan/internal/model"
)

// Aggregator tallies category occurrences per source file. Files keep
// their first-seen order and so do categories within a file, which makes
// the output enumeration deterministic for a given run.
type Aggregator struct {
	tallies   map[string]*fileTally
	fileOrder []string
}

type fileTally struct {
	counts map[string]int
	order  []string
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{tallies: make(map[string]*fileTally)}
}

// Add folds one row's classification into the per-file tally. Every
// category increments independently; a category repeated for one row
// counts each occurrence.
func (a *Aggregator) Add(file string, categories []string) {
	if len(categories) == 0 {
		return
	}

	tally, ok := a.tallies[file]
	if !ok {
		tally = &fileTally{counts: make(map[string]int)}
		a.tallies[file] = tally
		a.fileOrder = append(a.fileOrder, file)
	}

	for _, category := range categories {
		if _, seen := tally.counts[category]; !seen {
			tally.order = append(tally.order, category)
		}
		tally.counts[category]++
	}
}

// Results enumerates the accumulated (filename, category, count) triples.
func (a *Aggregator) Results() []model.CategoryCount {
	var results []model.CategoryCount
	for _, file := range a.fileOrder {
		tally := a.tallies[file]
		for _, category := range tally.order {
			results = append(results, model.CategoryCount{
				Filename: file,
				Category: category,
				Count:    tally.counts[category],
			})
		}
	}
	return results
}
