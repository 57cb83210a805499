package model

// CategoryCount is one row of the aggregated output: how many times a
// category was assigned to answers from one source file.
type CategoryCount struct {
	Filename string
	Category string
	Count    int
}
