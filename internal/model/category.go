package model

// DefaultCategories is the fixed set offered when recording a transaction.
// The server treats category as an opaque label, so records created
// elsewhere may carry names outside this list; grouping still works.
var DefaultCategories = []string{
	"Food",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Shopping",
	"Education",
	"Other",
}
