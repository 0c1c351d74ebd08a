package domain

// SortKey orders a listing by a single field.
type SortKey struct {
	Field string
	Desc  bool
}

// ListQuery is the store-level shape of a search: a text filter plus an
// offset window and ordering.
type ListQuery struct {
	Search string
	Offset int
	Limit  int
	Sort   []SortKey
}

// Paging describes the position of a page inside a listing.
// TotalElements counts the elements on the current page only.
type Paging struct {
	CurrentPage   int
	TotalElements int
	TotalPages    int
}

// Page is the envelope returned by list operations.
type Page[T any] struct {
	Data   []T
	Paging Paging
}
