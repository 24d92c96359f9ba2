package models

// Page is the envelope returned by every paginated query. All fields are
// derived by NewPage; nothing is mutated independently.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
	PageNumber    int  `json:"page_number"`
	PageSize      int  `json:"page_size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}

// NewPage builds a page envelope for zero-based page indices. A page index
// beyond the last page yields empty content with Last set.
func NewPage[T any](content []T, pageNumber, pageSize, totalElements int) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalElements + pageSize - 1) / pageSize
	}
	return Page[T]{
		Content:       content,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		First:         pageNumber == 0,
		Last:          pageNumber >= totalPages-1,
		Empty:         len(content) == 0,
	}
}
