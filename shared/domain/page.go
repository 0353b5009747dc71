package domain

import "math"

// number of page links shown around the current page
const PageWindow = 10

// MaxPage keeps Offset well inside int64. Larger pages are simply empty.
const MaxPage = math.MaxInt32

type PageRequest struct {
	Page int // 1-based
	Size int
}

// Normalize clamps page to [1, MaxPage] and size to [1, maxSize], using defaultSize when size is unset.
func (p PageRequest) Normalize(defaultSize, maxSize int) PageRequest {
	p.Page = min(max(1, p.Page), MaxPage)
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	p.Size = min(p.Size, maxSize)
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	// first and last page link of the window containing Page
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewPage derives paging metadata. req must be normalized.
func NewPage[T any](req PageRequest, total int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	start := (req.Page-1)/PageWindow*PageWindow + 1
	end := min(start+PageWindow-1, max(totalPages, 1))
	if start > end {
		// page past the last one, the window collapses to its first link
		end = start
	}

	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		Size:       req.Size,
		TotalPages: totalPages,
		HasPrev:    req.Page > 1,
		HasNext:    req.Page < totalPages,
		Start:      start,
		End:        end,
	}
}
