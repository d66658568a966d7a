package domain

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery is 1-based page/limit pagination.
type PageQuery struct {
	Page  int
	Limit int
}

func (p PageQuery) Normalize() PageQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// Paginate slices items for the requested page. Out-of-range pages yield an empty, non-nil slice.
func Paginate[T any](items []T, q PageQuery) Page[T] {
	q = q.Normalize()
	total := len(items)
	pages := (total + q.Limit - 1) / q.Limit
	start := (q.Page - 1) * q.Limit
	out := []T{}
	if start < total {
		end := start + q.Limit
		if end > total {
			end = total
		}
		out = append(out, items[start:end]...)
	}
	return Page[T]{
		Items:      out,
		Pagination: Pagination{Page: q.Page, Limit: q.Limit, Total: total, TotalPages: pages},
	}
}
