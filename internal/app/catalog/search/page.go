package search

import "github.com/light-bringer/storefront-service/internal/app/catalog/domain"

// DefaultPageSize is the number of cards revealed per "load more".
const DefaultPageSize = 24

// Window is the visible prefix of a result list.
type Window struct {
	Items    []domain.Product
	Total    int
	Page     int
	PageSize int
	HasMore  bool
}

// Page reveals the first page*pageSize items of an already filtered and sorted list.
// Growing page only extends the prefix, so items already shown never move.
func Page(list []domain.Product, page, pageSize int) Window {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	// compared by division so huge pages cannot overflow page*pageSize
	n := len(list)
	if page <= (n-1)/pageSize {
		n = page * pageSize
	}
	return Window{
		Items:    list[:n:n],
		Total:    len(list),
		Page:     page,
		PageSize: pageSize,
		HasMore:  n < len(list),
	}
}
