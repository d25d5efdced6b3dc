package domain

// SortKey selects the ordering of a catalog result set.
type SortKey string

const (
	// SortRelevance keeps the source collection order.
	SortRelevance    SortKey = "relevance"
	SortPriceAsc     SortKey = "priceAsc"
	SortPriceDesc    SortKey = "priceDesc"
	SortDiscountDesc SortKey = "discountDesc"
	SortRatingDesc   SortKey = "ratingDesc"
)

// SortKeys lists the supported orderings.
var SortKeys = []SortKey{SortRelevance, SortPriceAsc, SortPriceDesc, SortDiscountDesc, SortRatingDesc}

// ParseSortKey validates a sort token.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
