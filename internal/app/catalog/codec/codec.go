// Package codec maps catalog view state to and from a shareable query string.
//
// Encoding is minimal: a parameter is written only when it differs from its
// default, so the default view encodes to "". Decoding never fails; values
// outside their domain are clamped or dropped.
package codec

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Query parameter names, in emission order.
const (
	ParamMode     = "mode"
	ParamSort     = "sort"
	ParamLayout   = "layout"
	ParamBrands   = "brands"
	ParamCond     = "cond"
	ParamPriceMin = "priceMin"
	ParamPriceMax = "priceMax"
	ParamInStock  = "inStock"
	ParamFreeShip = "freeShip"
	ParamRating   = "rating"
	ParamServices = "services"
	ParamPage     = "page"
)

// Encode serializes the view. Categories are not written; they come from the path.
func Encode(v domain.ViewState) string {
	def := domain.DefaultViewState()
	var q query

	if v.Mode != def.Mode && v.Mode != "" {
		q.add(ParamMode, string(v.Mode))
	}
	if v.Sort != def.Sort && v.Sort != "" {
		q.add(ParamSort, string(v.Sort))
	}
	if v.Layout != def.Layout && v.Layout != "" {
		q.add(ParamLayout, string(v.Layout))
	}
	encodeFilters(&q, v.Filters)
	if v.Page > 1 {
		q.add(ParamPage, strconv.Itoa(v.Page))
	}
	return q.String()
}

// EncodeFilters serializes only the facets of a filter state.
func EncodeFilters(f domain.FilterState) string {
	var q query
	encodeFilters(&q, f)
	return q.String()
}

func encodeFilters(q *query, f domain.FilterState) {
	q.addList(ParamBrands, f.Brands())
	q.addList(ParamCond, stringsOf(f.Conditions()))

	if m := f.PriceMin(); !m.Equals(money.FromUnits(domain.DefaultPriceMinUnits)) {
		q.add(ParamPriceMin, m.DecimalString())
	}
	if m := f.PriceMax(); !m.Equals(money.FromUnits(domain.DefaultPriceMaxUnits)) {
		q.add(ParamPriceMax, m.DecimalString())
	}
	if f.InStock() {
		q.add(ParamInStock, "1")
	}
	if f.FreeShipping() {
		q.add(ParamFreeShip, "1")
	}
	if f.Rating() > 0 {
		q.add(ParamRating, strconv.Itoa(f.Rating()))
	}
	q.addList(ParamServices, stringsOf(f.ServiceTypes()))
}

// Decode parses a query string, with or without a leading '?'. The category
// scope is taken from the caller since it is part of the path, not the query.
func Decode(raw string, scope []string) domain.ViewState {
	values := parse(raw)
	v := domain.DefaultViewState()

	if m, ok := domain.ParseMode(values.Get(ParamMode)); ok {
		v.Mode = m
	}
	if k, ok := domain.ParseSortKey(values.Get(ParamSort)); ok {
		v.Sort = k
	}
	if l, ok := domain.ParseLayout(values.Get(ParamLayout)); ok {
		v.Layout = l
	}
	v.Filters = decodeFilters(values, scope)
	if p, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil && p > 1 {
		v.Page = min(p, domain.MaxPage)
	}
	return v
}

// DecodeFilters parses only the facet parameters of a query string.
func DecodeFilters(raw string, scope []string) domain.FilterState {
	return decodeFilters(parse(raw), scope)
}

func decodeFilters(values url.Values, scope []string) domain.FilterState {
	f := domain.DefaultFilterState().WithCategories(scope...)

	for _, b := range splitList(values.Get(ParamBrands)) {
		if !f.HasBrand(b) {
			f = f.ToggleBrand(b)
		}
	}
	for _, c := range splitList(values.Get(ParamCond)) {
		if cond, ok := domain.ParseCondition(c); ok && !f.HasCondition(cond) {
			f = f.ToggleCondition(cond)
		}
	}
	for _, s := range splitList(values.Get(ParamServices)) {
		if st, ok := domain.ParseServiceType(s); ok && !f.HasServiceType(st) {
			f = f.ToggleServiceType(st)
		}
	}

	lo, hi := f.PriceMin(), f.PriceMax()
	if m, err := money.Parse(values.Get(ParamPriceMin)); err == nil {
		lo = m
	}
	if m, err := money.Parse(values.Get(ParamPriceMax)); err == nil {
		hi = m
	}
	f = f.WithPriceRange(lo, hi)

	f = f.SetInStock(parseBool(values.Get(ParamInStock)))
	f = f.SetFreeShipping(parseBool(values.Get(ParamFreeShip)))

	if r, ok := parseRating(values.Get(ParamRating)); ok {
		f = f.SetRating(r)
	}
	return f
}

func parse(raw string) url.Values {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(raw)
	if values == nil {
		return url.Values{}
	}
	return values
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true
	}
	return false
}

func parseRating(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(fl) || math.IsInf(fl, 0) {
		return 0, false
	}
	return int(math.Floor(math.Max(-1, math.Min(fl, domain.MaxRating)))), true
}

func stringsOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// query accumulates parameters in insertion order; url.Values.Encode would sort them.
type query struct {
	b strings.Builder
}

func (q *query) add(key, value string) {
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(key)
	q.b.WriteByte('=')
	q.b.WriteString(url.QueryEscape(value))
}

func (q *query) addList(key string, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = url.QueryEscape(t)
	}
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(key)
	q.b.WriteByte('=')
	q.b.WriteString(strings.Join(escaped, ","))
}

func (q *query) String() string {
	return q.b.String()
}
