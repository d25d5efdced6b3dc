package domain

// Mode is the purchase mode a catalog page is browsed in.
type Mode string

const (
	ModeBuy  Mode = "buy"
	ModeRent Mode = "rent"
)

// ParseMode validates a mode token.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeBuy, ModeRent:
		return Mode(s), true
	}
	return "", false
}

// Layout is how result cards are arranged.
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// ParseLayout validates a layout token.
func ParseLayout(s string) (Layout, bool) {
	switch Layout(s) {
	case LayoutGrid, LayoutList:
		return Layout(s), true
	}
	return "", false
}

// ViewState is everything a shareable catalog URL carries: the facets plus
// presentation parameters. Like FilterState it is a value.
type ViewState struct {
	Mode    Mode
	Sort    SortKey
	Layout  Layout
	Page    int
	Filters FilterState
}

// DefaultViewState returns the state of a freshly opened catalog page.
func DefaultViewState() ViewState {
	return ViewState{
		Mode:    ModeBuy,
		Sort:    SortRelevance,
		Layout:  LayoutGrid,
		Page:    1,
		Filters: DefaultFilterState(),
	}
}

// WithFilters replaces the facets. Changing facets restarts pagination.
func (v ViewState) WithFilters(f FilterState) ViewState {
	if !v.Filters.Equal(f) {
		v.Page = 1
	}
	v.Filters = f
	return v
}

// WithSort changes the ordering. Changing the order restarts pagination.
func (v ViewState) WithSort(k SortKey) ViewState {
	if _, ok := ParseSortKey(string(k)); !ok {
		return v
	}
	if v.Sort != k {
		v.Page = 1
	}
	v.Sort = k
	return v
}

// WithMode switches between buying and renting.
func (v ViewState) WithMode(m Mode) ViewState {
	if _, ok := ParseMode(string(m)); ok {
		v.Mode = m
	}
	return v
}

// WithLayout switches between grid and list presentation.
func (v ViewState) WithLayout(l Layout) ViewState {
	if _, ok := ParseLayout(string(l)); ok {
		v.Layout = l
	}
	return v
}

// MaxPage is the highest page a catalog view can reveal.
const MaxPage = 1000

// NextPage grows the visible window by one page, up to MaxPage.
func (v ViewState) NextPage() ViewState {
	v.Page = min(v.Page+1, MaxPage)
	return v
}

// WithPage sets the page, clamped to 1..MaxPage.
func (v ViewState) WithPage(p int) ViewState {
	v.Page = max(1, min(p, MaxPage))
	return v
}

// Equal compares every field.
func (v ViewState) Equal(other ViewState) bool {
	return v.Mode == other.Mode &&
		v.Sort == other.Sort &&
		v.Layout == other.Layout &&
		v.Page == other.Page &&
		v.Filters.Equal(other.Filters)
}
