// Package controller keeps a catalog page's view state in step with its location.
package controller

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/catalog/codec"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/search"
	"github.com/light-bringer/storefront-service/internal/pkg/store"
)

// LocationPort is the page's address bar.
type LocationPort interface {
	// Read returns the current location, e.g. "/c/geladeiras?brands=LG".
	Read() string
	// Replace overwrites the current location without adding a history entry.
	Replace(location string)
}

// Edit derives the next view from the pending one.
type Edit func(domain.ViewState) domain.ViewState

// Snapshot is what a page renders.
type Snapshot struct {
	View    domain.ViewState
	Results search.Window
	Facets  search.Summary
	Href    string
}

// PageController owns one catalog page. It is safe for concurrent use.
type PageController struct {
	mu       sync.Mutex
	location LocationPort
	products []domain.Product
	resolver search.CategoryResolver
	scope    []string
	pageSize int
	store    *store.Store[Snapshot, domain.ViewState]
	logger   *zap.Logger
}

// Options configures a PageController.
type Options struct {
	Products []domain.Product
	Resolver search.CategoryResolver
	// Scope is the category scope from the page path; empty means the whole catalog.
	Scope    []string
	PageSize int
	Logger   *zap.Logger
}

// New creates a controller and performs the initial Sync.
func New(location LocationPort, opts Options) *PageController {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &PageController{
		location: location,
		products: opts.Products,
		resolver: opts.Resolver,
		scope:    opts.Scope,
		pageSize: opts.PageSize,
		logger:   logger,
	}
	c.store = store.New(Snapshot{}, c.render)
	c.Sync()
	return c
}

// Sync re-derives everything from the current location, replacing local state
// wholesale. Call it on every external location change (back/forward).
func (c *PageController) Sync() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, rawQuery := splitLocation(c.location.Read())
	view := codec.Decode(rawQuery, c.scope)
	return c.store.Dispatch(view)
}

// Apply derives the next view from the pending state, writes it to the
// location, then commits it locally. Both happen under the controller lock,
// so concurrent edits never interleave.
func (c *PageController) Apply(edit Edit) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := edit(c.store.GetState().View)
	next.Filters = next.Filters.WithCategories(c.scope...)

	path, _ := splitLocation(c.location.Read())
	href := joinLocation(path, codec.Encode(next))
	c.location.Replace(href)

	c.logger.Debug("catalog view updated",
		zap.String("location", href),
		zap.Int("active_facets", next.Filters.ActiveFacetCount()))
	return c.store.Dispatch(next)
}

// State returns the last committed snapshot.
func (c *PageController) State() Snapshot {
	return c.store.GetState()
}

// Subscribe registers a render callback; the returned func unsubscribes.
// Listeners run while the controller lock is held and must not call Apply or Sync.
func (c *PageController) Subscribe(l func(Snapshot)) func() {
	return c.store.Subscribe(l)
}

func (c *PageController) render(_ Snapshot, view domain.ViewState) Snapshot {
	results := search.Query(c.products, view.Filters, view.Sort, c.resolver)
	return Snapshot{
		View:    view,
		Results: search.Page(results, view.Page, c.pageSize),
		Facets:  search.Facets(c.products, view.Filters, c.resolver),
		Href:    codec.Encode(view),
	}
}

func splitLocation(loc string) (path, rawQuery string) {
	if i := strings.IndexByte(loc, '#'); i >= 0 {
		loc = loc[:i]
	}
	path, rawQuery, _ = strings.Cut(loc, "?")
	return path, rawQuery
}

func joinLocation(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}
