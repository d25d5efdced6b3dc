package controller

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/search"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

type fakeLocation struct {
	mu       sync.Mutex
	current  string
	replaced []string
}

func (l *fakeLocation) Read() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

func (l *fakeLocation) Replace(loc string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = loc
	l.replaced = append(l.replaced, loc)
}

// navigate simulates back/forward: the location changes underneath the controller.
func (l *fakeLocation) navigate(loc string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = loc
}

func catalog() []domain.Product {
	mk := func(id, brand, cat, price string, stock int) domain.Product {
		return domain.Product{ID: id, Brand: brand, CategorySlug: cat, Price: money.MustParse(price), Condition: domain.ConditionNew, Stock: stock}
	}
	return []domain.Product{
		mk("g1", "Brastemp", "geladeiras", "3299", 2),
		mk("g2", "Consul", "geladeiras", "2199", 0),
		mk("g3", "Electrolux", "geladeiras", "4599", 4),
		mk("f1", "Brastemp", "fogoes", "1299", 1),
		mk("t1", "Samsung", "tvs", "2999", 9),
	}
}

func newController(loc *fakeLocation, scope ...string) *PageController {
	return New(loc, Options{
		Products: catalog(),
		Resolver: search.NewCategoryTree([]domain.Category{
			{Slug: "eletrodomesticos", Subcategories: []domain.Category{{Slug: "geladeiras"}, {Slug: "fogoes"}}},
		}),
		Scope:    scope,
		PageSize: 2,
	})
}

func resultIDs(s Snapshot) []string {
	out := make([]string, 0, len(s.Results.Items))
	for _, p := range s.Results.Items {
		out = append(out, p.ID)
	}
	return out
}

func TestNew_SyncsFromLocation(t *testing.T) {
	loc := &fakeLocation{current: "/c/eletrodomesticos?brands=Brastemp&sort=priceAsc"}
	c := newController(loc, "eletrodomesticos")

	s := c.State()
	assert.Equal(t, domain.SortPriceAsc, s.View.Sort)
	assert.Equal(t, []string{"f1", "g1"}, resultIDs(s))
	assert.Equal(t, []string{"eletrodomesticos"}, s.View.Filters.Categories())
	assert.Empty(t, loc.replaced, "reading the location never writes it")
}

func TestApply_WritesLocationAndState(t *testing.T) {
	loc := &fakeLocation{current: "/c/eletrodomesticos"}
	c := newController(loc, "eletrodomesticos")

	s := c.Apply(SetInStock(true))
	assert.Equal(t, "/c/eletrodomesticos?inStock=1", loc.Read())
	assert.Equal(t, "inStock=1", s.Href)
	assert.Equal(t, []string{"g1", "g3"}, resultIDs(s))
	assert.True(t, s.Results.HasMore)

	s = c.Apply(LoadMore())
	assert.Equal(t, "/c/eletrodomesticos?inStock=1&page=2", loc.Read())
	assert.Equal(t, []string{"g1", "g3", "f1"}, resultIDs(s))

	s = c.Apply(ToggleBrand("Brastemp"))
	assert.Equal(t, 1, s.View.Page, "changing a facet restarts pagination")
	assert.Equal(t, "/c/eletrodomesticos?brands=Brastemp&inStock=1", loc.Read())

	s = c.Apply(ClearFilters())
	assert.Equal(t, "/c/eletrodomesticos", loc.Read())
	assert.Equal(t, []string{"eletrodomesticos"}, s.View.Filters.Categories())
}

func TestApply_DerivesFromPendingState(t *testing.T) {
	loc := &fakeLocation{current: "/busca"}
	c := newController(loc)

	c.Apply(ToggleBrand("Brastemp"))
	c.Apply(ToggleBrand("Samsung"))

	assert.Equal(t, "/busca?brands=Brastemp,Samsung", loc.Read())
	assert.Equal(t, []string{"Brastemp", "Samsung"}, c.State().View.Filters.Brands())
}

func TestSync_ReplacesStateWholesale(t *testing.T) {
	loc := &fakeLocation{current: "/busca"}
	c := newController(loc)

	c.Apply(ToggleBrand("Brastemp"))
	c.Apply(SetSort(domain.SortPriceDesc))

	loc.navigate("/busca?inStock=1")
	s := c.Sync()

	assert.Empty(t, s.View.Filters.Brands(), "no field survives from the previous state")
	assert.Equal(t, domain.SortRelevance, s.View.Sort)
	assert.True(t, s.View.Filters.InStock())
}

func TestSync_IgnoresFragmentAndJunk(t *testing.T) {
	loc := &fakeLocation{current: "/busca?rating=banana&priceMin=-3&x=1#reviews"}
	c := newController(loc)

	assert.True(t, c.State().View.Equal(domain.DefaultViewState()))
}

func TestSubscribe(t *testing.T) {
	loc := &fakeLocation{current: "/busca"}
	c := newController(loc)

	var seen []string
	unsubscribe := c.Subscribe(func(s Snapshot) { seen = append(seen, s.Href) })

	c.Apply(SetLayout(domain.LayoutList))
	unsubscribe()
	c.Apply(SetMode(domain.ModeRent))

	require.Len(t, seen, 1)
	assert.Equal(t, "layout=list", seen[0])
}

func TestApply_Concurrent(t *testing.T) {
	loc := &fakeLocation{current: "/busca"}
	c := newController(loc)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Apply(LoadMore())
		}()
	}
	wg.Wait()

	assert.Equal(t, 21, c.State().View.Page)
	assert.Equal(t, "/busca?page=21", loc.Read())
}
