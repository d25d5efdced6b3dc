package search

import (
	"slices"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// CategoryResolver expands a category slug into every slug it covers.
type CategoryResolver interface {
	Resolve(slug string) []string
}

// CategoryTree resolves a department to itself plus its subcategories.
// Unknown slugs resolve to themselves.
type CategoryTree struct {
	nodes    map[string]domain.Category
	children map[string][]string
	parents  map[string]string
	roots    []domain.Category
}

// NewCategoryTree indexes the given departments.
func NewCategoryTree(roots []domain.Category) *CategoryTree {
	t := &CategoryTree{
		nodes:    make(map[string]domain.Category),
		children: make(map[string][]string),
		parents:  make(map[string]string),
		roots:    slices.Clone(roots),
	}
	for _, root := range roots {
		t.nodes[root.Slug] = root
		for _, sub := range root.Subcategories {
			t.nodes[sub.Slug] = sub
			t.children[root.Slug] = append(t.children[root.Slug], sub.Slug)
			t.parents[sub.Slug] = root.Slug
		}
	}
	return t
}

// Resolve implements CategoryResolver.
func (t *CategoryTree) Resolve(slug string) []string {
	return append([]string{slug}, t.children[slug]...)
}

// Lookup returns the category with the given slug.
func (t *CategoryTree) Lookup(slug string) (domain.Category, error) {
	c, ok := t.nodes[slug]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return c, nil
}

// Path returns the breadcrumb from the department down to slug.
func (t *CategoryTree) Path(slug string) []domain.Category {
	c, ok := t.nodes[slug]
	if !ok {
		return nil
	}
	if parent, ok := t.parents[slug]; ok {
		return []domain.Category{t.nodes[parent], c}
	}
	return []domain.Category{c}
}

// Roots returns the departments in configured order.
func (t *CategoryTree) Roots() []domain.Category {
	return slices.Clone(t.roots)
}
