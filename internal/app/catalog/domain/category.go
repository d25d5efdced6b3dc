package domain

// Category is a node of the catalog navigation tree. Only two levels are used:
// department and subcategory.
type Category struct {
	Slug          string     `json:"slug" yaml:"slug"`
	Name          string     `json:"name" yaml:"name"`
	Description   string     `json:"description,omitempty" yaml:"description"`
	Subcategories []Category `json:"subcategories,omitempty" yaml:"subcategories"`
}
