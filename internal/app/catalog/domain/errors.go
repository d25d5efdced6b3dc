package domain

import "errors"

// Catalog errors
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrServiceNotFound   = errors.New("service option not found")
	ErrServiceNotOffered = errors.New("service option not offered for product")
)
