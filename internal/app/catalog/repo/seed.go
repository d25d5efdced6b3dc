package repo

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

//go:embed seed/catalog.yaml
var seedCatalog []byte

// ErrInvalidSeed is returned when a catalog document cannot be loaded.
var ErrInvalidSeed = errors.New("invalid catalog seed")

// Seed is the static catalog shipped with the service: the navigation tree,
// the add-on services and the product list in relevance order.
type Seed struct {
	Categories []domain.Category
	Services   []domain.ServiceOption
	Products   []domain.Product
}

type seedFile struct {
	Categories []domain.Category `yaml:"categories"`
	Services   []seedService     `yaml:"services"`
	Products   []seedProduct     `yaml:"products"`
}

type seedService struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Duration    string   `yaml:"duration"`
	Type        string   `yaml:"type"`
	Categories  []string `yaml:"categories"`
}

type seedProduct struct {
	ID            string   `yaml:"id"`
	Slug          string   `yaml:"slug"`
	Name          string   `yaml:"name"`
	Brand         string   `yaml:"brand"`
	Condition     string   `yaml:"condition"`
	Category      string   `yaml:"category"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"original_price"`
	Stock         int      `yaml:"stock"`
	Rating        float64  `yaml:"rating"`
	Reviews       int      `yaml:"reviews"`
	FreeShipping  bool     `yaml:"free_shipping"`
	Tags          []string `yaml:"tags"`
	Services      []string `yaml:"services"`
}

// LoadSeed parses the embedded catalog.
func LoadSeed() (*Seed, error) {
	return ParseSeed(seedCatalog)
}

// ParseSeed parses a catalog document in the seed format.
func ParseSeed(data []byte) (*Seed, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	seed := &Seed{
		Categories: file.Categories,
		Services:   make([]domain.ServiceOption, 0, len(file.Services)),
		Products:   make([]domain.Product, 0, len(file.Products)),
	}

	for _, s := range file.Services {
		opt, err := s.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: service %s: %v", ErrInvalidSeed, s.ID, err)
		}
		seed.Services = append(seed.Services, opt)
	}

	seen := make(map[string]struct{}, len(file.Products))
	for _, p := range file.Products {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %s", ErrInvalidSeed, p.ID)
		}
		seen[p.ID] = struct{}{}

		product, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: product %s: %v", ErrInvalidSeed, p.ID, err)
		}
		seed.Products = append(seed.Products, product)
	}

	return seed, nil
}

func (s seedService) toDomain() (domain.ServiceOption, error) {
	price, err := money.Parse(s.Price)
	if err != nil {
		return domain.ServiceOption{}, err
	}
	t, ok := domain.ParseServiceType(s.Type)
	if !ok {
		return domain.ServiceOption{}, fmt.Errorf("unknown service type %q", s.Type)
	}
	return domain.ServiceOption{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       price,
		Duration:    s.Duration,
		Type:        t,
		Categories:  s.Categories,
	}, nil
}

func (p seedProduct) toDomain() (domain.Product, error) {
	if p.ID == "" || p.Slug == "" {
		return domain.Product{}, errors.New("id and slug are required")
	}

	price, err := money.Parse(p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}
	original := price
	if p.OriginalPrice != "" {
		if original, err = money.Parse(p.OriginalPrice); err != nil {
			return domain.Product{}, fmt.Errorf("original price: %w", err)
		}
	}
	if original.LessThan(price) {
		return domain.Product{}, errors.New("original price below price")
	}

	condition, ok := domain.ParseCondition(p.Condition)
	if !ok {
		return domain.Product{}, fmt.Errorf("unknown condition %q", p.Condition)
	}

	services := make([]domain.ServiceType, 0, len(p.Services))
	for _, raw := range p.Services {
		t, ok := domain.ParseServiceType(raw)
		if !ok {
			return domain.Product{}, fmt.Errorf("unknown service type %q", raw)
		}
		services = append(services, t)
	}

	return domain.Product{
		ID:            p.ID,
		Slug:          p.Slug,
		Name:          p.Name,
		Price:         price,
		OriginalPrice: original,
		Brand:         p.Brand,
		Condition:     condition,
		CategorySlug:  p.Category,
		Stock:         max(p.Stock, 0),
		Rating:        p.Rating,
		ReviewCount:   p.Reviews,
		FreeShipping:  p.FreeShipping,
		Tags:          p.Tags,
		Services:      services,
	}, nil
}
