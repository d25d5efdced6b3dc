// Package cart hosts shopping carts: one state container per cart id,
// hydrated from and persisted to a KVStore.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalogcontracts "github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/store"
)

// Summary is what the cart page shows next to the lines.
type Summary struct {
	Cart      domain.Cart      `json:"cart"`
	ItemCount int              `json:"itemCount"`
	Subtotal  *money.Money     `json:"subtotal"`
	Shipping  pricing.Shipping `json:"shipping"`
	Quote     pricing.Quote    `json:"quote"`
}

// DefaultMaxHosted is the number of carts a Service keeps in memory when
// no limit is given.
const DefaultMaxHosted = 1024

// Service is safe for concurrent use.
//
// Carts that were written through this instance stay hosted: their state
// lives in a store.Store kept in sync with the KV store through a
// subscription. At most maxHosted carts are hosted; the least recently used
// one is dropped and its subscription released when the limit is reached.
// Reading a cart that is not hosted goes to the KV store and hosts nothing.
type Service struct {
	kv       contracts.KVStore
	products catalogcontracts.ReadModel
	services catalogcontracts.ServiceReadModel
	engine   *pricing.Engine
	logger   *zap.Logger
	writer   string

	mu      sync.Mutex
	carts   *lru.Cache
	closing bool
}

// Option configures a Service.
type Option func(*Service) error

// WithMaxHosted bounds the number of hosted carts.
func WithMaxHosted(n int) Option {
	return func(s *Service) error {
		if n < 1 {
			return fmt.Errorf("max hosted carts must be positive, got %d", n)
		}
		cache, err := lru.NewWithEvict(n, s.evicted)
		if err != nil {
			return err
		}
		s.carts = cache
		return nil
	}
}

// NewService creates a cart Service.
func NewService(
	kv contracts.KVStore,
	products catalogcontracts.ReadModel,
	services catalogcontracts.ServiceReadModel,
	engine *pricing.Engine,
	logger *zap.Logger,
	opts ...Option,
) (*Service, error) {
	s := &Service{
		kv:       kv,
		products: products,
		services: services,
		engine:   engine,
		logger:   logger,
		writer:   uuid.New().String(),
	}
	for _, opt := range append([]Option{WithMaxHosted(DefaultMaxHosted)}, opts...) {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Create starts an empty cart with a fresh id.
func (s *Service) Create(ctx context.Context) (domain.Cart, error) {
	id := uuid.New().String()
	e, err := s.load(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return s.write(ctx, e, id, e.store.GetState())
}

// Get returns the cart. Unknown ids yield an empty cart. Carts that are not
// hosted are read from the KV store without being hosted.
func (s *Service) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	cartID, err := normalizeID(cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if e, ok := s.lookup(cartID); ok {
		return e.store.GetState(), nil
	}
	doc, err := s.read(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	return doc.Cart, nil
}

// Dispatch applies one action and persists the result. The hosted state only
// moves once the write has succeeded.
func (s *Service) Dispatch(ctx context.Context, cartID string, action domain.Action) (domain.Cart, error) {
	e, err := s.load(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return s.write(ctx, e, cartID, domain.Reduce(e.store.GetState(), action))
}

// AddItem puts quantity units of a product in the cart, merging with an
// existing line. Quantities are clamped to the product's stock.
func (s *Service) AddItem(ctx context.Context, cartID, productID string, quantity int) (domain.Cart, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !product.InStock() {
		return domain.Cart{}, fmt.Errorf("%w: %s", domain.ErrOutOfStock, productID)
	}

	cart, err := s.Dispatch(ctx, cartID, domain.AddLine{
		LineID:    uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		Stock:     product.Stock,
	})
	if err != nil {
		return domain.Cart{}, err
	}

	s.logger.Debug("cart item added",
		zap.String("cart_id", cartID),
		zap.String("product_id", productID),
		zap.Int("items", cart.ItemCount()))
	return cart, nil
}

// SetQuantity changes a line's quantity. Zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (domain.Cart, error) {
	if err := s.requireLine(ctx, cartID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.Dispatch(ctx, cartID, domain.SetQuantity{ProductID: productID, Quantity: quantity})
}

// RemoveItem drops a line.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (domain.Cart, error) {
	if err := s.requireLine(ctx, cartID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.Dispatch(ctx, cartID, domain.RemoveLine{ProductID: productID})
}

// AttachService adds a catalog service option to a line. The product must
// offer the option's type and the option must be sold for its category.
func (s *Service) AttachService(ctx context.Context, cartID, productID, serviceID string) (domain.Cart, error) {
	if err := s.requireLine(ctx, cartID, productID); err != nil {
		return domain.Cart{}, err
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	opt, err := s.services.GetServiceOption(ctx, serviceID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !product.OffersService(opt.Type) || !opt.AvailableFor(product.CategorySlug) {
		return domain.Cart{}, fmt.Errorf("%w: %s on %s", catalog.ErrServiceNotOffered, serviceID, productID)
	}

	return s.Dispatch(ctx, cartID, domain.AttachService{
		ProductID: productID,
		Service: domain.Service{
			ServiceID: opt.ID,
			Name:      opt.Name,
			Type:      opt.Type,
			Price:     opt.Price,
		},
	})
}

// DetachService removes a service from a line.
func (s *Service) DetachService(ctx context.Context, cartID, productID, serviceID string) (domain.Cart, error) {
	if err := s.requireLine(ctx, cartID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.Dispatch(ctx, cartID, domain.DetachService{ProductID: productID, ServiceID: serviceID})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.Dispatch(ctx, cartID, domain.Clear{})
}

// Summarize prices the cart with standard shipping and no coupon.
func (s *Service) Summarize(ctx context.Context, cartID string) (Summary, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Summary{}, err
	}

	subtotal := cart.Subtotal()
	quote, err := s.engine.Quote(pricing.QuoteInput{Subtotal: subtotal, ShippingMethod: pricing.ShippingStandard})
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Cart:      cart,
		ItemCount: cart.ItemCount(),
		Subtotal:  subtotal.RoundCents(),
		Shipping:  s.engine.ShippingQuote(subtotal),
		Quote:     quote,
	}, nil
}

// Subscribe registers a listener for every change of the cart, local or
// written by another instance. The cart is hosted for as long as the
// listener is registered. The returned func unsubscribes.
func (s *Service) Subscribe(ctx context.Context, cartID string, fn func(domain.Cart)) (func(), error) {
	cartID, err := normalizeID(cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.loadLocked(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return e.listen(fn), nil
}

// Close drops every hosted cart and releases its KV subscription.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closing = true
	s.carts.Purge()
	s.closing = false
}

// hostedCount reports how many carts are held in memory.
func (s *Service) hostedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts.Len()
}

func (s *Service) requireLine(ctx context.Context, cartID, productID string) error {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return err
	}
	if _, ok := cart.Line(productID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrLineNotFound, productID)
	}
	return nil
}

// lookup returns the hosted entry for cartID, marking it recently used.
func (s *Service) lookup(cartID string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.carts.Get(cartID)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}

// load returns the hosted entry for cartID, hydrating it on first use.
func (s *Service) load(ctx context.Context, cartID string) (*entry, error) {
	cartID, err := normalizeID(cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, cartID)
}

func (s *Service) loadLocked(ctx context.Context, cartID string) (*entry, error) {
	if v, ok := s.carts.Get(cartID); ok {
		return v.(*entry), nil
	}

	doc, err := s.read(ctx, cartID)
	if err != nil {
		return nil, err
	}
	e := &entry{
		store: store.New(doc.Cart, domain.Reduce),
		stamp: doc.stamp(),
	}

	// The subscription outlives the request that created it.
	unsubscribe, err := s.kv.Subscribe(context.WithoutCancel(ctx), cartID, func(raw []byte) {
		doc, err := decode(cartID, raw)
		if err != nil {
			s.logger.Warn("ignoring unreadable cart write", zap.String("cart_id", cartID), zap.Error(err))
			return
		}
		e.advance(doc.stamp(), doc.Cart)
	})
	if err != nil {
		return nil, err
	}
	e.unsubscribe = unsubscribe

	s.carts.Add(cartID, e)
	return e, nil
}

// evicted runs under s.mu whenever the cache drops an entry.
func (s *Service) evicted(key, value interface{}) {
	value.(*entry).retire(s.closing)
	s.logger.Debug("cart released", zap.Any("cart_id", key))
}

// read fetches the stored document. A missing key yields an empty cart at revision 0.
func (s *Service) read(ctx context.Context, cartID string) (document, error) {
	raw, found, err := s.kv.Get(ctx, cartID)
	if err != nil {
		return document{}, err
	}
	if !found {
		return document{Cart: domain.New(cartID)}, nil
	}
	return decode(cartID, raw)
}

// write persists next under a revision one above the entry's and then
// commits it locally. On error the hosted state is left untouched.
// Callers hold e.mu.
func (s *Service) write(ctx context.Context, e *entry, cartID string, next domain.Cart) (domain.Cart, error) {
	st := stamp{Revision: e.current().Revision + 1, Writer: s.writer}
	raw, err := json.Marshal(document{Cart: next, Revision: st.Revision, Writer: st.Writer})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to encode cart %s: %w", cartID, err)
	}
	if err := s.kv.Set(ctx, cartID, raw); err != nil {
		return domain.Cart{}, err
	}
	e.advance(st, next)
	return next, nil
}

func normalizeID(cartID string) (string, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return "", domain.ErrInvalidCartID
	}
	return cartID, nil
}

func decode(cartID string, raw []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("failed to decode cart %s: %w", cartID, err)
	}
	doc.ID = cartID
	if doc.Lines == nil {
		doc.Lines = []domain.Line{}
	}
	return doc, nil
}
