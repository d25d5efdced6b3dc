package place_order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// Request contains the data needed to place an order.
type Request struct {
	CartID         string
	PostalCode     string
	ShippingMethod string
	PaymentMethod  string
	CouponCode     string
	Installments   int
}

// Interactor handles the place order use case.
type Interactor struct {
	carts      contracts.CartClearer
	engine     *pricing.Engine
	orderRepo  contracts.OrderRepository
	outboxRepo contracts.OutboxRepository
	stock      contracts.StockReserver
	committer  committer.Applier
	clock      clock.Clock
	logger     *zap.Logger
}

// NewInteractor creates a new place order interactor.
func NewInteractor(
	carts contracts.CartClearer,
	engine *pricing.Engine,
	orderRepo contracts.OrderRepository,
	outboxRepo contracts.OutboxRepository,
	stock contracts.StockReserver,
	committer committer.Applier,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		carts:      carts,
		engine:     engine,
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		stock:      stock,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute places an order following the Golden Mutation Pattern. The order
// row, its lines, the stock decrements and the order.placed event commit
// together; the cart is emptied afterwards.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	// 1. Load the cart and price the session
	c, err := i.carts.Get(ctx, req.CartID)
	if err != nil {
		return nil, err
	}

	session := domain.Session{
		Cart:           c,
		PostalCode:     req.PostalCode,
		ShippingMethod: pricing.ShippingMethod(req.ShippingMethod),
		PaymentMethod:  pricing.PaymentMethod(req.PaymentMethod),
		CouponCode:     req.CouponCode,
		Installments:   req.Installments,
	}
	quote, err := session.Quote(i.engine)
	if err != nil {
		return nil, err
	}

	// 2. Build the order
	order, err := domain.NewOrder(uuid.New().String(), session, quote, i.clock.Now())
	if err != nil {
		return nil, err
	}

	// 3. Collect mutations
	plan := committer.NewPlan()

	orderMut, err := i.orderRepo.InsertMut(order)
	if err != nil {
		return nil, fmt.Errorf("failed to build order mutation: %w", err)
	}
	plan.Add(orderMut)

	lineMuts, err := i.orderRepo.LineMuts(order)
	if err != nil {
		return nil, fmt.Errorf("failed to build order line mutations: %w", err)
	}
	plan.AddMultiple(lineMuts)

	event := order.PlacedEvent()
	payload, err := serializeEvent(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}
	plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))

	// 4. Apply with the stock guard
	if err := i.committer.ApplyGuarded(ctx, plan, i.stock.Reserve(order)); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	// 5. The order stands even if the cart cannot be emptied
	if _, err := i.carts.Clear(ctx, order.CartID); err != nil {
		i.logger.Warn("failed to clear cart after order",
			zap.String("order_id", order.ID),
			zap.String("cart_id", order.CartID),
			zap.Error(err))
	}

	i.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("payable", order.Payable.String()))
	return order, nil
}

func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
