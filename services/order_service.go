package services

import (
	"context"
	"strings"
	"time"

	"clinic-cart-service/apperrors"
	"clinic-cart-service/models"
	"clinic-cart-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderEventPublisher notifies downstream consumers after an order is
// recorded. Optional: a nil publisher disables events.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

// OrderService turns current cart state plus customer input into a
// committed order. The one atomicity guarantee: the cart is cleared if
// and only if the order was appended to the log.
type OrderService struct {
	store     *CartStore
	orderLog  repository.OrderLog
	publisher OrderEventPublisher
	logger    *zap.Logger
}

func NewOrderService(store *CartStore, orderLog repository.OrderLog, publisher OrderEventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:     store,
		orderLog:  orderLog,
		publisher: publisher,
		logger:    logger,
	}
}

// Commit validates the customer fields, snapshots both carts, appends an
// immutable order to the log and clears the carts. An empty cart is not
// an error; it commits a zero-total order.
func (s *OrderService) Commit(ctx context.Context, info models.CustomerInfo) (*models.Order, error) {
	name := strings.TrimSpace(info.Name)
	phone := strings.TrimSpace(info.Phone)
	address := strings.TrimSpace(info.Address)
	if name == "" || phone == "" || address == "" {
		return nil, apperrors.ErrInvalidCustomerInfo
	}

	snap := s.store.Snapshot()
	totals := s.store.policy.TotalsFor(snap.Products, snap.Services)

	order := models.Order{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Address:   address,
		Products:  snap.Products,
		Services:  snap.Services,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orderLog.Append(ctx, order); err != nil {
		s.logger.Error("order append failed, cart left intact",
			zap.String("order_id", order.ID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrOrderAppendFailed, err)
	}

	// The order is durable from here on; a degraded cart save must not
	// un-commit it.
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("cleared cart could not be persisted",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	if s.publisher != nil {
		event := models.OrderPlacedEvent{
			Event:     "order.placed",
			OrderID:   order.ID,
			Total:     order.Total,
			ItemCount: totals.ItemCount,
			Timestamp: order.CreatedAt,
		}
		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Warn("order event publish failed",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	s.logger.Info("order committed",
		zap.String("order_id", order.ID),
		zap.String("total", order.Total.String()),
		zap.Int("item_count", totals.ItemCount),
	)
	return &order, nil
}

// Orders returns the full order log, oldest first.
func (s *OrderService) Orders(ctx context.Context) ([]models.Order, error) {
	return s.orderLog.List(ctx)
}
