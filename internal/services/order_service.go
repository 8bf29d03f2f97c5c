package services

import (
	"context"
	"errors"

	"store-service/internal/auth"
	"store-service/internal/domain"
	rabbit "store-service/internal/infra/rabbitmq"
	"store-service/internal/repository"

	"go.uber.org/zap"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

type OrderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	publisher rabbit.PublisherInterface
	log       *zap.SugaredLogger
}

func NewOrderService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	pub rabbit.PublisherInterface,
	log *zap.SugaredLogger,
) *OrderService {
	return &OrderService{orders: orders, customers: customers, publisher: pub, log: log}
}

// List returns all orders for staff and only the actor's own orders
// otherwise.
func (s *OrderService) List(ctx context.Context, actor auth.Actor) ([]domain.Order, error) {
	if actor.IsStaff {
		return s.orders.FindAll()
	}
	c, err := s.customers.FindByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return s.orders.FindByCustomer(c.ID)
}

func (s *OrderService) Get(ctx context.Context, actor auth.Actor, id uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsStaff {
		c, err := s.customers.FindByUserID(actor.UserID)
		if err != nil {
			return nil, err
		}
		if c == nil || o.CustomerID != c.ID {
			return nil, domain.ErrNotFound
		}
	}
	return o, nil
}

// SetStatus drives the order status machine: pending orders may complete
// or cancel, completed and canceled are terminal.
func (s *OrderService) SetStatus(ctx context.Context, id uint64, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, domain.NewValidationError("status", "unknown order status")
	}
	o, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	if err := s.orders.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	o.Status = next

	go s.publishStatusChange(context.Background(), o)

	return o, nil
}

func (s *OrderService) publishStatusChange(ctx context.Context, o *domain.Order) {
	if s.publisher == nil {
		return
	}
	key := domain.EventOrderCompleted
	if o.Status == domain.StatusCanceled {
		key = domain.EventOrderCanceled
	}
	evt := domain.OrderStatusEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		PlacedAt:   o.PlacedAt,
	}
	if err := s.publisher.Publish(ctx, key, evt); err != nil {
		s.log.Errorw("failed to publish order status event", "orderId", o.ID, "err", err)
	}
}
