package services

import (
	"context"

	"store-service/internal/domain"
	"store-service/internal/repository"
)

// EntitlementService decides whether a user may access the files attached
// to a product: true iff the user's customer owns a completed order
// containing that product. The answer is derived from the order graph on
// every call so it can never go stale.
type EntitlementService struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
}

func NewEntitlementService(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
) *EntitlementService {
	return &EntitlementService{products: products, customers: customers, orders: orders}
}

func (s *EntitlementService) CanAccessFiles(ctx context.Context, userID, productID uint64) (bool, error) {
	p, err := s.products.FindByID(productID)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, domain.ErrNotFound
	}

	c, err := s.customers.FindByUserID(userID)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, domain.ErrNotFound
	}

	return s.orders.HasCompletedOrderWithProduct(c.ID, productID)
}
