package services

import (
	"store-service/internal/auth"
	"store-service/internal/domain"
	"store-service/internal/repository"
)

type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) Get(actor auth.Actor, id uint64) (*domain.Customer, error) {
	c, err := s.customers.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanActOn(c.UserID) {
		// do not reveal whether the customer exists
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List returns every customer for staff and only the actor's own record
// otherwise.
func (s *CustomerService) List(actor auth.Actor) ([]domain.Customer, error) {
	if actor.IsStaff {
		return s.customers.FindAll()
	}
	own, err := s.customers.FindByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if own == nil {
		return []domain.Customer{}, nil
	}
	return []domain.Customer{*own}, nil
}

// UpdatePhone is the only customer mutation exposed by this surface.
// Identity fields live on the User resource.
func (s *CustomerService) UpdatePhone(actor auth.Actor, id uint64, phone string) (*domain.Customer, error) {
	c, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	c.Phone = phone
	if err := s.customers.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses while any order references the customer. Not routed
// over HTTP (the API answers 405); kept for provisioning tooling.
func (s *CustomerService) Delete(id uint64) error {
	c, err := s.customers.FindByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := s.customers.CountOrders(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	return s.customers.Delete(id)
}
