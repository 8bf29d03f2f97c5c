package services

import (
	"testing"

	"store-service/internal/auth"
	"store-service/internal/domain"
	"store-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCustomerService_Get(t *testing.T) {
	customers := new(mocks.MockCustomerRepository)
	customers.On("FindByID", uint64(5)).Return(fixtureCustomer(5, 10), nil)

	service := NewCustomerService(customers)

	// owner reads their record
	c, err := service.Get(auth.Actor{UserID: 10, Authenticated: true}, 5)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), c.ID)

	// an unrelated customer gets a 404, not a 403, so existence leaks nothing
	_, err = service.Get(auth.Actor{UserID: 11, Authenticated: true}, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerService_List_ScopesToOwnRecord(t *testing.T) {
	customers := new(mocks.MockCustomerRepository)
	customers.On("FindByUserID", uint64(10)).Return(fixtureCustomer(5, 10), nil)

	service := NewCustomerService(customers)
	out, err := service.List(auth.Actor{UserID: 10, Authenticated: true})

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, uint64(5), out[0].ID)
	customers.AssertNotCalled(t, "FindAll")
}

func TestCustomerService_UpdatePhone(t *testing.T) {
	customers := new(mocks.MockCustomerRepository)
	customers.On("FindByID", uint64(5)).Return(fixtureCustomer(5, 10), nil)
	customers.On("Update", mock.AnythingOfType("*domain.Customer")).Return(nil)

	service := NewCustomerService(customers)
	c, err := service.UpdatePhone(auth.Actor{UserID: 10, Authenticated: true}, 5, "0711111111")

	assert.NoError(t, err)
	assert.Equal(t, "0711111111", c.Phone)
}

func TestCustomerService_Delete(t *testing.T) {
	t.Run("blocked while orders reference the customer", func(t *testing.T) {
		customers := new(mocks.MockCustomerRepository)
		customers.On("FindByID", uint64(5)).Return(fixtureCustomer(5, 10), nil)
		customers.On("CountOrders", uint64(5)).Return(int64(2), nil)

		service := NewCustomerService(customers)
		assert.ErrorIs(t, service.Delete(5), domain.ErrInUse)
		customers.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("allowed with no orders", func(t *testing.T) {
		customers := new(mocks.MockCustomerRepository)
		customers.On("FindByID", uint64(5)).Return(fixtureCustomer(5, 10), nil)
		customers.On("CountOrders", uint64(5)).Return(int64(0), nil)
		customers.On("Delete", uint64(5)).Return(nil)

		service := NewCustomerService(customers)
		assert.NoError(t, service.Delete(5))
		customers.AssertExpectations(t)
	})
}
