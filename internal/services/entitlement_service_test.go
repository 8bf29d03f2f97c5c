package services

import (
	"context"
	"errors"
	"testing"

	"store-service/internal/domain"
	"store-service/internal/mocks"

	"github.com/stretchr/testify/assert"
)

func TestEntitlementService_CanAccessFiles(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint64
		productID     uint64
		setupMocks    func(*mocks.MockProductRepository, *mocks.MockCustomerRepository, *mocks.MockOrderRepository)
		expected      bool
		expectedError error
	}{
		{
			name:      "entitled - completed order contains the product",
			userID:    10,
			productID: 1,
			setupMocks: func(products *mocks.MockProductRepository, customers *mocks.MockCustomerRepository, orders *mocks.MockOrderRepository) {
				products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
				customers.On("FindByUserID", uint64(10)).Return(fixtureCustomer(5, 10), nil)
				orders.On("HasCompletedOrderWithProduct", uint64(5), uint64(1)).Return(true, nil)
			},
			expected: true,
		},
		{
			name:      "not entitled - no completed order with the product",
			userID:    10,
			productID: 1,
			setupMocks: func(products *mocks.MockProductRepository, customers *mocks.MockCustomerRepository, orders *mocks.MockOrderRepository) {
				products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
				customers.On("FindByUserID", uint64(10)).Return(fixtureCustomer(5, 10), nil)
				orders.On("HasCompletedOrderWithProduct", uint64(5), uint64(1)).Return(false, nil)
			},
			expected: false,
		},
		{
			name:      "product does not exist",
			userID:    10,
			productID: 999,
			setupMocks: func(products *mocks.MockProductRepository, customers *mocks.MockCustomerRepository, orders *mocks.MockOrderRepository) {
				products.On("FindByID", uint64(999)).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:      "user has no customer profile",
			userID:    11,
			productID: 1,
			setupMocks: func(products *mocks.MockProductRepository, customers *mocks.MockCustomerRepository, orders *mocks.MockOrderRepository) {
				products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
				customers.On("FindByUserID", uint64(11)).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:      "repository error propagates",
			userID:    10,
			productID: 1,
			setupMocks: func(products *mocks.MockProductRepository, customers *mocks.MockCustomerRepository, orders *mocks.MockOrderRepository) {
				products.On("FindByID", uint64(1)).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.MockProductRepository)
			customers := new(mocks.MockCustomerRepository)
			orders := new(mocks.MockOrderRepository)

			tt.setupMocks(products, customers, orders)

			service := NewEntitlementService(products, customers, orders)
			entitled, err := service.CanAccessFiles(context.Background(), tt.userID, tt.productID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.False(t, entitled)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, entitled)
			}

			products.AssertExpectations(t)
			customers.AssertExpectations(t)
			orders.AssertExpectations(t)
		})
	}
}

// Entitlement is never granted to anyone when no completed order contains
// the product, whichever customer asks.
func TestEntitlementService_NoCompletedOrderMeansNobody(t *testing.T) {
	for _, userID := range []uint64{10, 11, 12} {
		products := new(mocks.MockProductRepository)
		customers := new(mocks.MockCustomerRepository)
		orders := new(mocks.MockOrderRepository)

		products.On("FindByID", uint64(7)).Return(fixtureProduct(7, 1), nil)
		customers.On("FindByUserID", userID).Return(fixtureCustomer(userID*100, userID), nil)
		orders.On("HasCompletedOrderWithProduct", userID*100, uint64(7)).Return(false, nil)

		service := NewEntitlementService(products, customers, orders)
		entitled, err := service.CanAccessFiles(context.Background(), userID, 7)

		assert.NoError(t, err)
		assert.False(t, entitled)
	}
}
