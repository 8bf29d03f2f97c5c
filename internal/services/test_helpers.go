package services

import (
	"time"

	"store-service/internal/domain"
)

func fixtureUser(id uint64, username string, staff bool) *domain.User {
	return &domain.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		IsStaff:   staff,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

func fixtureCustomer(id, userID uint64) *domain.Customer {
	return &domain.Customer{
		ID:        id,
		UserID:    userID,
		Phone:     "0700000000",
		CreatedAt: time.Now(),
	}
}

func fixtureProduct(id, categoryID uint64) *domain.Product {
	return &domain.Product{
		ID:         id,
		CategoryID: categoryID,
		Title:      "Test Product",
		UnitPrice:  9.99,
		AddedAt:    time.Now(),
	}
}

func fixtureOrder(id, customerID uint64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:         id,
		CustomerID: customerID,
		Status:     status,
		PlacedAt:   time.Now(),
	}
}
