package repository

import (
	"store-service/internal/domain"
)

// Find* methods return (nil, nil) when no row matches; callers translate
// that into domain.ErrNotFound.

type UserRepository interface {
	// CreateWithCustomer persists a new user together with its customer
	// profile in a single transaction.
	CreateWithCustomer(user *domain.User, customer *domain.Customer) error
	FindByID(id uint64) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindAll() ([]domain.User, error)
	Update(user *domain.User) error
}

type CustomerRepository interface {
	FindByID(id uint64) (*domain.Customer, error)
	FindByUserID(userID uint64) (*domain.Customer, error)
	FindAll() ([]domain.Customer, error)
	Update(customer *domain.Customer) error
	Delete(id uint64) error
	CountOrders(customerID uint64) (int64, error)
}

type CategoryRepository interface {
	Save(category *domain.Category) error
	FindByID(id uint64) (*domain.Category, error)
	FindAll() ([]domain.Category, error)
	Update(category *domain.Category) error
	// DeleteCascade removes the category and all of its products in one
	// transaction.
	DeleteCascade(id uint64) error
	// CountOrderItems counts order items referencing any product of the
	// category.
	CountOrderItems(categoryID uint64) (int64, error)
}

type ProductRepository interface {
	Save(product *domain.Product) error
	FindByID(id uint64) (*domain.Product, error)
	FindAll() ([]domain.Product, error)
	Update(product *domain.Product) error
	Delete(id uint64) error
	CountOrderItems(productID uint64) (int64, error)
}

type ProductFileRepository interface {
	Save(file *domain.ProductFile) error
	FindByID(id uint64) (*domain.ProductFile, error)
	FindByProduct(productID uint64) ([]domain.ProductFile, error)
	// FindByCategory returns the files of every product in the category.
	FindByCategory(categoryID uint64) ([]domain.ProductFile, error)
	Update(file *domain.ProductFile) error
	Delete(id uint64) error
}

type OrderRepository interface {
	Save(order *domain.Order) error
	FindByID(id uint64) (*domain.Order, error)
	FindByCustomer(customerID uint64) ([]domain.Order, error)
	FindAll() ([]domain.Order, error)
	UpdateStatus(id uint64, status domain.OrderStatus) error
	// HasCompletedOrderWithProduct reports whether the customer owns a
	// completed order containing the product. This is the entitlement
	// query; it is recomputed on every call, never cached.
	HasCompletedOrderWithProduct(customerID, productID uint64) (bool, error)
}
