package mysql

import (
	"errors"

	"store-service/internal/domain"
	"store-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(order *domain.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByCustomer(customerID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Preload("Items").Order("placed_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(id uint64, status domain.OrderStatus) error {
	return r.db.Model(&domain.Order{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) HasCompletedOrderWithProduct(customerID, productID uint64) (bool, error) {
	var n int64
	err := r.db.Model(&domain.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND orders.status = ? AND order_items.product_id = ?",
			customerID, domain.StatusCompleted, productID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
