package mysql

import (
	"errors"

	"store-service/internal/domain"
	"store-service/internal/repository"

	"gorm.io/gorm"
)

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) FindByID(id uint64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.Preload("User").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindByUserID(userID uint64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindAll() ([]domain.Customer, error) {
	var out []domain.Customer
	if err := r.db.Preload("User").Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) Update(customer *domain.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(id uint64) error {
	return r.db.Delete(&domain.Customer{}, id).Error
}

func (r *customerRepo) CountOrders(customerID uint64) (int64, error) {
	var n int64
	err := r.db.Model(&domain.Order{}).Where("customer_id = ?", customerID).Count(&n).Error
	return n, err
}
