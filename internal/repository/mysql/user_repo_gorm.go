package mysql

import (
	"errors"

	"store-service/internal/domain"
	"store-service/internal/repository"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateWithCustomer(user *domain.User, customer *domain.Customer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		customer.UserID = user.ID
		return tx.Create(customer).Error
	})
}

func (r *userRepo) FindByID(id uint64) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindAll() ([]domain.User, error) {
	var out []domain.User
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userRepo) Update(user *domain.User) error {
	return r.db.Save(user).Error
}
