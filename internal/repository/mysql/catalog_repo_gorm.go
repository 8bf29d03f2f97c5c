package mysql

import (
	"errors"

	"store-service/internal/domain"
	"store-service/internal/repository"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Save(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindByID(id uint64) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindAll() ([]domain.Category, error) {
	var out []domain.Category
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var productIDs []uint64
		if err := tx.Model(&domain.Product{}).Where("category_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.ProductFile{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", id).Delete(&domain.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Category{}, id).Error
	})
}

func (r *categoryRepo) CountOrderItems(categoryID uint64) (int64, error) {
	var n int64
	err := r.db.Model(&domain.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.category_id = ?", categoryID).
		Count(&n).Error
	return n, err
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Save(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindAll() ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, id).Error
	})
}

func (r *productRepo) CountOrderItems(productID uint64) (int64, error) {
	var n int64
	err := r.db.Model(&domain.OrderItem{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

type productFileRepo struct {
	db *gorm.DB
}

func NewProductFileRepository(db *gorm.DB) repository.ProductFileRepository {
	return &productFileRepo{db: db}
}

func (r *productFileRepo) Save(file *domain.ProductFile) error {
	return r.db.Create(file).Error
}

func (r *productFileRepo) FindByID(id uint64) (*domain.ProductFile, error) {
	var f domain.ProductFile
	if err := r.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *productFileRepo) FindByCategory(categoryID uint64) ([]domain.ProductFile, error) {
	var out []domain.ProductFile
	err := r.db.Joins("JOIN products ON products.id = product_files.product_id").
		Where("products.category_id = ?", categoryID).
		Order("product_files.id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productFileRepo) FindByProduct(productID uint64) ([]domain.ProductFile, error) {
	var out []domain.ProductFile
	if err := r.db.Where("product_id = ?", productID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productFileRepo) Update(file *domain.ProductFile) error {
	return r.db.Save(file).Error
}

func (r *productFileRepo) Delete(id uint64) error {
	return r.db.Delete(&domain.ProductFile{}, id).Error
}
