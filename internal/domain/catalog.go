package domain

import "time"

type Category struct {
	ID      uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title   string    `json:"title" gorm:"size:255;not null"`
	AddedAt time.Time `json:"addedAt" gorm:"autoCreateTime"`
}

type Product struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	CategoryID  uint64    `json:"categoryId" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	UnitPrice   float64   `json:"unitPrice" gorm:"not null"`
	AddedAt     time.Time `json:"addedAt" gorm:"autoCreateTime"`
}

// ProductFile is a downloadable PDF attached to a product. Name keeps the
// original upload name for staff bookkeeping only; downloads are always
// served under a freshly generated opaque filename. StorageKey locates the
// blob in the file store.
type ProductFile struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID  uint64    `json:"productId" gorm:"not null;index"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	StorageKey string    `json:"-" gorm:"size:255;not null"`
	Size       int64     `json:"size" gorm:"not null"`
	AddedAt    time.Time `json:"addedAt" gorm:"autoCreateTime"`
}
