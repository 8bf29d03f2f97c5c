package domain

import "time"

// User is an account identity. PasswordHash is a bcrypt digest and is
// never serialized to clients.
type User struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	FirstName    string    `json:"firstName" gorm:"size:255"`
	LastName     string    `json:"lastName" gorm:"size:255"`
	Email        string    `json:"email" gorm:"size:255"`
	IsStaff      bool      `json:"isStaff" gorm:"not null;default:false"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// Customer is the purchasing profile owned 1:1 by a User. It is created
// together with its User at registration and only its phone is mutable
// through the API.
type Customer struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `json:"userId" gorm:"not null;uniqueIndex"`
	User      User      `json:"-"`
	Phone     string    `json:"phone" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
