package http

import "store-service/internal/domain"

type RegisterUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

type CategoryRequest struct {
	Title string `json:"title"`
}

type CreateProductRequest struct {
	CategoryID  uint64  `json:"categoryId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
}

type UpdateProductRequest struct {
	CategoryID  *uint64  `json:"categoryId"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	UnitPrice   *float64 `json:"unitPrice"`
}

type UpdateCustomerRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type OrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// CustomerResponse flattens the customer together with the identity
// fields of its owning user.
type CustomerResponse struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func toCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Username:  c.User.Username,
		FirstName: c.User.FirstName,
		LastName:  c.User.LastName,
		Email:     c.User.Email,
		Phone:     c.Phone,
	}
}
