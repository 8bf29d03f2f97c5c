package services

import (
	"context"
	"strings"

	"store-service/internal/auth"
	"store-service/internal/domain"
	rabbit "store-service/internal/infra/rabbitmq"
	"store-service/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users     repository.UserRepository
	publisher rabbit.PublisherInterface
	log       *zap.SugaredLogger
}

func NewUserService(users repository.UserRepository, pub rabbit.PublisherInterface, log *zap.SugaredLogger) *UserService {
	return &UserService{users: users, publisher: pub, log: log}
}

type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// Register creates a User and its Customer profile in one transaction.
// The password is bcrypt-hashed before it ever reaches the store.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Username) == "" {
		fields["username"] = "username is required"
	}
	if len(in.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	existing, err := s.users.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("username", "username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		IsActive:     true,
	}
	customer := &domain.Customer{}
	if err := s.users.CreateWithCustomer(user, customer); err != nil {
		return nil, err
	}

	go s.publishRegistered(context.Background(), user, customer)

	return user, nil
}

func (s *UserService) publishRegistered(ctx context.Context, user *domain.User, customer *domain.Customer) {
	if s.publisher == nil {
		return
	}
	evt := domain.UserRegisteredEvent{
		UserID:     user.ID,
		CustomerID: customer.ID,
		Username:   user.Username,
		Email:      user.Email,
		CreatedAt:  user.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, domain.EventUserRegistered, evt); err != nil {
		s.log.Errorw("failed to publish user.registered", "userId", user.ID, "err", err)
	}
}

// Get returns the user; non-staff actors may only read themselves.
func (s *UserService) Get(actor auth.Actor, id uint64) (*domain.User, error) {
	if !actor.CanActOn(id) {
		return nil, domain.ErrPermissionDenied
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *UserService) List() ([]domain.User, error) {
	return s.users.FindAll()
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Update mutates identity fields only. There is deliberately no path
// here for changing the password or the staff flag.
func (s *UserService) Update(actor auth.Actor, id uint64, in UpdateUserInput) (*domain.User, error) {
	if !actor.CanActOn(id) {
		return nil, domain.ErrPermissionDenied
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" || !strings.Contains(*in.Email, "@") {
			return nil, domain.NewValidationError("email", "a valid email is required")
		}
		u.Email = *in.Email
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}
