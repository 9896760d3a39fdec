package services

import (
	"context"
	"log"

	"watchstore/internal/apperrors"
	"watchstore/internal/domain"
	"watchstore/internal/infra/mailer"
	"watchstore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
}

type UpdateUserInput struct {
	Email    *string
	Password *string
	FullName *string
	Phone    *string
	Address  *string
	Role     *domain.UserRole
}

type UserService struct {
	users    repository.UserRepository
	notifier mailer.Notifier
}

func NewUserService(users repository.UserRepository, notifier mailer.Notifier) *UserService {
	return &UserService{users: users, notifier: notifier}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("email already exists: %s", in.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    in.Email,
		Password: string(hash),
		FullName: in.FullName,
		Phone:    in.Phone,
		Address:  in.Address,
		Role:     domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	go func() {
		if err := s.notifier.NotifyRegistered(context.Background(), user.Email, user.FullName); err != nil {
			log.Printf("Failed to send registration mail to %s: %v", user.Email, err)
		}
	}()

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found with email %s", email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Business("invalid password")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found with id %d", id)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, in UpdateUserInput) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Conflict("email already exists: %s", *in.Email)
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) SearchUsers(ctx context.Context, keyword string) ([]domain.User, error) {
	return s.users.Search(ctx, keyword)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("user not found with id %d", id)
	}
	return s.users.DeleteByID(ctx, id)
}
