package services

import (
	"context"
	"testing"
	"time"

	"watchstore/internal/apperrors"
	"watchstore/internal/domain"
	"watchstore/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name       string
		input      RegisterInput
		setupMocks func(users *mocks.MockUserRepository, notifier *mocks.MockNotifier)
		wantErr    func(error) bool
		verify     func(t *testing.T, user *domain.User)
	}{
		{
			name: "new customer is created with a hashed password",
			input: RegisterInput{
				Email:    "alice@example.com",
				Password: "s3cret",
				FullName: "Alice Tran",
				Phone:    "0123456789",
				Address:  "1 Test Street",
			},
			setupMocks: func(users *mocks.MockUserRepository, notifier *mocks.MockNotifier) {
				users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
				users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
				notifier.On("NotifyRegistered", mock.Anything, "alice@example.com", "Alice Tran").Return(nil)
			},
			verify: func(t *testing.T, user *domain.User) {
				assert.Equal(t, domain.RoleCustomer, user.Role)
				assert.NotEqual(t, "s3cret", user.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
			},
		},
		{
			name: "duplicate email",
			input: RegisterInput{
				Email:    "alice@example.com",
				Password: "s3cret",
			},
			setupMocks: func(users *mocks.MockUserRepository, notifier *mocks.MockNotifier) {
				users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)
			},
			wantErr: apperrors.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepository)
			notifier := new(mocks.MockNotifier)
			tt.setupMocks(users, notifier)
			service := NewUserService(users, notifier)

			user, err := service.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, tt.wantErr(err))
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			}
			if tt.verify != nil && user != nil {
				tt.verify(t, user)
			}

			// the registration mail goes out in a goroutine
			time.Sleep(100 * time.Millisecond)
			users.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &domain.User{ID: 7, Email: "alice@example.com", Password: string(hash)}

	t.Run("correct credentials", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
		service := NewUserService(users, new(mocks.MockNotifier))

		user, err := service.Login(context.Background(), "alice@example.com", "s3cret")

		assert.NoError(t, err)
		assert.Equal(t, uint64(7), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
		service := NewUserService(users, new(mocks.MockNotifier))

		user, err := service.Login(context.Background(), "alice@example.com", "wrong")

		assert.True(t, apperrors.IsBusiness(err))
		assert.Contains(t, err.Error(), "invalid password")
		assert.Nil(t, user)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
		service := NewUserService(users, new(mocks.MockNotifier))

		user, err := service.Login(context.Background(), "ghost@example.com", "s3cret")

		assert.True(t, apperrors.IsNotFound(err))
		assert.Nil(t, user)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("email change is checked for uniqueness", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByID", mock.Anything, uint64(7)).Return(&domain.User{ID: 7, Email: "alice@example.com", FullName: "Alice Tran"}, nil)
		users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)
		service := NewUserService(users, new(mocks.MockNotifier))

		email := "taken@example.com"
		user, err := service.UpdateUser(context.Background(), 7, UpdateUserInput{Email: &email})

		assert.True(t, apperrors.IsConflict(err))
		assert.Nil(t, user)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("untouched fields keep their values", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByID", mock.Anything, uint64(7)).Return(&domain.User{ID: 7, Email: "alice@example.com", FullName: "Alice Tran", Phone: "0123456789"}, nil)
		users.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
		service := NewUserService(users, new(mocks.MockNotifier))

		name := "Alice T."
		user, err := service.UpdateUser(context.Background(), 7, UpdateUserInput{FullName: &name})

		assert.NoError(t, err)
		assert.Equal(t, "Alice T.", user.FullName)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "0123456789", user.Phone)
		users.AssertExpectations(t)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("ExistsByID", mock.Anything, uint64(99)).Return(false, nil)
		service := NewUserService(users, new(mocks.MockNotifier))

		err := service.DeleteUser(context.Background(), 99)

		assert.True(t, apperrors.IsNotFound(err))
		users.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("existing user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("ExistsByID", mock.Anything, uint64(7)).Return(true, nil)
		users.On("DeleteByID", mock.Anything, uint64(7)).Return(nil)
		service := NewUserService(users, new(mocks.MockNotifier))

		assert.NoError(t, service.DeleteUser(context.Background(), 7))
		users.AssertExpectations(t)
	})
}
