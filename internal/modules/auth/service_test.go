package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role domain.Role) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	issuer := new(MockTokenIssuer)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	issuer.On("GenerateToken", int64(42), domain.RoleUser).Return("tok", nil)

	service := NewService(users, issuer)

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	issuer := new(MockTokenIssuer)

	users.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: 7, Email: "taken@example.com"}, nil)

	service := NewService(users, issuer)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	owner := &domain.User{ID: 3, Email: "host@example.com", PasswordHash: string(hash), Role: domain.RoleOwner}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		issuer := new(MockTokenIssuer)
		users.On("GetByEmail", mock.Anything, "host@example.com").Return(owner, nil)
		issuer.On("GenerateToken", int64(3), domain.RoleOwner).Return("tok", nil)

		service := NewService(users, issuer)
		user, token, err := service.Login(context.Background(), LoginRequest{
			Email:    "host@example.com",
			Password: "right-password",
		})
		assert.NoError(t, err)
		assert.Equal(t, "tok", token)
		assert.Equal(t, int64(3), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		issuer := new(MockTokenIssuer)
		users.On("GetByEmail", mock.Anything, "host@example.com").Return(owner, nil)

		service := NewService(users, issuer)
		_, _, err := service.Login(context.Background(), LoginRequest{
			Email:    "host@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		issuer := new(MockTokenIssuer)
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

		service := NewService(users, issuer)
		_, _, err := service.Login(context.Background(), LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
