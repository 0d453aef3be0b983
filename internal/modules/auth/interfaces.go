package auth

import (
	"context"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
)

// UserRepository is the slice of user storage the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role domain.Role) (string, error)
}
