package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput is a partial profile update; nil fields are unchanged.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user. The error for
	// an unknown email is identical to the error for a wrong password.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// GetUser resolves the identity behind a verified token. A deleted
	// account surfaces as domain.ErrTokenInvalid, not as a not-found.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*domain.User, error)
	// DeleteAccount removes the user and cascades to all owned expenses.
	DeleteAccount(ctx context.Context, userID int64) error
}
