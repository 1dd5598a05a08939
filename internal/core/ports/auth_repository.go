package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// Email uniqueness is enforced by the storage layer, not by check-then-insert
// in application code: Create and Update return domain.ErrEmailTaken when the
// normalized email is already owned by a different user.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user and, atomically, every expense it owns.
	Delete(ctx context.Context, id int64) error
}
