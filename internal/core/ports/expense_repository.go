package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// ListExpensesFilter carries all query parameters for listing expenses.
// OwnerID is always set by the service layer from the verified token.
type ListExpensesFilter struct {
	OwnerID    int64
	Search     string   // optional: case-insensitive substring over title+description
	Category   string   // optional: single-category equality
	Categories []string // optional: category-set membership; takes precedence over Category
	DateFrom   string   // optional: date >= DateFrom (canonical YYYY-MM-DD)
	DateTo     string   // optional: date <= DateTo
	Page       int      // 1-based
	Limit      int      // rows per page
}

// ExpenseRepository defines persistence operations for the expense ledger.
//
// Every read and write is scoped by owner: an id owned by a different user is
// indistinguishable from an id that does not exist (domain.ErrExpenseNotFound
// in both cases).
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	FindByID(ctx context.Context, id, ownerID int64) (*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id, ownerID int64) error
	// DeleteAllByOwner bulk-deletes every expense of the owner in a single
	// transaction and returns the number of rows removed.
	DeleteAllByOwner(ctx context.Context, ownerID int64) (int64, error)
	// List returns a page of expenses matching filter plus the total count of
	// matches across all pages, sorted by date descending then id descending.
	List(ctx context.Context, filter ListExpensesFilter) ([]*domain.Expense, int64, error)
	// Categories returns the owner's distinct non-empty categories in
	// alphabetical order.
	Categories(ctx context.Context, ownerID int64) ([]string, error)
	// TotalsByCategory sums amounts grouped by category, one row per distinct
	// category owned by the user.
	TotalsByCategory(ctx context.Context, ownerID int64) ([]domain.CategoryTotal, error)
}
