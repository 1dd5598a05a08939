package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// CreateExpenseInput carries the fields of an expense creation request.
// The owner is never part of the input; it always comes from the token.
type CreateExpenseInput struct {
	Title       string
	Category    string
	Amount      float64
	Date        string
	Description string
}

// UpdateExpenseInput is a partial update; nil fields are unchanged.
type UpdateExpenseInput struct {
	Title       *string
	Category    *string
	Amount      *float64
	Date        *string
	Description *string
}

// ListExpensesInput carries the caller-supplied list parameters before
// clamping and owner scoping.
type ListExpensesInput struct {
	Search     string
	Category   string
	Categories []string
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

type ExpenseService interface {
	Create(ctx context.Context, ownerID int64, in CreateExpenseInput) (*domain.Expense, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Expense, error)
	Update(ctx context.Context, ownerID, id int64, in UpdateExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, ownerID, id int64) error
	ResetAll(ctx context.Context, ownerID int64) (int64, error)
	List(ctx context.Context, ownerID int64, in ListExpensesInput) ([]*domain.Expense, int64, error)
	Categories(ctx context.Context, ownerID int64) ([]string, error)
	ReportByCategory(ctx context.Context, ownerID int64) ([]domain.CategoryTotal, error)
}
