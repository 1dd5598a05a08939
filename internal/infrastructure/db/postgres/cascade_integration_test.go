package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// Requires a reachable database; set POSTGRES_DSN to run.
func TestUserDeleteCascadesToExpenses(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := Migrate(pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := NewUserRepository(pool)
	expenses := NewExpenseRepository(pool)

	user, err := users.Create(ctx, &domain.User{
		Name:         "cascade test",
		Email:        fmt.Sprintf("cascade-%d@test.local", time.Now().UnixNano()),
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		_ = users.Delete(ctx, user.ID)
	})

	expense, err := expenses.Create(ctx, &domain.Expense{
		Title:    "Coffee",
		Category: "Food",
		Amount:   3.50,
		Date:     "2024-01-15",
		OwnerID:  user.ID,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := expenses.FindByID(ctx, expense.ID, user.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound after cascade, got %v", err)
	}
	if _, err := users.FindByID(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
