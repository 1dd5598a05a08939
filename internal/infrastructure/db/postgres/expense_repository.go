package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

const expenseColumns = "id, user_id, title, category, amount, expense_date, description"

// ExpenseRepository persists the expense ledger in Postgres. Every statement
// carries the owner id in its WHERE clause, so one user can never read or
// touch another user's rows.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	const q = `
		INSERT INTO expenses (user_id, title, category, amount, expense_date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	row := r.pool.QueryRow(ctx, q, e.OwnerID, e.Title, e.Category, e.Amount, e.Date, e.Description)
	if err := row.Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id, ownerID int64) (*domain.Expense, error) {
	q := fmt.Sprintf(`SELECT %s FROM expenses WHERE id = $1 AND user_id = $2`, expenseColumns)
	return scanExpense(r.pool.QueryRow(ctx, q, id, ownerID))
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET title = $3, category = $4, amount = $5, expense_date = $6, description = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, q, e.ID, e.OwnerID, e.Title, e.Category, e.Amount, e.Date, e.Description)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, ownerID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) DeleteAllByOwner(ctx context.Context, ownerID int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset expenses: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("reset expenses: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("reset expenses: commit: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ExpenseRepository) List(ctx context.Context, filter ports.ListExpensesFilter) ([]*domain.Expense, int64, error) {
	where, args := buildListWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM expenses ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	pageQuery, pageArgs := buildListPage(filter, where, args)
	rows, err := r.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Expense, 0, filter.Limit)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	return items, total, nil
}

func (r *ExpenseRepository) Categories(ctx context.Context, ownerID int64) ([]string, error) {
	const q = `
		SELECT DISTINCT category FROM expenses
		WHERE user_id = $1 AND category <> ''
		ORDER BY category`

	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, ownerID int64) ([]domain.CategoryTotal, error) {
	const q = `
		SELECT category, sum(amount) FROM expenses
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category`

	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("totals by category: %w", err)
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("totals by category: %w", err)
	}
	return totals, nil
}

// buildListWhere assembles the WHERE clause and positional args shared by the
// count query and the page query. Categories takes precedence over Category
// when both are present.
func buildListWhere(filter ports.ListExpensesFilter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{filter.OwnerID}

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if filter.Search != "" {
		p := next()
		clauses = append(clauses, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}
	if len(filter.Categories) > 0 {
		clauses = append(clauses, fmt.Sprintf("category = ANY(%s)", next()))
		args = append(args, filter.Categories)
	} else if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("category = %s", next()))
		args = append(args, filter.Category)
	}
	if filter.DateFrom != "" {
		clauses = append(clauses, fmt.Sprintf("expense_date >= %s", next()))
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		clauses = append(clauses, fmt.Sprintf("expense_date <= %s", next()))
		args = append(args, filter.DateTo)
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so the search term matches as a
// literal substring. Backslash is the Postgres default escape character.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// buildListPage appends ordering and pagination to the shared WHERE clause.
func buildListPage(filter ports.ListExpensesFilter, where string, args []any) (string, []any) {
	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(
		"SELECT %s FROM expenses %s ORDER BY expense_date DESC, id DESC LIMIT $%d OFFSET $%d",
		expenseColumns, where, len(args)+1, len(args)+2,
	)
	return query, append(append([]any{}, args...), filter.Limit, offset)
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Category, &e.Amount, &e.Date, &e.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}
