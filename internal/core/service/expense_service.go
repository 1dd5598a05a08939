package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// Pagination bounds shared with the HTTP layer so the echoed page/limit
// always match what the repository was actually asked for.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ExpenseService implements the expense ledger operations. Every operation
// is scoped to the owner id taken from the verified token.
type ExpenseService struct {
	repo   ports.ExpenseRepository
	logger zerolog.Logger
}

func NewExpenseService(repo ports.ExpenseRepository, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, logger: logger}
}

func (s *ExpenseService) Create(ctx context.Context, ownerID int64, in ports.CreateExpenseInput) (*domain.Expense, error) {
	ve := domain.NewValidationError()
	if strings.TrimSpace(in.Title) == "" {
		ve.Add("title", "must not be empty")
	}
	if strings.TrimSpace(in.Category) == "" {
		ve.Add("category", "must not be empty")
	}
	if in.Amount <= 0 {
		ve.Add("amount", "must be greater than 0")
	}
	date, err := domain.CanonicalDate(in.Date)
	if err != nil {
		ve.Add("date", "must be YYYY-MM-DD or ISO-8601")
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		Title:       in.Title,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        date,
		Description: in.Description,
		OwnerID:     ownerID,
	}

	created, err := s.repo.Create(ctx, expense)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to create expense")
		return nil, err
	}

	s.logger.Info().Int64("expense_id", created.ID).Int64("owner_id", ownerID).Msg("expense created")
	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, ownerID, id int64) (*domain.Expense, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

func (s *ExpenseService) Update(ctx context.Context, ownerID, id int64, in ports.UpdateExpenseInput) (*domain.Expense, error) {
	ve := domain.NewValidationError()
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		ve.Add("title", "must not be empty")
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		ve.Add("category", "must not be empty")
	}
	if in.Amount != nil && *in.Amount <= 0 {
		ve.Add("amount", "must be greater than 0")
	}
	var date string
	if in.Date != nil {
		var err error
		if date, err = domain.CanonicalDate(*in.Date); err != nil {
			ve.Add("date", "must be YYYY-MM-DD or ISO-8601")
		}
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	expense, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		expense.Title = *in.Title
	}
	if in.Category != nil {
		expense.Category = *in.Category
	}
	if in.Amount != nil {
		expense.Amount = *in.Amount
	}
	if in.Date != nil {
		expense.Date = date
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}

	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("expense_id", id).Int64("owner_id", ownerID).Msg("expense updated")
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info().Int64("expense_id", id).Int64("owner_id", ownerID).Msg("expense deleted")
	return nil
}

func (s *ExpenseService) ResetAll(ctx context.Context, ownerID int64) (int64, error) {
	deleted, err := s.repo.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("expense reset failed")
		return 0, err
	}
	s.logger.Info().Int64("owner_id", ownerID).Int64("deleted", deleted).Msg("expenses reset")
	return deleted, nil
}

// List applies pagination clamping and the category-precedence rule, then
// delegates to the repository.
func (s *ExpenseService) List(ctx context.Context, ownerID int64, in ports.ListExpensesInput) ([]*domain.Expense, int64, error) {
	filter := ports.ListExpensesFilter{
		OwnerID:  ownerID,
		Search:   strings.TrimSpace(in.Search),
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Page:     in.Page,
		Limit:    in.Limit,
	}

	// The set filter wins when both forms are supplied.
	if len(in.Categories) > 0 {
		filter.Categories = in.Categories
	} else {
		filter.Category = in.Category
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Limit > MaxPageLimit {
		filter.Limit = MaxPageLimit
	}

	return s.repo.List(ctx, filter)
}

func (s *ExpenseService) Categories(ctx context.Context, ownerID int64) ([]string, error) {
	return s.repo.Categories(ctx, ownerID)
}

func (s *ExpenseService) ReportByCategory(ctx context.Context, ownerID int64) ([]domain.CategoryTotal, error) {
	return s.repo.TotalsByCategory(ctx, ownerID)
}
