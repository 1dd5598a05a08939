package handler

import "github.com/spendwise/expense-api/internal/core/domain"

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
// Fields is populated only for validation failures.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Request / Response types ---

type createExpenseRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Category    string  `json:"category"    validate:"required"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Date        string  `json:"date"        validate:"required"`
	Description string  `json:"description"`
}

// updateExpenseRequest is a partial update: absent fields stay nil and the
// matching columns are untouched.
type updateExpenseRequest struct {
	Title       *string  `json:"title"       validate:"omitempty,min=1"`
	Category    *string  `json:"category"    validate:"omitempty,min=1"`
	Amount      *float64 `json:"amount"      validate:"omitempty,gt=0"`
	Date        *string  `json:"date"        validate:"omitempty,min=1"`
	Description *string  `json:"description"`
}

type listExpensesResponse struct {
	Items []*domain.Expense `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type deleteResponse struct {
	Status string `json:"status"`
}

type resetResponse struct {
	Deleted int64 `json:"deleted"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type reportResponse struct {
	Report []domain.CategoryTotal `json:"report"`
}
