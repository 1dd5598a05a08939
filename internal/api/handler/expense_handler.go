package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/api/metrics"
	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
	"github.com/spendwise/expense-api/internal/core/service"
)

// ExpenseHandler handles the expense ledger routes. The owner id always
// comes from the verified token, never from client input.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create handles POST /expenses.
//
// @Summary      Create an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createExpenseRequest  true  "Expense details"
// @Success      201   {object}  domain.Expense
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	expense, err := h.service.Create(c.Request().Context(), userID, ports.CreateExpenseInput{
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ExpenseOpsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, expense)
}

// Get handles GET /expenses/:id.
//
// @Summary      Get an expense by id
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Expense id"
// @Success      200  {object}  domain.Expense
// @Failure      404  {object}  errorResponse
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// Update handles PUT /expenses/:id with a partial field set.
//
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Expense id"
// @Param        body  body      updateExpenseRequest  true  "Fields to change"
// @Success      200   {object}  domain.Expense
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	var req updateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	expense, err := h.service.Update(c.Request().Context(), userID, id, ports.UpdateExpenseInput{
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ExpenseOpsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, expense)
}

// Delete handles DELETE /expenses/:id.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Expense id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}

	metrics.ExpenseOpsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, deleteResponse{Status: "deleted"})
}

// Reset handles DELETE /expenses/reset: bulk-delete of the caller's ledger.
//
// @Summary      Delete all expenses of the current user
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  resetResponse
// @Failure      500  {object}  errorResponse
// @Router       /expenses/reset [delete]
func (h *ExpenseHandler) Reset(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.ResetAll(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.ExpenseOpsTotal.WithLabelValues("reset").Inc()
	metrics.ExpensesResetDeleted.Observe(float64(deleted))
	return c.JSON(http.StatusOK, resetResponse{Deleted: deleted})
}

// List handles GET /expenses with filters and pagination.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        search      query     string  false  "Substring match on title and description"
// @Param        category    query     string  false  "Single category filter"
// @Param        categories  query     string  false  "Comma-separated category set (takes precedence)"
// @Param        from        query     string  false  "Inclusive start date (YYYY-MM-DD)"
// @Param        to          query     string  false  "Inclusive end date (YYYY-MM-DD)"
// @Param        page        query     int     false  "1-based page number"  default(1)
// @Param        limit       query     int     false  "Page size (max 100)"  default(20)
// @Success      200  {object}  listExpensesResponse
// @Failure      400  {object}  errorResponse
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	in := ports.ListExpensesInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		DateFrom: c.QueryParam("from"),
		DateTo:   c.QueryParam("to"),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.QueryParam("categories"); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				in.Categories = append(in.Categories, cat)
			}
		}
	}

	items, total, err := h.service.List(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Expense{}
	}

	// Echo back the clamped values the service actually used.
	resp := listExpensesResponse{Items: items, Total: total, Page: page, Limit: limit}
	if resp.Page < 1 {
		resp.Page = 1
	}
	if resp.Limit <= 0 {
		resp.Limit = service.DefaultPageLimit
	} else if resp.Limit > service.MaxPageLimit {
		resp.Limit = service.MaxPageLimit
	}
	return c.JSON(http.StatusOK, resp)
}

// Categories handles GET /categories.
//
// @Summary      List the current user's distinct categories
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  categoriesResponse
// @Router       /categories [get]
func (h *ExpenseHandler) Categories(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	cats, err := h.service.Categories(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if cats == nil {
		cats = []string{}
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: cats})
}

// Report handles GET /expenses/report/categories.
//
// @Summary      Sum of amounts grouped by category
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reportResponse
// @Router       /expenses/report/categories [get]
func (h *ExpenseHandler) Report(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	report, err := h.service.ReportByCategory(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if report == nil {
		report = []domain.CategoryTotal{}
	}
	return c.JSON(http.StatusOK, reportResponse{Report: report})
}

// expenseID parses the :id path segment. A non-numeric id is treated the
// same as a missing resource so URLs cannot be probed for shape.
func expenseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrExpenseNotFound
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. A present but
// non-integer value is a validation failure, not a silent default.
func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		ve := domain.NewValidationError()
		ve.Add(name, "must be an integer")
		return 0, ve
	}
	return n, nil
}
