package domain

// Expense is a single ledger entry owned by exactly one user.
// Date always holds a canonical YYYY-MM-DD value at rest.
type Expense struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
	OwnerID     int64   `json:"owner_id"`
}

// CategoryTotal is one row of the per-category spending report.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}
