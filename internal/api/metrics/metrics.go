// Package metrics defines and registers all custom Prometheus metrics for
// the expense API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time via promauto;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expense_api"

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ExpenseOpsTotal counts completed ledger mutations.
// Label:
//   - operation: "create", "update", "delete", or "reset"
var ExpenseOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expense_operations_total",
		Help:      "Total number of successful expense mutations, by operation.",
	},
	[]string{"operation"},
)

// ExpensesResetDeleted observes how many rows each bulk reset removes.
var ExpensesResetDeleted = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "expenses_reset_deleted",
		Help:      "Number of expenses removed per bulk reset.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	},
)
