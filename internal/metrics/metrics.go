// Package metrics provides Prometheus instrumentation for the ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsCreated counts created operations, partitioned by type.
	OperationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bet_ledger_operations_created_total",
		Help: "Total number of operations created",
	}, []string{"type"})

	// OperationsSettled counts settled operations, partitioned by status.
	OperationsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bet_ledger_operations_settled_total",
		Help: "Total number of operations settled",
	}, []string{"status"})

	// InsufficientBalanceRejections counts mutations rejected because a
	// stake exceeded the available bankroll balance.
	InsufficientBalanceRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bet_ledger_insufficient_balance_rejections_total",
		Help: "Mutations rejected for insufficient bankroll balance",
	})

	// BankrollsCreated counts created bankrolls.
	BankrollsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bet_ledger_bankrolls_created_total",
		Help: "Total number of bankrolls created",
	})

	// CacheHits counts listing cache hits and misses.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bet_ledger_cache_requests_total",
		Help: "Listing cache requests by outcome",
	}, []string{"listing", "outcome"})
)
