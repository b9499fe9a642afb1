package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик вызовов API
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы HTTP API",
		},
		[]string{"service", "endpoint", "status"},
	)

	// LoanApplications счетчик поданных заявок по итоговому статусу
	LoanApplications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_applications_total",
			Help: "Поданные заявки на кредит",
		},
		[]string{"status"},
	)

	// PaymentsOverdue счетчик платежей, помеченных просроченными
	PaymentsOverdue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_overdue_total",
			Help: "Платежи, переведенные в статус overdue",
		},
	)

	// SimulationCache счетчик обращений к кэшу симуляций
	SimulationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulation_cache_total",
			Help: "Обращения к кэшу симуляций",
		},
		[]string{"result"},
	)
)
