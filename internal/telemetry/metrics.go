package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метрики triage-воркера.
//
// Outcome для TriageTotal:
//   - "processed" — triage завершён, тикет обновлён
//   - "exhausted" — достигнут лимит попыток, тикет в failed_triage
//   - "requeued"  — инфраструктурная ошибка, сообщение вернулось в очередь
//   - "poison"    — сообщение отброшено (битый payload или тикет не найден)
var (
	// TriageTotal — количество обработанных triage-сообщений по исходам.
	TriageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketd_triage_total",
			Help: "Total number of triage messages handled, by outcome.",
		},
		[]string{"outcome"},
	)

	// TriageDuration — длительность вызова AI-сервиса.
	TriageDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticketd_triage_duration_seconds",
			Help:    "Wall-clock duration of the external triage call.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// MQReconnects — количество успешных переподключений к RabbitMQ.
	// Рост счётчика — признак нестабильного брокера или сети.
	MQReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketd_mq_reconnects_total",
			Help: "Total number of successful RabbitMQ reconnects.",
		},
	)
)

func init() {
	prometheus.MustRegister(TriageTotal, TriageDuration, MQReconnects)
}
