// Package metrics регистрирует счетчики Prometheus для ключевых
// бизнес-событий платформы. Отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счетчики бизнес-событий.
var (
	// BookingsCreated число созданных бронирований.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "godog_bookings_created_total",
		Help: "Total number of bookings created.",
	})

	// CommissionCollected накопленная комиссия платформы.
	CommissionCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "godog_commission_collected_total",
		Help: "Total platform commission collected, in currency units.",
	})

	// BlockedAccess число отказов в доступе по истекшему триалу, по ролям.
	BlockedAccess = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "godog_blocked_access_total",
		Help: "Total number of requests denied due to an expired trial.",
	}, []string{"role"})

	// Subscriptions число оформленных подписок владельцев, по тарифам.
	Subscriptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "godog_subscriptions_total",
		Help: "Total number of owner subscriptions activated.",
	}, []string{"tier"})
)
