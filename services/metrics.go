package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aihub_leads_created_total",
			Help: "Total number of leads created",
		},
		[]string{"inquiry_type"},
	)

	slotConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aihub_slot_conflicts_total",
			Help: "Total number of demo bookings rejected because the slot was taken",
		},
		[]string{"stage"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aihub_notifications_total",
			Help: "Total number of notification jobs by kind and result",
		},
		[]string{"kind", "result"},
	)

	chatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aihub_chat_requests_total",
			Help: "Total number of bot chat requests by result",
		},
		[]string{"result"},
	)

	chatDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aihub_chat_duration_seconds",
			Help:    "Duration of bot chat completions in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func RecordSlotConflict(stage string) {
	slotConflicts.WithLabelValues(stage).Inc()
}

func RecordNotification(kind NotificationKind, result string) {
	notificationsTotal.WithLabelValues(string(kind), result).Inc()
}
