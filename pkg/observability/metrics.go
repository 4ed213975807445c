package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat counters, incremented by the chat API layer
var (
	// MessagesSent counts successful send-receive-persist cycles
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_sent_total",
		Help: "Number of chat messages successfully exchanged and persisted.",
	})

	// GenerationFailures counts completion-service failures (no row written)
	GenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_generation_failures_total",
		Help: "Number of completion calls that failed without persisting a message.",
	})

	// SessionsOpened counts sessions created at login
	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_sessions_opened_total",
		Help: "Number of login sessions opened.",
	})
)
