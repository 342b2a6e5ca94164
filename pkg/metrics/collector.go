// Package metrics exposes prometheus collectors for the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	botCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Total number of bot commands received labeled by command and status",
		},
		[]string{"command", "status"},
	)
	commandDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_duration_seconds",
			Help:    "Duration of bot commands in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	stateTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Total number of signal wizard step transitions",
		},
		[]string{"from", "to"},
	)
	signalsPostedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signals_posted_total",
			Help: "Total number of signals published to the channel by session",
		},
		[]string{"session"},
	)
	resultsPostedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "results_posted_total",
			Help: "Total number of results published to the channel by outcome",
		},
		[]string{"outcome"},
	)
	cronFiresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cron_fires_total",
			Help: "Total number of scheduled job fires by job name and status",
		},
		[]string{"job", "status"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by type and severity",
		},
		[]string{"type", "severity"},
	)
)

// RecordCommand increments command counters and records duration.
func RecordCommand(command, status string, duration time.Duration) {
	if command == "" {
		command = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botCommandsTotal.WithLabelValues(command, status).Inc()
	commandDurationSeconds.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordStepTransition tracks signal wizard step transitions.
func RecordStepTransition(from, to string) {
	if from == "" {
		from = "unknown"
	}
	if to == "" {
		to = "unknown"
	}

	stateTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordSignalPosted counts a published signal for the given session band.
func RecordSignalPosted(session string) {
	if session == "" {
		session = "unknown"
	}

	signalsPostedTotal.WithLabelValues(session).Inc()
}

// RecordResultPosted counts a published result by outcome label.
func RecordResultPosted(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}

	resultsPostedTotal.WithLabelValues(outcome).Inc()
}

// RecordCronFire counts a scheduled job fire.
func RecordCronFire(job, status string) {
	if job == "" {
		job = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	cronFiresTotal.WithLabelValues(job, status).Inc()
}

// RecordError increments error counters with metadata.
func RecordError(errType, severity string) {
	if errType == "" {
		errType = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(errType, severity).Inc()
}
