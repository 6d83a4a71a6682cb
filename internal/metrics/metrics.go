package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Domain metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tarefas",
		Name:      "registrations_total",
		Help:      "Total successful user registrations.",
	})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tarefas",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	TasksCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tarefas",
		Name:      "tasks_created_total",
		Help:      "Total tasks created.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tarefas",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tarefas",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		LoginsTotal,
		TasksCreatedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
