package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "atarax"

type Manager struct {
	CounterRequests          *prometheus.CounterVec
	HistogramRequestDuration *prometheus.HistogramVec

	CounterPlanSynthesis     *prometheus.CounterVec
	HistSynthesisDuration    prometheus.Histogram
	CounterEntriesDropped    prometheus.Counter
	CounterWorkoutsCompleted prometheus.Counter
}

func SetupPrometheus() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewTestManager() *Manager {
	return NewManager(prometheus.NewRegistry())
}

func NewManager(reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "The total number of handled requests",
		}, []string{"method", "status"}),
		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 120},
		}, []string{"route", "method"}),
		CounterPlanSynthesis: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "plan_synthesis_total",
			Help:      "Training plan synthesis attempts by outcome",
		}, []string{"outcome"}),
		HistSynthesisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "plan_synthesis_duration_seconds",
			Help:      "Time spent waiting for the plan generation provider",
			Buckets:   []float64{0.1, 1, 5, 10, 30, 60, 120, 240, 480},
		}),
		CounterEntriesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "plan_entries_dropped_total",
			Help:      "Generated workout entries rejected by the parser",
		}),
		CounterWorkoutsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workouts_completed_total",
			Help:      "Workouts marked complete for the first time",
		}),
	}
}
