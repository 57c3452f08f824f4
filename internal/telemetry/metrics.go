package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики пайплайна. Экспортируются на /metrics,
// если CLI запущен с метрик-листенером.
var (
	// TaskSubmissions — отправки задач по типу и исходу
	// (outcome: submitted | failed).
	TaskSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conveyor_task_submissions_total",
		Help: "Task submissions by kind and outcome.",
	}, []string{"kind", "outcome"})

	// SchedulerTicks — количество циклов evaluate/submit/sleep.
	SchedulerTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conveyor_scheduler_ticks_total",
		Help: "Scheduler evaluate/submit/sleep cycles.",
	})

	// ReadyTasks — размер ready-набора на последнем тике.
	ReadyTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "conveyor_ready_tasks",
		Help: "Tasks ready for submission at the last evaluation.",
	})

	// PermanentlyFailedTasks — размер набора окончательно упавших задач.
	PermanentlyFailedTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "conveyor_permanently_failed_tasks",
		Help: "Tasks that exhausted their retry budget.",
	})

	// EvaluationDuration — длительность полного прохода по графу
	// (включая удалённые опросы статусов).
	EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "conveyor_graph_evaluation_seconds",
		Help:    "Duration of a full graph evaluation pass.",
		Buckets: prometheus.DefBuckets,
	})
)
