package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/engine"
	"github.com/shaiso/Conveyor/internal/journal"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// defaultTickInterval — пауза между циклами evaluate/submit.
const defaultTickInterval = 15 * time.Second

// Runner — однопоточный цикл выполнения пайплайна.
//
// Каждый тик: полный проход по графу → агрегатный статус →
// отправка готовых задач → сон. Завершается только терминальным
// исходом графа или отменой контекста; подвисший или циклический
// граф без валидации работал бы вечно.
type Runner struct {
	graph   *engine.Graph
	journal *journal.Recorder
	tick    time.Duration
	logger  *slog.Logger
}

// Config — конфигурация Runner.
type Config struct {
	// Graph — граф пайплайна. Обязателен.
	Graph *engine.Graph

	// Journal — журнал событий пайплайна. Опционален.
	Journal *journal.Recorder

	// TickInterval — пауза между циклами (default: 15s).
	TickInterval time.Duration

	// Logger — логгер. nil — slog.Default().
	Logger *slog.Logger
}

// New создаёт Runner.
func New(cfg Config) *Runner {
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = defaultTickInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		graph:   cfg.Graph,
		journal: cfg.Journal,
		tick:    tick,
		logger:  logger,
	}
}

// Run выполняет пайплайн до терминального исхода.
//
// Возвращает nil при SUCCEEDED, *PipelineError со списком всех
// окончательно упавших задач при FAILED, ошибку опроса (включая
// ProtocolError задач) при сбое Evaluate и ctx.Err() при отмене.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("starting pipeline",
		"tasks", r.graph.Size(),
		"tick_interval", r.tick,
		"allow_partial_failure", r.graph.AllowPartialFailure(),
	)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		eval, err := r.graph.Evaluate(ctx)
		if err != nil {
			return fmt.Errorf("evaluate graph: %w", err)
		}
		telemetry.SchedulerTicks.Inc()

		switch r.graph.PipelineStatus(eval) {
		case domain.PipelineSucceeded:
			r.logger.Info("pipeline completed successfully")
			r.recordOutcome(ctx, domain.PipelineSucceeded, nil)
			return nil

		case domain.PipelineFailed:
			failed := eval.FailedIDs()
			r.recordOutcome(ctx, domain.PipelineFailed, failed)
			return &PipelineError{FailedTaskIDs: failed}
		}

		if len(eval.Ready) == 0 {
			r.logger.Info("waiting for executions or new tasks")
		} else {
			ids := make([]string, len(eval.Ready))
			for i, t := range eval.Ready {
				ids[i] = t.ID()
			}
			r.logger.Info("tasks ready for submission", "task_ids", ids)
		}

		for _, t := range eval.Ready {
			t.Submit(ctx)
			r.recordSubmission(ctx, t.ID(), string(t.Kind()), t.Retries())
		}

		select {
		case <-ctx.Done():
			r.logger.Info("pipeline interrupted", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// recordSubmission пишет событие отправки в журнал.
// Ошибки журнала не фатальны для пайплайна.
func (r *Runner) recordSubmission(ctx context.Context, taskID, kind string, attempt int) {
	if r.journal == nil {
		return
	}
	if err := r.journal.RecordSubmission(ctx, taskID, kind, attempt); err != nil {
		r.logger.Warn("failed to record submission", "task_id", taskID, "error", err)
	}
}

// recordOutcome пишет терминальный исход пайплайна в журнал.
func (r *Runner) recordOutcome(ctx context.Context, status domain.PipelineStatus, failedIDs []string) {
	if r.journal == nil {
		return
	}
	if err := r.journal.RecordOutcome(ctx, string(status), failedIDs); err != nil {
		r.logger.Warn("failed to record pipeline outcome", "error", err)
	}
}
