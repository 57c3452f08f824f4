package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// Run — batch-задача: разовое выполнение команды на платформе.
//
// Отправка возвращает opaque handle запуска; завершение определяется
// опросом статуса запуска по этому handle.
type Run struct {
	base

	command []string
	direct  bool
	tier    string
	title   string

	// runID — handle последней успешной отправки.
	runID string
}

// NewRun создаёт batch-задачу из дескриптора.
func NewRun(def domain.TaskDef, client platform.Client, logger *slog.Logger) *Run {
	title := def.Title
	if title == "" {
		title = def.ID
	}

	return &Run{
		base:    newBase(def, def.MaxRetries, client, logger),
		command: def.Command,
		direct:  def.Direct,
		tier:    def.Tier,
		title:   title,
	}
}

// Kind возвращает тип задачи.
func (r *Run) Kind() domain.TaskKind { return domain.KindRun }

// Submit запускает команду на платформе.
func (r *Run) Submit(ctx context.Context) {
	r.logger.Info("submitting run",
		"command", r.command,
		"direct", r.direct,
		"tier", r.tier,
	)

	runID, err := r.client.StartRun(ctx, r.command, platform.RunOptions{
		Direct: r.direct,
		Tier:   r.tier,
		Title:  r.title,
	})
	if err != nil {
		r.failSubmission(domain.KindRun, err)
		return
	}

	r.runID = runID
	r.status = domain.TaskStatusInProgress

	r.logger.Info("run submitted", "run_id", runID)
	telemetry.TaskSubmissions.WithLabelValues(string(domain.KindRun), "submitted").Inc()
}

// Status возвращает канонический статус задачи, опрашивая платформу
// только в IN_PROGRESS.
func (r *Run) Status(ctx context.Context) (domain.TaskStatus, error) {
	if r.status != domain.TaskStatusInProgress {
		return r.status, nil
	}

	apiStatus, err := r.client.RunStatus(ctx, r.runID)
	if err != nil {
		return "", fmt.Errorf("poll run %s: %w", r.id, err)
	}

	status, err := mapRunStatus(r.id, apiStatus)
	if err != nil {
		return "", err
	}

	r.status = status
	return status, nil
}
