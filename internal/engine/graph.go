package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/task"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// Graph — граф зависимостей пайплайна.
//
// Владеет набором задач и рёбрами зависимостей. Производные наборы
// (ready, permanently failed) не поддерживаются инкрементально —
// они пересчитываются полным проходом на каждом Evaluate.
type Graph struct {
	// tasks — задачи по ID.
	tasks map[string]task.Task

	// deps — упорядоченные списки ID предшественников по ID задачи.
	deps map[string][]string

	// allowPartialFailure — продолжать выполнение, несмотря на
	// окончательно упавшие задачи.
	allowPartialFailure bool

	logger *slog.Logger
}

// Options — параметры графа.
type Options struct {
	// AllowPartialFailure — продолжать выполнение при окончательных
	// сбоях отдельных задач.
	AllowPartialFailure bool

	// Logger — логгер графа. nil — slog.Default().
	Logger *slog.Logger
}

// New создаёт граф из задач и карты зависимостей.
// Задачи переходят в исключительное владение графа.
func New(tasks map[string]task.Task, deps map[string][]string, opts Options) *Graph {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if deps == nil {
		deps = make(map[string][]string)
	}

	return &Graph{
		tasks:               tasks,
		deps:                deps,
		allowPartialFailure: opts.AllowPartialFailure,
		logger:              logger,
	}
}

// Size возвращает количество задач в графе.
func (g *Graph) Size() int {
	return len(g.tasks)
}

// Task возвращает задачу по ID.
func (g *Graph) Task(id string) task.Task {
	return g.tasks[id]
}

// TaskIDs возвращает отсортированный список ID всех задач.
func (g *Graph) TaskIDs() []string {
	ids := make([]string, 0, len(g.tasks))
	for id := range g.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dependencies возвращает список ID предшественников задачи.
func (g *Graph) Dependencies(id string) []string {
	return g.deps[id]
}

// AllowPartialFailure сообщает, разрешены ли частичные сбои.
func (g *Graph) AllowPartialFailure() bool {
	return g.allowPartialFailure
}

// Evaluation — снимок одного полного прохода по графу.
//
// Статусы всех задач опрашиваются ровно один раз за проход;
// PipelineStatus и наборы ready/failed считаются по этому снимку,
// без повторных удалённых вызовов.
type Evaluation struct {
	// Ready — задачи, готовые к отправке: UNSUBMITTED или FAILED
	// с оставшимся retry-бюджетом, все предшественники SUCCEEDED.
	Ready []task.Task

	// Failed — окончательно упавшие задачи: FAILED с исчерпанным
	// retry-бюджетом. Зависит только от самой задачи.
	Failed []task.Task

	statuses map[string]domain.TaskStatus
	failed   map[string]bool
}

// Status возвращает статус задачи на момент прохода.
func (e *Evaluation) Status(id string) domain.TaskStatus {
	return e.statuses[id]
}

// FailedIDs возвращает отсортированные ID окончательно упавших задач.
func (e *Evaluation) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for _, t := range e.Failed {
		ids = append(ids, t.ID())
	}
	sort.Strings(ids)
	return ids
}

// Evaluate выполняет один полный проход по всем задачам.
//
// Опрос статуса задачи в IN_PROGRESS — удалённый вызов; ошибка опроса
// (в том числе ProtocolError) прерывает проход и всю обработку графа.
func (g *Graph) Evaluate(ctx context.Context) (*Evaluation, error) {
	start := time.Now()

	statuses := make(map[string]domain.TaskStatus, len(g.tasks))
	for id, t := range g.tasks {
		status, err := t.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("evaluate task %s: %w", id, err)
		}
		statuses[id] = status
	}

	eval := &Evaluation{
		statuses: statuses,
		failed:   make(map[string]bool),
	}

	// Стабильный порядок обхода: порядок среди готовых задач не
	// специфицирован, но детерминизм упрощает логи и тесты.
	for _, id := range g.TaskIDs() {
		t := g.tasks[id]
		status := statuses[id]

		g.logger.Info("task state", "task_id", id, "status", status)

		if status == domain.TaskStatusFailed && t.Retries() >= t.MaxRetries() {
			eval.Failed = append(eval.Failed, t)
			eval.failed[id] = true
		}

		ready := status == domain.TaskStatusUnsubmitted ||
			(status == domain.TaskStatusFailed && t.Retries() < t.MaxRetries())
		if ready && g.dependenciesSucceeded(id, statuses) {
			eval.Ready = append(eval.Ready, t)
		}
	}

	telemetry.ReadyTasks.Set(float64(len(eval.Ready)))
	telemetry.PermanentlyFailedTasks.Set(float64(len(eval.Failed)))
	telemetry.EvaluationDuration.Observe(time.Since(start).Seconds())

	return eval, nil
}

// dependenciesSucceeded проверяет, что все предшественники задачи
// завершились успешно. Пустой список — тривиально true.
func (g *Graph) dependenciesSucceeded(id string, statuses map[string]domain.TaskStatus) bool {
	for _, dep := range g.deps[id] {
		if statuses[dep] != domain.TaskStatusSucceeded {
			return false
		}
	}
	return true
}

// PipelineStatus возвращает агрегатный статус графа по снимку прохода.
//
// Порядок проверок фиксирован: сначала окончательные сбои (при
// запрещённых частичных сбоях), затем полнота, иначе RUNNING.
//
// При allowPartialFailure окончательно упавшие задачи исключаются из
// проверки полноты: иначе пайплайн с хотя бы одним таким сбоем никогда
// не достиг бы SUCCEEDED и цикл не завершился бы.
func (g *Graph) PipelineStatus(eval *Evaluation) domain.PipelineStatus {
	if len(eval.Failed) > 0 && !g.allowPartialFailure {
		return domain.PipelineFailed
	}

	for id, status := range eval.statuses {
		if status == domain.TaskStatusSucceeded {
			continue
		}
		if g.allowPartialFailure && eval.failed[id] {
			continue
		}
		return domain.PipelineRunning
	}
	return domain.PipelineSucceeded
}
