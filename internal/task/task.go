package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// Task — единица планирования в графе зависимостей.
//
// Закрытый набор реализаций: Run, ScheduledRun, Model, App.
// Каждая хранит четырёхстадийный статус и kind-специфичную
// логику отправки/опроса, делегируя все удалённые эффекты
// platform.Client.
type Task interface {
	// ID возвращает уникальный идентификатор задачи.
	ID() string

	// Kind возвращает тип задачи.
	Kind() domain.TaskKind

	// Retries возвращает число сделанных повторных отправок.
	// Неудача исходной попытки бюджет не тратит.
	Retries() int

	// MaxRetries возвращает retry-бюджет задачи.
	MaxRetries() int

	// Submit отправляет задачу на платформу.
	//
	// Ошибка платформы никогда не покидает Submit: неудача
	// локально переводит задачу в FAILED и увеличивает счётчик
	// попыток. Успех переводит в IN_PROGRESS (или сразу в
	// SUCCEEDED для fire-and-forget регистраций).
	Submit(ctx context.Context)

	// Status возвращает канонический статус задачи.
	//
	// В IN_PROGRESS опрашивает платформу и переводит её словарь
	// статусов в канонический; незнакомый статус — *ProtocolError
	// (контракт платформы разошёлся с ожиданиями ядра, не
	// лечится повтором). В остальных состояниях возвращает
	// сохранённый статус без удалённого вызова.
	Status(ctx context.Context) (domain.TaskStatus, error)
}

// IsComplete возвращает true, если задача завершилась успешно.
func IsComplete(ctx context.Context, t Task) (bool, error) {
	status, err := t.Status(ctx)
	if err != nil {
		return false, err
	}
	return status == domain.TaskStatusSucceeded, nil
}

// FromDef строит задачу нужного типа из дескриптора control-файла.
// Дескриптор должен быть уже провалидирован парсером.
func FromDef(def domain.TaskDef, client platform.Client, logger *slog.Logger) (Task, error) {
	switch def.Kind {
	case domain.KindRun:
		return NewRun(def, client, logger), nil
	case domain.KindScheduledRun:
		return NewScheduledRun(def, client, logger), nil
	case domain.KindModel:
		return NewModel(def, client, logger), nil
	case domain.KindApp:
		return NewApp(def, client, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, def.Kind)
	}
}

// base — общее состояние всех типов задач.
type base struct {
	id         string
	status     domain.TaskStatus
	retries    int
	maxRetries int
	client     platform.Client
	logger     *slog.Logger
}

func newBase(def domain.TaskDef, maxRetries int, client platform.Client, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}

	return base{
		id:         def.ID,
		status:     domain.TaskStatusUnsubmitted,
		maxRetries: maxRetries,
		client:     client,
		logger:     telemetry.WithTaskID(logger, def.ID),
	}
}

// ID возвращает идентификатор задачи.
func (b *base) ID() string { return b.id }

// Retries возвращает число сделанных повторных отправок.
func (b *base) Retries() int { return b.retries }

// MaxRetries возвращает retry-бюджет.
func (b *base) MaxRetries() int { return b.maxRetries }

// failSubmission фиксирует неудачную отправку: статус FAILED,
// ошибка поглощена (только залогирована). Бюджет тратят лишь
// повторные отправки: неудача исходной попытки оставляет retries
// равным нулю, поэтому max_retries=N даёт N+1 отправку.
func (b *base) failSubmission(kind domain.TaskKind, err error) {
	if b.status == domain.TaskStatusFailed {
		b.retries++
	}
	b.status = domain.TaskStatusFailed

	b.logger.Error("submission failed",
		"kind", kind,
		"retries", b.retries,
		"max_retries", b.maxRetries,
		"error", err,
	)
	telemetry.TaskSubmissions.WithLabelValues(string(kind), "failed").Inc()
}
