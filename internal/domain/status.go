package domain

// TaskStatus — внутренний статус задачи.
//
// Жизненный цикл:
//
//	UNSUBMITTED → IN_PROGRESS → SUCCEEDED
//	                          ↘ FAILED (может быть retry → снова IN_PROGRESS)
//
// Статусы платформы (preparing, running, building и т.д.) переводятся
// в эти четыре канонических состояния на уровне internal/task.
type TaskStatus string

const (
	// TaskStatusUnsubmitted — задача создана, но ещё не отправлена на платформу.
	TaskStatusUnsubmitted TaskStatus = "UNSUBMITTED"

	// TaskStatusInProgress — задача отправлена и выполняется на платформе.
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"

	// TaskStatusSucceeded — задача успешно завершена. Финальный статус.
	TaskStatusSucceeded TaskStatus = "SUCCEEDED"

	// TaskStatusFailed — задача завершилась с ошибкой.
	// Финальный только когда исчерпан retry-бюджет.
	TaskStatusFailed TaskStatus = "FAILED"
)

// IsTerminal возвращает true, если статус не допускает дальнейших переходов
// без повторной отправки.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusSucceeded, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// PipelineStatus — агрегатный статус всего графа.
type PipelineStatus string

const (
	// PipelineRunning — есть незавершённые задачи.
	PipelineRunning PipelineStatus = "RUNNING"

	// PipelineSucceeded — все задачи завершены успешно.
	PipelineSucceeded PipelineStatus = "SUCCEEDED"

	// PipelineFailed — есть окончательно упавшие задачи и
	// частичные сбои запрещены.
	PipelineFailed PipelineStatus = "FAILED"
)
