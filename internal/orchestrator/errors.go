package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPipelineFailed — пайплайн завершился с окончательными сбоями.
var ErrPipelineFailed = errors.New("pipeline execution failed")

// PipelineError — терминальный исход с перечнем всех окончательно
// упавших задач. Частичные сбои при этом запрещены конфигурацией.
type PipelineError struct {
	// FailedTaskIDs — отсортированные ID окончательно упавших задач.
	FailedTaskIDs []string
}

// Error реализует интерфейс error.
func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline execution failed: permanently failed tasks: %s",
		strings.Join(e.FailedTaskIDs, ", "))
}

// Unwrap возвращает базовую ошибку.
func (e *PipelineError) Unwrap() error {
	return ErrPipelineFailed
}
