package task

import (
	"errors"
	"fmt"
)

// Ошибки задач.
var (
	// ErrUnknownKind — дескриптор ссылается на неизвестный тип задачи.
	ErrUnknownKind = errors.New("unknown task kind")

	// ErrUnknownPlatformStatus — платформа вернула статус вне
	// ожидаемого словаря. Фатально: контракт платформы разошёлся
	// с ожиданиями ядра, повтор не поможет.
	ErrUnknownPlatformStatus = errors.New("unknown platform status")
)

// ProtocolError — незнакомый статус платформы при опросе задачи.
type ProtocolError struct {
	// TaskID — задача, при опросе которой получен статус.
	TaskID string

	// Status — статус, который вернула платформа.
	Status string
}

// Error реализует интерфейс error.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("task %s: unknown platform status %q", e.TaskID, e.Status)
}

// Unwrap возвращает базовую ошибку.
func (e *ProtocolError) Unwrap() error {
	return ErrUnknownPlatformStatus
}
