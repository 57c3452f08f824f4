package engine

import "errors"

// Ошибки валидации графа.
var (
	// ErrNoTasks — граф не содержит задач.
	ErrNoTasks = errors.New("graph has no tasks")

	// ErrUnknownDependency — задача зависит от несуществующей задачи.
	ErrUnknownDependency = errors.New("dependency on unknown task")

	// ErrSelfDependency — задача зависит от самой себя.
	ErrSelfDependency = errors.New("task depends on itself")

	// ErrCyclicDependency — обнаружен цикл в зависимостях.
	ErrCyclicDependency = errors.New("cyclic dependency detected")
)
