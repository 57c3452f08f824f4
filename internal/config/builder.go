package config

import (
	"fmt"
	"log/slog"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/engine"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/task"
)

// BuildOptions настраивает сборку графа из дескрипторов.
type BuildOptions struct {
	AllowPartialFailure bool
	Logger              *slog.Logger
}

// BuildGraph собирает и валидирует граф задач из дескрипторов.
// Ошибка структуры графа (цикл, неизвестная зависимость) всплывает
// отсюда, до первого обращения к платформе.
func BuildGraph(defs []domain.TaskDef, client platform.Client, opts BuildOptions) (*engine.Graph, error) {
	tasks := make(map[string]task.Task, len(defs))
	deps := make(map[string][]string, len(defs))

	for _, def := range defs {
		if _, exists := tasks[def.ID]; exists {
			return nil, NewConfigurationError(def.ID, "", "duplicate task id", ErrDuplicateTask)
		}

		t, err := task.FromDef(def, client, opts.Logger)
		if err != nil {
			return nil, fmt.Errorf("build task %s: %w", def.ID, err)
		}
		tasks[def.ID] = t
		deps[def.ID] = def.Depends
	}

	g := engine.New(tasks, deps, engine.Options{
		AllowPartialFailure: opts.AllowPartialFailure,
		Logger:              opts.Logger,
	})
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
