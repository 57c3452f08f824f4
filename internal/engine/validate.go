package engine

import (
	"fmt"
	"sort"
)

// Validate проверяет структуру графа до первого тика.
//
// Проверяет:
//   - наличие задач
//   - валидность зависимостей (ссылки на существующие задачи)
//   - отсутствие self-dependency
//   - отсутствие циклов (алгоритм Кана)
//
// Циклический граф без валидации давал бы вечно пустой ready-набор
// при PipelineStatus == RUNNING — необнаружимый deadlock.
func (g *Graph) Validate() error {
	if len(g.tasks) == 0 {
		return ErrNoTasks
	}

	for _, id := range g.TaskIDs() {
		for _, dep := range g.deps[id] {
			if dep == id {
				return fmt.Errorf("%w: %s", ErrSelfDependency, id)
			}
			if _, exists := g.tasks[dep]; !exists {
				return fmt.Errorf("%w: task %s depends on %s", ErrUnknownDependency, id, dep)
			}
		}
	}

	return g.checkAcyclic()
}

// checkAcyclic выполняет топологическую сортировку (алгоритм Кана)
// и возвращает ошибку с участниками цикла, если обход неполный.
func (g *Graph) checkAcyclic() error {
	inDegree := make(map[string]int, len(g.tasks))
	dependents := make(map[string][]string, len(g.tasks))

	for id := range g.tasks {
		inDegree[id] = len(g.deps[id])
		for _, dep := range g.deps[id] {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	queue := make([]string, 0, len(g.tasks))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++

		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if visited == len(g.tasks) {
		return nil
	}

	// Непосещённые узлы — участники цикла (или зависят от него).
	var cyclic []string
	for id, deg := range inDegree {
		if deg > 0 {
			cyclic = append(cyclic, id)
		}
	}
	sort.Strings(cyclic)

	return fmt.Errorf("%w: %v", ErrCyclicDependency, cyclic)
}
