package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/task"
)

func validationGraph(t *testing.T, ids []string, deps map[string][]string) *Graph {
	t.Helper()

	tasks := make(map[string]task.Task, len(ids))
	for _, id := range ids {
		tasks[id] = &stubTask{id: id, status: domain.TaskStatusUnsubmitted}
	}
	return New(tasks, deps, Options{})
}

func TestValidate_EmptyGraph(t *testing.T) {
	g := validationGraph(t, nil, nil)
	if err := g.Validate(); !errors.Is(err, ErrNoTasks) {
		t.Errorf("expected ErrNoTasks, got %v", err)
	}
}

func TestValidate_ValidChain(t *testing.T) {
	g := validationGraph(t, []string{"A", "B", "C"}, map[string][]string{
		"B": {"A"},
		"C": {"B"},
	})
	if err := g.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_SelfDependency(t *testing.T) {
	g := validationGraph(t, []string{"A"}, map[string][]string{"A": {"A"}})
	if err := g.Validate(); !errors.Is(err, ErrSelfDependency) {
		t.Errorf("expected ErrSelfDependency, got %v", err)
	}
}

func TestValidate_UnknownDependency(t *testing.T) {
	g := validationGraph(t, []string{"A"}, map[string][]string{"A": {"ghost"}})

	err := g.Validate()
	if !errors.Is(err, ErrUnknownDependency) {
		t.Fatalf("expected ErrUnknownDependency, got %v", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error should name the missing dependency: %v", err)
	}
}

func TestValidate_Cycle(t *testing.T) {
	// A → B → C → A
	g := validationGraph(t, []string{"A", "B", "C"}, map[string][]string{
		"A": {"C"},
		"B": {"A"},
		"C": {"B"},
	})

	err := g.Validate()
	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("expected ErrCyclicDependency, got %v", err)
	}
	for _, id := range []string{"A", "B", "C"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error should name cycle participant %s: %v", id, err)
		}
	}
}

func TestValidate_CycleBehindValidNodes(t *testing.T) {
	// X валиден, цикл B ↔ C обнаруживается всё равно.
	g := validationGraph(t, []string{"X", "B", "C"}, map[string][]string{
		"B": {"C"},
		"C": {"B"},
	})
	if err := g.Validate(); !errors.Is(err, ErrCyclicDependency) {
		t.Errorf("expected ErrCyclicDependency, got %v", err)
	}
}
