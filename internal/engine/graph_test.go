package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/task"
)

// stubTask — задача с заранее заданным состоянием.
type stubTask struct {
	id         string
	status     domain.TaskStatus
	retries    int
	maxRetries int
	statusErr  error
	submitted  int
}

func (s *stubTask) ID() string             { return s.id }
func (s *stubTask) Kind() domain.TaskKind  { return domain.KindRun }
func (s *stubTask) Retries() int           { return s.retries }
func (s *stubTask) MaxRetries() int        { return s.maxRetries }
func (s *stubTask) Submit(context.Context) { s.submitted++ }

func (s *stubTask) Status(context.Context) (domain.TaskStatus, error) {
	if s.statusErr != nil {
		return "", s.statusErr
	}
	return s.status, nil
}

func buildGraph(t *testing.T, stubs []*stubTask, deps map[string][]string, allowPartial bool) *Graph {
	t.Helper()

	tasks := make(map[string]task.Task, len(stubs))
	for _, s := range stubs {
		tasks[s.id] = s
	}
	return New(tasks, deps, Options{AllowPartialFailure: allowPartial})
}

func TestEvaluate_RootsReadyFirst(t *testing.T) {
	// A → B, A → C: на первом проходе готов только корень.
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusUnsubmitted},
		{id: "B", status: domain.TaskStatusUnsubmitted},
		{id: "C", status: domain.TaskStatusUnsubmitted},
	}
	g := buildGraph(t, stubs, map[string][]string{
		"B": {"A"},
		"C": {"A"},
	}, false)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(eval.Ready) != 1 || eval.Ready[0].ID() != "A" {
		t.Errorf("only the root should be ready, got %v", readyIDs(eval))
	}
	if len(eval.Failed) != 0 {
		t.Errorf("no failures expected, got %v", eval.FailedIDs())
	}
}

func TestEvaluate_DependentsUnlockAfterSuccess(t *testing.T) {
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusSucceeded},
		{id: "B", status: domain.TaskStatusUnsubmitted},
		{id: "C", status: domain.TaskStatusInProgress},
	}
	g := buildGraph(t, stubs, map[string][]string{
		"B": {"A"},
		"C": {"A"},
	}, false)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(eval.Ready) != 1 || eval.Ready[0].ID() != "B" {
		t.Errorf("expected B ready, got %v", readyIDs(eval))
	}
	if g.PipelineStatus(eval) != domain.PipelineRunning {
		t.Error("pipeline should still be running")
	}
}

func TestEvaluate_FailedWithBudgetIsReadyAgain(t *testing.T) {
	// retries < maxRetries — задача возвращается в ready.
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusFailed, retries: 1, maxRetries: 2},
	}
	g := buildGraph(t, stubs, nil, false)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(eval.Ready) != 1 {
		t.Errorf("failed task with remaining budget must be ready, got %v", readyIDs(eval))
	}
	if len(eval.Failed) != 0 {
		t.Errorf("task is not permanently failed yet, got %v", eval.FailedIDs())
	}
}

func TestEvaluate_ExhaustedBudgetIsPermanent(t *testing.T) {
	// retries == maxRetries — окончательный сбой, ready и failed
	// не пересекаются.
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusFailed, retries: 2, maxRetries: 2},
	}
	g := buildGraph(t, stubs, nil, false)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(eval.Ready) != 0 {
		t.Errorf("exhausted task must not be ready, got %v", readyIDs(eval))
	}
	if len(eval.Failed) != 1 || eval.FailedIDs()[0] != "A" {
		t.Errorf("expected A permanently failed, got %v", eval.FailedIDs())
	}
}

func TestEvaluate_FailedDependencyBlocksDependents(t *testing.T) {
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusFailed, retries: 1, maxRetries: 1},
		{id: "B", status: domain.TaskStatusUnsubmitted},
	}
	g := buildGraph(t, stubs, map[string][]string{"B": {"A"}}, false)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(eval.Ready) != 0 {
		t.Errorf("B must stay blocked behind failed A, got %v", readyIDs(eval))
	}
	if g.PipelineStatus(eval) != domain.PipelineFailed {
		t.Error("pipeline should be failed")
	}
}

func TestEvaluate_StatusErrorAborts(t *testing.T) {
	bad := errors.New("protocol drift")
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusSucceeded},
		{id: "B", statusErr: bad},
	}
	g := buildGraph(t, stubs, nil, false)

	_, err := g.Evaluate(context.Background())
	if !errors.Is(err, bad) {
		t.Fatalf("expected wrapped status error, got %v", err)
	}
}

func TestPipelineStatus_Order(t *testing.T) {
	// Сбой и незавершённость одновременно: FAILED побеждает.
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusFailed, retries: 1, maxRetries: 1},
		{id: "B", status: domain.TaskStatusInProgress},
	}
	g := buildGraph(t, stubs, nil, false)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PipelineStatus(eval) != domain.PipelineFailed {
		t.Error("failure check must precede the completeness check")
	}
}

func TestPipelineStatus_AllSucceeded(t *testing.T) {
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusSucceeded},
		{id: "B", status: domain.TaskStatusSucceeded},
	}
	g := buildGraph(t, stubs, map[string][]string{"B": {"A"}}, false)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PipelineStatus(eval) != domain.PipelineSucceeded {
		t.Error("expected SUCCEEDED when every task succeeded")
	}
}

func TestPipelineStatus_PartialFailureKeepsRunning(t *testing.T) {
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusFailed, retries: 1, maxRetries: 1},
		{id: "B", status: domain.TaskStatusInProgress},
	}
	g := buildGraph(t, stubs, nil, true)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PipelineStatus(eval) != domain.PipelineRunning {
		t.Error("partial failure must not fail the pipeline")
	}
}

func TestPipelineStatus_PartialFailureResolves(t *testing.T) {
	// При allowPartialFailure окончательно упавшая задача не держит
	// пайплайн в RUNNING вечно.
	stubs := []*stubTask{
		{id: "A", status: domain.TaskStatusFailed, retries: 1, maxRetries: 1},
		{id: "B", status: domain.TaskStatusSucceeded},
	}
	g := buildGraph(t, stubs, nil, true)

	eval, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PipelineStatus(eval) != domain.PipelineSucceeded {
		t.Error("pipeline with only permanent failures left must resolve")
	}

	// Зависимые от упавшей задачи при этом не добегут — и это сбой
	// всё же не маскирует: они останутся UNSUBMITTED и пайплайн
	// останется RUNNING, пока их тоже не отнесут к недостижимым.
	stubs = append(stubs, &stubTask{id: "C", status: domain.TaskStatusUnsubmitted})
	g = buildGraph(t, stubs, map[string][]string{"C": {"B"}}, true)

	eval, err = g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PipelineStatus(eval) != domain.PipelineRunning {
		t.Error("pipeline with reachable unfinished work must keep running")
	}
}

func TestEvaluate_IndependentBranches(t *testing.T) {
	// A и B независимы и готовы сразу; C ждёт только A.
	a := &stubTask{id: "A", status: domain.TaskStatusUnsubmitted}
	b := &stubTask{id: "B", status: domain.TaskStatusUnsubmitted}
	c := &stubTask{id: "C", status: domain.TaskStatusUnsubmitted}
	g := buildGraph(t, []*stubTask{a, b, c}, map[string][]string{"C": {"A"}}, false)

	ctx := context.Background()

	eval, _ := g.Evaluate(ctx)
	if got := readyIDs(eval); len(got) != 2 {
		t.Fatalf("tick 1: expected [A B], got %v", got)
	}

	// Успех A открывает C независимо от судьбы B.
	a.status = domain.TaskStatusSucceeded
	b.status = domain.TaskStatusInProgress
	eval, _ = g.Evaluate(ctx)
	if got := readyIDs(eval); len(got) != 1 || got[0] != "C" {
		t.Fatalf("tick 2: expected [C], got %v", got)
	}
}

func TestEvaluate_DiamondScenario(t *testing.T) {
	// A → B, A → C, {B,C} → D — полный жизненный цикл через снимки.
	a := &stubTask{id: "A", status: domain.TaskStatusUnsubmitted}
	b := &stubTask{id: "B", status: domain.TaskStatusUnsubmitted}
	c := &stubTask{id: "C", status: domain.TaskStatusUnsubmitted}
	d := &stubTask{id: "D", status: domain.TaskStatusUnsubmitted}
	g := buildGraph(t, []*stubTask{a, b, c, d}, map[string][]string{
		"B": {"A"},
		"C": {"A"},
		"D": {"B", "C"},
	}, false)

	ctx := context.Background()

	eval, _ := g.Evaluate(ctx)
	if got := readyIDs(eval); len(got) != 1 || got[0] != "A" {
		t.Fatalf("tick 1: expected [A], got %v", got)
	}

	a.status = domain.TaskStatusSucceeded
	eval, _ = g.Evaluate(ctx)
	if got := readyIDs(eval); len(got) != 2 {
		t.Fatalf("tick 2: expected [B C], got %v", got)
	}

	b.status = domain.TaskStatusSucceeded
	c.status = domain.TaskStatusInProgress
	eval, _ = g.Evaluate(ctx)
	if got := readyIDs(eval); len(got) != 0 {
		t.Fatalf("tick 3: D must wait for C, got %v", got)
	}

	c.status = domain.TaskStatusSucceeded
	eval, _ = g.Evaluate(ctx)
	if got := readyIDs(eval); len(got) != 1 || got[0] != "D" {
		t.Fatalf("tick 4: expected [D], got %v", got)
	}

	d.status = domain.TaskStatusSucceeded
	eval, _ = g.Evaluate(ctx)
	if g.PipelineStatus(eval) != domain.PipelineSucceeded {
		t.Error("pipeline should be complete")
	}
}

func readyIDs(eval *Evaluation) []string {
	ids := make([]string, 0, len(eval.Ready))
	for _, t := range eval.Ready {
		ids = append(ids, t.ID())
	}
	return ids
}
