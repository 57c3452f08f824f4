package platform

import "context"

// Noop — клиент-заглушка, который не делает удалённых вызовов.
//
// Используется для офлайн-проверки control-файла: граф собирается
// и валидируется, но ни одна задача не отправляется.
type Noop struct{}

var _ Client = Noop{}

func (Noop) Authenticate(context.Context) error { return nil }

func (Noop) StartRun(context.Context, []string, RunOptions) (string, error) { return "", nil }

func (Noop) RunStatus(context.Context, string) (string, error) { return "", nil }

func (Noop) RegisterScheduledRun(context.Context, ScheduleSpec) error { return nil }

func (Noop) ResolveTier(context.Context, string) (string, error) { return "", nil }

func (Noop) PublishModel(context.Context, ModelSpec) (ModelRef, error) { return ModelRef{}, nil }

func (Noop) PublishModelVersion(context.Context, string, ModelSpec) (ModelRef, error) {
	return ModelRef{}, nil
}

func (Noop) ResolveModel(context.Context, string) (string, error) { return "", nil }

func (Noop) ModelBuildStatus(context.Context, ModelRef) (string, error) { return "", nil }

func (Noop) CreateApp(context.Context, string) (string, error) { return "", nil }

func (Noop) StartApp(context.Context, string, string) error { return nil }

func (Noop) AppStatus(context.Context, string) (string, error) { return "", nil }

func (Noop) UnpublishApps(context.Context) error { return nil }
