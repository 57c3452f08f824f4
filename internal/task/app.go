package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// App — развёртывание приложения.
//
// Платформа допускает одно приложение на проект, поэтому отправка
// сначала снимает с публикации текущее приложение, затем создаёт
// и запускает новое. Операции последовательные и без отката:
// сбой между unpublish и start оставляет проект без приложения.
type App struct {
	base

	name string
	tier string

	// appID — ID приложения, созданного последней отправкой.
	appID string
}

// NewApp создаёт задачу развёртывания приложения из дескриптора.
func NewApp(def domain.TaskDef, client platform.Client, logger *slog.Logger) *App {
	name := def.Name
	if name == "" {
		name = def.ID
	}

	return &App{
		base: newBase(def, def.MaxRetries, client, logger),
		name: name,
		tier: def.Tier,
	}
}

// Kind возвращает тип задачи.
func (a *App) Kind() domain.TaskKind { return domain.KindApp }

// Submit развёртывает приложение: unpublish → create → start.
func (a *App) Submit(ctx context.Context) {
	a.logger.Info("deploying app", "name", a.name, "tier", a.tier)

	if err := a.client.UnpublishApps(ctx); err != nil {
		a.failSubmission(domain.KindApp, fmt.Errorf("unpublish apps: %w", err))
		return
	}

	appID, err := a.client.CreateApp(ctx, a.name)
	if err != nil {
		a.failSubmission(domain.KindApp, fmt.Errorf("create app: %w", err))
		return
	}

	tierID := ""
	if a.tier != "" {
		tierID, err = a.client.ResolveTier(ctx, a.tier)
		if err != nil {
			a.failSubmission(domain.KindApp, err)
			return
		}
	}

	if err := a.client.StartApp(ctx, appID, tierID); err != nil {
		a.failSubmission(domain.KindApp, fmt.Errorf("start app: %w", err))
		return
	}

	a.appID = appID
	a.status = domain.TaskStatusInProgress

	a.logger.Info("app deployment started", "app_id", appID)
	telemetry.TaskSubmissions.WithLabelValues(string(domain.KindApp), "submitted").Inc()
}

// Status возвращает канонический статус, опрашивая приложение
// только в IN_PROGRESS.
func (a *App) Status(ctx context.Context) (domain.TaskStatus, error) {
	if a.status != domain.TaskStatusInProgress {
		return a.status, nil
	}

	apiStatus, err := a.client.AppStatus(ctx, a.appID)
	if err != nil {
		return "", fmt.Errorf("poll app %s: %w", a.id, err)
	}

	status, err := mapAppStatus(a.id, apiStatus)
	if err != nil {
		return "", err
	}

	a.status = status
	return status, nil
}
