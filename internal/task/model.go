package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// Model — публикация модели.
//
// Первая успешная отправка создаёт логическую модель и захватывает её ID.
// Захваченный ID переживает retry: повторная отправка публикует новую
// версию той же модели, а не дубликат.
type Model struct {
	base

	file          string
	function      string
	name          string
	description   string
	environmentID string
	deployByName  bool

	// ref — идентификаторы опубликованной модели.
	// ModelID сохраняется между попытками.
	ref platform.ModelRef
}

// NewModel создаёт задачу публикации модели из дескриптора.
func NewModel(def domain.TaskDef, client platform.Client, logger *slog.Logger) *Model {
	name := def.Name
	if name == "" {
		name = def.ID
	}

	return &Model{
		base:          newBase(def, def.MaxRetries, client, logger),
		file:          def.File,
		function:      def.Function,
		name:          name,
		description:   def.Description,
		environmentID: def.Environment,
		deployByName:  def.DeployByName,
		ref:           platform.ModelRef{ModelID: def.ModelID},
	}
}

// Kind возвращает тип задачи.
func (m *Model) Kind() domain.TaskKind { return domain.KindModel }

// Submit публикует модель или новую версию существующей.
func (m *Model) Submit(ctx context.Context) {
	m.logger.Info("publishing model",
		"name", m.name,
		"file", m.file,
		"function", m.function,
		"environment", m.environmentID,
		"model_id", m.ref.ModelID,
	)

	// deploy_by_name: найти существующую модель по имени,
	// чтобы опубликовать версию, а не дубликат.
	if m.ref.ModelID == "" && m.deployByName {
		modelID, err := m.client.ResolveModel(ctx, m.name)
		switch {
		case err == nil:
			m.ref.ModelID = modelID
		case errors.Is(err, platform.ErrNotFound):
			// Модели ещё нет — публикуем новую.
		default:
			m.failSubmission(domain.KindModel, err)
			return
		}
	}

	spec := platform.ModelSpec{
		File:          m.file,
		Function:      m.function,
		Name:          m.name,
		Description:   m.description,
		EnvironmentID: m.environmentID,
	}

	var (
		ref platform.ModelRef
		err error
	)
	if m.ref.ModelID != "" {
		ref, err = m.client.PublishModelVersion(ctx, m.ref.ModelID, spec)
	} else {
		ref, err = m.client.PublishModel(ctx, spec)
	}
	if err != nil {
		// Захваченный ModelID не сбрасывается: следующая попытка
		// снова публикует версию той же модели.
		m.failSubmission(domain.KindModel, err)
		return
	}

	m.ref = ref
	m.status = domain.TaskStatusInProgress

	m.logger.Info("model published",
		"model_id", m.ref.ModelID,
		"version_id", m.ref.VersionID,
	)
	telemetry.TaskSubmissions.WithLabelValues(string(domain.KindModel), "submitted").Inc()
}

// Status возвращает канонический статус, опрашивая сборку версии
// только в IN_PROGRESS.
func (m *Model) Status(ctx context.Context) (domain.TaskStatus, error) {
	if m.status != domain.TaskStatusInProgress {
		return m.status, nil
	}

	apiStatus, err := m.client.ModelBuildStatus(ctx, m.ref)
	if err != nil {
		return "", fmt.Errorf("poll model %s: %w", m.id, err)
	}

	m.status = mapBuildStatus(apiStatus)
	return m.status, nil
}

// ModelRef возвращает идентификаторы опубликованной модели.
func (m *Model) ModelRef() platform.ModelRef {
	return m.ref
}
