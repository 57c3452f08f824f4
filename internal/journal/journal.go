package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema — таблица журнала. Журнал append-only: строки никогда
// не обновляются и не используются для восстановления состояния.
const schema = `
CREATE TABLE IF NOT EXISTS pipeline_events (
	id          UUID PRIMARY KEY,
	pipeline_id UUID NOT NULL,
	task_id     TEXT,
	kind        TEXT,
	event       TEXT NOT NULL,
	detail      TEXT,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS pipeline_events_pipeline_idx
	ON pipeline_events (pipeline_id, created_at);
`

// Recorder — журнал событий одного выполнения пайплайна.
type Recorder struct {
	pool       *pgxpool.Pool
	pipelineID uuid.UUID
	logger     *slog.Logger
}

// Open подключается к Postgres и готовит схему журнала.
// Каждому выполнению пайплайна присваивается собственный pipeline_id.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Recorder, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 4
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		pool:       pool,
		pipelineID: uuid.New(),
		logger:     logger,
	}

	logger.Info("pipeline journal opened", "pipeline_id", r.pipelineID)
	return r, nil
}

// PipelineID возвращает идентификатор текущего выполнения.
func (r *Recorder) PipelineID() uuid.UUID {
	return r.pipelineID
}

// RecordSubmission пишет событие отправки задачи.
func (r *Recorder) RecordSubmission(ctx context.Context, taskID, kind string, attempt int) error {
	detail := fmt.Sprintf("attempt=%d", attempt)
	return r.insert(ctx, taskID, kind, "submission", detail)
}

// RecordOutcome пишет терминальный исход пайплайна.
func (r *Recorder) RecordOutcome(ctx context.Context, status string, failedIDs []string) error {
	detail := status
	if len(failedIDs) > 0 {
		detail += ": failed tasks: " + strings.Join(failedIDs, ", ")
	}
	return r.insert(ctx, "", "", "outcome", detail)
}

// insert добавляет одну строку журнала.
func (r *Recorder) insert(ctx context.Context, taskID, kind, event, detail string) error {
	query := `
		INSERT INTO pipeline_events (id, pipeline_id, task_id, kind, event, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		uuid.New(),
		r.pipelineID,
		taskID,
		kind,
		event,
		detail,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert pipeline event: %w", err)
	}
	return nil
}

// Close закрывает соединение с БД.
func (r *Recorder) Close() {
	r.pool.Close()
}
