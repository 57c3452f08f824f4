package task

import (
	"context"
	"log/slog"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// ScheduledRun — регистрация повторяющейся задачи по cron.
//
// Fire-and-forget: успешная регистрация сразу переводит задачу в
// SUCCEEDED, текущего запуска не существует и опрашивать нечего.
// Retry-бюджет не имеет смысла — регистрация делается одной попыткой.
type ScheduledRun struct {
	base

	command  string
	cronExpr string
	tier     string
	title    string
	timezone string
	user     string
}

// NewScheduledRun создаёт задачу регистрации расписания из дескриптора.
func NewScheduledRun(def domain.TaskDef, client platform.Client, logger *slog.Logger) *ScheduledRun {
	title := def.Title
	if title == "" {
		title = def.ID
	}

	// Расписания всегда direct: команда уходит одной строкой.
	command := ""
	if len(def.Command) > 0 {
		command = def.Command[0]
	}

	return &ScheduledRun{
		base:     newBase(def, 0, client, logger),
		command:  command,
		cronExpr: def.CronExpr,
		tier:     def.Tier,
		title:    title,
		timezone: def.Timezone,
		user:     def.User,
	}
}

// Kind возвращает тип задачи.
func (s *ScheduledRun) Kind() domain.TaskKind { return domain.KindScheduledRun }

// Submit регистрирует расписание на платформе.
func (s *ScheduledRun) Submit(ctx context.Context) {
	s.logger.Info("registering scheduled run",
		"title", s.title,
		"command", s.command,
		"cron", s.cronExpr,
		"tier", s.tier,
	)

	err := s.client.RegisterScheduledRun(ctx, platform.ScheduleSpec{
		Title:    s.title,
		Command:  s.command,
		CronExpr: s.cronExpr,
		Tier:     s.tier,
		Timezone: s.timezone,
		User:     s.user,
	})
	if err != nil {
		s.failSubmission(domain.KindScheduledRun, err)
		return
	}

	// Регистрация — блокирующий вызов, опрашивать нечего.
	s.status = domain.TaskStatusSucceeded

	s.logger.Info("scheduled run registered")
	telemetry.TaskSubmissions.WithLabelValues(string(domain.KindScheduledRun), "submitted").Inc()
}

// Status возвращает сохранённый статус: у расписания нет живого запуска.
func (s *ScheduledRun) Status(ctx context.Context) (domain.TaskStatus, error) {
	return s.status, nil
}
