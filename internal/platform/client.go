package platform

import "context"

// Client — единственная capability, через которую ядро общается
// с платформой выполнения. Полностью подменяемый интерфейс:
// в тестах используется fake, в продакшене — HTTPClient.
//
// Все строковые статусы возвращаются в нижнем регистре так,
// как их отдаёт платформа; перевод в канонические статусы
// делает internal/task.
type Client interface {
	// Authenticate проверяет учётные данные и привязывает сессию
	// к проекту. Вызывается один раз при старте процесса.
	Authenticate(ctx context.Context) error

	// StartRun запускает batch-задачу и возвращает opaque handle запуска.
	StartRun(ctx context.Context, command []string, opts RunOptions) (string, error)

	// RunStatus возвращает живой статус запуска по handle.
	RunStatus(ctx context.Context, runID string) (string, error)

	// RegisterScheduledRun регистрирует повторяющуюся задачу по cron.
	// Возвращает только успех/ошибку — текущего запуска не существует.
	RegisterScheduledRun(ctx context.Context, spec ScheduleSpec) error

	// ResolveTier переводит человекочитаемое имя hardware tier
	// в платформенный идентификатор. Пустое имя — пустой ID без ошибки.
	ResolveTier(ctx context.Context, name string) (string, error)

	// PublishModel публикует новую модель и возвращает её идентификаторы.
	PublishModel(ctx context.Context, spec ModelSpec) (ModelRef, error)

	// PublishModelVersion публикует новую версию существующей модели.
	PublishModelVersion(ctx context.Context, modelID string, spec ModelSpec) (ModelRef, error)

	// ResolveModel находит ID существующей модели по имени.
	ResolveModel(ctx context.Context, name string) (string, error)

	// ModelBuildStatus возвращает статус сборки версии модели.
	ModelBuildStatus(ctx context.Context, ref ModelRef) (string, error)

	// CreateApp создаёт приложение в проекте и возвращает его ID.
	CreateApp(ctx context.Context, name string) (string, error)

	// StartApp запускает созданное приложение. tierID может быть пустым —
	// тогда используется tier проекта по умолчанию.
	StartApp(ctx context.Context, appID, tierID string) error

	// AppStatus возвращает живой статус приложения.
	AppStatus(ctx context.Context, appID string) (string, error)

	// UnpublishApps снимает с публикации текущее приложение проекта
	// (платформа допускает одно приложение на проект).
	UnpublishApps(ctx context.Context) error
}

// RunOptions — параметры запуска batch-задачи.
type RunOptions struct {
	// Direct — передать команду в shell как есть.
	Direct bool

	// Tier — человекочитаемое имя hardware tier. Пустое — tier проекта.
	Tier string

	// Title — заголовок запуска.
	Title string
}

// ScheduleSpec — параметры регистрации расписания.
type ScheduleSpec struct {
	// Title — имя расписания.
	Title string

	// Command — команда одной строкой (расписания всегда direct).
	Command string

	// CronExpr — crontab-выражение.
	CronExpr string

	// Tier — человекочитаемое имя hardware tier.
	Tier string

	// Timezone — IANA-зона расписания.
	Timezone string

	// User — пользователь, от имени которого регистрируется расписание.
	// Пустой — владелец сессии.
	User string
}

// ModelSpec — параметры публикации модели.
type ModelSpec struct {
	// File — файл с кодом модели.
	File string

	// Function — функция-обработчик запросов.
	Function string

	// Name — имя модели.
	Name string

	// Description — описание модели или сводка изменений версии.
	Description string

	// EnvironmentID — ID окружения для сборки.
	EnvironmentID string
}

// ModelRef — идентификаторы опубликованной модели.
type ModelRef struct {
	// ModelID — ID логической модели. Переживает retry:
	// повторная отправка публикует версию, а не дубликат модели.
	ModelID string

	// VersionID — ID конкретной версии (сборки).
	VersionID string
}
