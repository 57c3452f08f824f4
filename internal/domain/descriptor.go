package domain

// TaskKind — тип задачи в control-файле.
type TaskKind string

const (
	// KindRun — batch-задача (разовое выполнение команды).
	KindRun TaskKind = "run"

	// KindScheduledRun — регистрация задачи по расписанию (cron).
	// В control-файле это type=run с заполненным cron_string.
	KindScheduledRun TaskKind = "scheduled_run"

	// KindModel — публикация модели (или новой версии существующей).
	KindModel TaskKind = "model"

	// KindApp — развёртывание приложения.
	KindApp TaskKind = "app"
)

// TaskDef — строго типизированный дескриптор задачи из control-файла.
//
// Каждая секция control-файла превращается ровно в один TaskDef.
// Обязательность полей зависит от Kind и проверяется парсером
// до построения графа (fail fast, а не на первом тике).
type TaskDef struct {
	// ID — уникальный идентификатор задачи (имя секции).
	ID string

	// Kind — тип задачи.
	Kind TaskKind

	// Depends — упорядоченный список ID задач-предшественников.
	Depends []string

	// MaxRetries — бюджет повторных отправок. Для scheduled run
	// игнорируется: регистрация делается одной попыткой.
	MaxRetries int

	// Command — команда для run: либо разбитая по пробелам,
	// либо единственный элемент с исходной строкой (direct/cron).
	Command []string

	// Direct — передавать команду в shell как есть, без токенизации.
	Direct bool

	// Tier — человекочитаемое имя hardware tier ("Small", "Large" ...).
	Tier string

	// Title — заголовок выполнения (по умолчанию ID).
	Title string

	// CronExpr — crontab-выражение для scheduled run.
	CronExpr string

	// User — пользователь, от имени которого регистрируется расписание.
	User string

	// Timezone — IANA-зона расписания. По умолчанию UTC.
	Timezone string

	// Name — имя модели или приложения.
	Name string

	// Description — описание модели / сводка изменений версии.
	Description string

	// File — файл с кодом модели.
	File string

	// Function — функция-обработчик модели.
	Function string

	// ModelID — ID существующей модели; задан — публикуется новая версия.
	ModelID string

	// DeployByName — найти существующую модель по имени вместо model_id.
	DeployByName bool

	// Environment — ID окружения для сборки модели.
	Environment string
}
