package config

import "errors"

// Ошибки разбора control-файла.
var (
	// ErrEmptyControlFile — control-файл не содержит ни одной задачи.
	ErrEmptyControlFile = errors.New("control file has no tasks")

	// ErrUnknownTaskType — секция ссылается на неизвестный тип задачи.
	ErrUnknownTaskType = errors.New("unknown task type")

	// ErrMissingCommand — run-задача без команды.
	ErrMissingCommand = errors.New("run task requires a command")

	// ErrMissingModelSource — model-задача без file и function.
	ErrMissingModelSource = errors.New("model task requires file and function")

	// ErrInvalidCron — cron_string не разбирается.
	ErrInvalidCron = errors.New("invalid cron expression")

	// ErrInvalidRetries — max_retries не число или отрицательный.
	ErrInvalidRetries = errors.New("invalid max_retries")

	// ErrInvalidBool — булево поле вне словаря
	// true/false/yes/no/on/off/1/0.
	ErrInvalidBool = errors.New("invalid boolean value")

	// ErrDuplicateTask — несколько задач с одинаковым ID.
	ErrDuplicateTask = errors.New("duplicate task ID")
)

// ConfigurationError — ошибка дескриптора задачи с контекстом.
// Выявляется при загрузке control-файла, до начала планирования.
type ConfigurationError struct {
	Section string // секция control-файла (ID задачи)
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ConfigurationError) Error() string {
	if e.Section != "" {
		return "task " + e.Section + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError создаёт новую ошибку конфигурации.
func NewConfigurationError(section, field, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Section: section,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
