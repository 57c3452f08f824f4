package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/shaiso/Conveyor/internal/domain"
)

// Load разбирает control-файл в список типизированных дескрипторов.
//
// Каждая секция — одна задача; имя секции — её уникальный ID.
// Обязательность полей проверяется здесь, до построения графа:
// некорректный дескриптор — ConfigurationError, а не сбой на
// первом тике.
func Load(path string) ([]domain.TaskDef, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load control file %s: %w", path, err)
	}

	var defs []domain.TaskDef
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		def, err := parseSection(section)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		return nil, ErrEmptyControlFile
	}
	return defs, nil
}

// parseSection превращает одну секцию в дескриптор задачи.
func parseSection(section *ini.Section) (domain.TaskDef, error) {
	id := section.Name()

	def := domain.TaskDef{
		ID:      id,
		Depends: strings.Fields(section.Key("depends").String()),
		Tier:    section.Key("tier").String(),
		Title:   section.Key("title").String(),
		Name:    section.Key("name").String(),
	}

	maxRetries, err := parseMaxRetries(section)
	if err != nil {
		return domain.TaskDef{}, err
	}
	def.MaxRetries = maxRetries

	// Тип по умолчанию — run.
	taskType := strings.ToLower(section.Key("type").String())
	if taskType == "" {
		taskType = "run"
	}

	switch taskType {
	case "run":
		return parseRun(section, def)
	case "model":
		return parseModel(section, def)
	case "app":
		def.Kind = domain.KindApp
		return def, nil
	default:
		return domain.TaskDef{}, NewConfigurationError(id, "type",
			fmt.Sprintf("unknown task type %q, must be one of run, model, app", taskType),
			ErrUnknownTaskType)
	}
}

// parseRun разбирает run-задачу: обычную или по расписанию.
func parseRun(section *ini.Section, def domain.TaskDef) (domain.TaskDef, error) {
	id := section.Name()

	command := section.Key("command").String()
	if command == "" {
		return domain.TaskDef{}, NewConfigurationError(id, "command",
			"run task requires a command", ErrMissingCommand)
	}

	direct, err := parseBool(section, "direct")
	if err != nil {
		return domain.TaskDef{}, err
	}
	def.Direct = direct

	cronExpr := section.Key("cron_string").String()
	if cronExpr == "" {
		def.Kind = domain.KindRun
		// direct-команда уходит в shell как есть, без токенизации.
		if direct {
			def.Command = []string{command}
		} else {
			def.Command = strings.Fields(command)
		}
		return def, nil
	}

	// cron_string превращает run в регистрацию расписания.
	if err := ValidateCronExpr(cronExpr); err != nil {
		return domain.TaskDef{}, NewConfigurationError(id, "cron_string", err.Error(), err)
	}

	def.Kind = domain.KindScheduledRun
	def.Command = []string{command}
	def.CronExpr = cronExpr
	def.User = section.Key("user").String()
	def.Timezone = section.Key("timezone").String()
	return def, nil
}

// parseModel разбирает задачу публикации модели.
func parseModel(section *ini.Section, def domain.TaskDef) (domain.TaskDef, error) {
	id := section.Name()

	file := section.Key("file").String()
	function := section.Key("function").String()
	if file == "" || function == "" {
		return domain.TaskDef{}, NewConfigurationError(id, "file",
			"file and function are mandatory fields for a model task", ErrMissingModelSource)
	}

	deployByName, err := parseBool(section, "deploy_by_name")
	if err != nil {
		return domain.TaskDef{}, err
	}

	def.Kind = domain.KindModel
	def.File = file
	def.Function = function
	def.Description = section.Key("description").String()
	def.ModelID = section.Key("model_id").String()
	def.Environment = section.Key("environment").String()
	def.DeployByName = deployByName
	return def, nil
}

// parseBool разбирает булево поле в словаре исторических
// control-файлов: true/yes/on/1 и false/no/off/0. Отсутствующее
// поле — false.
func parseBool(section *ini.Section, field string) (bool, error) {
	if !section.HasKey(field) {
		return false, nil
	}

	raw := section.Key(field).String()
	switch strings.ToLower(raw) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, NewConfigurationError(section.Name(), field,
			fmt.Sprintf("%s must be a boolean (true/false, yes/no, on/off, 1/0), got %q", field, raw),
			ErrInvalidBool)
	}
}

// parseMaxRetries читает retry-бюджет задачи.
func parseMaxRetries(section *ini.Section) (int, error) {
	if !section.HasKey("max_retries") {
		return 0, nil
	}

	value, err := section.Key("max_retries").Int()
	if err != nil || value < 0 {
		return 0, NewConfigurationError(section.Name(), "max_retries",
			fmt.Sprintf("max_retries must be a non-negative integer, got %q", section.Key("max_retries").String()),
			ErrInvalidRetries)
	}
	return value, nil
}
