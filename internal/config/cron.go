package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Парсеры cron-выражений: стандартный 5-полевой и 6-полевой
// с секундами (Quartz-стиль).
var (
	cronParser = cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	cronParserWithSeconds = cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
)

// ValidateCronExpr проверяет валидность cron-выражения.
//
// Control-файлы исторически используют Quartz-диалект: допускаются
// 6 полей (с секундами), 7-е поле года и символ "?". Перед локальной
// проверкой выражение нормализуется; на платформу оно уходит как есть.
func ValidateCronExpr(expr string) error {
	fields := strings.Fields(expr)

	if len(fields) < 5 || len(fields) > 7 {
		return fmt.Errorf("%w: %q: expected 5-7 fields, got %d", ErrInvalidCron, expr, len(fields))
	}

	// Quartz: "?" эквивалентен "*", 7-е поле — год (локально не проверяется).
	normalized := make([]string, 0, 6)
	for i, field := range fields {
		if i == 6 {
			break
		}
		if field == "?" {
			field = "*"
		}
		normalized = append(normalized, field)
	}

	parser := cronParser
	if len(normalized) == 6 {
		parser = cronParserWithSeconds
	}

	if _, err := parser.Parse(strings.Join(normalized, " ")); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidCron, expr, err)
	}
	return nil
}
