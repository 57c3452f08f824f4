// Package telemetry обеспечивает наблюдаемость пайплайна.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики
//
// Формат и уровень логов настраиваются переменными LOG_FORMAT
// и LOG_LEVEL; метрики экспортируются на /metrics endpoint,
// если CLI запущен с флагом --metrics-addr.
package telemetry
