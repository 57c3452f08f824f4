// Package cli содержит команды конвейера.
//
// Команды:
//   - run.go   — запуск пайплайна из control-файла (цикл до исхода)
//   - check.go — офлайн-валидация control-файла и графа
//
// Точка входа cmd/conveyor собирает из них корневую cobra-команду;
// параметры подключения к платформе берутся из окружения
// (PLATFORM_URL, PLATFORM_API_KEY, PLATFORM_PROJECT_OWNER,
// PLATFORM_PROJECT), журнал — из DB_URL или флага --journal-dsn.
package cli
