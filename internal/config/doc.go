// Package config разбирает control-файл пайплайна и собирает из него граф.
//
// Формат файла — INI: одна секция на задачу, имя секции — её ID.
// Поле type выбирает вид задачи (run, model, app; по умолчанию run),
// наличие cron_string превращает run в регистрацию расписания.
//
// Структура:
//   - parser.go  — Load, разбор секций в доменные дескрипторы
//   - cron.go    — валидация cron-выражений, включая Quartz-формат
//   - builder.go — BuildGraph, сборка и валидация engine.Graph
//
// Все ошибки разбора — ConfigurationError с указанием секции и поля,
// поэтому некорректный файл отбрасывается целиком при старте.
package config
