// Package engine содержит граф зависимостей пайплайна.
//
// Включает:
//   - graph.go    — Graph, полный проход Evaluate и агрегатный PipelineStatus
//   - validate.go — структурная валидация до первого тика (циклы, зависимости)
//
// Граф владеет задачами и ничего не знает об источнике дескрипторов
// и о цикле выполнения: control-файл разбирает internal/config,
// тиками управляет internal/orchestrator.
package engine
