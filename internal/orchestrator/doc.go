// Package orchestrator управляет выполнением пайплайна.
//
// Runner — однопоточный цикл: на каждом тике полный проход по графу,
// проверка агрегатного статуса, отправка готовых задач и сон.
// Локального параллелизма нет — одновременность существует только
// на удалённой платформе, где отправленные задачи выполняются
// независимо; цикл опрашивает их последовательно.
//
// Единственная точка приостановки — пауза между тиками; она же
// проверяет отмену контекста, поэтому пайплайн можно остановить
// сигналом между тиками.
package orchestrator
