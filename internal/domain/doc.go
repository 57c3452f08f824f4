// Package domain содержит общие типы предметной области:
// канонические статусы задач и пайплайна, типы задач
// и строго типизированные дескрипторы из control-файла.
//
// Пакет не имеет зависимостей от остальных internal-пакетов.
package domain
