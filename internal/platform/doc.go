// Package platform описывает capability-контракт удалённой платформы
// выполнения и его HTTP-реализацию.
//
// Ядро (engine, orchestrator, task) зависит только от интерфейса Client.
// HTTPClient — продакшен-реализация поверх REST API платформы:
// авторизация по ключу, привязка сессии к проекту, ограниченный таймаут
// каждого запроса и экспоненциальный backoff на идемпотентных GET'ах.
//
// Статусы возвращаются строками словаря платформы; их перевод в
// канонические статусы делает internal/task.
package platform
