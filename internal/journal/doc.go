// Package journal ведёт опциональный append-only журнал событий
// пайплайна в Postgres: отправки задач и терминальный исход.
//
// Журнал — история для аудита, а не состояние: пайплайн никогда
// не читает из него и не восстанавливается по нему после рестарта.
// Включается переменной DB_URL (или флагом --journal-dsn); без неё
// пайплайн работает без журнала.
package journal
