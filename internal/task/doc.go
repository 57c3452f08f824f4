// Package task реализует машину состояний задач пайплайна.
//
// Четыре канонических состояния:
//
//	UNSUBMITTED → IN_PROGRESS → SUCCEEDED
//	                          ↘ FAILED → IN_PROGRESS (retry, пока есть бюджет)
//
// Закрытый набор типов задач:
//   - Run          — batch-запуск команды, завершение по опросу статуса
//   - ScheduledRun — регистрация cron-расписания, fire-and-forget
//   - Model        — публикация модели (версии — при retry), опрос сборки
//   - App          — unpublish → create → start, опрос статуса приложения
//
// Все удалённые эффекты делегируются platform.Client. Ошибки отправки
// никогда не покидают Submit — они поглощаются переходом в FAILED
// с инкрементом счётчика попыток. Незнакомый статус платформы при
// опросе — *ProtocolError, фатальная ошибка всего пайплайна.
package task
