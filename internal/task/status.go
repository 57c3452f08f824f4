package task

import (
	"strings"

	"github.com/shaiso/Conveyor/internal/domain"
)

// mapRunStatus переводит словарь статусов запуска в канонический статус.
func mapRunStatus(taskID, apiStatus string) (domain.TaskStatus, error) {
	switch strings.ToLower(apiStatus) {
	case "succeeded":
		return domain.TaskStatusSucceeded, nil
	case "error", "failed":
		return domain.TaskStatusFailed, nil
	case "preparing", "running", "pending", "finishing", "building":
		return domain.TaskStatusInProgress, nil
	default:
		return "", &ProtocolError{TaskID: taskID, Status: apiStatus}
	}
}

// mapAppStatus переводит словарь статусов приложения в канонический статус.
// Работающее приложение считается успешно развёрнутым.
func mapAppStatus(taskID, apiStatus string) (domain.TaskStatus, error) {
	switch strings.ToLower(apiStatus) {
	case "running":
		return domain.TaskStatusSucceeded, nil
	case "error", "failed":
		return domain.TaskStatusFailed, nil
	case "preparing", "pending", "finishing":
		return domain.TaskStatusInProgress, nil
	default:
		return "", &ProtocolError{TaskID: taskID, Status: apiStatus}
	}
}

// mapBuildStatus переводит статус сборки модели в канонический статус.
// Словарь сборки открытый: всё, что не building/complete, трактуется
// как продолжающаяся сборка, а не ошибка протокола.
func mapBuildStatus(apiStatus string) domain.TaskStatus {
	switch strings.ToLower(apiStatus) {
	case "complete":
		return domain.TaskStatusSucceeded
	case "building":
		return domain.TaskStatusInProgress
	default:
		return domain.TaskStatusInProgress
	}
}
