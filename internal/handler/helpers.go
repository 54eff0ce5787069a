package handler

import (
	"errors"
	"net/http"

	"group-sync-service/api"
	"group-sync-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели

func toAPISyncRun(run *domain.SyncRun) api.SyncRun {
	result := api.SyncRun{
		RunId:              run.ID,
		StartedAt:          run.StartedAt,
		FinishedAt:         run.FinishedAt,
		Status:             api.SyncRunStatus(run.Status),
		GroupsCreated:      run.GroupsCreated,
		GroupsDeleted:      run.GroupsDeleted,
		MembershipsAdded:   run.MembershipsAdded,
		MembershipsRemoved: run.MembershipsRemoved,
		UnmatchedUsers:     run.UnmatchedUsers,
	}
	if run.Reason != "" {
		reason := run.Reason
		result.Reason = &reason
	}
	if run.Error != "" {
		msg := run.Error
		result.Error = &msg
	}
	return result
}

func toAPISyncRuns(runs []*domain.SyncRun) []api.SyncRun {
	result := make([]api.SyncRun, len(runs))
	for i, run := range runs {
		result[i] = toAPISyncRun(run)
	}
	return result
}

func toErrorResponse(code, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Error: struct {
			Code    api.ErrorResponseErrorCode `json:"code"`
			Message string                     `json:"message"`
		}{
			Code:    api.ErrorResponseErrorCode(code),
			Message: message,
		},
	}
}

func toAPIErrorResponse(httpErr domain.HTTPError) api.ErrorResponse {
	return toErrorResponse(httpErr.Code, httpErr.Message)
}

func getHTTPStatusCode(err error) int {
	var transportErr *domain.TransportError
	var applyErr *domain.ApplyError

	switch {
	// Service Unavailable (503) - защита от пустого снимка
	case domain.IsAbort(err):
		return http.StatusServiceUnavailable

	// Not Found (404)
	case errors.Is(err, domain.ErrSSHLookupDisabled):
		return http.StatusNotFound

	// Bad Gateway (502) - сбой внешней системы
	case errors.As(err, &applyErr), errors.As(err, &transportErr):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// errorResponse возвращает HTTP статус и тело ошибки для domain ошибки.
func errorResponse(err error) (int, api.ErrorResponse) {
	if httpErr, exists := domain.ToHTTPError(err); exists {
		return getHTTPStatusCode(err), toAPIErrorResponse(httpErr)
	}
	return http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error())
}
