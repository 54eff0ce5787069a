package handler

import (
	"net/http"

	"group-sync-service/api"
	"group-sync-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SyncHandler обрабатывает HTTP-запросы запуска синхронизации
type SyncHandler struct {
	*BaseHandler
	syncUseCase domain.SyncUseCase
}

// NewSyncHandler создает новый экземпляр SyncHandler
func NewSyncHandler(syncUseCase domain.SyncUseCase, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		BaseHandler: NewBaseHandler(logger),
		syncUseCase: syncUseCase,
	}
}

// GetSyncOutline запускает проход синхронизации Pocket ID -> Outline
func (h *SyncHandler) GetSyncOutline(c echo.Context) error {
	logEntry := h.logRequest(c, "sync_outline")
	logEntry.Info("Syncing Pocket ID groups to Outline")

	result, err := h.syncUseCase.Sync(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Sync failed")
		status, body := errorResponse(err)
		return c.JSON(status, body)
	}

	logEntry.WithFields(logrus.Fields{
		"run_id":  result.Run.ID,
		"status":  result.Run.Status,
		"actions": result.Report.Total(),
	}).Info("Sync finished successfully")
	return c.JSON(http.StatusOK, api.SyncStatus{Status: "ok"})
}

// GetSyncRuns возвращает историю проходов синхронизации
func (h *SyncHandler) GetSyncRuns(c echo.Context, params api.GetSyncRunsParams) error {
	logEntry := h.logRequest(c, "list_sync_runs")

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	runs, err := h.syncUseCase.ListRuns(c.Request().Context(), limit)
	if err != nil {
		logEntry.WithError(err).Error("Failed to list sync runs")
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("runs_count", len(runs)).Info("Sync runs retrieved")
	return c.JSON(http.StatusOK, api.SyncRunsResponse{Runs: toAPISyncRuns(runs)})
}
