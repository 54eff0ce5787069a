package handler

import (
	"group-sync-service/api"
	"group-sync-service/internal/domain"

	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*SyncHandler
	*SSHHandler
}

func NewAPIHandler(
	syncUseCase domain.SyncUseCase,
	keyUseCase domain.AuthorizedKeyUseCase,
	logger *logrus.Logger,
) api.ServerInterface {

	return &APIHandler{
		SyncHandler: NewSyncHandler(syncUseCase, logger),
		SSHHandler:  NewSSHHandler(keyUseCase, logger),
	}
}
