package reconcile

import (
	"context"
	"errors"
	"fmt"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Applier применяет действия к Outline по одному, разрешая имя группы в
// идентификатор непосредственно перед вызовом.
type Applier struct {
	directory domain.TargetDirectory
	logger    logrus.FieldLogger
}

// NewApplier создает новый экземпляр Applier.
func NewApplier(directory domain.TargetDirectory, logger logrus.FieldLogger) *Applier {
	return &Applier{
		directory: directory,
		logger:    logger,
	}
}

// Apply выполняет одно действие. Возвращает false, если действие оказалось
// ненужным (группа уже существует или уже удалена).
func (a *Applier) Apply(ctx context.Context, action domain.Action) (bool, error) {
	applied, err := a.apply(ctx, action)
	if err != nil {
		metrics.ActionsTotal.WithLabelValues(string(action.Kind), "error").Inc()
		return false, &domain.ApplyError{Action: action, Err: err}
	}

	outcome := "applied"
	if !applied {
		outcome = "noop"
	}
	metrics.ActionsTotal.WithLabelValues(string(action.Kind), outcome).Inc()
	return applied, nil
}

func (a *Applier) apply(ctx context.Context, action domain.Action) (bool, error) {
	groupID, found, err := a.directory.FindGroupIDByName(ctx, action.Group)
	if err != nil {
		return false, fmt.Errorf("failed to resolve group: %w", err)
	}

	switch action.Kind {
	case domain.ActionCreateGroup:
		if found {
			return false, nil
		}
		_, err := a.directory.CreateGroup(ctx, action.Group)
		return err == nil, err

	case domain.ActionDeleteGroup:
		if !found {
			return false, nil
		}
		return ignoreNotFound(a.directory.DeleteGroup(ctx, groupID))

	case domain.ActionAddMembership:
		if !found {
			return false, domain.ErrGroupNotFound
		}
		err := a.directory.AddMember(ctx, groupID, action.UserID)
		return err == nil, err

	case domain.ActionRemoveMembership:
		if !found {
			return false, nil
		}
		return ignoreNotFound(a.directory.RemoveMember(ctx, groupID, action.UserID))

	default:
		return false, fmt.Errorf("unknown action kind %q", action.Kind)
	}
}

func ignoreNotFound(err error) (bool, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ApplyAll применяет действия последовательно. Первая ошибка прерывает
// оставшиеся действия; отчет содержит то, что успело примениться.
func (a *Applier) ApplyAll(ctx context.Context, actions []domain.Action) (domain.ApplyReport, error) {
	var report domain.ApplyReport

	for _, action := range actions {
		entry := a.logger.WithFields(logrus.Fields{
			"action": action.Kind,
			"group":  action.Group,
		})
		if action.UserID != "" {
			entry = entry.WithFields(logrus.Fields{
				"user_id": action.UserID,
				"email":   action.Email,
			})
		}

		applied, err := a.Apply(ctx, action)
		if err != nil {
			entry.WithError(err).Error("Failed to apply action, aborting remaining actions")
			return report, err
		}
		if !applied {
			report.Skipped++
			entry.Info("Action not needed, skipping")
			continue
		}

		switch action.Kind {
		case domain.ActionCreateGroup:
			report.GroupsCreated++
		case domain.ActionDeleteGroup:
			report.GroupsDeleted++
		case domain.ActionAddMembership:
			report.MembershipsAdded++
		case domain.ActionRemoveMembership:
			report.MembershipsRemoved++
		}
		entry.Info("Action applied")
	}

	return report, nil
}
