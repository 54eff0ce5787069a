package usecase

import (
	"context"
	"time"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/metrics"
	"group-sync-service/internal/reconcile"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// SyncUseCase реализует проход синхронизации групп Pocket ID -> Outline.
type SyncUseCase struct {
	source  *reconcile.SourceBuilder
	target  *reconcile.TargetBuilder
	applier *reconcile.Applier
	runs    domain.RunRepository
	logger  logrus.FieldLogger
	now     func() time.Time

	sf singleflight.Group
	// last меняется только внутри runPass, а singleflight держит не более одного прохода
	last *domain.SourceSnapshot
}

// NewSyncUseCase создает новый экземпляр SyncUseCase.
func NewSyncUseCase(
	provider domain.IdentityProvider,
	directory domain.TargetDirectory,
	runs domain.RunRepository,
	concurrency int,
	logger logrus.FieldLogger,
) domain.SyncUseCase {
	return &SyncUseCase{
		source:  reconcile.NewSourceBuilder(provider),
		target:  reconcile.NewTargetBuilder(directory, concurrency, logger),
		applier: reconcile.NewApplier(directory, logger),
		runs:    runs,
		logger:  logger,
		now:     time.Now,
	}
}

// Sync запускает проход синхронизации. Параллельные вызовы присоединяются
// к уже идущему проходу и получают его результат.
func (uc *SyncUseCase) Sync(ctx context.Context) (*domain.SyncResult, error) {
	// Проход не отменяется вызывающей стороной: он либо завершается, либо падает на первой ошибке
	passCtx := context.WithoutCancel(ctx)

	v, err, shared := uc.sf.Do("sync", func() (interface{}, error) {
		return uc.runPass(passCtx)
	})
	if shared {
		uc.logger.Debug("Joined in-flight reconciliation pass")
	}

	result, _ := v.(*domain.SyncResult)
	return result, err
}

func (uc *SyncUseCase) runPass(ctx context.Context) (*domain.SyncResult, error) {
	run := &domain.SyncRun{
		ID:        uuid.NewString(),
		StartedAt: uc.now(),
	}
	logger := uc.logger.WithField("run_id", run.ID)
	logger.Info("Syncing Pocket ID groups to Outline")

	report, err := uc.reconcile(ctx, logger, run)
	run.ApplyReport(report)
	run.FinishedAt = uc.now()

	switch {
	case err == nil:
		if run.Status == "" {
			run.Status = domain.RunStatusApplied
		}
		metrics.LastSuccess.Set(float64(run.FinishedAt.Unix()))
	case domain.IsAbort(err):
		run.Status = domain.RunStatusAborted
		run.Reason = err.Error()
		logger.WithError(err).Warn("Reconciliation aborted before any change")
	default:
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
		logger.WithError(err).Error("Reconciliation failed")
	}

	metrics.PassesTotal.WithLabelValues(string(run.Status)).Inc()
	metrics.PassDuration.WithLabelValues(string(run.Status)).Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())

	if recErr := uc.runs.Create(ctx, run); recErr != nil {
		logger.WithError(recErr).Error("Failed to record sync run")
	}

	logger.WithFields(logrus.Fields{
		"status":              run.Status,
		"groups_created":      report.GroupsCreated,
		"groups_deleted":      report.GroupsDeleted,
		"memberships_added":   report.MembershipsAdded,
		"memberships_removed": report.MembershipsRemoved,
		"skipped_actions":     report.Skipped,
		"unmatched_users":     run.UnmatchedUsers,
	}).Info("Reconciliation pass finished")

	return &domain.SyncResult{Run: run, Report: report}, err
}

func (uc *SyncUseCase) reconcile(ctx context.Context, logger logrus.FieldLogger, run *domain.SyncRun) (domain.ApplyReport, error) {
	var report domain.ApplyReport

	// 1. Снимок источника
	source, err := uc.source.Build(ctx)
	if err != nil {
		return report, err
	}

	// 2. Защита от пустого снимка
	if err := reconcile.Validate(source); err != nil {
		return report, err
	}

	// 3. Источник не менялся с последнего успешного прохода
	if !reconcile.ShouldRun(source, uc.last) {
		run.Status = domain.RunStatusSkipped
		run.Reason = "source snapshot unchanged"
		logger.Info("Source snapshot unchanged, skipping reconciliation")
		return report, nil
	}

	// 4. Снимок цели
	target, err := uc.target.Build(ctx)
	if err != nil {
		return report, err
	}

	// 5. Группы создаются и удаляются до изменений членства
	groupPlan := reconcile.ReconcileGroups(source.GroupNames(), target.GroupNames())
	groupReport, err := uc.applier.ApplyAll(ctx, groupPlan.Actions())
	report = report.Merge(groupReport)
	if err != nil {
		return report, err
	}

	// 6. Членство считается без удаленных групп
	membershipPlan := reconcile.ReconcileMemberships(source.Users, target.WithoutGroups(groupPlan.ToDelete).Users)
	uc.logSkippedUsers(logger, membershipPlan)
	run.UnmatchedUsers = len(membershipPlan.Unmatched) + len(membershipPlan.Ambiguous)

	membershipReport, err := uc.applier.ApplyAll(ctx, membershipPlan.Actions)
	report = report.Merge(membershipReport)
	if err != nil {
		return report, err
	}

	// 7. Снимок запоминается только после полностью успешного прохода
	uc.last = &source

	return report, nil
}

func (uc *SyncUseCase) logSkippedUsers(logger logrus.FieldLogger, plan reconcile.MembershipPlan) {
	for _, u := range plan.Unmatched {
		metrics.WarningsTotal.WithLabelValues(metrics.WarningUnmatchedUser).Inc()
		logger.WithFields(logrus.Fields{
			"user_id": u.ID,
			"name":    u.Name,
			"email":   u.Email,
		}).Warn("No Pocket ID user matches Outline user by email")
	}
	for _, u := range plan.Ambiguous {
		metrics.WarningsTotal.WithLabelValues(metrics.WarningAmbiguousUser).Inc()
		logger.WithFields(logrus.Fields{
			"user_id": u.ID,
			"name":    u.Name,
			"email":   u.Email,
		}).Warn("Several Pocket ID users share the email of Outline user, skipping")
	}
}

// ListRuns возвращает последние проходы синхронизации.
func (uc *SyncUseCase) ListRuns(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}
	return uc.runs.ListRecent(ctx, limit)
}
