package domain

import (
	"context"
	"time"
)

// RunStatus описывает итог прохода синхронизации.
type RunStatus string

const (
	RunStatusApplied RunStatus = "applied"
	RunStatusSkipped RunStatus = "skipped"
	RunStatusAborted RunStatus = "aborted"
	RunStatusFailed  RunStatus = "failed"
)

// SyncRun представляет запись истории одного прохода синхронизации.
type SyncRun struct {
	ID                 string
	StartedAt          time.Time
	FinishedAt         time.Time
	Status             RunStatus
	Reason             string
	GroupsCreated      int
	GroupsDeleted      int
	MembershipsAdded   int
	MembershipsRemoved int
	UnmatchedUsers     int
	Error              string
}

// ApplyReport переносит счетчики отчета в запись истории.
func (r *SyncRun) ApplyReport(report ApplyReport) {
	r.GroupsCreated = report.GroupsCreated
	r.GroupsDeleted = report.GroupsDeleted
	r.MembershipsAdded = report.MembershipsAdded
	r.MembershipsRemoved = report.MembershipsRemoved
}

// RunRepository определяет контракт для хранилища истории синхронизаций.
type RunRepository interface {
	Create(ctx context.Context, run *SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]*SyncRun, error)
}
