package domain

import "context"

// SourceAccount представляет пользователя в том виде, в каком его отдает Pocket ID.
type SourceAccount struct {
	ID       string
	Username string
	Email    string
	Disabled bool
	Groups   []string
	Claims   map[string]string
}

// IdentityProvider определяет контракт клиента провайдера идентификации.
type IdentityProvider interface {
	ListUsers(ctx context.Context) ([]SourceAccount, error)
}

// TargetAccount представляет пользователя Outline без групп.
type TargetAccount struct {
	ID    string
	Name  string
	Email string
}

// TargetDirectory определяет контракт клиента целевой системы (Outline).
// DeleteGroup и RemoveMember возвращают ErrNotFound, если группа не найдена.
type TargetDirectory interface {
	ListUsers(ctx context.Context) ([]TargetAccount, error)
	ListGroups(ctx context.Context) ([]TargetGroup, error)
	ListGroupMembers(ctx context.Context, groupID string) ([]string, error)
	CreateGroup(ctx context.Context, name string) (string, error)
	DeleteGroup(ctx context.Context, groupID string) error
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	FindGroupIDByName(ctx context.Context, name string) (string, bool, error)
}

// SyncResult представляет итог прохода синхронизации.
type SyncResult struct {
	Run    *SyncRun
	Report ApplyReport
}

// SyncUseCase определяет бизнес-логику синхронизации групп.
type SyncUseCase interface {
	Sync(ctx context.Context) (*SyncResult, error)
	ListRuns(ctx context.Context, limit int) ([]*SyncRun, error)
}

// AuthorizedKeyUseCase определяет бизнес-логику проверки SSH ключей.
type AuthorizedKeyUseCase interface {
	LookupKey(ctx context.Context, pubkey string) (string, bool, error)
}
