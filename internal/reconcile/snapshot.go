package reconcile

import (
	"context"
	"fmt"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/sets"
)

// SourceBuilder строит снимок пользователей провайдера идентификации.
type SourceBuilder struct {
	provider domain.IdentityProvider
}

// NewSourceBuilder создает новый экземпляр SourceBuilder.
func NewSourceBuilder(provider domain.IdentityProvider) *SourceBuilder {
	return &SourceBuilder{provider: provider}
}

// Build получает всех пользователей, отбрасывает отключенных и нормализует группы в множества.
func (b *SourceBuilder) Build(ctx context.Context) (domain.SourceSnapshot, error) {
	accounts, err := b.provider.ListUsers(ctx)
	if err != nil {
		return domain.SourceSnapshot{}, fmt.Errorf("failed to list source users: %w", err)
	}

	seen := sets.New[string]()
	users := make([]domain.SourceUser, 0, len(accounts))
	for _, a := range accounts {
		if a.Disabled || seen.Has(a.ID) {
			continue
		}
		seen.Insert(a.ID)

		users = append(users, domain.SourceUser{
			ID:       a.ID,
			Username: a.Username,
			Email:    a.Email,
			Groups:   sets.New(a.Groups...),
			Claims:   a.Claims,
		})
	}

	return domain.SourceSnapshot{Users: users}, nil
}

// TargetBuilder восстанавливает членство в группах Outline: список групп и
// пользователей не содержит членства, поэтому участники запрашиваются по каждой группе.
type TargetBuilder struct {
	directory   domain.TargetDirectory
	logger      logrus.FieldLogger
	concurrency int
}

// NewTargetBuilder создает новый экземпляр TargetBuilder.
func NewTargetBuilder(directory domain.TargetDirectory, concurrency int, logger logrus.FieldLogger) *TargetBuilder {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &TargetBuilder{
		directory:   directory,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Build возвращает снимок групп и членства в Outline.
func (b *TargetBuilder) Build(ctx context.Context) (domain.TargetSnapshot, error) {
	groups, err := b.directory.ListGroups(ctx)
	if err != nil {
		return domain.TargetSnapshot{}, fmt.Errorf("failed to list target groups: %w", err)
	}

	accounts, err := b.directory.ListUsers(ctx)
	if err != nil {
		return domain.TargetSnapshot{}, fmt.Errorf("failed to list target users: %w", err)
	}

	members := make([][]string, len(groups))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.concurrency)
	for i, g := range groups {
		eg.Go(func() error {
			ids, err := b.directory.ListGroupMembers(egctx, g.ID)
			if err != nil {
				return fmt.Errorf("failed to list members of group %q: %w", g.Name, err)
			}
			members[i] = ids
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return domain.TargetSnapshot{}, err
	}

	users := make([]domain.TargetUser, len(accounts))
	index := make(map[string]int, len(accounts))
	for i, a := range accounts {
		users[i] = domain.TargetUser{
			ID:     a.ID,
			Name:   a.Name,
			Email:  a.Email,
			Groups: sets.New[string](),
		}
		index[a.ID] = i
	}

	for i, g := range groups {
		for _, userID := range members[i] {
			idx, ok := index[userID]
			if !ok {
				metrics.WarningsTotal.WithLabelValues(metrics.WarningDataIntegrity).Inc()
				b.logger.WithFields(logrus.Fields{
					"group":   g.Name,
					"user_id": userID,
				}).Warn("Group member is missing from the user list, skipping")
				continue
			}
			users[idx].Groups.Insert(g.Name)
		}
	}

	return domain.TargetSnapshot{Users: users, Groups: groups}, nil
}
