package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
)

// Migrate re-creates the owner's legacy nodes as nodes of the migration node type,
// preserving their creation times. Each owner can be migrated once.
func (m *Manager) Migrate(ctx context.Context, owner common.Address) (int, error) {
	if err := validateOwner(owner); err != nil {
		return 0, errors.WithStack(err)
	}
	if m.legacy == nil {
		return 0, errors.Wrap(errs.Unsupported, "no legacy source configured")
	}

	var migrated int
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		current, err := dgTx.GetOwner(ctx, owner)
		switch {
		case errors.Is(err, errs.NotFound):
		case err != nil:
			return errors.Wrap(err, "failed to get owner")
		case current.Migrated:
			return errors.Wrapf(errs.AlreadyMigrated, "owner %s", owner)
		}

		nodeType, err := m.resolveType(ctx, dgTx, m.migrationNodeType)
		if err != nil {
			return errors.WithStack(err)
		}
		legacyNodes, err := m.legacy.LegacyNodes(ctx, owner)
		if err != nil {
			return errors.Wrap(err, "failed to read legacy nodes")
		}
		if err := dgTx.SetOwnerMigrated(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to mark owner migrated")
		}

		for _, legacy := range legacyNodes {
			createdAt := entity.Unix(legacy.CreatedAt)
			lastClaimAt := createdAt
			if !legacy.LastClaimAt.IsZero() && !legacy.LastClaimAt.Before(createdAt) {
				lastClaimAt = entity.Unix(legacy.LastClaimAt)
			}
			if _, err := dgTx.CreateNode(ctx, entity.Node{
				Owner:       owner,
				Type:        nodeType.Name,
				CreatedAt:   createdAt,
				LastClaimAt: lastClaimAt,
			}); err != nil {
				return errors.Wrap(err, "failed to create node")
			}
		}
		migrated = len(legacyNodes)
		return nil
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Migrated legacy nodes", ownerAttr(owner), slogx.Int("nodes", migrated))
	return migrated, nil
}
