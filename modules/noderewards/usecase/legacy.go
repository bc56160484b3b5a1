package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/modules/noderewards/collaborator"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/codec"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/legacysource"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
)

var _ collaborator.LegacySource = (*legacyNodes)(nil)

// legacyNodes decodes raw legacy records into nodes.
type legacyNodes struct {
	source legacysource.Source
}

func NewLegacySource(source legacysource.Source) collaborator.LegacySource {
	return &legacyNodes{source: source}
}

func (l *legacyNodes) LegacyNodes(ctx context.Context, owner common.Address) ([]entity.LegacyNode, error) {
	record, err := l.source.Record(ctx, owner)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	createdAt, err := codec.ParseTimestamps(record.CreationTimes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid legacy creation times")
	}
	lastClaimAt, err := codec.ParseTimestamps(record.LastClaimTimes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid legacy last claim times")
	}
	// claim times are positional; a list of another length can't be matched to nodes
	if len(lastClaimAt) != len(createdAt) {
		if len(lastClaimAt) > 0 {
			logger.WarnContext(ctx, "Ignoring mismatched legacy last claim times", ownerAttr(owner),
				slogx.Int("nodes", len(createdAt)),
				slogx.Int("last_claims", len(lastClaimAt)),
			)
		}
		lastClaimAt = nil
	}

	nodes := make([]entity.LegacyNode, len(createdAt))
	for i := range createdAt {
		nodes[i].CreatedAt = createdAt[i]
		if lastClaimAt != nil {
			nodes[i].LastClaimAt = lastClaimAt[i]
		}
	}
	return nodes, nil
}
