package postgres

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
)

// clampInt32 bounds paging arguments to the range of an int4 query parameter.
func clampInt32(v int) int32 {
	return int32(min(max(v, 0), math.MaxInt32))
}

func uint128FromNumeric(src pgtype.Numeric) (uint128.Uint128, error) {
	if !src.Valid {
		return uint128.Zero, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return result, nil
}

func numericFromUint128(src uint128.Uint128) (pgtype.Numeric, error) {
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src.String())); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func mapNodeTypeModelToType(src gen.NoderewardsNodeType) (entity.NodeType, error) {
	price, err := uint128FromNumeric(src.Price)
	if err != nil {
		return entity.NodeType{}, errors.Wrap(err, "failed to parse price")
	}
	rate, err := uint128FromNumeric(src.RewardRate)
	if err != nil {
		return entity.NodeType{}, errors.Wrap(err, "failed to parse reward rate")
	}
	return entity.NodeType{
		Name:          src.Name,
		Price:         price,
		ClaimInterval: time.Duration(src.ClaimIntervalSeconds) * time.Second,
		RewardRate:    rate,
		ClaimTax:      uint8(src.ClaimTax),
		NextTier:      src.NextTier,
		LevelUpCount:  uint32(src.LevelUpCount),
	}, nil
}

func mapNodeTypeTypeToParams(src entity.NodeType) (gen.CreateNodeTypeParams, error) {
	price, err := numericFromUint128(src.Price)
	if err != nil {
		return gen.CreateNodeTypeParams{}, errors.Wrap(err, "failed to convert price")
	}
	rate, err := numericFromUint128(src.RewardRate)
	if err != nil {
		return gen.CreateNodeTypeParams{}, errors.Wrap(err, "failed to convert reward rate")
	}
	return gen.CreateNodeTypeParams{
		Name:                 src.Name,
		Price:                price,
		ClaimIntervalSeconds: int64(src.ClaimInterval / time.Second),
		RewardRate:           rate,
		ClaimTax:             int16(src.ClaimTax),
		NextTier:             src.NextTier,
		LevelUpCount:         int32(src.LevelUpCount),
	}, nil
}

func mapNodeModelToType(src gen.NoderewardsNode) entity.Node {
	return entity.Node{
		ID:          uint64(src.ID),
		Owner:       common.HexToAddress(src.Owner),
		Type:        src.Type,
		CreatedAt:   src.CreatedAt.Time.UTC(),
		LastClaimAt: src.LastClaimAt.Time.UTC(),
	}
}

func mapOwnerRowToType(address string, migrated bool, position, nodeCount int32) entity.Owner {
	return entity.Owner{
		Address:   common.HexToAddress(address),
		Position:  int(position),
		NodeCount: int(nodeCount),
		Migrated:  migrated,
	}
}
