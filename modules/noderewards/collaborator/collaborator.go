// Package collaborator declares the external systems the reward manager calls out to.
// Every call is synchronous: it either fully succeeds or the calling operation aborts.
package collaborator

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/uint128"
)

// Token moves settlement currency between external accounts and the manager.
type Token interface {
	// TransferIn pulls amount from an external account.
	// Fails with errs.InsufficientFunds or errs.TransferRejected.
	TransferIn(ctx context.Context, from common.Address, amount uint128.Uint128) error
	// TransferOut pays amount to an external account. Fails with errs.TransferRejected.
	TransferOut(ctx context.Context, to common.Address, amount uint128.Uint128) error
}

// SwapRouter converts queued liquidity funds and adds them to the liquidity pool.
type SwapRouter interface {
	SwapAndAddLiquidity(ctx context.Context, amount uint128.Uint128) error
}

// LegacySource reads an owner's nodes from the previous reward contract.
type LegacySource interface {
	LegacyNodes(ctx context.Context, owner common.Address) ([]entity.LegacyNode, error)
}
