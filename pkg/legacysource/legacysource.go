// Package legacysource reads node records of owners from the legacy reward contract,
// either live through an EVM node or from a parquet snapshot stored on S3.
//
// Records are returned in the contract's own format: timestamps in unix seconds joined by "#".
package legacysource

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Record holds an owner's legacy node timestamps. Both fields are "#"-joined unix seconds
// and are empty when the owner has no legacy nodes. LastClaimTimes may be empty even when
// CreationTimes is not.
type Record struct {
	CreationTimes  string
	LastClaimTimes string
}

type Source interface {
	Record(ctx context.Context, owner common.Address) (Record, error)
}

var (
	_ Source = (*Contract)(nil)
	_ Source = (*S3Snapshot)(nil)
)
