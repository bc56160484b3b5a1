package config

import (
	"time"

	"github.com/gaze-network/node-rewards/internal/postgres"
)

type Config struct {
	Database          string          `mapstructure:"database"` // Database to store node rewards state e.g. `memory` | `postgres`
	Postgres          postgres.Config `mapstructure:"postgres"`
	DefaultNodeType   NodeType        `mapstructure:"default_node_type"`
	NodeTypes         string          `mapstructure:"node_types"`          // Extra node types seeded at startup, in name#price#claimSeconds#rewardRate#tax#nextTier#levelUpCount records joined by "-"
	MigrationNodeType string          `mapstructure:"migration_node_type"` // Node type given to migrated legacy nodes. Default is the default node type.
	Fees              Fees            `mapstructure:"fees"`
	Pools             Pools           `mapstructure:"pools"`
	Payees            []Payee         `mapstructure:"payees"`
	SwapAmount        uint64          `mapstructure:"swap_amount"`
	Settlement        Settlement      `mapstructure:"settlement"`
	Legacy            Legacy          `mapstructure:"legacy"`
	Cache             Cache           `mapstructure:"cache"`
	Decimals          uint8           `mapstructure:"decimals"` // Token decimals of display amounts in the HTTP API
}

// NodeType is seeded into an empty node type registry at startup.
type NodeType struct {
	Name          string        `mapstructure:"name"`
	Price         uint64        `mapstructure:"price"`
	ClaimInterval time.Duration `mapstructure:"claim_interval"`
	RewardRate    uint64        `mapstructure:"reward_rate"` // per second
	ClaimTax      uint8         `mapstructure:"claim_tax"`
}

type Fees struct {
	FutureFee        uint32 `mapstructure:"future_fee"`
	RewardsFee       uint32 `mapstructure:"rewards_fee"`
	LiquidityPoolFee uint32 `mapstructure:"liquidity_pool_fee"`
	CashoutFee       uint32 `mapstructure:"cashout_fee"`
}

type Pools struct {
	FutureUsePool    string `mapstructure:"future_use_pool"`
	DistributionPool string `mapstructure:"distribution_pool"`
}

type Payee struct {
	Address string `mapstructure:"address"`
	Share   uint32 `mapstructure:"share"`
}

type Settlement struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Debug   bool          `mapstructure:"debug"`
}

type Legacy struct {
	Source          string `mapstructure:"source"` // `none` | `contract` | `s3`
	RPCURL          string `mapstructure:"rpc_url"`
	ContractAddress string `mapstructure:"contract_address"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	S3Prefix        string `mapstructure:"s3_prefix"`
	S3Region        string `mapstructure:"s3_region"`
}

type Cache struct {
	RedisAddr string        `mapstructure:"redis_addr"` // Query cache is disabled when empty.
	TTL       time.Duration `mapstructure:"ttl"`
}
