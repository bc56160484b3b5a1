package noderewards

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/internal/config"
	"github.com/gaze-network/node-rewards/internal/postgres"
	"github.com/gaze-network/node-rewards/modules/noderewards/api/httphandler"
	"github.com/gaze-network/node-rewards/modules/noderewards/collaborator"
	noderewardsconfig "github.com/gaze-network/node-rewards/modules/noderewards/config"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/codec"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/distributor"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/repository/memory"
	noderewardspostgres "github.com/gaze-network/node-rewards/modules/noderewards/repository/postgres"
	"github.com/gaze-network/node-rewards/modules/noderewards/usecase"
	"github.com/gaze-network/node-rewards/pkg/httpclient"
	"github.com/gaze-network/node-rewards/pkg/legacysource"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/node-rewards/pkg/querycache"
	"github.com/gaze-network/node-rewards/pkg/settlementclient"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
)

const Version = "v0.1.0"

// Module is the running node rewards service. It is shut down by the injector.
type Module struct {
	Manager      *usecase.Manager
	cleanupFuncs []func(context.Context) error
}

func New(injector do.Injector) (*Module, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	moduleConf := conf.Modules.NodeRewards
	ctx = logger.WithContext(ctx, slogx.String("module", "noderewards"))

	module := &Module{}
	ok := false
	defer func() {
		if !ok {
			_ = module.Shutdown(ctx)
		}
	}()

	var dg datagateway.NodeRewardsDataGateway
	switch strings.ToLower(moduleConf.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for node rewards")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		module.cleanupFuncs = append(module.cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		dg = noderewardspostgres.NewRepository(pg)
	case "memory", "":
		logger.WarnContext(ctx, "Using in-memory database, state is lost on restart")
		dg = memory.NewRepository()
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for node rewards is not supported", moduleConf.Database)
	}

	settlement, err := settlementclient.New(settlementclient.Config{
		BaseURL: moduleConf.Settlement.URL,
		APIKey:  moduleConf.Settlement.APIKey,
		Config: httpclient.Config{
			Debug:   moduleConf.Settlement.Debug,
			Timeout: moduleConf.Settlement.Timeout,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid settlement configuration")
	}

	distributorConfig, err := newDistributorConfig(moduleConf)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	dist, err := distributor.New(distributorConfig, settlement, settlement)
	if err != nil {
		return nil, errors.Wrap(err, "invalid distributor configuration")
	}

	legacy, err := module.newLegacySource(ctx, moduleConf.Legacy)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defaultNodeType := newNodeType(moduleConf.DefaultNodeType)
	if err := defaultNodeType.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid default node type")
	}
	extraNodeTypes, err := codec.ParseNodeTypes(moduleConf.NodeTypes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid node types")
	}

	manager := usecase.NewManager(dg, dist, settlement, legacy, usecase.Options{
		DefaultNodeType:   defaultNodeType.Name,
		MigrationNodeType: moduleConf.MigrationNodeType,
	})
	if err := manager.Bootstrap(ctx, append([]entity.NodeType{defaultNodeType}, extraNodeTypes...)...); err != nil {
		return nil, errors.Wrap(err, "can't seed node types")
	}
	module.Manager = manager

	var cache *querycache.Cache
	if moduleConf.Cache.RedisAddr != "" {
		cache, err = querycache.New(ctx, querycache.Config{
			Addr: moduleConf.Cache.RedisAddr,
			TTL:  moduleConf.Cache.TTL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "can't create query cache")
		}
		module.cleanupFuncs = append(module.cleanupFuncs, func(context.Context) error {
			return errors.WithStack(cache.Close())
		})
	}

	// Mount API
	httpServer := do.MustInvoke[*fiber.App](injector)
	httpHandler := httphandler.New(manager, cache, httphandler.Config{
		AdminToken:   conf.HTTPServer.AdminToken,
		ServiceToken: conf.HTTPServer.ServiceToken,
		Decimals:     moduleConf.Decimals,
	})
	if err := httpHandler.Mount(httpServer); err != nil {
		return nil, errors.Wrap(err, "can't mount node rewards API")
	}
	logger.InfoContext(ctx, "Mounted HTTP handler")

	ok = true
	return module, nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	var errList []error
	for i := len(m.cleanupFuncs) - 1; i >= 0; i-- {
		if err := m.cleanupFuncs[i](ctx); err != nil {
			errList = append(errList, err)
		}
	}
	m.cleanupFuncs = nil
	return errors.WithStack(errors.Join(errList...))
}

func (m *Module) newLegacySource(ctx context.Context, conf noderewardsconfig.Legacy) (collaborator.LegacySource, error) {
	switch strings.ToLower(conf.Source) {
	case "", "none":
		return nil, nil
	case "contract":
		if !common.IsHexAddress(conf.ContractAddress) {
			return nil, errors.Wrapf(errs.InvalidArgument, "invalid legacy contract address %q", conf.ContractAddress)
		}
		contract, client, err := legacysource.DialContract(ctx, conf.RPCURL, common.HexToAddress(conf.ContractAddress))
		if err != nil {
			return nil, errors.Wrap(err, "can't connect to legacy contract")
		}
		m.cleanupFuncs = append(m.cleanupFuncs, func(context.Context) error {
			client.Close()
			return nil
		})
		return usecase.NewLegacySource(contract), nil
	case "s3":
		snapshot, err := legacysource.NewS3SnapshotFromConfig(ctx, conf.S3Region, conf.S3Bucket, conf.S3Prefix)
		if err != nil {
			return nil, errors.Wrap(err, "can't create legacy snapshot source")
		}
		return usecase.NewLegacySource(snapshot), nil
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q legacy source is not supported", conf.Source)
	}
}

func newDistributorConfig(conf noderewardsconfig.Config) (distributor.Config, error) {
	parseAddress := func(field, s string) (common.Address, error) {
		if !common.IsHexAddress(s) {
			return common.Address{}, errors.Wrapf(errs.InvalidArgument, "invalid %s address %q", field, s)
		}
		return common.HexToAddress(s), nil
	}

	futureUsePool, err := parseAddress("future-use pool", conf.Pools.FutureUsePool)
	if err != nil {
		return distributor.Config{}, err
	}
	distributionPool, err := parseAddress("distribution pool", conf.Pools.DistributionPool)
	if err != nil {
		return distributor.Config{}, err
	}
	payees := make([]entity.Payee, 0, len(conf.Payees))
	for _, p := range conf.Payees {
		addr, err := parseAddress("payee", p.Address)
		if err != nil {
			return distributor.Config{}, err
		}
		payees = append(payees, entity.Payee{Address: addr, Share: p.Share})
	}

	return distributor.Config{
		Fees: entity.Fees{
			FutureFee:        conf.Fees.FutureFee,
			RewardsFee:       conf.Fees.RewardsFee,
			LiquidityPoolFee: conf.Fees.LiquidityPoolFee,
			CashoutFee:       conf.Fees.CashoutFee,
		},
		FutureUsePool:    futureUsePool,
		DistributionPool: distributionPool,
		Payees:           payees,
		SwapAmount:       uint128.From64(conf.SwapAmount),
	}, nil
}

func newNodeType(conf noderewardsconfig.NodeType) entity.NodeType {
	return entity.NodeType{
		Name:          conf.Name,
		Price:         uint128.From64(conf.Price),
		ClaimInterval: conf.ClaimInterval,
		RewardRate:    uint128.From64(conf.RewardRate),
		ClaimTax:      conf.ClaimTax,
	}
}
