package legacysource

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
)

const (
	methodCreationTimes  = "_getNodesCreationTime"
	methodLastClaimTimes = "_getNodesLastClaimTime"

	// JSON-RPC error code of a reverted call.
	revertErrorCode = 3
)

const legacyABI = `[
	{"type":"function","name":"_getNodesCreationTime","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"_getNodesLastClaimTime","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"string"}]}
]`

// Contract reads records from the deployed legacy reward contract.
type Contract struct {
	caller  ethereum.ContractCaller
	address common.Address
	abi     abi.ABI
}

func NewContract(caller ethereum.ContractCaller, address common.Address) (*Contract, error) {
	if address == (common.Address{}) {
		return nil, errors.Wrap(errs.InvalidArgument, "legacy contract address is required")
	}
	parsedABI, err := abi.JSON(strings.NewReader(legacyABI))
	if err != nil {
		return nil, errors.Wrap(err, "can't parse legacy contract abi")
	}
	return &Contract{
		caller:  caller,
		address: address,
		abi:     parsedABI,
	}, nil
}

// DialContract connects to the EVM node at rpcURL. Close the returned client when done.
func DialContract(ctx context.Context, rpcURL string, address common.Address) (*Contract, *ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't connect to evm node")
	}
	contract, err := NewContract(client, address)
	if err != nil {
		client.Close()
		return nil, nil, errors.WithStack(err)
	}
	return contract, client, nil
}

// Record reads both timestamp lists of owner. The legacy contract reverts for accounts
// without nodes, which yields an empty record.
func (c *Contract) Record(ctx context.Context, owner common.Address) (Record, error) {
	creationTimes, err := c.call(ctx, methodCreationTimes, owner)
	if err != nil {
		if isRevert(err) {
			logger.DebugContext(ctx, "Legacy contract reverted, owner has no nodes", slogx.Stringer("owner", owner))
			return Record{}, nil
		}
		return Record{}, errors.WithStack(err)
	}

	lastClaimTimes, err := c.call(ctx, methodLastClaimTimes, owner)
	if err != nil && !isRevert(err) {
		return Record{}, errors.WithStack(err)
	}

	return Record{
		CreationTimes:  creationTimes,
		LastClaimTimes: lastClaimTimes,
	}, nil
}

func (c *Contract) call(ctx context.Context, method string, owner common.Address) (string, error) {
	data, err := c.abi.Pack(method, owner)
	if err != nil {
		return "", errors.Wrapf(err, "can't pack %s call", method)
	}
	output, err := c.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	}, nil)
	if err != nil {
		return "", errors.Wrapf(err, "failed to call %s", method)
	}

	var result string
	if err := c.abi.UnpackIntoInterface(&result, method, output); err != nil {
		return "", errors.Wrapf(err, "can't unpack %s result", method)
	}
	return result, nil
}

func isRevert(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == revertErrorCode
}
