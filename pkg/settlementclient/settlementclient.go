// Package settlementclient talks to the settlement service that moves tokens in and out of
// owner accounts and adds liquidity on behalf of the fee distributor.
package settlementclient

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/httpclient"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

const (
	pathTransferIn          = "/v1/transfers/in"
	pathTransferOut         = "/v1/transfers/out"
	pathSwapAndAddLiquidity = "/v1/liquidity/swap-and-add"
)

type Config struct {
	BaseURL string
	APIKey  string
	httpclient.Config
}

type Client struct {
	httpClient *httpclient.Client
}

func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "settlement base url is required")
	}
	if config.APIKey != "" {
		if config.Headers == nil {
			config.Headers = make(map[string]string)
		}
		config.Headers["Authorization"] = "Bearer " + config.APIKey
	}
	httpClient, err := httpclient.New(config.BaseURL, config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{httpClient: httpClient}, nil
}

type TransferRequest struct {
	Address common.Address  `json:"address"`
	Amount  uint128.Uint128 `json:"amount"`
}

type SwapRequest struct {
	Amount uint128.Uint128 `json:"amount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := httpclient.JSON(payload)
	if err != nil {
		return errors.WithStack(err)
	}
	resp, err := c.httpClient.Post(ctx, path, httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}

	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	var reason errorResponse
	if err := resp.UnmarshalBody(&reason); err != nil || reason.Error == "" {
		reason.Error = http.StatusText(status)
	}
	logger.WarnContext(ctx, "Settlement request declined",
		slogx.String("package", "settlementclient"),
		slogx.String("path", path),
		slogx.Int("status", status),
		slogx.String("reason", reason.Error),
	)
	switch status {
	case http.StatusPaymentRequired:
		return errors.Wrapf(errs.InsufficientFunds, "settlement: %s", reason.Error)
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return errors.Wrapf(errs.Timeout, "settlement: %s", reason.Error)
	default:
		return errors.Wrapf(errs.TransferRejected, "settlement returned %d: %s", status, reason.Error)
	}
}

// TransferIn pulls amount from the account of from.
func (c *Client) TransferIn(ctx context.Context, from common.Address, amount uint128.Uint128) error {
	return errors.WithStack(c.post(ctx, pathTransferIn, TransferRequest{Address: from, Amount: amount}))
}

// TransferOut pays amount to the account of to.
func (c *Client) TransferOut(ctx context.Context, to common.Address, amount uint128.Uint128) error {
	return errors.WithStack(c.post(ctx, pathTransferOut, TransferRequest{Address: to, Amount: amount}))
}

// SwapAndAddLiquidity swaps amount and adds the proceeds to the liquidity pool.
func (c *Client) SwapAndAddLiquidity(ctx context.Context, amount uint128.Uint128) error {
	return errors.WithStack(c.post(ctx, pathSwapAndAddLiquidity, SwapRequest{Amount: amount}))
}
